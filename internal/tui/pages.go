package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/x/ansi"

	"github.com/csheth/lockdam/internal/theme"
)

func (m *model) buildBody(route Route, pal theme.Palette) pageBody {
	switch route {
	case RouteAbout:
		return m.aboutBody(pal)
	case RouteLitReview:
		return m.litReviewBody(pal)
	case RouteArtifacts:
		return m.artifactsBody(pal)
	default:
		return pageBody{}
	}
}

func (m *model) aboutBody(pal theme.Palette) pageBody {
	width := m.layout.wrapWidth()
	body := pageBody{}
	for i, section := range m.site.About {
		var lines []string
		number := pal.Active.Render(fmt.Sprintf(" %d ", i+1))
		title := pal.Heading.Render(" " + previewText(section.Title, width-8))
		header := pal.Panel.Width(width - 2).Render(number + title)
		lines = append(lines, "")
		lines = append(lines, blockLines(header)...)
		lines = append(lines, "")
		lines = append(lines, wrapLines(section.Body, width, pal.Base, "  ")...)
		lines = append(lines, "")
		body.sections = append(body.sections, lines)
	}
	return body
}

func (m *model) litReviewBody(pal theme.Palette) pageBody {
	width := m.layout.wrapWidth()
	review := m.site.LitReview
	rule := pal.Subtle.Render(strings.Repeat("─", width))

	body := pageBody{}
	intro := []string{""}
	intro = append(intro, pal.Heading.Render(strings.ToUpper(review.Title)), "")
	intro = append(intro, wrapLines(review.Intro, width, pal.Base, "")...)
	if review.Note != "" {
		intro = append(intro, "")
		intro = append(intro, wrapLines(review.Note, width, pal.Heading, "")...)
	}
	intro = append(intro, "", rule)
	body.intro = intro

	for i, book := range review.Books {
		lines := []string{""}
		heading := book.Title
		if book.Year > 0 {
			heading = fmt.Sprintf("%s (%d)", book.Title, book.Year)
		}
		lines = append(lines, wrapLines(heading, width, pal.Heading, "")...)
		lines = append(lines, pal.Subtle.Render("by "+book.Author))
		if book.Link != "" {
			link := fmt.Sprintf("[%s] %s", book.LinkText, book.Link)
			lines = append(lines, pal.Underlined.Render(ansi.Truncate(link, width, "…")))
		}
		lines = append(lines, "")
		lines = append(lines, wrapLines(book.Body, width, pal.Base, "")...)

		switch {
		case m.excerpts[i] != "":
			lines = append(lines, "", pal.Subtle.Render("From the source:"))
			lines = append(lines, wrapLines(m.excerpts[i], width, pal.Base, "  ")...)
		case m.loading[i]:
			lines = append(lines, "", pal.Subtle.Render("Loading source excerpt…"))
		case book.SourcePDF != "":
			lines = append(lines, "", pal.Subtle.Render("Press o to read an excerpt from the source."))
		}
		lines = append(lines, "", rule)
		body.sections = append(body.sections, lines)
	}
	return body
}

func (m *model) artifactsBody(pal theme.Palette) pageBody {
	width := m.layout.wrapWidth()
	collection, ok := m.currentCollection()
	if !ok {
		return pageBody{intro: []string{"", pal.Subtle.Render("No artifacts yet.")}}
	}
	body := pageBody{}
	for _, item := range collection.Items {
		lines := []string{""}
		lines = append(lines, pal.Heading.Render(item.Name), "")
		lines = append(lines, wrapLines(item.Body, width, pal.Base, "")...)
		lines = append(lines, "")
		body.sections = append(body.sections, lines)
	}
	return body
}
