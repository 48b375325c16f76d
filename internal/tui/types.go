package tui

import (
	"fmt"
	"strings"
)

// Route names a page.
type Route int

const (
	RouteHome Route = iota
	RouteAbout
	RouteLitReview
	RouteArtifacts
)

var routeNames = map[Route]string{
	RouteHome:      "home",
	RouteAbout:     "about",
	RouteLitReview: "litreview",
	RouteArtifacts: "artifacts",
}

func (r Route) String() string {
	if name, ok := routeNames[r]; ok {
		return name
	}
	return "unknown"
}

// ParseRoute accepts the names used by --page.
func ParseRoute(value string) (Route, error) {
	value = strings.ToLower(strings.TrimSpace(value))
	if value == "" {
		return RouteHome, nil
	}
	for route, name := range routeNames {
		if name == value {
			return route, nil
		}
	}
	return RouteHome, fmt.Errorf("unknown page %q", value)
}

// homeLinks is the order of the links on the home page.
var homeLinks = []struct {
	route Route
	label string
}{
	{RouteAbout, "About Project"},
	{RouteLitReview, "Literature Review"},
	{RouteArtifacts, "Artifacts"},
}

const (
	headerHeight    = 1
	footerHeight    = 1
	gutterWidth     = 1
	minSidebarWidth = 24
	minBodyWidth    = 30
	sidebarPercent  = 27
	bodyPadding     = 4
	minWrapWidth    = 20

	shelfRows      = 7
	minSpineHeight = 4
	maxSpineHeight = 7
	spineWidth     = 3

	popupMaxWidth = 44
	closerScrim   = 0.7
	closerKey     = "closer"
)

// hitZone maps a rectangle of screen cells to a target index.
type hitZone struct {
	row, col      int
	width, height int
	index         int
}

func (z hitZone) contains(x, y int) bool {
	return x >= z.col && x < z.col+z.width && y >= z.row && y < z.row+z.height
}

func hitAt(zones []hitZone, x, y int) (int, bool) {
	for _, z := range zones {
		if z.contains(x, y) {
			return z.index, true
		}
	}
	return 0, false
}

type excerptResultMsg struct {
	book int
	text string
	err  error
}
