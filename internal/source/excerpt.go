// Package source turns a book's source_pdf reference into a short plain-text
// excerpt shown under its Literature Review section.
package source

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/ledongthuc/pdf"

	"github.com/csheth/lockdam/internal/content"
	"github.com/csheth/lockdam/internal/logger"
)

// DefaultLimit is the excerpt length in runes.
const DefaultLimit = 600

const defaultHTTPTimeout = 90 * time.Second

// ErrNoSource is returned for a book without a source_pdf.
var ErrNoSource = errors.New("no source document")

var extraneousWhitespace = regexp.MustCompile(`\s+`)

// Excerpter reads a book's source document and keeps the trimmed text in a
// Cache keyed by the book's slug.
type Excerpter struct {
	cache  *Cache
	client *http.Client
	log    *logger.Logger
}

// NewExcerpter builds an Excerpter. A nil cache reads the source on every
// call; a nil client gets a plain client with a generous timeout.
func NewExcerpter(cache *Cache, client *http.Client, log *logger.Logger) *Excerpter {
	if client == nil {
		client = &http.Client{Timeout: defaultHTTPTimeout}
	}
	return &Excerpter{cache: cache, client: client, log: log}
}

// Excerpt returns at most limit runes of text from book.SourcePDF, which is an
// http(s) URL, a file:// URL or a local path.
func (e *Excerpter) Excerpt(ctx context.Context, book content.Book, limit int) (string, error) {
	ref := strings.TrimSpace(book.SourcePDF)
	if ref == "" {
		return "", ErrNoSource
	}
	if limit <= 0 {
		limit = DefaultLimit
	}
	slug := book.Slug()
	log := e.log.WithFields(map[string]any{"book": slug, "ref": ref})

	if e.cache != nil {
		if text, ok := e.cache.Get(slug); ok {
			log.Debug("source excerpt served from cache")
			return Trim(text, limit), nil
		}
	}

	text, err := e.read(ctx, ref)
	if err != nil {
		return "", err
	}
	excerpt := Trim(text, limit)
	log.WithFields(map[string]any{
		"runes": utf8.RuneCountInString(text),
	}).Debug("source excerpt extracted")

	if e.cache != nil {
		if err := e.cache.Put(slug, excerpt); err != nil {
			log.Warn(err.Error())
		}
	}
	return excerpt, nil
}

func (e *Excerpter) read(ctx context.Context, ref string) (string, error) {
	path := ref
	switch {
	case strings.HasPrefix(ref, "http://"), strings.HasPrefix(ref, "https://"):
		dir := os.TempDir()
		if e.cache != nil {
			dir = e.cache.Dir()
		}
		downloaded, err := download(ctx, e.client, ref, dir)
		if err != nil {
			return "", fmt.Errorf("fetch %s: %w", ref, err)
		}
		defer func() { _ = os.Remove(downloaded) }()
		path = downloaded
	case strings.HasPrefix(ref, "file://"):
		path = strings.TrimPrefix(ref, "file://")
	}
	text, err := extractText(path)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", ref, err)
	}
	return text, nil
}

// download saves url to a temporary file in dir and returns its path.
func download(ctx context.Context, client *http.Client, url, dir string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}
	resp, err := client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status %s", resp.Status)
	}

	file, err := os.CreateTemp(dir, "source-*.pdf")
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(file, resp.Body); err != nil {
		_ = file.Close()
		_ = os.Remove(file.Name())
		return "", err
	}
	if err := file.Close(); err != nil {
		_ = os.Remove(file.Name())
		return "", err
	}
	return file.Name(), nil
}

func extractText(path string) (string, error) {
	file, reader, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open pdf: %w", err)
	}
	defer file.Close()

	plain, err := reader.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("failed to extract pdf text: %w", err)
	}

	var builder strings.Builder
	if _, err := io.Copy(&builder, plain); err != nil {
		return "", err
	}
	return builder.String(), nil
}

// Trim collapses whitespace and cuts text to at most limit runes, backing up
// to a word boundary and marking the cut with an ellipsis.
func Trim(text string, limit int) string {
	text = strings.TrimSpace(extraneousWhitespace.ReplaceAllString(text, " "))
	if limit <= 0 || utf8.RuneCountInString(text) <= limit {
		return text
	}
	runes := []rune(text)
	cut := string(runes[:limit-1])
	if idx := strings.LastIndexByte(cut, ' '); idx > len(cut)/2 {
		cut = cut[:idx]
	}
	return strings.TrimRight(cut, " ,;:") + "…"
}
