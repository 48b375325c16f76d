package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/csheth/lockdam/internal/content"
	"github.com/csheth/lockdam/internal/source"
)

const excerptTimeout = 45 * time.Second

// ExcerptSource produces the text shown under a Literature Review entry.
type ExcerptSource interface {
	Excerpt(ctx context.Context, book content.Book, limit int) (string, error)
}

var _ ExcerptSource = (*source.Excerpter)(nil)

func excerptJob(fetcher ExcerptSource, index int, book content.Book, limit int) jobRunner {
	return func(parent context.Context) (tea.Msg, error) {
		ctx, cancel := context.WithTimeout(parent, excerptTimeout)
		defer cancel()
		text, err := fetcher.Excerpt(ctx, book, limit)
		return excerptResultMsg{book: index, text: text, err: err}, err
	}
}
