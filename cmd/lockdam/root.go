package main

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/csheth/lockdam/internal/clock"
	"github.com/csheth/lockdam/internal/config"
	"github.com/csheth/lockdam/internal/content"
	"github.com/csheth/lockdam/internal/logger"
	"github.com/csheth/lockdam/internal/onboarding"
	"github.com/csheth/lockdam/internal/source"
	"github.com/csheth/lockdam/internal/theme"
	"github.com/csheth/lockdam/internal/tui"
)

// errNotTerminal is returned when the reader would draw into a pipe or file.
var errNotTerminal = errors.New("lockdam needs an interactive terminal; use `lockdam theme` for plain output")

type rootFlags struct {
	configPath  string
	noAltScreen bool
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}

	cmd := &cobra.Command{
		Use:           "lockdam",
		Short:         "Read \"Seeing Yourself in Your Structure: Lock and Dam One\" in the terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !isTerminal(cmd.OutOrStdout()) {
				return errNotTerminal
			}
			cfg, err := config.Load(flags.configPath, cmd.Flags())
			if err != nil {
				return err
			}
			if flags.noAltScreen {
				cfg.AltScreen = false
			}
			return runReader(cfg)
		},
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&flags.configPath, "config", "", "config file (default ~/.config/lockdam/config.yaml)")
	pf.String("content", "", "content document replacing the built-in site")

	f := cmd.Flags()
	f.String("page", "home", "page to open: home, about, litreview or artifacts")
	f.String("theme", "auto", "theme: auto, dark, time or light")
	f.BoolVar(&flags.noAltScreen, "no-alt-screen", false, "draw in the main screen buffer")
	f.Bool("seen-onboarding", false, "skip the first-visit onboarding notes")
	f.String("log-level", "info", "log level: debug, info, warn or error")
	f.String("log-file", "", "log file (default <user cache>/lockdam/lockdam.log)")
	f.Uint64("seed", 0, "seed for popup positions and shelf heights (0 draws one)")

	cmd.AddCommand(newThemeCmd())
	cmd.AddCommand(newVersionCmd())
	return cmd
}

func isTerminal(w io.Writer) bool {
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(file.Fd()))
}

func runReader(cfg config.Config) error {
	logFile, err := logger.OpenFile(cfg.Log.File)
	if err != nil {
		return err
	}
	defer func() { _ = logFile.Close() }()

	base, err := logger.New(logger.Options{Level: cfg.Log.Level, Writer: logFile})
	if err != nil {
		return err
	}
	log := base.WithFields(map[string]any{"session": uuid.NewString()})

	site, err := content.Load(cfg.Content)
	if err != nil {
		return err
	}
	route, err := tui.ParseRoute(cfg.Page)
	if err != nil {
		return err
	}
	mode, err := theme.ParseMode(cfg.Theme)
	if err != nil {
		return err
	}

	engine := theme.NewEngine(clock.Real{}, theme.Options{
		Interval: cfg.Clock.Interval,
		Mode:     mode,
		Logger:   log,
	})
	rng := onboarding.NewRand(cfg.Seed)
	guide := onboarding.New(tui.OnboardingNotes(site), rng, onboarding.Options{
		Seen:         cfg.Onboarding.Seen,
		CompactWidth: cfg.Onboarding.CompactWidth,
	})

	cacheDir := cfg.Source.CacheDir
	if cacheDir == "" {
		cacheDir = source.CacheDir()
	}
	var excerpts tui.ExcerptSource
	cache, err := source.NewCache(cacheDir, cfg.Source.CacheTTL)
	if err != nil {
		log.Warn(fmt.Sprintf("source cache disabled: %v", err))
	} else {
		excerpts = source.NewExcerpter(cache, &http.Client{Timeout: 60 * time.Second}, log)
	}

	log.WithFields(map[string]any{
		"page":  route.String(),
		"theme": mode.String(),
		"seed":  cfg.Seed,
	}).Info("starting reader")

	opts := []tea.ProgramOption{tea.WithMouseCellMotion()}
	if cfg.AltScreen {
		opts = append(opts, tea.WithAltScreen())
	}
	program := tea.NewProgram(tui.New(tui.Config{
		Site:         site,
		Engine:       engine,
		Onboarding:   guide,
		Excerpts:     excerpts,
		Logger:       log,
		Rand:         rng,
		Page:         route,
		Debounce:     cfg.Scroll.Debounce,
		ExcerptLimit: cfg.Source.ExcerptLimit,
	}), opts...)

	if _, err := program.Run(); err != nil {
		log.Error(err, "program error")
		return fmt.Errorf("program error: %w", err)
	}
	return nil
}
