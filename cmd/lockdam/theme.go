package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/csheth/lockdam/internal/clock"
	"github.com/csheth/lockdam/internal/theme"
)

func newThemeCmd() *cobra.Command {
	var at string

	cmd := &cobra.Command{
		Use:   "theme",
		Short: "Print the theme and time of day for now or for --at HH:MM",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			now := time.Now()
			if at != "" {
				parsed, err := time.ParseInLocation("15:04", at, time.Local)
				if err != nil {
					return fmt.Errorf("parse --at %q: want HH:MM", at)
				}
				now = time.Date(now.Year(), now.Month(), now.Day(), parsed.Hour(), parsed.Minute(), 0, 0, time.Local)
			}
			engine := theme.NewEngine(clock.NewManual(now), theme.Options{})
			defer engine.Close()
			fmt.Fprintf(cmd.OutOrStdout(), "%s  %s (%s)\n",
				engine.CurrentTime().Format("15:04"), engine.Resolved(), engine.TimeOfDay())
			return nil
		},
	}
	cmd.Flags().StringVar(&at, "at", "", "clock time to resolve, as HH:MM")
	return cmd
}
