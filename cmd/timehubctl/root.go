package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/timehub/timehub/pkg/audio"
	"github.com/timehub/timehub/pkg/config"
	"github.com/timehub/timehub/pkg/logger"
	"github.com/timehub/timehub/pkg/sleep"
)

func newRootCmd(now func() time.Time) *cobra.Command {
	root := &cobra.Command{
		Use:           "timehubctl",
		Short:         "TimeHub sleep calculator and sound tools",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.Version = appVersion
	root.SetVersionTemplate("timehubctl v{{.Version}}\n")

	root.AddCommand(newSleepCmd(now), newSoundsCmd())
	return root
}

func newSleepCmd(now func() time.Time) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sleep",
		Short: "Plan sleep around 90-minute cycles",
	}

	var wake string
	bedtime := &cobra.Command{
		Use:   "bedtime",
		Short: "When to go to bed to wake up at --wake",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if strings.TrimSpace(wake) == "" {
				return fmt.Errorf("--wake is required (e.g. --wake \"7:00 AM\")")
			}
			anchor, err := sleep.ParseAnchor(wake)
			if err != nil {
				return err
			}
			printCalculation(cmd.OutOrStdout(), sleep.Calculate(sleep.ModeBedtime, anchor))
			return nil
		},
	}
	bedtime.Flags().StringVar(&wake, "wake", "", "Wake-up time, H:MM AM|PM")

	var at string
	wakeup := &cobra.Command{
		Use:   "wakeup",
		Short: "When to wake up after going to bed at --at (default now)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			anchor := sleep.AnchorFromTime(now())
			if strings.TrimSpace(at) != "" {
				var err error
				if anchor, err = sleep.ParseAnchor(at); err != nil {
					return err
				}
			}
			printCalculation(cmd.OutOrStdout(), sleep.Calculate(sleep.ModeWakeup, anchor))
			return nil
		},
	}
	wakeup.Flags().StringVar(&at, "at", "", "Bedtime, H:MM AM|PM")

	cmd.AddCommand(bedtime, wakeup)
	return cmd
}

func printCalculation(w io.Writer, c sleep.Calculation) {
	if c.Mode == sleep.ModeBedtime {
		fmt.Fprintf(w, "To wake up at %s, go to bed at:\n", c.Anchor)
	} else {
		fmt.Fprintf(w, "Going to bed at %s, wake up at:\n", c.Anchor)
	}
	fmt.Fprintf(w, "  suggested: %s\n", strings.Join(c.Suggested(), ", "))
	fmt.Fprintf(w, "  also good: %s\n", strings.Join(c.Alternatives(), ", "))
}

func newSoundsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sounds",
		Short: "List the ambient sound catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tNAME\tKIND\tSOURCE")
			for _, s := range audio.Catalog() {
				source := s.URL
				if s.Generated() {
					source = "(generated)"
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", s.ID, s.Name, s.Kind, source)
			}
			return tw.Flush()
		},
	}

	fetch := &cobra.Command{
		Use:   "fetch [sound-id...]",
		Short: "Download sounds into the cache (all when no id is given)",
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := config.Load()
			if err != nil {
				return fmt.Errorf("load configuration: %w", err)
			}
			log, err := logger.New(env.LogLevel)
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()

			sounds, err := selectSounds(args)
			if err != nil {
				return err
			}

			fetcher := audio.NewFetcher(env.AudioCacheDir, env.FetchRetries, env.FetchTimeout, log)
			failed := 0
			for _, s := range sounds {
				if s.Generated() {
					continue
				}
				data, err := fetcher.Fetch(cmd.Context(), s.CacheName(), s.URL)
				if err != nil {
					failed++
					log.Error("fetch failed", zap.String("sound", s.ID), zap.Error(err))
					continue
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%-12s %d bytes\n", s.ID, len(data))
			}
			if failed > 0 {
				return fmt.Errorf("%d sound(s) could not be downloaded", failed)
			}
			return nil
		},
	}
	cmd.AddCommand(fetch)
	return cmd
}

func selectSounds(ids []string) ([]audio.Sound, error) {
	if len(ids) == 0 {
		return audio.Catalog(), nil
	}
	out := make([]audio.Sound, 0, len(ids))
	for _, id := range ids {
		s, err := audio.Resolve(id)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", err, id)
		}
		out = append(out, s)
	}
	return out, nil
}
