package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"slices"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/jonwraymond/pagetel/config"
	"github.com/jonwraymond/pagetel/events"
	"github.com/jonwraymond/pagetel/page"
	"github.com/jonwraymond/pagetel/session"
)

var replayFlags struct {
	events    string
	url       string
	userAgent string
	platform  string
	language  string
	mobile    bool
	brands    []string
	timeout   time.Duration
}

func init() {
	f := replayCmd.Flags()
	f.StringVar(&replayFlags.events, "events", "-", "JSON-lines event file, or - for stdin")
	f.StringVar(&replayFlags.url, "url", "", "page URL; its origin receives the exports")
	f.StringVar(&replayFlags.userAgent, "user-agent", "", "navigator user agent")
	f.StringVar(&replayFlags.platform, "platform", "", "navigator platform hint")
	f.StringVar(&replayFlags.language, "language", "", "navigator language")
	f.BoolVar(&replayFlags.mobile, "mobile", false, "navigator mobile hint")
	f.StringSliceVar(&replayFlags.brands, "brand", nil, "navigator brand, e.g. \"Chromium 124\" (repeatable)")
	f.DurationVar(&replayFlags.timeout, "shutdown-timeout", 30*time.Second, "time allowed to flush on exit")
	_ = replayCmd.MarkFlagRequired("url")
	_ = replayCmd.MarkFlagRequired("user-agent")
}

// replayCmd replays recorded page events
var replayCmd = &cobra.Command{
	Use:   "replay",
	Short: "Replay recorded page events into a telemetry session",
	Long: `Start a telemetry session for the given page and replay a JSON-lines
stream of page events (vitals, errors, navigations, interactions, long tasks)
into it. Everything is flushed before the command exits.

Examples:
  # Replay a capture against the page origin
  pagetel replay --url https://shop.example.com/ --user-agent "Mozilla/5.0" --events capture.jsonl

  # Print to the console instead of exporting
  OTEL_TRACES_EXPORTER=console OTEL_METRICS_EXPORTER=console OTEL_LOGS_EXPORTER=console \
    pagetel replay --url https://shop.example.com/ --user-agent "Mozilla/5.0" < capture.jsonl`,
	Args: cobra.NoArgs,
	RunE: runReplay,
}

func runReplay(cmd *cobra.Command, _ []string) error {
	env, err := config.Load()
	if err != nil {
		return err
	}

	loc, err := page.ParseLocation(replayFlags.url)
	if err != nil {
		return fmt.Errorf("invalid --url: %w", err)
	}
	pg := page.Page{
		UserAgent: replayFlags.userAgent,
		Location:  loc,
		Navigator: page.Navigator{
			Platform: replayFlags.platform,
			Brands:   slices.Clone(replayFlags.brands),
			Language: replayFlags.language,
		},
	}
	if cmd.Flags().Changed("mobile") {
		pg.Navigator.Mobile = &replayFlags.mobile
	}

	in, closeIn, err := openEvents(cmd, replayFlags.events)
	if err != nil {
		return err
	}
	defer closeIn()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	return replay(ctx, env, pg, in, cmd.OutOrStdout(), replayFlags.timeout)
}

// replay runs one session over in and reports the counts to out.
func replay(ctx context.Context, env config.Env, pg page.Page, in io.Reader, out io.Writer, timeout time.Duration, opts ...session.Option) error {
	s, err := session.Start(ctx, env, pg, opts...)
	if err != nil {
		return err
	}

	stats, replayErr := events.Replay(ctx, in, s)

	closeCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), timeout)
	defer cancel()
	if err := s.Close(closeCtx); err != nil && replayErr == nil {
		return err
	}
	if replayErr != nil {
		return replayErr
	}

	_, err = fmt.Fprintf(out, "replayed %d events%s\n", stats.Total(), formatStats(stats))
	return err
}

func formatStats(stats events.Stats) string {
	if len(stats) == 0 {
		return ""
	}
	keys := make([]string, 0, len(stats))
	for k := range stats {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%d", k, stats[k]))
	}
	return " (" + strings.Join(parts, " ") + ")"
}

func openEvents(cmd *cobra.Command, path string) (io.Reader, func(), error) {
	if path == "" || path == "-" {
		return cmd.InOrStdin(), func() {}, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open events file %s: %w", path, err)
	}
	return f, func() { _ = f.Close() }, nil
}
