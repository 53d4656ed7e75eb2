package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/jonwraymond/pagetel/config"
	"github.com/jonwraymond/pagetel/health"
	"github.com/jonwraymond/pagetel/observe"
	"github.com/jonwraymond/pagetel/page"
)

// errUnhealthy makes the command exit non-zero without printing twice.
var errUnhealthy = errors.New("collector is unhealthy")

var checkFlags struct {
	url     string
	timeout time.Duration
}

func init() {
	checkCmd.Flags().StringVar(&checkFlags.url, "url", "", "page URL; its origin hosts the collector endpoints")
	checkCmd.Flags().DurationVar(&checkFlags.timeout, "timeout", health.DefaultTimeout, "time allowed for all probes")
	_ = checkCmd.MarkFlagRequired("url")
}

// checkCmd probes the collector endpoints
var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Probe the collector endpoints of a page origin",
	Long: `Send an empty OTLP/HTTP export request to each of the traces, metrics and
logs endpoints of the page origin, using OTLP_API_KEY from the environment,
and report whether the collector accepts exports.

Examples:
  pagetel check --url https://shop.example.com/`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		env, err := config.Load()
		if err != nil {
			return err
		}
		loc, err := page.ParseLocation(checkFlags.url)
		if err != nil {
			return fmt.Errorf("invalid --url: %w", err)
		}
		tr, err := observe.NewTransport(loc.Origin, env.APIKey)
		if err != nil {
			return err
		}
		return check(cmd.Context(), tr, checkFlags.timeout, cmd.OutOrStdout())
	},
}

// check probes tr and writes one line per signal to out.
func check(ctx context.Context, tr observe.Transport, timeout time.Duration, out io.Writer) error {
	agg := health.NewAggregator(timeout)
	for _, sig := range []observe.Signal{observe.SignalTraces, observe.SignalMetrics, observe.SignalLogs} {
		agg.Register(health.NewEndpointChecker(tr, sig, nil))
	}
	results := agg.CheckAll(ctx)

	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "SIGNAL\tSTATUS\tENDPOINT\tMESSAGE")
	for _, name := range agg.Names() {
		r := results[name]
		msg := r.Message
		if r.Error != nil {
			msg += ": " + r.Error.Error()
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", name, r.Status, tr.Endpoint(observe.Signal(name)), msg)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if health.Overall(results) == health.StatusUnhealthy {
		return errUnhealthy
	}
	return nil
}
