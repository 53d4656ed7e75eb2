package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/jonwraymond/pagetel/vitals"
)

// instrumentsCmd lists the web vitals instruments
var instrumentsCmd = &cobra.Command{
	Use:   "instruments",
	Short: "List the web vitals metric instruments",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "VITAL\tINSTRUMENT\tKIND\tUNIT\tDESCRIPTION")
		for _, inst := range vitals.Instruments() {
			kind := "histogram"
			if inst.Gauge {
				kind = "gauge"
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", inst.Kind, inst.Name, kind, inst.Unit, inst.Description)
		}
		return w.Flush()
	},
}
