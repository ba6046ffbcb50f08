package main

import (
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/japaniel/jmconj/pkg/pos"
)

func normalizeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "normalize LABEL...",
		Short: "Map part-of-speech labels to canonical codes",
		Long: `Print the canonical code of each part-of-speech label and whether that
code is conjugatable. Labels without a mapping are printed unchanged.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "LABEL\tCODE\tCONJUGATABLE")
			for _, label := range args {
				code := pos.Normalize(label)
				fmt.Fprintf(w, "%s\t%s\t%s\n", label, code, strconv.FormatBool(pos.IsConjugatable(code)))
			}
			return w.Flush()
		},
	}
}
