package main

import (
	"github.com/spf13/cobra"
)

type rootOptions struct {
	verbose bool
	json    bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:           "mrz",
		Short:         "Inspect machine-readable zones",
		Long:          `Parse ICAO 9303 machine-readable zones and MRZ date fields offline.`,
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	cmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "log parse diagnostics to stderr")
	cmd.PersistentFlags().BoolVar(&opts.json, "json", false, "print JSON instead of text")

	cmd.AddCommand(newParseCmd(opts))
	cmd.AddCommand(newDateCmd(opts))
	return cmd
}
