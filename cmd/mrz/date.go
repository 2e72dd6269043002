package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"mrzgate/internal/evidence/mrz/domain/shared"
	"mrzgate/pkg/requestcontext"
)

func newDateCmd(root *rootOptions) *cobra.Command {
	var policy string
	cmd := &cobra.Command{
		Use:   "date YYMMDD",
		Short: "Parse a single MRZ date field",
		Long: `Parse a six-character MRZ date field. The field is never rejected:
components that are not numbers are reported as -1 and the date as invalid.`,
		Example: `  mrz date 740812 --policy past
  mrz date 31O415 --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d := shared.ParseDateField(args[0], shared.WithLogger(cliLogger(root.verbose)))

			var century shared.CenturyPolicy
			now := requestcontext.Now(cmd.Context())
			switch policy {
			case "past":
				century = shared.BirthPolicy(now)
			case "future":
				century = shared.ExpiryPolicy(now)
			case "":
			default:
				return fmt.Errorf("unknown policy %q: use past or future", policy)
			}

			out := toDateJSON(d, century)
			if root.json {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(out)
			}
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "mrz=%s date=%s valid=%t", d.MRZ(), d, d.IsValid())
			if err == nil && out.Resolved != "" {
				_, err = fmt.Fprintf(cmd.OutOrStdout(), " resolved=%s", out.Resolved)
			}
			if err == nil {
				_, err = fmt.Fprintln(cmd.OutOrStdout())
			}
			return err
		},
	}
	cmd.Flags().StringVar(&policy, "policy", "", "century policy for the resolved date: past or future")
	return cmd
}
