package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"mrzgate/internal/evidence/mrz/domain/document"
	"mrzgate/internal/evidence/mrz/domain/shared"
	"mrzgate/internal/evidence/mrz/models"
	"mrzgate/pkg/requestcontext"
)

func newParseCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "parse [file|-]",
		Short: "Parse a TD1, TD2 or TD3 zone",
		Long:  `Parse a machine-readable zone read from a file or stdin and report its fields, date validity and check digits.`,
		Example: `  mrz parse passport.txt
  cat card.txt | mrz parse --json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input, err := readInput(cmd, args)
			if err != nil {
				return err
			}
			doc, err := document.Parse(input, document.WithLogger(cliLogger(root.verbose)))
			if err != nil {
				return fmt.Errorf("failed to parse mrz: %w", err)
			}
			now := requestcontext.Now(cmd.Context())
			if root.json {
				return writeDocumentJSON(cmd.OutOrStdout(), doc, now)
			}
			return writeDocumentText(cmd.OutOrStdout(), doc)
		},
	}
}

func readInput(cmd *cobra.Command, args []string) (string, error) {
	if len(args) == 0 || args[0] == "-" {
		b, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return string(b), nil
	}
	b, err := os.ReadFile(args[0])
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", args[0], err)
	}
	return string(b), nil
}

func writeDocumentText(out io.Writer, doc *document.Document) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	rows := [][2]string{
		{"FORMAT", string(doc.Format)},
		{"DOCUMENT CODE", doc.DocumentCode},
		{"ISSUING STATE", doc.IssuingState},
		{"DOCUMENT NUMBER", doc.DocumentNumber},
		{"NATIONALITY", doc.Nationality},
		{"SEX", doc.Sex},
		{"PRIMARY IDENTIFIER", doc.PrimaryIdentifier},
		{"SECONDARY IDENTIFIER", doc.SecondaryIdentifier},
		{"DATE OF BIRTH", describeDate(doc.DateOfBirth)},
		{"DATE OF EXPIRY", describeDate(doc.DateOfExpiry)},
	}
	for _, c := range doc.Checks {
		rows = append(rows, [2]string{"CHECK " + c.Field, checkStatus(c)})
	}
	rows = append(rows, [2]string{"VALID", fmt.Sprint(doc.Valid())})
	for _, row := range rows {
		if _, err := fmt.Fprintf(w, "%s\t%s\n", row[0], row[1]); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("failed to flush writer: %w", err)
	}
	return nil
}

func describeDate(d shared.Date) string {
	status := "valid"
	if !d.IsValid() {
		status = "invalid"
	}
	return fmt.Sprintf("%s %s (%s)", d.MRZ(), d, status)
}

func checkStatus(c document.Check) string {
	if c.Valid {
		return "ok"
	}
	return fmt.Sprintf("mismatch (digit %q, expected %d)", c.Digit, c.Expected)
}

type dateJSON struct {
	MRZ      string `json:"mrz"`
	Year     int    `json:"year"`
	Month    int    `json:"month"`
	Day      int    `json:"day"`
	Valid    bool   `json:"valid"`
	Resolved string `json:"resolved,omitempty"`
}

func toDateJSON(d shared.Date, policy shared.CenturyPolicy) dateJSON {
	out := dateJSON{MRZ: d.MRZ(), Year: d.Year(), Month: d.Month(), Day: d.Day(), Valid: d.IsValid()}
	if policy != nil {
		if t, err := d.Time(policy); err == nil {
			out.Resolved = t.Format("2006-01-02")
		}
	}
	return out
}

func writeDocumentJSON(out io.Writer, doc *document.Document, now time.Time) error {
	checks := make([]models.CheckResult, 0, len(doc.Checks))
	for _, c := range doc.Checks {
		checks = append(checks, models.CheckResult{Field: c.Field, Digit: c.Digit, Expected: c.Expected, Valid: c.Valid})
	}
	body := struct {
		Format              document.Format      `json:"format"`
		DocumentCode        string               `json:"document_code"`
		IssuingState        string               `json:"issuing_state"`
		DocumentNumber      string               `json:"document_number"`
		Nationality         string               `json:"nationality"`
		Sex                 string               `json:"sex"`
		PrimaryIdentifier   string               `json:"primary_identifier"`
		SecondaryIdentifier string               `json:"secondary_identifier"`
		DateOfBirth         dateJSON             `json:"date_of_birth"`
		DateOfExpiry        dateJSON             `json:"date_of_expiry"`
		Checks              []models.CheckResult `json:"checks"`
		Valid               bool                 `json:"valid"`
		MRZ                 string               `json:"mrz"`
	}{
		Format:              doc.Format,
		DocumentCode:        doc.DocumentCode,
		IssuingState:        doc.IssuingState,
		DocumentNumber:      doc.DocumentNumber,
		Nationality:         doc.Nationality,
		Sex:                 doc.Sex,
		PrimaryIdentifier:   doc.PrimaryIdentifier,
		SecondaryIdentifier: doc.SecondaryIdentifier,
		DateOfBirth:         toDateJSON(doc.DateOfBirth, shared.BirthPolicy(now)),
		DateOfExpiry:        toDateJSON(doc.DateOfExpiry, shared.ExpiryPolicy(now)),
		Checks:              checks,
		Valid:               doc.Valid(),
		MRZ:                 doc.MRZ(),
	}
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(body)
}
