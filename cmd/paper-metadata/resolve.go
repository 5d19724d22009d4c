package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/pdiddy/paper-metadata/internal/doi"
	"github.com/pdiddy/paper-metadata/pkg/types"
)

var resolveCmd = &cobra.Command{
	Use:   "resolve <identifier> [identifier...]",
	Short: "Resolve DOIs or DOI-bearing URLs into metadata records",
	Long: `Resolve one or more identifiers and print the resulting metadata records.

Each identifier may be a bare DOI (10.1038/nature12373), a doi: prefixed DOI,
or an http(s) URL that contains a DOI. Provider failures are reported inside
the record; an identifier without a DOI is reported on stderr and the command
exits with status 3 after the remaining identifiers are resolved.`,
	Example: `  paper-metadata resolve 10.1038/nature12373
  paper-metadata resolve https://doi.org/10.1145/3368089.3409742 --format yaml`,
	Args: cobra.MinimumNArgs(1),
	RunE: runResolve,
}

func init() {
	resolveCmd.Flags().StringP("format", "f", formatJSON, "output format: json, yaml, text")
	rootCmd.AddCommand(resolveCmd)
}

func runResolve(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")
	if !validFormat(format) {
		return fmt.Errorf("unknown format %q (want json, yaml or text)", format)
	}

	var (
		records []*types.MetadataRecord
		invalid int
	)
	for _, raw := range args {
		rec, err := app.resolver.Resolve(cmd.Context(), raw)
		if err != nil {
			if !errors.Is(err, doi.ErrInvalidIdentifier) {
				return err
			}
			invalid++
			app.log.Info("skipping identifier", zap.String("identifier", raw), zap.Error(err))
			fmt.Fprintf(os.Stderr, "skipping: %v\n", err)
			continue
		}
		records = append(records, rec)
	}

	if len(records) > 0 {
		if err := writeRecords(cmd.OutOrStdout(), format, records); err != nil {
			return err
		}
	}

	if invalid > 0 {
		return fmt.Errorf("%d of %d identifiers: %w", invalid, len(args), doi.ErrInvalidIdentifier)
	}
	return nil
}
