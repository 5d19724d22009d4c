package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/paper-metadata/pkg/types"
)

// Output formats accepted by --format.
const (
	formatJSON = "json"
	formatYAML = "yaml"
	formatText = "text"
)

func validFormat(f string) bool {
	switch f {
	case formatJSON, formatYAML, formatText:
		return true
	}
	return false
}

// writeRecords renders records in the requested format. A single JSON
// record is written as an object, several as an array.
func writeRecords(w io.Writer, format string, records []*types.MetadataRecord) error {
	switch format {
	case formatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if len(records) == 1 {
			return enc.Encode(records[0])
		}
		return enc.Encode(records)
	case formatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		for _, rec := range records {
			if err := enc.Encode(rec); err != nil {
				return fmt.Errorf("encoding yaml: %w", err)
			}
		}
		return enc.Close()
	case formatText:
		for i, rec := range records {
			if i > 0 {
				fmt.Fprintln(w)
			}
			writeText(w, rec)
		}
		return nil
	default:
		return fmt.Errorf("unknown format %q", format)
	}
}

func writeText(w io.Writer, rec *types.MetadataRecord) {
	fmt.Fprintf(w, "DOI:      %s\n", rec.DOI)
	if rec.Title != "" {
		fmt.Fprintf(w, "Title:    %s\n", rec.Title)
	}
	if len(rec.Authors) > 0 {
		fmt.Fprintf(w, "Authors:  %s\n", strings.Join(rec.Authors, "; "))
	}
	if rec.Year != nil {
		fmt.Fprintf(w, "Year:     %d\n", *rec.Year)
	}
	if rec.Journal != "" {
		fmt.Fprintf(w, "Journal:  %s\n", rec.Journal)
	}
	if rec.IsOA != nil {
		fmt.Fprintf(w, "Open:     %t\n", *rec.IsOA)
	}
	if rec.BestOAURL != "" {
		fmt.Fprintf(w, "Best URL: %s\n", rec.BestOAURL)
	}
	if len(rec.AvailableSources) > 0 {
		fmt.Fprintf(w, "Sources:  %s\n", strings.Join(rec.AvailableSources, ", "))
	} else {
		fmt.Fprintln(w, "Sources:  none")
	}
	for _, pe := range rec.ProviderErrors {
		fmt.Fprintf(w, "Failed:   %s: %s\n", pe.Provider, pe.Cause)
	}
	if rec.Error != "" {
		fmt.Fprintf(w, "Note:     %s\n", rec.Error)
	}
}
