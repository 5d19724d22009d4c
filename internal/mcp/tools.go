package mcp

import "github.com/pdiddy/paper-metadata/internal/doi"

// ToolPaperMetadata is the name of the metadata lookup tool.
const ToolPaperMetadata = "paper_metadata"

// minIdentifierLength is advertised to clients; the normalizer enforces
// the real rules.
const minIdentifierLength = 5

// getAllTools returns the tools exposed by the server
func getAllTools() []Tool {
	return []Tool{
		{
			Name: ToolPaperMetadata,
			Description: "Retrieve metadata for an academic paper without downloading it. " +
				"Accepts a DOI (e.g. '10.1038/nature12373') or a URL containing one " +
				"(e.g. 'https://doi.org/...'). Returns title, authors, year, journal, " +
				"open access status, and the sources where the paper is likely available.",
			InputSchema: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"identifier": map[string]any{
						"type":        "string",
						"description": "DOI or URL of the paper",
						"minLength":   minIdentifierLength,
						"maxLength":   doi.MaxIdentifierLength,
					},
				},
				"required": []string{"identifier"},
			},
		},
	}
}
