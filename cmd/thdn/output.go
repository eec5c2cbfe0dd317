package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"gopkg.in/yaml.v3"
)

// tabular is implemented by reports that render as a key/value table.
type tabular interface {
	rows() [][]string
}

// render writes v in the given output format.
func render(w io.Writer, format string, v tabular) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	case "table", "":
		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		for _, row := range v.rows() {
			if _, err := fmt.Fprintf(tw, "%s\n", strings.Join(row, "\t")); err != nil {
				return fmt.Errorf("failed to write output row: %w", err)
			}
		}
		return tw.Flush()
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}
