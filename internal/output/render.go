// Package output renders command results as a table, JSON or YAML.
package output

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/pterm/pterm"
	"gopkg.in/yaml.v3"
)

const (
	FormatTable = "table"
	FormatJSON  = "json"
	FormatYAML  = "yaml"
)

// Table is a header row plus data rows.
type Table struct {
	Header []string
	Rows   [][]string
}

// Tabular is implemented by values that know how to lay themselves out as a table.
type Tabular interface {
	Table() Table
}

// Render writes v to w in the given format. Values that are not Tabular fall
// back to YAML when the table format is requested.
func Render(w io.Writer, format string, v interface{}) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case FormatYAML:
		return renderYAML(w, v)
	case FormatTable, "":
		t, ok := v.(Tabular)
		if !ok {
			return renderYAML(w, v)
		}
		return renderTable(w, t.Table())
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}

func renderYAML(w io.Writer, v interface{}) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}

func renderTable(w io.Writer, t Table) error {
	if len(t.Rows) == 0 {
		_, err := fmt.Fprintln(w, "No results.")
		return err
	}
	data := make(pterm.TableData, 0, len(t.Rows)+1)
	data = append(data, t.Header)
	data = append(data, t.Rows...)

	s, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, s)
	return err
}
