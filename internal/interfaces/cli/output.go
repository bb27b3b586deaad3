package cli

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"

	"github.com/materiascout/materiascout/pkg/client"
)

// renderJSON writes any value as indented JSON.
func renderJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// renderTable writes a result table in the requested format.
func renderTable(w io.Writer, table client.Table, format string) error {
	switch strings.ToLower(format) {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(table)
	case "csv":
		return renderCSV(w, table)
	case "table", "":
		renderASCII(w, table)
		return nil
	default:
		return fmt.Errorf("unknown output format %q (want table, json, or csv)", format)
	}
}

func renderCSV(w io.Writer, table client.Table) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(table.Columns); err != nil {
		return err
	}
	for _, row := range table.Rows {
		record := make([]string, len(row))
		for i, cell := range row {
			record[i] = formatCell(cell)
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func renderASCII(w io.Writer, table client.Table) {
	tw := tablewriter.NewWriter(w)
	tw.SetHeader(table.Columns)
	tw.SetAutoFormatHeaders(false)
	tw.SetAutoWrapText(false)
	for _, row := range table.Rows {
		record := make([]string, len(row))
		for i, cell := range row {
			record[i] = formatCell(cell)
		}
		tw.Append(record)
	}
	tw.Render()
}

// formatCell renders one cell for text output. JSON numbers arrive as
// float64; integral values print without a decimal point.
func formatCell(v interface{}) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case bool:
		if t {
			return "true"
		}
		return "false"
	case float64:
		if t == float64(int64(t)) {
			return fmt.Sprintf("%d", int64(t))
		}
		return fmt.Sprintf("%g", t)
	default:
		return fmt.Sprintf("%v", t)
	}
}

// statusLine prints the result status with color unless disabled.
func statusLine(w io.Writer, noColor bool, success bool, message string) {
	if noColor {
		fmt.Fprintln(w, message)
		return
	}
	c := color.New(color.FgGreen)
	if !success {
		c = color.New(color.FgYellow)
	}
	c.Fprintln(w, message)
}
