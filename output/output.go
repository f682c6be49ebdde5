// Package output renders decoded panel responses for the command line.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"sort"
	"strconv"
	"strings"

	"github.com/itchyny/gojq"
	"github.com/olekukonko/tablewriter"

	"github.com/s0up4200/gamepanel/gamepanel"
)

// Supported formats
const (
	FormatJSON  = "json"
	FormatTable = "table"
)

// Options controls how a value is written
type Options struct {
	// Format is FormatJSON or FormatTable; empty means FormatJSON
	Format string
	// Query is an optional jq expression applied before rendering
	Query string
}

// Write renders value to w
func Write(w io.Writer, value any, opts Options) error {
	data, err := normalize(value)
	if err != nil {
		return err
	}

	if strings.TrimSpace(opts.Query) != "" {
		data, err = Query(data, opts.Query)
		if err != nil {
			return err
		}
	}

	switch opts.Format {
	case "", FormatJSON:
		return writeJSON(w, data)
	case FormatTable:
		return writeTable(w, data)
	default:
		return fmt.Errorf("unsupported output format: %s", opts.Format)
	}
}

// Query runs a jq expression against data. A single result is returned as is,
// several results as a list.
func Query(data any, expression string) (any, error) {
	// zsh escapes ! even in single quotes
	expression = strings.ReplaceAll(expression, `\!`, `!`)

	query, err := gojq.Parse(expression)
	if err != nil {
		return nil, fmt.Errorf("invalid query expression: %w", err)
	}

	normalized, err := normalize(data)
	if err != nil {
		return nil, err
	}

	results, err := runQuery(query, normalized)
	if err != nil {
		return nil, err
	}
	return collapseQueryResults(results), nil
}

func runQuery(query *gojq.Query, data any) ([]any, error) {
	iter := query.Run(data)

	var results []any
	for {
		v, ok := iter.Next()
		if !ok {
			break
		}
		if err, ok := v.(error); ok {
			return nil, fmt.Errorf("query error: %w", err)
		}
		results = append(results, v)
	}
	return results, nil
}

func collapseQueryResults(results []any) any {
	if len(results) == 1 {
		return results[0]
	}
	return results
}

// normalize converts value into the generic JSON shapes gojq accepts
func normalize(value any) (any, error) {
	switch v := value.(type) {
	case nil, bool, string, float64, int, map[string]any, []any:
		return v, nil
	case []map[string]any:
		items := make([]any, len(v))
		for i, item := range v {
			items[i] = item
		}
		return items, nil
	default:
		raw, err := json.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("failed to encode output: %w", err)
		}
		return gamepanel.DecodeValue(raw), nil
	}
}

func writeJSON(w io.Writer, data any) error {
	raw, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode output: %w", err)
	}
	raw = append(raw, '\n')
	_, err = w.Write(raw)
	return err
}

func writeTable(w io.Writer, data any) error {
	headers, rows := tableRows(data)
	if headers == nil {
		_, err := fmt.Fprintln(w, formatCell(data))
		return err
	}

	table := tablewriter.NewWriter(w)
	table.Header(headers)
	if err := table.Bulk(rows); err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}
	if err := table.Render(); err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}
	return nil
}

// tableRows lays out objects as key/value rows and lists of objects as one
// row per record. Scalars have no table layout.
func tableRows(data any) ([]string, [][]string) {
	switch v := data.(type) {
	case map[string]any:
		keys := sortedKeys(v)
		rows := make([][]string, 0, len(keys))
		for _, key := range keys {
			rows = append(rows, []string{key, formatCell(v[key])})
		}
		return []string{"key", "value"}, rows

	case []any:
		var columns []string
		seen := make(map[string]bool)
		for _, item := range v {
			record, ok := item.(map[string]any)
			if !ok {
				return listRows(v)
			}
			for key := range record {
				if !seen[key] {
					seen[key] = true
					columns = append(columns, key)
				}
			}
		}
		if len(columns) == 0 {
			return listRows(v)
		}
		columns = orderColumns(columns)

		rows := make([][]string, 0, len(v))
		for _, item := range v {
			record := item.(map[string]any)
			row := make([]string, len(columns))
			for i, col := range columns {
				row[i] = formatCell(record[col])
			}
			rows = append(rows, row)
		}
		return columns, rows
	}

	return nil, nil
}

func listRows(items []any) ([]string, [][]string) {
	rows := make([][]string, 0, len(items))
	for _, item := range items {
		rows = append(rows, []string{formatCell(item)})
	}
	return []string{"value"}, rows
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	return orderColumns(keys)
}

// orderColumns sorts keys alphabetically with id first
func orderColumns(keys []string) []string {
	sort.Strings(keys)
	if i := slices.Index(keys, "id"); i > 0 {
		keys = append([]string{"id"}, slices.Delete(keys, i, i+1)...)
	}
	return keys
}

func formatCell(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case bool:
		return strconv.FormatBool(val)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case int:
		return strconv.Itoa(val)
	case json.Number:
		return val.String()
	default:
		raw, err := json.Marshal(val)
		if err != nil {
			return fmt.Sprint(val)
		}
		return string(raw)
	}
}
