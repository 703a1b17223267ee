package console

import (
	"fmt"
	"strings"

	"github.com/Wojteg799/SQL-Exercises-App/internal/models"
	"github.com/Wojteg799/SQL-Exercises-App/pkg/client"
)

const (
	nullMarker        = "NULL"
	emptyResultsState = "Run a query to see results."
	noResultsState    = "Query executed successfully (no results)."
	noSchemaState     = "No schema available."
)

// RenderDescription formats a task description with its optional hint.
func RenderDescription(task client.TaskBody) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n\n%s\n", task.Title, task.Description)
	if task.Hint != "" {
		fmt.Fprintf(&b, "\nHint: %s\n", task.Hint)
	}
	return b.String()
}

// RenderSchema formats the sandbox structure as named table blocks.
// Untyped columns default to TEXT; empty input gets an explicit
// placeholder, never an empty pane.
func RenderSchema(tables []models.SchemaTable) string {
	if len(tables) == 0 {
		return noSchemaState + "\n"
	}

	var b strings.Builder
	for i, table := range tables {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "%s\n", table.Name)
		for _, col := range table.Columns {
			colType := col.Type
			if colType == "" {
				colType = "TEXT"
			}
			pk := ""
			if col.PK {
				pk = " [PK]"
			}
			fmt.Fprintf(&b, "  %s %s%s\n", col.Name, colType, pk)
		}
	}
	return b.String()
}

// RowCounter formats the result row counter, singular exactly at one.
func RowCounter(count int) string {
	if count == 1 {
		return "1 row"
	}
	return fmt.Sprintf("%d rows", count)
}

// RenderResults formats a successful result set as an aligned text table.
// NULL values render as a marker distinct from the empty string. A result
// with no columns gets the executed-no-results placeholder.
func RenderResults(columns []string, rows []map[string]any) string {
	if len(columns) == 0 {
		return noResultsState + "\n"
	}

	cells := make([][]string, 0, len(rows)+1)
	cells = append(cells, columns)
	for _, row := range rows {
		line := make([]string, len(columns))
		for i, col := range columns {
			line[i] = formatValue(row[col])
		}
		cells = append(cells, line)
	}

	widths := make([]int, len(columns))
	for _, line := range cells {
		for i, cell := range line {
			if len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}

	var b strings.Builder
	writeLine := func(line []string) {
		for i, cell := range line {
			if i > 0 {
				b.WriteString("  ")
			}
			fmt.Fprintf(&b, "%-*s", widths[i], cell)
		}
		b.WriteString("\n")
	}

	writeLine(columns)
	sep := make([]string, len(columns))
	for i, w := range widths {
		sep[i] = strings.Repeat("-", w)
	}
	writeLine(sep)
	for _, line := range cells[1:] {
		writeLine(line)
	}
	return b.String()
}

func formatValue(v any) string {
	if v == nil {
		return nullMarker
	}
	switch value := v.(type) {
	case string:
		return value
	case []byte:
		return string(value)
	case float64:
		// JSON numbers decode as float64; keep integral values terse.
		if value == float64(int64(value)) {
			return fmt.Sprintf("%d", int64(value))
		}
		return fmt.Sprintf("%g", value)
	default:
		return fmt.Sprintf("%v", value)
	}
}
