package sandbox

import (
	"context"
	"fmt"

	"github.com/Wojteg799/SQL-Exercises-App/internal/models"
)

// Execute runs a query against a folder's sandbox database and shapes the
// outcome as columns plus row maps. Engine rejections come back as
// *ExecError; infrastructure problems as plain errors.
func (m *Manager) Execute(ctx context.Context, folderID, query string) (*models.QueryResult, error) {
	db, err := m.db(folderID)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, m.cfg.QueryTimeout)
	defer cancel()

	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, &ExecError{Msg: err.Error()}
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("failed to read result columns: %w", err)
	}

	result := &models.QueryResult{
		Columns: columns,
		Rows:    []map[string]any{},
	}

	values := make([]any, len(columns))
	pointers := make([]any, len(columns))
	for i := range values {
		pointers[i] = &values[i]
	}

	for rows.Next() {
		if len(result.Rows) >= m.cfg.MaxRows {
			break
		}
		if err := rows.Scan(pointers...); err != nil {
			return nil, fmt.Errorf("failed to scan result row: %w", err)
		}

		row := make(map[string]any, len(columns))
		for i, col := range columns {
			row[col] = normalizeValue(values[i])
		}
		result.Rows = append(result.Rows, row)
	}
	if err := rows.Err(); err != nil {
		return nil, &ExecError{Msg: err.Error()}
	}

	result.RowCount = len(result.Rows)
	return result, nil
}

// normalizeValue makes driver values JSON-friendly. NULL stays nil so
// clients can render it distinctly from an empty string.
func normalizeValue(v any) any {
	switch value := v.(type) {
	case nil:
		return nil
	case []byte:
		return string(value)
	default:
		return value
	}
}
