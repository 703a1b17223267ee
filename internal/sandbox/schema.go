package sandbox

import (
	"context"
	"fmt"

	"github.com/Wojteg799/SQL-Exercises-App/internal/models"
)

// Structure inspects a folder's sandbox database and returns its tables
// and columns, ordered by table name. Internal sqlite_* tables are hidden.
func (m *Manager) Structure(ctx context.Context, folderID string) ([]models.SchemaTable, error) {
	db, err := m.db(folderID)
	if err != nil {
		return nil, err
	}

	rows, err := db.QueryContext(ctx,
		`SELECT name FROM sqlite_master WHERE type='table' AND name NOT LIKE 'sqlite_%' ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to list tables: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan table name: %w", err)
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	tables := make([]models.SchemaTable, 0, len(names))
	for _, name := range names {
		columns, err := m.tableColumns(ctx, folderID, name)
		if err != nil {
			return nil, err
		}
		tables = append(tables, models.SchemaTable{Name: name, Columns: columns})
	}
	return tables, nil
}

func (m *Manager) tableColumns(ctx context.Context, folderID, table string) ([]models.Column, error) {
	db, err := m.db(folderID)
	if err != nil {
		return nil, err
	}

	rows, err := db.QueryContext(ctx, fmt.Sprintf("PRAGMA table_info(%q)", table))
	if err != nil {
		return nil, fmt.Errorf("failed to inspect table %s: %w", table, err)
	}
	defer rows.Close()

	var columns []models.Column
	for rows.Next() {
		var (
			cid       int
			name      string
			colType   string
			notNull   int
			deflt     any
			pkOrdinal int
		)
		if err := rows.Scan(&cid, &name, &colType, &notNull, &deflt, &pkOrdinal); err != nil {
			return nil, fmt.Errorf("failed to scan column info: %w", err)
		}
		columns = append(columns, models.Column{
			Name: name,
			Type: colType,
			PK:   pkOrdinal > 0,
		})
	}
	return columns, rows.Err()
}
