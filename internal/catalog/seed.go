package catalog

import (
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
)

// SeedFile is the optional seed script inside each folder.
const SeedFile = "seed.sql"

// Seed creates missing sandbox databases from each folder's seed.sql.
// Folders without a seed script or with an existing database are left alone.
func (l *Loader) Seed() error {
	l.mu.RLock()
	dir := l.dir
	folders := make([]string, 0, len(l.folders))
	for _, f := range l.folders {
		folders = append(folders, f.ID)
	}
	l.mu.RUnlock()

	for _, folderID := range folders {
		folderDir := filepath.Join(dir, folderID)
		dbPath := filepath.Join(folderDir, DatabaseFile)
		seedPath := filepath.Join(folderDir, SeedFile)

		if _, err := os.Stat(dbPath); err == nil {
			continue
		}

		script, err := os.ReadFile(seedPath)
		if err != nil {
			if os.IsNotExist(err) {
				slog.Warn("folder has no database and no seed script", "folder", folderID)
				continue
			}
			return fmt.Errorf("failed to read seed script for %s: %w", folderID, err)
		}

		if err := seedDatabase(dbPath, string(script)); err != nil {
			return fmt.Errorf("failed to seed %s: %w", folderID, err)
		}
		slog.Info("sandbox database seeded", "folder", folderID, "path", dbPath)
	}

	return nil
}

func seedDatabase(path, script string) error {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return err
	}
	defer db.Close()

	if _, err := db.Exec(script); err != nil {
		// Leave no half-built database behind.
		_ = os.Remove(path)
		return err
	}
	return nil
}
