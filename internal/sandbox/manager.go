package sandbox

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/Wojteg799/SQL-Exercises-App/internal/catalog"
	"github.com/Wojteg799/SQL-Exercises-App/internal/config"
)

// Common errors
var (
	ErrDatabaseNotFound = errors.New("database not found")
	ErrFolderNotFound   = errors.New("folder not found")
)

// ExecError is a domain rejection: the engine ran the query and refused it
// (syntax error, unknown table, constraint violation). Distinct from
// transport and infrastructure failures.
type ExecError struct {
	Msg string
}

func (e *ExecError) Error() string {
	return e.Msg
}

// Manager owns the per-folder sandbox databases. Each folder maps to one
// SQLite file; handles are opened lazily and cached until the cleanup
// worker closes them after the configured idle TTL.
type Manager struct {
	cfg    config.SandboxConfig
	loader *catalog.Loader

	mu      sync.Mutex
	handles map[string]*handle
}

type handle struct {
	db       *sql.DB
	lastUsed time.Time
}

// NewManager creates a sandbox manager over a loaded catalog
func NewManager(cfg config.SandboxConfig, loader *catalog.Loader) *Manager {
	return &Manager{
		cfg:     cfg,
		loader:  loader,
		handles: make(map[string]*handle),
	}
}

// db returns the cached handle for a folder, opening it on first use
func (m *Manager) db(folderID string) (*sql.DB, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if h, ok := m.handles[folderID]; ok {
		h.lastUsed = time.Now()
		return h.db, nil
	}

	path, err := m.loader.DatabasePath(folderID)
	if err != nil {
		return nil, ErrFolderNotFound
	}
	if _, err := os.Stat(path); err != nil {
		return nil, ErrDatabaseNotFound
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sandbox database: %w", err)
	}
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(`PRAGMA busy_timeout = 5000;`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to configure sandbox database: %w", err)
	}

	m.handles[folderID] = &handle{db: db, lastUsed: time.Now()}
	slog.Debug("sandbox database opened", "folder", folderID, "path", path)
	return db, nil
}

// Ping checks that the manager is operational by probing each open handle
func (m *Manager) Ping(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for folderID, h := range m.handles {
		if err := h.db.PingContext(ctx); err != nil {
			return fmt.Errorf("sandbox %s ping failed: %w", folderID, err)
		}
	}
	return nil
}

// CloseIdle closes handles unused for longer than the idle TTL and
// returns how many were closed
func (m *Manager) CloseIdle() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.cfg.IdleTTL <= 0 {
		return 0
	}

	cutoff := time.Now().Add(-m.cfg.IdleTTL)
	closed := 0
	for folderID, h := range m.handles {
		if h.lastUsed.Before(cutoff) {
			if err := h.db.Close(); err != nil {
				slog.Warn("failed to close idle sandbox", "folder", folderID, "error", err)
			}
			delete(m.handles, folderID)
			closed++
		}
	}
	return closed
}

// Close closes all open sandbox handles
func (m *Manager) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	var firstErr error
	for folderID, h := range m.handles {
		if err := h.db.Close(); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("failed to close sandbox %s: %w", folderID, err)
		}
		delete(m.handles, folderID)
	}
	return firstErr
}
