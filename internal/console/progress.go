package console

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

// Progress is the durable completion map: composite folderId/taskId keys,
// true once a task has been verified correct. Completion is one-way;
// there is no reset operation.
//
// The map lives in a JSON file owned by this client alone, loaded once at
// startup and rewritten wholesale on each successful verification. All
// access happens on the single console event loop.
type Progress struct {
	path      string
	completed map[string]bool
}

// DefaultProgressPath returns ~/.sql-lab/progress.json
func DefaultProgressPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home dir: %w", err)
	}
	return filepath.Join(home, ".sql-lab", "progress.json"), nil
}

// LoadProgress reads the completion map from path. A missing or
// unreadable file yields an empty map, never an error: losing local
// progress must not block the session.
func LoadProgress(path string) *Progress {
	p := &Progress{
		path:      path,
		completed: make(map[string]bool),
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			slog.Warn("failed to read progress file", "path", path, "error", err)
		}
		return p
	}

	if err := json.Unmarshal(data, &p.completed); err != nil {
		slog.Warn("failed to parse progress file, starting empty", "path", path, "error", err)
		p.completed = make(map[string]bool)
	}
	return p
}

// Completed reports whether a task has been completed. Unknown keys
// are false.
func (p *Progress) Completed(folderID, taskID string) bool {
	return p.completed[folderID+"/"+taskID]
}

// CompletedCount returns the number of completed tasks.
func (p *Progress) CompletedCount() int {
	return len(p.completed)
}

// MarkCompleted records a correct verification and persists the whole
// map. The write is atomic: temp file in the same directory, then rename.
func (p *Progress) MarkCompleted(folderID, taskID string) error {
	p.completed[folderID+"/"+taskID] = true
	return p.save()
}

func (p *Progress) save() error {
	if err := os.MkdirAll(filepath.Dir(p.path), 0o755); err != nil {
		return fmt.Errorf("create progress dir: %w", err)
	}

	data, err := json.MarshalIndent(p.completed, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal progress: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(p.path), ".progress-*.json")
	if err != nil {
		return fmt.Errorf("create temp progress file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("write progress: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("close progress file: %w", err)
	}

	if err := os.Rename(tmpName, p.path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("replace progress file: %w", err)
	}
	return nil
}
