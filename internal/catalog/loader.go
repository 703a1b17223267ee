package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/Wojteg799/SQL-Exercises-App/internal/models"
)

// ErrTaskNotFound is returned when a folder/task pair is not in the catalog.
var ErrTaskNotFound = errors.New("task not found")

// ErrFolderNotFound is returned when a folder id is not in the catalog.
var ErrFolderNotFound = errors.New("folder not found")

// DatabaseFile is the sandbox database name inside each folder.
const DatabaseFile = "database.db"

// Loader loads and caches the exercise catalog from a directory tree:
//
//	<dir>/<folder>/config.yaml|config.json   {name, difficulty}
//	<dir>/<folder>/tasks/<task>.json|.yaml   {title, description, hint, solution}
//	<dir>/<folder>/database.db               sandbox database
//
// The catalog is immutable once loaded; the server holds the only copy.
type Loader struct {
	mu      sync.RWMutex
	dir     string
	folders []*models.Folder
	tasks   map[string]*models.Task // keyed folderID/taskID
}

// folderConfig mirrors a folder's config file on disk.
type folderConfig struct {
	Name       string `yaml:"name" json:"name"`
	Difficulty string `yaml:"difficulty" json:"difficulty"`
}

// taskFile mirrors a task definition on disk.
type taskFile struct {
	Title       string `yaml:"title" json:"title"`
	Description string `yaml:"description" json:"description"`
	Hint        string `yaml:"hint" json:"hint"`
	Solution    string `yaml:"solution" json:"solution"`
}

// NewLoader creates a new catalog loader
func NewLoader() *Loader {
	return &Loader{
		tasks: make(map[string]*models.Task),
	}
}

// LoadFromDir loads all exercise folders from a directory
func (l *Loader) LoadFromDir(dir string) error {
	slog.Info("loading exercises from directory", "dir", dir)

	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("failed to read exercises directory: %w", err)
	}

	var folders []*models.Folder
	tasks := make(map[string]*models.Task)

	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		folderDir := filepath.Join(dir, entry.Name())
		cfg, err := readFolderConfig(folderDir)
		if err != nil {
			slog.Warn("skipping folder without config", "folder", entry.Name(), "error", err)
			continue
		}

		folder := &models.Folder{
			ID:         entry.Name(),
			Name:       cfg.Name,
			Difficulty: cfg.Difficulty,
			Tasks:      []models.TaskInfo{},
		}
		if folder.Name == "" {
			folder.Name = entry.Name()
		}
		if folder.Difficulty == "" {
			folder.Difficulty = "unknown"
		}

		folderTasks, err := readTasks(filepath.Join(folderDir, "tasks"))
		if err != nil {
			slog.Warn("failed to read tasks", "folder", folder.ID, "error", err)
		}
		for _, task := range folderTasks {
			folder.Tasks = append(folder.Tasks, models.TaskInfo{ID: task.ID, Title: task.Title})
			tasks[folder.ID+"/"+task.ID] = task
		}

		folders = append(folders, folder)
		slog.Info("folder loaded", "id", folder.ID, "difficulty", folder.Difficulty, "tasks", len(folder.Tasks))
	}

	sort.Slice(folders, func(i, j int) bool { return folders[i].ID < folders[j].ID })

	l.mu.Lock()
	l.dir = dir
	l.folders = folders
	l.tasks = tasks
	l.mu.Unlock()

	slog.Info("exercises loaded", "folders", len(folders), "tasks", len(tasks))
	return nil
}

// Folders returns all folders ordered by id
func (l *Loader) Folders() []*models.Folder {
	l.mu.RLock()
	defer l.mu.RUnlock()

	result := make([]*models.Folder, len(l.folders))
	copy(result, l.folders)
	return result
}

// GetFolder returns a folder by id
func (l *Loader) GetFolder(id string) *models.Folder {
	l.mu.RLock()
	defer l.mu.RUnlock()

	for _, f := range l.folders {
		if f.ID == id {
			return f
		}
	}
	return nil
}

// GetTask returns a task by its composite folderID/taskID key
func (l *Loader) GetTask(folderID, taskID string) (*models.Task, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	task, ok := l.tasks[folderID+"/"+taskID]
	if !ok {
		return nil, ErrTaskNotFound
	}
	return task, nil
}

// DatabasePath returns the sandbox database path for a folder.
// The file is not required to exist yet.
func (l *Loader) DatabasePath(folderID string) (string, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	for _, f := range l.folders {
		if f.ID == folderID {
			return filepath.Join(l.dir, folderID, DatabaseFile), nil
		}
	}
	return "", ErrFolderNotFound
}

// readFolderConfig reads config.yaml or config.json from a folder directory
func readFolderConfig(dir string) (*folderConfig, error) {
	var cfg folderConfig

	for _, name := range []string{"config.yaml", "config.yml"} {
		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			continue
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", name, err)
		}
		return &cfg, nil
	}

	data, err := os.ReadFile(filepath.Join(dir, "config.json"))
	if err != nil {
		return nil, fmt.Errorf("no config file: %w", err)
	}
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config.json: %w", err)
	}
	return &cfg, nil
}

// readTasks reads all task files from a tasks directory, ordered by file stem.
// The file stem becomes the task id.
func readTasks(dir string) ([]*models.Task, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var tasks []*models.Task
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		name := entry.Name()
		ext := filepath.Ext(name)

		var tf taskFile
		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			slog.Warn("failed to read task file", "file", name, "error", err)
			continue
		}

		switch ext {
		case ".json":
			err = json.Unmarshal(data, &tf)
		case ".yaml", ".yml":
			err = yaml.Unmarshal(data, &tf)
		default:
			continue
		}
		if err != nil {
			slog.Warn("failed to parse task file", "file", name, "error", err)
			continue
		}

		tasks = append(tasks, &models.Task{
			ID:          strings.TrimSuffix(name, ext),
			Title:       tf.Title,
			Description: tf.Description,
			Hint:        tf.Hint,
			Solution:    tf.Solution,
		})
	}

	sort.Slice(tasks, func(i, j int) bool { return tasks[i].ID < tasks[j].ID })
	return tasks, nil
}
