package catalog

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func writeFixtureCatalog(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()

	writeFile(t, filepath.Join(dir, "02_medium_level", "config.yaml"),
		"name: Medium Level\ndifficulty: medium\n")
	writeFile(t, filepath.Join(dir, "02_medium_level", "tasks", "task_1.yaml"),
		"title: Join orders\ndescription: Join customers and orders.\nsolution: SELECT 1\n")

	writeFile(t, filepath.Join(dir, "01_easy_level", "config.json"),
		`{"name": "Easy Level", "difficulty": "easy"}`)
	writeFile(t, filepath.Join(dir, "01_easy_level", "tasks", "task_2.json"),
		`{"title": "Count employees", "description": "Count them.", "solution": "SELECT COUNT(*) FROM employees"}`)
	writeFile(t, filepath.Join(dir, "01_easy_level", "tasks", "task_1.json"),
		`{"title": "All employees", "description": "List everyone.", "hint": "SELECT *", "solution": "SELECT * FROM employees"}`)

	// A directory without a config file must be skipped.
	if err := os.MkdirAll(filepath.Join(dir, "not_a_folder"), 0o755); err != nil {
		t.Fatal(err)
	}

	return dir
}

func TestLoadFromDir(t *testing.T) {
	loader := NewLoader()
	if err := loader.LoadFromDir(writeFixtureCatalog(t)); err != nil {
		t.Fatalf("LoadFromDir failed: %v", err)
	}

	folders := loader.Folders()
	if len(folders) != 2 {
		t.Fatalf("expected 2 folders, got %d", len(folders))
	}
	if folders[0].ID != "01_easy_level" || folders[1].ID != "02_medium_level" {
		t.Errorf("folders not ordered by id: %s, %s", folders[0].ID, folders[1].ID)
	}

	easy := folders[0]
	if easy.Name != "Easy Level" || easy.Difficulty != "easy" {
		t.Errorf("unexpected folder metadata: %+v", easy)
	}
	if len(easy.Tasks) != 2 {
		t.Fatalf("expected 2 easy tasks, got %d", len(easy.Tasks))
	}
	if easy.Tasks[0].ID != "task_1" || easy.Tasks[1].ID != "task_2" {
		t.Errorf("tasks not ordered by id: %s, %s", easy.Tasks[0].ID, easy.Tasks[1].ID)
	}
	if easy.Tasks[0].Title != "All employees" {
		t.Errorf("unexpected task title: %s", easy.Tasks[0].Title)
	}

	medium := folders[1]
	if medium.Difficulty != "medium" || len(medium.Tasks) != 1 {
		t.Errorf("unexpected medium folder: %+v", medium)
	}
}

func TestGetTask(t *testing.T) {
	loader := NewLoader()
	if err := loader.LoadFromDir(writeFixtureCatalog(t)); err != nil {
		t.Fatalf("LoadFromDir failed: %v", err)
	}

	task, err := loader.GetTask("01_easy_level", "task_1")
	if err != nil {
		t.Fatalf("GetTask failed: %v", err)
	}
	if task.Title != "All employees" || task.Hint != "SELECT *" {
		t.Errorf("unexpected task: %+v", task)
	}
	if task.Solution != "SELECT * FROM employees" {
		t.Errorf("solution not loaded: %q", task.Solution)
	}

	if _, err := loader.GetTask("01_easy_level", "missing"); !errors.Is(err, ErrTaskNotFound) {
		t.Errorf("expected ErrTaskNotFound, got %v", err)
	}
	// Task ids are unique within their folder only; the composite key
	// must not leak across folders.
	if _, err := loader.GetTask("02_medium_level", "task_2"); !errors.Is(err, ErrTaskNotFound) {
		t.Errorf("expected ErrTaskNotFound for foreign task id, got %v", err)
	}
}

func TestDatabasePath(t *testing.T) {
	dir := writeFixtureCatalog(t)
	loader := NewLoader()
	if err := loader.LoadFromDir(dir); err != nil {
		t.Fatalf("LoadFromDir failed: %v", err)
	}

	path, err := loader.DatabasePath("01_easy_level")
	if err != nil {
		t.Fatalf("DatabasePath failed: %v", err)
	}
	want := filepath.Join(dir, "01_easy_level", DatabaseFile)
	if path != want {
		t.Errorf("DatabasePath = %s, want %s", path, want)
	}

	if _, err := loader.DatabasePath("nope"); !errors.Is(err, ErrFolderNotFound) {
		t.Errorf("expected ErrFolderNotFound, got %v", err)
	}
}

func TestFolderDefaults(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "bare", "config.yaml"), "{}\n")

	loader := NewLoader()
	if err := loader.LoadFromDir(dir); err != nil {
		t.Fatalf("LoadFromDir failed: %v", err)
	}

	folder := loader.GetFolder("bare")
	if folder == nil {
		t.Fatal("bare folder not loaded")
	}
	if folder.Name != "bare" {
		t.Errorf("expected folder name to default to directory name, got %q", folder.Name)
	}
	if folder.Difficulty != "unknown" {
		t.Errorf("expected difficulty to default to unknown, got %q", folder.Difficulty)
	}
	if folder.Tasks == nil || len(folder.Tasks) != 0 {
		t.Errorf("expected empty task list, got %#v", folder.Tasks)
	}
}
