package api

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/Wojteg799/SQL-Exercises-App/internal/catalog"
	"github.com/Wojteg799/SQL-Exercises-App/internal/config"
	"github.com/Wojteg799/SQL-Exercises-App/internal/models"
	"github.com/Wojteg799/SQL-Exercises-App/internal/sandbox"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()

	dir := t.TempDir()
	folderDir := filepath.Join(dir, "easy")
	if err := os.MkdirAll(filepath.Join(folderDir, "tasks"), 0o755); err != nil {
		t.Fatal(err)
	}
	writeTestFile(t, filepath.Join(folderDir, "config.yaml"), "name: Easy Level\ndifficulty: easy\n")
	writeTestFile(t, filepath.Join(folderDir, "tasks", "task_1.yaml"),
		"title: IT employees\ndescription: List IT employees by id.\nhint: Use WHERE\nsolution: SELECT name FROM employees WHERE department = 'IT' ORDER BY employee_id\n")

	db, err := sql.Open("sqlite3", filepath.Join(folderDir, catalog.DatabaseFile))
	if err != nil {
		t.Fatal(err)
	}
	_, err = db.Exec(`
		CREATE TABLE employees (
		    employee_id INTEGER PRIMARY KEY,
		    name TEXT NOT NULL,
		    department TEXT NOT NULL
		);
		INSERT INTO employees VALUES (1, 'John Smith', 'IT'), (2, 'Sarah Johnson', 'HR');
	`)
	if closeErr := db.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		t.Fatalf("prepare sandbox database: %v", err)
	}

	loader := catalog.NewLoader()
	if err := loader.LoadFromDir(dir); err != nil {
		t.Fatalf("LoadFromDir failed: %v", err)
	}

	manager := sandbox.NewManager(config.SandboxConfig{
		QueryTimeout: 5 * time.Second,
		MaxRows:      1000,
	}, loader)
	t.Cleanup(func() { _ = manager.Close() })

	return NewServer(config.ServerConfig{}, loader, manager)
}

func writeTestFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func doJSON(t *testing.T, server *Server, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatal(err)
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	server.Router().ServeHTTP(rec, req)
	return rec
}

func TestListExercises(t *testing.T) {
	server := newTestServer(t)

	rec := doJSON(t, server, http.MethodGet, "/api/exercises", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var folders []models.Folder
	if err := json.Unmarshal(rec.Body.Bytes(), &folders); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(folders) != 1 {
		t.Fatalf("expected 1 folder, got %d", len(folders))
	}
	if folders[0].ID != "easy" || folders[0].Difficulty != "easy" {
		t.Errorf("unexpected folder: %+v", folders[0])
	}
	if len(folders[0].Tasks) != 1 || folders[0].Tasks[0].Title != "IT employees" {
		t.Errorf("unexpected tasks: %+v", folders[0].Tasks)
	}
}

func TestGetTask(t *testing.T) {
	server := newTestServer(t)

	rec := doJSON(t, server, http.MethodGet, "/api/task/easy/task_1", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var detail struct {
		Task struct {
			Title       string `json:"title"`
			Description string `json:"description"`
			Hint        string `json:"hint"`
			Solution    string `json:"solution"`
		} `json:"task"`
		DBStructure []models.SchemaTable `json:"db_structure"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &detail); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if detail.Task.Title != "IT employees" || detail.Task.Hint != "Use WHERE" {
		t.Errorf("unexpected task: %+v", detail.Task)
	}
	if detail.Task.Solution != "" {
		t.Error("solution leaked to client")
	}
	if len(detail.DBStructure) != 1 || detail.DBStructure[0].Name != "employees" {
		t.Errorf("unexpected structure: %+v", detail.DBStructure)
	}

	rec = doJSON(t, server, http.MethodGet, "/api/task/easy/missing", nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("missing task status = %d, want 404", rec.Code)
	}
}

func TestExecuteEndpoint(t *testing.T) {
	server := newTestServer(t)

	rec := doJSON(t, server, http.MethodPost, "/api/execute", models.ExecuteRequest{
		FolderID: "easy",
		Query:    "SELECT name FROM employees ORDER BY employee_id",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var resp models.ExecuteResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !resp.Success || resp.RowCount != 2 {
		t.Errorf("unexpected response: %+v", resp)
	}
	if len(resp.Columns) != 1 || resp.Columns[0] != "name" {
		t.Errorf("unexpected columns: %v", resp.Columns)
	}
}

func TestExecuteEndpointBadSQL(t *testing.T) {
	server := newTestServer(t)

	rec := doJSON(t, server, http.MethodPost, "/api/execute", models.ExecuteRequest{
		FolderID: "easy",
		Query:    "SELEC nope",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (domain rejection, not transport failure)", rec.Code)
	}

	var resp models.ExecuteResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp.Success || resp.Error == "" {
		t.Errorf("expected success=false with engine error, got %+v", resp)
	}
}

func TestExecuteEndpointValidation(t *testing.T) {
	server := newTestServer(t)

	rec := doJSON(t, server, http.MethodPost, "/api/execute", models.ExecuteRequest{Query: "  "})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("blank request status = %d, want 400", rec.Code)
	}

	rec = doJSON(t, server, http.MethodPost, "/api/execute", models.ExecuteRequest{
		FolderID: "missing", Query: "SELECT 1",
	})
	if rec.Code != http.StatusNotFound {
		t.Errorf("unknown folder status = %d, want 404", rec.Code)
	}
}

func TestVerifyEndpoint(t *testing.T) {
	server := newTestServer(t)

	rec := doJSON(t, server, http.MethodPost, "/api/verify", models.VerifyRequest{
		FolderID: "easy",
		TaskID:   "task_1",
		Query:    "SELECT name FROM employees WHERE department = 'IT' ORDER BY employee_id",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var resp models.VerifyResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !resp.Correct || resp.Message == "" {
		t.Errorf("unexpected response: %+v", resp)
	}

	rec = doJSON(t, server, http.MethodPost, "/api/verify", models.VerifyRequest{
		FolderID: "easy",
		TaskID:   "task_1",
		Query:    "SELECT name FROM employees",
	})
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp.Correct {
		t.Error("expected wrong answer to be marked incorrect")
	}
}

func TestVerifyEndpointBadSQL(t *testing.T) {
	server := newTestServer(t)

	rec := doJSON(t, server, http.MethodPost, "/api/verify", models.VerifyRequest{
		FolderID: "easy",
		TaskID:   "task_1",
		Query:    "SELEC nope",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var resp models.VerifyResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp.Correct {
		t.Error("rejected query cannot be correct")
	}
	if !strings.HasPrefix(resp.Message, "Error: ") {
		t.Errorf("expected engine error message, got %q", resp.Message)
	}
}

func TestHealth(t *testing.T) {
	server := newTestServer(t)

	rec := doJSON(t, server, http.MethodGet, "/health", nil)
	if rec.Code != http.StatusOK {
		t.Errorf("health status = %d, want 200", rec.Code)
	}
}
