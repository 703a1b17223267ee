package console

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
)

func newFakeServer(t *testing.T) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/api/exercises", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"id":"easy","name":"Easy Level","difficulty":"easy","tasks":[{"id":"t1","title":"First"}]}]`))
	})
	mux.HandleFunc("/api/task/easy/t1", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"task":{"title":"First","description":"List everyone."},"db_structure":[{"name":"employees","columns":[{"name":"id","type":"INTEGER","pk":true}]}]}`))
	})
	mux.HandleFunc("/api/execute", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success":true,"columns":["id"],"rows":[{"id":1}],"row_count":1}`))
	})
	mux.HandleFunc("/api/verify", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"correct":true,"message":"Correct! Great job!"}`))
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func TestRunSession(t *testing.T) {
	server := newFakeServer(t)

	input := strings.Join([]string{
		"list",
		"open easy t1",
		"schema",
		"sql",
		"SELECT id FROM employees;;",
		"verify",
		"progress",
		"exit",
	}, "\n") + "\n"

	var out bytes.Buffer
	err := Run(context.Background(), strings.NewReader(input), &out, Config{
		ServerURL:    server.URL,
		ProgressPath: filepath.Join(t.TempDir(), "progress.json"),
	})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	output := out.String()
	for _, want := range []string{
		"Easy Level [easy]",
		"List everyone.",
		"id INTEGER [PK]",
		"1 row",
		"Correct! Great job!",
		"1 task(s) completed",
	} {
		if !strings.Contains(output, want) {
			t.Errorf("output missing %q:\n%s", want, output)
		}
	}
}

func TestRunExitsOnEOF(t *testing.T) {
	server := newFakeServer(t)

	var out bytes.Buffer
	err := Run(context.Background(), strings.NewReader(""), &out, Config{
		ServerURL:    server.URL,
		ProgressPath: filepath.Join(t.TempDir(), "progress.json"),
	})
	if err != nil {
		t.Fatalf("Run failed on EOF: %v", err)
	}
}

func TestRunUnknownCommand(t *testing.T) {
	server := newFakeServer(t)

	var out bytes.Buffer
	err := Run(context.Background(), strings.NewReader("frobnicate\nexit\n"), &out, Config{
		ServerURL:    server.URL,
		ProgressPath: filepath.Join(t.TempDir(), "progress.json"),
	})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if !strings.Contains(out.String(), "unknown command") {
		t.Errorf("missing unknown-command message:\n%s", out.String())
	}
}
