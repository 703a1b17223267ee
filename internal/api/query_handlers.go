package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/Wojteg799/SQL-Exercises-App/internal/models"
	"github.com/Wojteg799/SQL-Exercises-App/internal/sandbox"
)

// Query handlers: running and grading user SQL against a sandbox

func (s *Server) handleExecute(w http.ResponseWriter, r *http.Request) {
	var req models.ExecuteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	req.Query = strings.TrimSpace(req.Query)
	if req.FolderID == "" || req.Query == "" {
		respondError(w, http.StatusBadRequest, "Missing folder_id or query")
		return
	}

	execID := uuid.NewString()
	slog.Info("executing query", "exec_id", execID, "folder", req.FolderID)

	result, err := s.sandbox.Execute(r.Context(), req.FolderID, req.Query)
	if err != nil {
		var execErr *sandbox.ExecError
		switch {
		case errors.As(err, &execErr):
			respondJSON(w, http.StatusOK, models.ExecuteResponse{
				Success: false,
				Error:   execErr.Msg,
			})
		case errors.Is(err, sandbox.ErrFolderNotFound), errors.Is(err, sandbox.ErrDatabaseNotFound):
			respondError(w, http.StatusNotFound, "Database not found")
		default:
			slog.Error("query execution failed", "exec_id", execID, "error", err)
			respondError(w, http.StatusInternalServerError, "query execution failed")
		}
		return
	}

	respondJSON(w, http.StatusOK, models.ExecuteResponse{
		Success:  true,
		Columns:  result.Columns,
		Rows:     result.Rows,
		RowCount: result.RowCount,
	})
}

func (s *Server) handleVerify(w http.ResponseWriter, r *http.Request) {
	var req models.VerifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	req.Query = strings.TrimSpace(req.Query)
	if req.FolderID == "" || req.TaskID == "" || req.Query == "" {
		respondError(w, http.StatusBadRequest, "Missing required fields")
		return
	}

	task, err := s.catalog.GetTask(req.FolderID, req.TaskID)
	if err != nil {
		respondError(w, http.StatusNotFound, "Task not found")
		return
	}

	execID := uuid.NewString()
	slog.Info("verifying solution", "exec_id", execID, "folder", req.FolderID, "task", req.TaskID)

	correct, err := s.sandbox.Verify(r.Context(), req.FolderID, req.Query, task.Solution)
	if err != nil {
		var execErr *sandbox.ExecError
		switch {
		case errors.As(err, &execErr):
			// A query the engine rejects cannot be the right answer; report
			// the engine message so the user can fix it.
			respondJSON(w, http.StatusOK, models.VerifyResponse{
				Correct: false,
				Message: "Error: " + execErr.Msg,
			})
		case errors.Is(err, sandbox.ErrFolderNotFound), errors.Is(err, sandbox.ErrDatabaseNotFound):
			respondError(w, http.StatusNotFound, "Database not found")
		default:
			slog.Error("verification failed", "exec_id", execID, "error", err)
			respondError(w, http.StatusInternalServerError, "verification failed")
		}
		return
	}

	resp := models.VerifyResponse{Correct: correct}
	if correct {
		resp.Message = "Correct! Great job!"
	} else {
		resp.Message = "Incorrect. Try again!"
	}
	respondJSON(w, http.StatusOK, resp)
}
