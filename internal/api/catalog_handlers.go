package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Wojteg799/SQL-Exercises-App/internal/models"
	"github.com/Wojteg799/SQL-Exercises-App/internal/sandbox"
)

// Catalog handlers: the exercise menu and per-task detail

func (s *Server) handleListExercises(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, s.catalog.Folders())
}

func (s *Server) handleGetTask(w http.ResponseWriter, r *http.Request) {
	folderID := chi.URLParam(r, "folderId")
	taskID := chi.URLParam(r, "taskId")

	task, err := s.catalog.GetTask(folderID, taskID)
	if err != nil {
		respondError(w, http.StatusNotFound, "Task not found")
		return
	}

	structure, err := s.sandbox.Structure(r.Context(), folderID)
	if err != nil {
		if errors.Is(err, sandbox.ErrDatabaseNotFound) || errors.Is(err, sandbox.ErrFolderNotFound) {
			// A task without a sandbox still has a description to show.
			structure = []models.SchemaTable{}
		} else {
			slog.Error("failed to inspect sandbox structure", "folder", folderID, "error", err)
			respondError(w, http.StatusInternalServerError, "failed to read database structure")
			return
		}
	}
	if structure == nil {
		structure = []models.SchemaTable{}
	}

	respondJSON(w, http.StatusOK, models.TaskDetail{
		Task:        *task,
		DBStructure: structure,
	})
}
