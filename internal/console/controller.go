package console

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/Wojteg799/SQL-Exercises-App/internal/models"
	"github.com/Wojteg799/SQL-Exercises-App/pkg/client"
)

// API is the server surface the controller needs. *client.Client
// satisfies it; tests substitute a recording fake.
type API interface {
	Exercises(ctx context.Context) ([]*models.Folder, error)
	Task(ctx context.Context, folderID, taskID string) (*client.TaskDetail, error)
	Execute(ctx context.Context, folderID, query string) (*models.ExecuteResponse, error)
	Verify(ctx context.Context, folderID, taskID, query string) (*models.VerifyResponse, error)
}

// Controller owns the session, the completion map, and the render panes.
// Every user action flows through here; pane contents are plain strings
// so the whole surface is inspectable in tests.
type Controller struct {
	api      API
	progress *Progress
	out      io.Writer

	Menu    *MenuView
	session Session

	// selection sequence fences stale task-detail responses: a response
	// carrying an old sequence number is discarded instead of
	// overwriting a newer selection's panes.
	selectSeq uint64

	Description string
	Schema      string
	Results     string
	Counter     string
	QueryBuf    string
}

// NewController creates a controller with an empty menu.
func NewController(api API, progress *Progress, out io.Writer) *Controller {
	return &Controller{
		api:      api,
		progress: progress,
		out:      out,
		Menu:     &MenuView{},
		Results:  emptyResultsState + "\n",
	}
}

// Session returns the current selection.
func (c *Controller) Session() Session {
	return c.session
}

// LoadExercises fetches the catalog once at startup. On failure the menu
// stays empty and the user gets a notification; there is no retry.
func (c *Controller) LoadExercises(ctx context.Context) {
	folders, err := c.api.Exercises(ctx)
	if err != nil {
		slog.Debug("exercise catalog fetch failed", "error", err)
		c.notifyError("Failed to load exercises")
		return
	}
	c.Menu = NewMenuView(folders, c.progress)
}

// ToggleFolder flips one folder's expansion state.
func (c *Controller) ToggleFolder(folderID string) {
	if !c.Menu.ToggleFolder(folderID) {
		c.notifyError("Unknown folder: " + folderID)
	}
}

// SelectTask makes (folderID, taskID) the current task, updates the menu,
// and fetches the task detail. The session is set even when the detail
// fetch fails; render panes only change on success.
func (c *Controller) SelectTask(ctx context.Context, folderID, taskID string) {
	if !c.Menu.SetActive(folderID, taskID) {
		c.notifyError("Unknown task: " + folderID + "/" + taskID)
		return
	}

	c.session = Session{Folder: folderID, Task: taskID}
	c.selectSeq++
	seq := c.selectSeq

	detail, err := c.api.Task(ctx, folderID, taskID)
	if err != nil {
		slog.Debug("task detail fetch failed", "folder", folderID, "task", taskID, "error", err)
		c.notifyError("Failed to load task")
		return
	}

	if seq != c.selectSeq {
		// A newer selection landed while this response was in flight.
		return
	}

	c.Description = RenderDescription(detail.Task)
	c.Schema = RenderSchema(detail.DBStructure)
	c.QueryBuf = ""
	c.Results = emptyResultsState + "\n"
	c.Counter = ""
}

// RunQuery submits query text to the execution endpoint and fills the
// results pane. Blank input and missing selection are blocked before any
// network call.
func (c *Controller) RunQuery(ctx context.Context, text string) {
	query := strings.TrimSpace(text)
	if query == "" {
		c.notifyError("Please enter a SQL query")
		return
	}
	if !c.session.Selected() {
		c.notifyError("Please select a task first")
		return
	}

	resp, err := c.api.Execute(ctx, c.session.Folder, query)
	if err != nil {
		slog.Debug("query execution request failed", "error", err)
		c.notifyError("Failed to execute query")
		return
	}

	if resp.Success {
		c.Results = RenderResults(resp.Columns, resp.Rows)
		c.Counter = RowCounter(resp.RowCount)
	} else {
		c.Results = resp.Error + "\n"
		c.Counter = ""
	}
}

// VerifyTask submits query text for grading. A correct answer persists
// completion and updates the menu; anything else leaves state untouched.
func (c *Controller) VerifyTask(ctx context.Context, text string) {
	query := strings.TrimSpace(text)
	if query == "" {
		c.notifyError("Please enter a SQL query")
		return
	}
	if !c.session.TaskSelected() {
		c.notifyError("Please select a task first")
		return
	}

	resp, err := c.api.Verify(ctx, c.session.Folder, c.session.Task, query)
	if err != nil {
		slog.Debug("verification request failed", "error", err)
		c.notifyError("Failed to verify solution")
		return
	}

	if !resp.Correct {
		c.notifyError(resp.Message)
		return
	}

	if err := c.progress.MarkCompleted(c.session.Folder, c.session.Task); err != nil {
		slog.Warn("failed to persist completion", "key", c.session.Key(), "error", err)
	}
	c.Menu.MarkCompleted(c.session.Folder, c.session.Task)
	c.notifySuccess(resp.Message)
}

// Notifications are the terminal stand-in for toasts: one transient line.

func (c *Controller) notifySuccess(message string) {
	fmt.Fprintf(c.out, "[ok] %s\n", message)
}

func (c *Controller) notifyError(message string) {
	fmt.Fprintf(c.out, "[!] %s\n", message)
}
