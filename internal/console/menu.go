package console

import (
	"fmt"
	"strings"

	"github.com/Wojteg799/SQL-Exercises-App/internal/models"
)

// MenuView is the render model for the exercise tree: folders with an
// expanded/collapsed flag, tasks with completion markers, and at most one
// active task. It is plain data; Render turns it into text, so menu
// behavior is testable without a terminal.
type MenuView struct {
	Folders      []MenuFolder
	ActiveFolder string
	ActiveTask   string
}

// MenuFolder is one folder node of the menu tree.
type MenuFolder struct {
	ID         string
	Name       string
	Difficulty string
	Expanded   bool
	Tasks      []MenuTask
}

// MenuTask is one task row of the menu tree.
type MenuTask struct {
	ID        string
	Title     string
	Completed bool
}

// NewMenuView builds the menu from the catalog and the completion map.
// All folders start collapsed, nothing active.
func NewMenuView(folders []*models.Folder, progress *Progress) *MenuView {
	m := &MenuView{}
	for _, folder := range folders {
		mf := MenuFolder{
			ID:         folder.ID,
			Name:       folder.Name,
			Difficulty: folder.Difficulty,
		}
		for _, task := range folder.Tasks {
			mf.Tasks = append(mf.Tasks, MenuTask{
				ID:        task.ID,
				Title:     task.Title,
				Completed: progress.Completed(folder.ID, task.ID),
			})
		}
		m.Folders = append(m.Folders, mf)
	}
	return m
}

// ToggleFolder flips the expansion state of exactly one folder. Repeated
// toggles alternate strictly; other folders are untouched. Returns false
// when the folder is unknown.
func (m *MenuView) ToggleFolder(folderID string) bool {
	for i := range m.Folders {
		if m.Folders[i].ID == folderID {
			m.Folders[i].Expanded = !m.Folders[i].Expanded
			return true
		}
	}
	return false
}

// Expanded reports a folder's expansion state.
func (m *MenuView) Expanded(folderID string) bool {
	for i := range m.Folders {
		if m.Folders[i].ID == folderID {
			return m.Folders[i].Expanded
		}
	}
	return false
}

// SetActive marks one task active, clearing any previous active task, and
// ensures the containing folder is expanded. Selecting a task in an
// already-expanded folder leaves the folder expanded.
func (m *MenuView) SetActive(folderID, taskID string) bool {
	for i := range m.Folders {
		if m.Folders[i].ID != folderID {
			continue
		}
		for j := range m.Folders[i].Tasks {
			if m.Folders[i].Tasks[j].ID == taskID {
				m.ActiveFolder = folderID
				m.ActiveTask = taskID
				m.Folders[i].Expanded = true
				return true
			}
		}
	}
	return false
}

// MarkCompleted updates one task's completion marker in place. Expansion
// and active selection of every node are left as they are.
func (m *MenuView) MarkCompleted(folderID, taskID string) {
	for i := range m.Folders {
		if m.Folders[i].ID != folderID {
			continue
		}
		for j := range m.Folders[i].Tasks {
			if m.Folders[i].Tasks[j].ID == taskID {
				m.Folders[i].Tasks[j].Completed = true
				return
			}
		}
	}
}

// Render produces the text form of the menu.
func (m *MenuView) Render() string {
	if len(m.Folders) == 0 {
		return "No exercises available.\n"
	}

	var b strings.Builder
	for _, folder := range m.Folders {
		arrow := "+"
		if folder.Expanded {
			arrow = "-"
		}
		fmt.Fprintf(&b, "%s %s  %s [%s]\n", arrow, folder.ID, folder.Name, folder.Difficulty)

		if !folder.Expanded {
			continue
		}
		for _, task := range folder.Tasks {
			active := " "
			if folder.ID == m.ActiveFolder && task.ID == m.ActiveTask {
				active = ">"
			}
			done := " "
			if task.Completed {
				done = "x"
			}
			fmt.Fprintf(&b, "  %s [%s] %s  %s\n", active, done, task.ID, task.Title)
		}
	}
	return b.String()
}
