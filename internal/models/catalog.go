package models

// Folder represents a difficulty-tagged group of exercise tasks
// (one directory in the exercises tree).
type Folder struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	Difficulty string     `json:"difficulty"` // easy | medium | hard | unknown
	Tasks      []TaskInfo `json:"tasks"`
}

// TaskInfo is the catalog form of a task: just enough for the menu.
type TaskInfo struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// Task is the detail form served by /api/task/{folderId}/{taskId}.
// The reference solution never leaves the server.
type Task struct {
	ID          string `json:"-"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Hint        string `json:"hint,omitempty"`
	Solution    string `json:"-"`
}

// TaskDetail is the full payload for a selected task: the task itself
// plus the structure of its sandbox database.
type TaskDetail struct {
	Task        Task          `json:"task"`
	DBStructure []SchemaTable `json:"db_structure"`
}

// SchemaTable describes one table of a sandbox database.
type SchemaTable struct {
	Name    string   `json:"name"`
	Columns []Column `json:"columns"`
}

// Column describes one column of a sandbox table. Type may be empty
// for untyped SQLite columns; renderers default it to TEXT.
type Column struct {
	Name string `json:"name"`
	Type string `json:"type,omitempty"`
	PK   bool   `json:"pk,omitempty"`
}
