package console

// Session identifies the currently selected task. It is a plain value,
// set atomically by selection and never partially cleared: Task is
// non-empty only when Folder is.
type Session struct {
	Folder string
	Task   string
}

// Selected reports whether any folder is selected.
func (s Session) Selected() bool {
	return s.Folder != ""
}

// TaskSelected reports whether a full folder/task pair is selected.
func (s Session) TaskSelected() bool {
	return s.Folder != "" && s.Task != ""
}

// Key returns the composite folderId/taskId identity used for
// completion tracking.
func (s Session) Key() string {
	return s.Folder + "/" + s.Task
}
