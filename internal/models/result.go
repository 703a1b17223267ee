package models

// QueryResult is the outcome of a successful sandbox query.
// Rows map column name to value; values may be nil.
type QueryResult struct {
	Columns  []string         `json:"columns"`
	Rows     []map[string]any `json:"rows"`
	RowCount int              `json:"row_count"`
}

// ExecuteRequest is the body of POST /api/execute.
type ExecuteRequest struct {
	FolderID string `json:"folder_id"`
	Query    string `json:"query"`
}

// ExecuteResponse is the body of the /api/execute response. Success false
// carries the engine error message; the HTTP status stays 200 because a
// rejected query is a domain outcome, not a transport failure.
type ExecuteResponse struct {
	Success  bool             `json:"success"`
	Columns  []string         `json:"columns,omitempty"`
	Rows     []map[string]any `json:"rows,omitempty"`
	RowCount int              `json:"row_count,omitempty"`
	Error    string           `json:"error,omitempty"`
}

// VerifyRequest is the body of POST /api/verify.
type VerifyRequest struct {
	FolderID string `json:"folder_id"`
	TaskID   string `json:"task_id"`
	Query    string `json:"query"`
}

// VerifyResponse is the body of the /api/verify response.
type VerifyResponse struct {
	Correct bool   `json:"correct"`
	Message string `json:"message"`
}
