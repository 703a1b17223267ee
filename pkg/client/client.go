// Package client is a Go SDK for the sql-lab exercise API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/Wojteg799/SQL-Exercises-App/internal/models"
)

// Client talks to a sql-lab server.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// Option configures the client
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		c.httpClient = client
	}
}

// WithTimeout sets the client timeout
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// NewClient creates a new sql-lab client
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Exercises retrieves the full exercise catalog
func (c *Client) Exercises(ctx context.Context) ([]*models.Folder, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, "/api/exercises", nil)
	if err != nil {
		return nil, err
	}

	var folders []*models.Folder
	if err := json.Unmarshal(resp, &folders); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}
	return folders, nil
}

// TaskDetail is the /api/task payload: the task description plus the
// structure of its sandbox database.
type TaskDetail struct {
	Task        TaskBody             `json:"task"`
	DBStructure []models.SchemaTable `json:"db_structure"`
}

// TaskBody is the task description as served to clients.
type TaskBody struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Hint        string `json:"hint,omitempty"`
}

// Task retrieves detail for one task
func (c *Client) Task(ctx context.Context, folderID, taskID string) (*TaskDetail, error) {
	path := fmt.Sprintf("/api/task/%s/%s", url.PathEscape(folderID), url.PathEscape(taskID))
	resp, err := c.doRequest(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}

	var detail TaskDetail
	if err := json.Unmarshal(resp, &detail); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}
	return &detail, nil
}

// Execute runs a query against a folder's sandbox. A response with
// Success=false is a server-side query rejection, not an error.
func (c *Client) Execute(ctx context.Context, folderID, query string) (*models.ExecuteResponse, error) {
	body, err := json.Marshal(models.ExecuteRequest{FolderID: folderID, Query: query})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	resp, err := c.doRequest(ctx, http.MethodPost, "/api/execute", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}

	var result models.ExecuteResponse
	if err := json.Unmarshal(resp, &result); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}
	return &result, nil
}

// Verify grades a query against a task's reference solution
func (c *Client) Verify(ctx context.Context, folderID, taskID, query string) (*models.VerifyResponse, error) {
	body, err := json.Marshal(models.VerifyRequest{FolderID: folderID, TaskID: taskID, Query: query})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	resp, err := c.doRequest(ctx, http.MethodPost, "/api/verify", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}

	var result models.VerifyResponse
	if err := json.Unmarshal(resp, &result); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}
	return &result, nil
}

// Health checks if the service is healthy
func (c *Client) Health(ctx context.Context) error {
	_, err := c.doRequest(ctx, http.MethodGet, "/health", nil)
	return err
}

// doRequest performs an HTTP request
func (c *Client) doRequest(ctx context.Context, method, path string, body io.Reader) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		var apiErr struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(respBody, &apiErr) == nil && apiErr.Error != "" {
			return nil, fmt.Errorf("HTTP %d: %s", resp.StatusCode, apiErr.Error)
		}
		return nil, fmt.Errorf("HTTP %d: %s", resp.StatusCode, string(respBody))
	}

	return respBody, nil
}
