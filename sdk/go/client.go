package citylinesdk

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Client is a minimal Cityline HTTP API client.
type Client struct {
	BaseURL     string
	BearerToken string
	HTTPClient  *http.Client
	Timeout     time.Duration
}

// New creates a client with sane defaults.
func New(baseURL string) *Client {
	return &Client{
		BaseURL: baseURL,
		Timeout: 30 * time.Second,
	}
}

// Project represents the API project model.
type Project struct {
	ID          int64  `json:"id"`
	UserID      int64  `json:"user_id"`
	Name        string `json:"name"`
	Prompt      string `json:"prompt"`
	Status      string `json:"status"`
	CurrentStep string `json:"current_step,omitempty"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}

// Building represents one materialized building.
type Building struct {
	ID        int64   `json:"id"`
	ProjectID int64   `json:"project_id"`
	Name      string  `json:"name"`
	Type      string  `json:"type"`
	PositionX float64 `json:"position_x"`
	PositionY float64 `json:"position_y"`
	PositionZ float64 `json:"position_z"`
	Width     float64 `json:"width"`
	Height    float64 `json:"height"`
	Depth     float64 `json:"depth"`
	Color     string  `json:"color,omitempty"`
	CreatedAt string  `json:"created_at"`
}

// Task represents one role task.
type Task struct {
	ID          int64   `json:"id"`
	ProjectID   int64   `json:"project_id"`
	Role        string  `json:"role"`
	Model       string  `json:"model"`
	Description string  `json:"description"`
	Status      string  `json:"status"`
	Output      *string `json:"output,omitempty"`
	Artifact    *string `json:"artifact,omitempty"`
	StartedAt   *string `json:"started_at,omitempty"`
	CompletedAt *string `json:"completed_at,omitempty"`
	CreatedAt   string  `json:"created_at"`
}

// LogEntry is one communication log row.
type LogEntry struct {
	ID        int64  `json:"id"`
	ProjectID int64  `json:"project_id"`
	From      string `json:"from"`
	To        string `json:"to"`
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
}

// RoleArgument is one per-role point in a debate summary.
type RoleArgument struct {
	Role     string `json:"llm"`
	Argument string `json:"argument"`
}

// Summary is a structured debate summary.
type Summary struct {
	KeyArguments  []RoleArgument `json:"keyArguments"`
	Agreements    []string       `json:"agreements"`
	Disagreements []string       `json:"disagreements"`
	Conclusion    string         `json:"conclusion"`
}

// APIError wraps non-2xx responses.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error: status=%d body=%s", e.StatusCode, e.Body)
}

// CreateProject creates a pending project.
func (c *Client) CreateProject(ctx context.Context, name, prompt string) (Project, error) {
	body := map[string]any{
		"name":   name,
		"prompt": prompt,
	}
	var resp Project
	err := c.do(ctx, http.MethodPost, "v1/projects", body, &resp)
	return resp, err
}

// ListProjects returns the authenticated caller's projects.
func (c *Client) ListProjects(ctx context.Context) ([]Project, error) {
	var resp []Project
	err := c.do(ctx, http.MethodGet, "v1/projects", nil, &resp)
	return resp, err
}

// GetProject fetches a project by id.
func (c *Client) GetProject(ctx context.Context, id int64) (Project, error) {
	var resp Project
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("v1/projects/%d", id), nil, &resp)
	return resp, err
}

// StartBuilding schedules the detached construction sequence.
func (c *Client) StartBuilding(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodPost, fmt.Sprintf("v1/projects/%d/start", id), nil, nil)
}

// Buildings returns the project's buildings in creation order.
func (c *Client) Buildings(ctx context.Context, id int64) ([]Building, error) {
	var resp []Building
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("v1/projects/%d/buildings", id), nil, &resp)
	return resp, err
}

// Tasks returns the project's role tasks, newest first.
func (c *Client) Tasks(ctx context.Context, id int64) ([]Task, error) {
	var resp []Task
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("v1/projects/%d/tasks", id), nil, &resp)
	return resp, err
}

// Logs returns the communication log, newest first.
func (c *Client) Logs(ctx context.Context, id int64) ([]LogEntry, error) {
	var resp []LogEntry
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("v1/projects/%d/logs", id), nil, &resp)
	return resp, err
}

// Summarize requests a debate summary. Each call performs one generative
// round trip server-side, so avoid polling it.
func (c *Client) Summarize(ctx context.Context, id int64) (Summary, error) {
	var resp Summary
	err := c.do(ctx, http.MethodPost, fmt.Sprintf("v1/projects/%d/summary", id), nil, &resp)
	return resp, err
}

func (c *Client) do(ctx context.Context, method, endpoint string, body any, out any) error {
	if c.HTTPClient == nil {
		c.HTTPClient = &http.Client{Timeout: c.Timeout}
	}
	url := c.base() + "/" + strings.TrimLeft(endpoint, "/")
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return err
		}
	}
	req, err := http.NewRequestWithContext(ctx, method, url, &buf)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.BearerToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.BearerToken)
	}
	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		b, _ := io.ReadAll(resp.Body)
		return &APIError{StatusCode: resp.StatusCode, Body: string(b)}
	}
	if out != nil {
		return json.NewDecoder(resp.Body).Decode(out)
	}
	return nil
}

func (c *Client) base() string {
	return strings.TrimRight(c.BaseURL, "/")
}
