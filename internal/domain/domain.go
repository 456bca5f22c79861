package domain

// Project is a single city build request and its lifecycle. user_id 0 is the
// anonymous owner sentinel.
type Project struct {
	ID          int64  `json:"id"`
	UserID      int64  `json:"user_id"`
	Name        string `json:"name"`
	Prompt      string `json:"prompt"`
	Status      string `json:"status" enum:"pending,in_progress,completed,failed"`
	CurrentStep string `json:"current_step,omitempty"`
	CreatedAt   string `json:"created_at" format:"date-time"`
	UpdatedAt   string `json:"updated_at" format:"date-time"`
}

// Building is the persisted artifact of one materialized plan entity.
// Rows are immutable once inserted.
type Building struct {
	ID        int64   `json:"id"`
	ProjectID int64   `json:"project_id"`
	Name      string  `json:"name"`
	Type      string  `json:"type" enum:"office,park,residential,commercial"`
	PositionX float64 `json:"position_x"`
	PositionY float64 `json:"position_y"`
	PositionZ float64 `json:"position_z"`
	Width     float64 `json:"width"`
	Height    float64 `json:"height"`
	Depth     float64 `json:"depth"`
	Color     string  `json:"color,omitempty"`
	CreatedAt string  `json:"created_at" format:"date-time"`
}

// Task records one unit of role work during orchestration.
type Task struct {
	ID          int64   `json:"id"`
	ProjectID   int64   `json:"project_id"`
	Role        string  `json:"role" enum:"architect,frontend,backend,database,qa"`
	Model       string  `json:"model"`
	Description string  `json:"description"`
	Status      string  `json:"status" enum:"pending,in_progress,completed,failed"`
	Input       *string `json:"input,omitempty"`
	Output      *string `json:"output,omitempty"`
	Artifact    *string `json:"artifact,omitempty"`
	StartedAt   *string `json:"started_at,omitempty" format:"date-time"`
	CompletedAt *string `json:"completed_at,omitempty" format:"date-time"`
	CreatedAt   string  `json:"created_at" format:"date-time"`
}

// LogEntry is one append-only communication-log row. From and To are free-text
// role labels, not foreign keys.
type LogEntry struct {
	ID        int64  `json:"id"`
	ProjectID int64  `json:"project_id"`
	From      string `json:"from"`
	To        string `json:"to"`
	Message   string `json:"message"`
	Timestamp string `json:"timestamp" format:"date-time"`
}

// RoleArgument is one per-role key argument in a debate summary.
type RoleArgument struct {
	Role     string `json:"llm"`
	Argument string `json:"argument"`
}

// DebateSummary is the structured result of summarizing a project's
// communication log.
type DebateSummary struct {
	KeyArguments  []RoleArgument `json:"keyArguments"`
	Agreements    []string       `json:"agreements"`
	Disagreements []string       `json:"disagreements"`
	Conclusion    string         `json:"conclusion"`
}
