package server

import (
	"cityline/internal/domain"
)

// Request payloads

type CreateProjectRequest struct {
	Name   string `json:"name"`
	Prompt string `json:"prompt"`
}

// Response payloads

type ProjectResponse struct {
	ID          int64  `json:"id"`
	UserID      int64  `json:"user_id"`
	Name        string `json:"name"`
	Prompt      string `json:"prompt"`
	Status      string `json:"status" enum:"pending,in_progress,completed,failed"`
	CurrentStep string `json:"current_step,omitempty"`
	CreatedAt   string `json:"created_at" format:"date-time"`
	UpdatedAt   string `json:"updated_at" format:"date-time"`
}

type BuildingResponse struct {
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

type TaskResponse struct {
	ID          int64   `json:"id"`
	ProjectID   int64   `json:"project_id"`
	Role        string  `json:"role" enum:"architect,frontend,backend,database,qa"`
	Model       string  `json:"model"`
	Description string  `json:"description"`
	Status      string  `json:"status" enum:"pending,in_progress,completed,failed"`
	Output      *string `json:"output,omitempty"`
	Artifact    *string `json:"artifact,omitempty"`
	StartedAt   *string `json:"started_at,omitempty" format:"date-time"`
	CompletedAt *string `json:"completed_at,omitempty" format:"date-time"`
	CreatedAt   string  `json:"created_at" format:"date-time"`
}

type LogEntryResponse struct {
	ID        int64  `json:"id"`
	ProjectID int64  `json:"project_id"`
	From      string `json:"from"`
	To        string `json:"to"`
	Message   string `json:"message"`
	Timestamp string `json:"timestamp" format:"date-time"`
}

type SummaryResponse struct {
	KeyArguments  []RoleArgumentResponse `json:"keyArguments"`
	Agreements    []string               `json:"agreements"`
	Disagreements []string               `json:"disagreements"`
	Conclusion    string                 `json:"conclusion"`
}

type RoleArgumentResponse struct {
	Role     string `json:"llm"`
	Argument string `json:"argument"`
}

func projectResponse(p domain.Project) ProjectResponse {
	return ProjectResponse{
		ID:          p.ID,
		UserID:      p.UserID,
		Name:        p.Name,
		Prompt:      p.Prompt,
		Status:      p.Status,
		CurrentStep: p.CurrentStep,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func mapProjects(items []domain.Project) []ProjectResponse {
	out := make([]ProjectResponse, 0, len(items))
	for _, p := range items {
		out = append(out, projectResponse(p))
	}
	return out
}

func mapBuildings(items []domain.Building) []BuildingResponse {
	out := make([]BuildingResponse, 0, len(items))
	for _, b := range items {
		out = append(out, BuildingResponse{
			ID:        b.ID,
			ProjectID: b.ProjectID,
			Name:      b.Name,
			Type:      b.Type,
			PositionX: b.PositionX,
			PositionY: b.PositionY,
			PositionZ: b.PositionZ,
			Width:     b.Width,
			Height:    b.Height,
			Depth:     b.Depth,
			Color:     b.Color,
			CreatedAt: b.CreatedAt,
		})
	}
	return out
}

func mapTasks(items []domain.Task) []TaskResponse {
	out := make([]TaskResponse, 0, len(items))
	for _, t := range items {
		out = append(out, TaskResponse{
			ID:          t.ID,
			ProjectID:   t.ProjectID,
			Role:        t.Role,
			Model:       t.Model,
			Description: t.Description,
			Status:      t.Status,
			Output:      t.Output,
			Artifact:    t.Artifact,
			StartedAt:   t.StartedAt,
			CompletedAt: t.CompletedAt,
			CreatedAt:   t.CreatedAt,
		})
	}
	return out
}

func mapLogs(items []domain.LogEntry) []LogEntryResponse {
	out := make([]LogEntryResponse, 0, len(items))
	for _, e := range items {
		out = append(out, LogEntryResponse{
			ID:        e.ID,
			ProjectID: e.ProjectID,
			From:      e.From,
			To:        e.To,
			Message:   e.Message,
			Timestamp: e.Timestamp,
		})
	}
	return out
}

func summaryResponse(s domain.DebateSummary) SummaryResponse {
	args := make([]RoleArgumentResponse, 0, len(s.KeyArguments))
	for _, a := range s.KeyArguments {
		args = append(args, RoleArgumentResponse{Role: a.Role, Argument: a.Argument})
	}
	return SummaryResponse{
		KeyArguments:  args,
		Agreements:    s.Agreements,
		Disagreements: s.Disagreements,
		Conclusion:    s.Conclusion,
	}
}
