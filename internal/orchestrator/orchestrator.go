// Package orchestrator drives the phased construction sequence: it requests
// a structured plan from the generative backend, validates or replaces it,
// then materializes every planned building in order while recording tasks
// and narration. One sequence runs per project, detached from the request
// that triggered it; all progress is observed by polling.
package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"cityline/internal/config"
	"cityline/internal/domain"
	"cityline/internal/llm"
	"cityline/internal/plan"
	"cityline/internal/repo"
)

// Materialization defaults, matching the presentation layer so a building is
// never invisible.
const (
	defaultWidth  = 3.0
	defaultHeight = 10.0
	defaultDepth  = 3.0
	defaultColor  = "#3b82f6"
)

type Orchestrator struct {
	Repo repo.Repo
	LLM  llm.Client

	cfg    *config.Config
	logger *log.Logger
	sleep  func(time.Duration)
}

func New(r repo.Repo, client llm.Client, cfg *config.Config) *Orchestrator {
	return &Orchestrator{
		Repo:   r,
		LLM:    client,
		cfg:    cfg,
		logger: log.Default(),
		sleep:  time.Sleep,
	}
}

// SetLogger overrides the default logger.
func (o *Orchestrator) SetLogger(l *log.Logger) {
	if l != nil {
		o.logger = l
	}
}

// Start schedules a detached run and returns immediately. A failed run is
// captured in the project's terminal status, not surfaced to the caller.
func (o *Orchestrator) Start(projectID int64) {
	go func() {
		if err := o.Run(context.Background(), projectID); err != nil {
			o.logger.Printf("[orchestrator] project %d run failed: %v", projectID, err)
		}
	}()
}

// Run executes the full sequence for a project. On any unrecovered error the
// project transitions to failed and the error is returned; buildings and
// tasks created before the failure point are kept.
func (o *Orchestrator) Run(ctx context.Context, projectID int64) error {
	project, err := o.Repo.GetProject(ctx, projectID)
	if err != nil {
		return fmt.Errorf("load project %d: %w", projectID, err)
	}
	runID := uuid.New().String()
	o.logger.Printf("[orchestrator] run %s started for project %d: %q", runID, projectID, project.Prompt)

	if err := o.execute(ctx, project); err != nil {
		if serr := o.Repo.UpdateProjectStatus(ctx, projectID, "failed", ""); serr != nil {
			o.logger.Printf("[orchestrator] run %s: marking project %d failed: %v", runID, projectID, serr)
		}
		return err
	}
	o.logger.Printf("[orchestrator] run %s completed for project %d", runID, projectID)
	return nil
}

func (o *Orchestrator) execute(ctx context.Context, project domain.Project) error {
	pid := project.ID

	if err := o.Repo.UpdateProjectStatus(ctx, pid, "in_progress", "architect"); err != nil {
		return err
	}
	if err := o.narrate(ctx, pid, o.planningScript(project.Prompt)...); err != nil {
		return err
	}

	p, err := o.requestPlan(ctx, project)
	if err != nil {
		return err
	}
	total := p.TotalBuildings()
	o.logger.Printf("[orchestrator] project %d plan accepted: %d phases, %d buildings", pid, len(p.Phases), total)

	if err := o.designSteps(ctx, pid, p); err != nil {
		return err
	}
	if err := o.materialize(ctx, pid, p); err != nil {
		return err
	}
	if err := o.finalValidation(ctx, pid, p); err != nil {
		return err
	}
	return o.Repo.UpdateProjectStatus(ctx, pid, "completed", "")
}

// requestPlan asks the architect model for a plan and degrades to the
// deterministic fallback when the response cannot be parsed or fails the
// acceptance contract. Parse and validation failures never abort the run.
func (o *Orchestrator) requestPlan(ctx context.Context, project domain.Project) (plan.Plan, error) {
	pid := project.ID
	architect := o.cfg.RoleLabel("architect")

	if err := o.narrate(ctx, pid, step{"System", architect, "Proceeding with detailed city plan based on team consensus"}); err != nil {
		return plan.Plan{}, err
	}
	taskID, err := o.Repo.InsertTask(ctx, pid, "architect",
		architect, "Create comprehensive 5-phase city development plan")
	if err != nil {
		return plan.Plan{}, err
	}

	raw, err := o.LLM.Complete(ctx, []llm.Message{
		{Role: "system", Content: plan.SystemArchitect},
		{Role: "user", Content: plan.ArchitectPrompt(project.Prompt)},
	})
	if err != nil {
		o.failTask(ctx, taskID, err)
		return plan.Plan{}, fmt.Errorf("architect completion: %w", err)
	}
	if err := o.Repo.SetTaskStatus(ctx, taskID, "completed", &raw, &raw); err != nil {
		return plan.Plan{}, err
	}
	if err := o.narrate(ctx, pid, step{architect, "System", "Comprehensive 5-phase plan created with 50 buildings"}); err != nil {
		return plan.Plan{}, err
	}

	p, perr := plan.Parse(raw)
	if perr == nil {
		perr = p.Validate()
	}
	if perr != nil {
		o.logger.Printf("[orchestrator] project %d: architect plan rejected (%v), using fallback", pid, perr)
		p = plan.Fallback()
	}
	for _, v := range plan.CheckSpatial(p).Violations() {
		// Advisory only: the prompt demands these rules but a violating
		// plan is still accepted.
		o.logger.Printf("[orchestrator] project %d spatial advisory: %s", pid, v)
	}
	return p, nil
}

// designSteps walks the database, backend and frontend roles, each with
// narration and one informational task. These tasks document the simulated
// design contribution; they gate nothing.
func (o *Orchestrator) designSteps(ctx context.Context, pid int64, p plan.Plan) error {
	total := p.TotalBuildings()
	phases := len(p.Phases)
	architect := o.cfg.RoleLabel("architect")
	database := o.cfg.RoleLabel("database")
	backend := o.cfg.RoleLabel("backend")
	frontend := o.cfg.RoleLabel("frontend")

	if err := o.Repo.UpdateProjectStatus(ctx, pid, "in_progress", "database"); err != nil {
		return err
	}
	if err := o.narrate(ctx, pid,
		step{architect, database, fmt.Sprintf("Plan approved. We have %d buildings across %d phases. Please set up the database schema.", total, phases)},
		step{database, architect, "Understood. I'll create tables with spatial indexing, phase tracking, and status fields. Should take about 30 seconds to set up."},
	); err != nil {
		return err
	}
	if err := o.informationalTask(ctx, pid, "database",
		"Create comprehensive database schema for phased city development",
		"Database schema created with spatial indexing and phase tracking", databaseArtifact); err != nil {
		return err
	}
	if err := o.narrate(ctx, pid, step{database, "All", "Database is ready! Schema includes spatial indexing for efficient queries and phase tracking for construction management."}); err != nil {
		return err
	}

	if err := o.Repo.UpdateProjectStatus(ctx, pid, "in_progress", "backend"); err != nil {
		return err
	}
	if err := o.narrate(ctx, pid,
		step{database, backend, "Database ready. Please create API endpoints for phased construction management."},
		step{backend, database, "Got it. I'll create REST endpoints for CRUD operations, phase-based queries, and real-time status updates. Including caching for better performance."},
	); err != nil {
		return err
	}
	if err := o.informationalTask(ctx, pid, "backend",
		"Create RESTful API for city management with phase support",
		"RESTful API created with phase-based endpoints and spatial queries", backendArtifact); err != nil {
		return err
	}
	if err := o.narrate(ctx, pid, step{backend, "All", "API is live! All endpoints tested and ready. Supporting phase-based queries and spatial filtering."}); err != nil {
		return err
	}

	if err := o.Repo.UpdateProjectStatus(ctx, pid, "in_progress", "frontend"); err != nil {
		return err
	}
	if err := o.narrate(ctx, pid,
		step{backend, frontend, fmt.Sprintf("Backend ready. Please create the 3D visualization for %d buildings across %d construction phases.", total, phases)},
		step{frontend, backend, "Perfect! I'll use Three.js with BufferGeometry for performance. Adding construction animations - buildings will scale up when created. Grid ground plane with lighting for depth perception."},
	); err != nil {
		return err
	}
	if err := o.informationalTask(ctx, pid, "frontend",
		"Create Three.js 3D city visualization with construction animations",
		"3D visualization created with construction animations and optimized rendering", frontendArtifact); err != nil {
		return err
	}
	return o.narrate(ctx, pid, step{frontend, "All", "3D visualization is ready! Buildings will animate as they're constructed. Performance optimized for 20+ buildings."})
}

// materialize persists every planned building, phase by phase, in plan
// order. Creation is strictly sequential: downstream progress counting and
// phase-ordering guarantees depend on completion order matching plan order.
func (o *Orchestrator) materialize(ctx context.Context, pid int64, p plan.Plan) error {
	architect := o.cfg.RoleLabel("architect")
	for _, ph := range p.Phases {
		if err := o.narrate(ctx, pid, o.phaseOpening(ph)...); err != nil {
			return err
		}
		for _, b := range ph.Buildings {
			if err := o.narrate(ctx, pid, o.buildingProposal(b)...); err != nil {
				return err
			}
			if _, err := o.Repo.InsertBuilding(ctx, materialized(pid, b)); err != nil {
				return fmt.Errorf("create building %q (phase %d): %w", b.Name, ph.Phase, err)
			}
			o.logger.Printf("[orchestrator] project %d created: %s (phase %d)", pid, b.Name, ph.Phase)
			if err := o.narrate(ctx, pid, o.buildingConfirmation(b)...); err != nil {
				return err
			}
		}
		if err := o.narrate(ctx, pid, step{architect, "All", fmt.Sprintf("Phase %d (%s) completed! Moving to next phase.", ph.Phase, ph.Name)}); err != nil {
			return err
		}
	}
	return nil
}

// materialized maps a planned building to its persisted row, applying the
// presentation defaults for absent fields.
func materialized(pid int64, b plan.Building) domain.Building {
	out := domain.Building{
		ProjectID: pid,
		Name:      b.Name,
		Type:      b.Type,
		PositionX: b.Position.X,
		PositionY: b.Position.Y,
		PositionZ: b.Position.Z,
		Width:     b.Size.Width,
		Height:    b.Size.Height,
		Depth:     b.Size.Depth,
		Color:     b.Color,
	}
	if out.Width == 0 {
		out.Width = defaultWidth
	}
	if out.Height == 0 {
		out.Height = defaultHeight
	}
	if out.Depth == 0 {
		out.Depth = defaultDepth
	}
	if out.Color == "" {
		out.Color = defaultColor
	}
	return out
}

// finalValidation runs the QA round trip and stores its raw output
// verbatim; the output is advisory commentary and is never parsed.
func (o *Orchestrator) finalValidation(ctx context.Context, pid int64, p plan.Plan) error {
	total := p.TotalBuildings()
	phases := len(p.Phases)
	architect := o.cfg.RoleLabel("architect")
	qa := o.cfg.RoleLabel("qa")

	if err := o.Repo.UpdateProjectStatus(ctx, pid, "in_progress", "qa"); err != nil {
		return err
	}
	if err := o.narrate(ctx, pid,
		step{architect, qa, "All construction phases complete. Please perform final validation and quality check."},
		step{qa, "All", fmt.Sprintf("Starting comprehensive validation... Checking all %d buildings across %d phases.", total, phases)},
	); err != nil {
		return err
	}

	taskID, err := o.Repo.InsertTask(ctx, pid, "qa", qa, "Perform final validation of complete city project")
	if err != nil {
		return err
	}
	out, err := o.LLM.Complete(ctx, []llm.Message{
		{Role: "system", Content: plan.SystemQA},
		{Role: "user", Content: plan.QAPrompt(p)},
	})
	if err != nil {
		o.failTask(ctx, taskID, err)
		return fmt.Errorf("qa completion: %w", err)
	}
	if err := o.Repo.SetTaskStatus(ctx, taskID, "completed", &out, nil); err != nil {
		return err
	}

	return o.narrate(ctx, pid,
		step{qa, "All", fmt.Sprintf("Final validation complete! All %d buildings passed quality checks. City is ready for deployment! 🎉", total)},
		step{architect, "System", fmt.Sprintf("Project completed successfully. %d buildings constructed across %d phases. Excellent teamwork everyone!", total, phases)},
	)
}

// narrate appends steps to the communication log in order, pacing each entry
// by the configured delay.
func (o *Orchestrator) narrate(ctx context.Context, pid int64, steps ...step) error {
	delay := time.Duration(o.cfg.Narration.DelayMS) * time.Millisecond
	for _, s := range steps {
		if err := o.Repo.AppendLog(ctx, pid, s.From, s.To, s.Message); err != nil {
			return fmt.Errorf("append narration: %w", err)
		}
		if delay > 0 {
			o.sleep(delay)
		}
	}
	return nil
}

func (o *Orchestrator) informationalTask(ctx context.Context, pid int64, role, description, output, artifact string) error {
	taskID, err := o.Repo.InsertTask(ctx, pid, role, o.cfg.RoleLabel(role), description)
	if err != nil {
		return err
	}
	return o.Repo.SetTaskStatus(ctx, taskID, "completed", &output, &artifact)
}

// failTask marks a task failed with the error text. A secondary failure here
// is logged, not surfaced; the primary error wins.
func (o *Orchestrator) failTask(ctx context.Context, taskID int64, cause error) {
	msg := cause.Error()
	if err := o.Repo.SetTaskStatus(ctx, taskID, "failed", &msg, nil); err != nil && !errors.Is(err, repo.ErrNotFound) {
		o.logger.Printf("[orchestrator] marking task %d failed: %v", taskID, err)
	}
}
