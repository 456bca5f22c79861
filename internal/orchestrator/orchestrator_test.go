package orchestrator_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"sync"
	"testing"

	"cityline/internal/config"
	"cityline/internal/db"
	"cityline/internal/llm"
	"cityline/internal/migrate"
	"cityline/internal/orchestrator"
	"cityline/internal/plan"
	"cityline/internal/repo"
)

// fakeClient replays scripted responses in call order.
type fakeClient struct {
	mu        sync.Mutex
	responses []string
	errs      []error
	calls     int
}

func (f *fakeClient) Complete(ctx context.Context, messages []llm.Message) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	i := f.calls
	f.calls++
	if i < len(f.errs) && f.errs[i] != nil {
		return "", f.errs[i]
	}
	if i < len(f.responses) {
		return f.responses[i], nil
	}
	return "", fmt.Errorf("unexpected completion call %d", i+1)
}

func (f *fakeClient) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

type testEnv struct {
	Orch *orchestrator.Orchestrator
	Repo repo.Repo
	Ctx  context.Context
}

func newTestEnv(t *testing.T, client llm.Client) testEnv {
	t.Helper()
	dir := t.TempDir()
	conn, err := db.Open(db.Config{Workspace: dir})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	if err := migrate.Migrate(context.Background(), conn); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	cfg := config.Default()
	cfg.Narration.DelayMS = 0
	r := repo.Repo{DB: conn}
	o := orchestrator.New(r, client, cfg)
	o.SetLogger(log.New(io.Discard, "", 0))
	return testEnv{Orch: o, Repo: r, Ctx: context.Background()}
}

func (e testEnv) createProject(t *testing.T) int64 {
	t.Helper()
	id, err := e.Repo.InsertProject(e.Ctx, 0, "Test City", "a walkable downtown")
	if err != nil {
		t.Fatalf("insert project: %v", err)
	}
	return id
}

// conformingPlanJSON renders a plan with the exact 10/12/12/10/6 phase counts
// as a fenced model response.
func conformingPlanJSON(t *testing.T) (string, plan.Plan) {
	t.Helper()
	counts := plan.PhaseCounts
	types := [5]string{plan.TypePark, plan.TypeCommercial, plan.TypeResidential, plan.TypeOffice, plan.TypeCommercial}
	p := plan.Plan{Analysis: "dense but walkable"}
	n := 0
	for i, count := range counts {
		ph := plan.Phase{Phase: i + 1, Name: plan.PhaseNames[i]}
		for j := 0; j < count; j++ {
			ph.Buildings = append(ph.Buildings, plan.Building{
				Name:     fmt.Sprintf("Structure %d-%d", i+1, j+1),
				Type:     types[i],
				Position: plan.Position{X: float64((n%10)*6 - 27), Z: float64((n/10)*12 - 24)},
				Size:     plan.Size{Width: 4, Height: 9, Depth: 4},
				Color:    "#3b82f6",
			})
			n++
		}
		p.Phases = append(p.Phases, ph)
	}
	raw, err := json.Marshal(p)
	if err != nil {
		t.Fatalf("marshal plan: %v", err)
	}
	return "```json\n" + string(raw) + "\n```", p
}

func TestRunWithValidPlan(t *testing.T) {
	planJSON, p := conformingPlanJSON(t)
	qaReport := "QA report: all 50 structures verified, zero collisions."
	client := &fakeClient{responses: []string{planJSON, qaReport}}
	env := newTestEnv(t, client)
	pid := env.createProject(t)

	if err := env.Orch.Run(env.Ctx, pid); err != nil {
		t.Fatalf("run: %v", err)
	}
	if client.callCount() != 2 {
		t.Fatalf("llm calls = %d, want 2", client.callCount())
	}

	proj, err := env.Repo.GetProject(env.Ctx, pid)
	if err != nil {
		t.Fatal(err)
	}
	if proj.Status != "completed" {
		t.Fatalf("status = %q, want completed", proj.Status)
	}

	buildings, err := env.Repo.ListBuildings(env.Ctx, pid)
	if err != nil {
		t.Fatal(err)
	}
	if len(buildings) != 50 {
		t.Fatalf("buildings = %d, want 50", len(buildings))
	}
	// creation order equals plan order
	i := 0
	for _, ph := range p.Phases {
		for _, want := range ph.Buildings {
			if buildings[i].Name != want.Name {
				t.Fatalf("building %d: got %q, want %q", i, buildings[i].Name, want.Name)
			}
			i++
		}
	}

	tasks, err := env.Repo.ListTasks(env.Ctx, pid)
	if err != nil {
		t.Fatal(err)
	}
	roles := map[string]bool{}
	for _, tk := range tasks {
		if tk.Status != "completed" {
			t.Fatalf("task %d (%s) status = %q", tk.ID, tk.Role, tk.Status)
		}
		roles[tk.Role] = true
	}
	for _, want := range []string{"architect", "database", "qa"} {
		if !roles[want] {
			t.Fatalf("missing %s task; roles seen: %v", want, roles)
		}
	}
	// qa output stored verbatim; tasks listed newest first so qa leads
	if tasks[0].Role != "qa" || tasks[0].Output == nil || *tasks[0].Output != qaReport {
		t.Fatalf("qa output not stored verbatim: %+v", tasks[0])
	}

	logs, err := env.Repo.ListLogs(env.Ctx, pid)
	if err != nil {
		t.Fatal(err)
	}
	if len(logs) == 0 {
		t.Fatal("expected narration entries")
	}
	if got := logs[0].Message; len(got) < 10 || got[:10] != "Project co" {
		t.Fatalf("newest log entry is not the wrap-up: %q", got)
	}
}

func TestRunFallsBackOnProse(t *testing.T) {
	client := &fakeClient{responses: []string{
		"I am unable to produce a structured plan right now, apologies.",
		"QA done.",
	}}
	env := newTestEnv(t, client)
	pid := env.createProject(t)

	if err := env.Orch.Run(env.Ctx, pid); err != nil {
		t.Fatalf("run: %v", err)
	}
	proj, _ := env.Repo.GetProject(env.Ctx, pid)
	if proj.Status != "completed" {
		t.Fatalf("status = %q, want completed", proj.Status)
	}

	fallback := plan.Fallback()
	buildings, err := env.Repo.ListBuildings(env.Ctx, pid)
	if err != nil {
		t.Fatal(err)
	}
	if len(buildings) != fallback.TotalBuildings() {
		t.Fatalf("buildings = %d, want %d", len(buildings), fallback.TotalBuildings())
	}
	i := 0
	for _, ph := range fallback.Phases {
		for _, want := range ph.Buildings {
			b := buildings[i]
			if b.Name != want.Name || b.Type != want.Type || b.PositionX != want.Position.X || b.Height != want.Size.Height || b.Color != want.Color {
				t.Fatalf("building %d: got %+v, want %+v", i, b, want)
			}
			i++
		}
	}
}

func TestRunFallsBackOnMiscountedPlan(t *testing.T) {
	// Parseable but the per-phase counts are wrong.
	raw := `{"analysis":"tiny","phases":[{"phase":1,"name":"P1","buildings":[{"name":"Solo Hut","type":"park"}]}]}`
	client := &fakeClient{responses: []string{raw, "QA done."}}
	env := newTestEnv(t, client)
	pid := env.createProject(t)

	if err := env.Orch.Run(env.Ctx, pid); err != nil {
		t.Fatalf("run: %v", err)
	}
	n, err := env.Repo.CountBuildings(env.Ctx, pid)
	if err != nil {
		t.Fatal(err)
	}
	if n != plan.Fallback().TotalBuildings() {
		t.Fatalf("buildings = %d, want fallback count %d", n, plan.Fallback().TotalBuildings())
	}
}

func TestRunArchitectFailure(t *testing.T) {
	client := &fakeClient{errs: []error{errors.New("backend unreachable")}}
	env := newTestEnv(t, client)
	pid := env.createProject(t)

	if err := env.Orch.Run(env.Ctx, pid); err == nil {
		t.Fatal("expected run error")
	}
	proj, _ := env.Repo.GetProject(env.Ctx, pid)
	if proj.Status != "failed" {
		t.Fatalf("status = %q, want failed", proj.Status)
	}
	n, _ := env.Repo.CountBuildings(env.Ctx, pid)
	if n != 0 {
		t.Fatalf("buildings = %d, want 0", n)
	}
	tasks, _ := env.Repo.ListTasks(env.Ctx, pid)
	if len(tasks) == 0 || tasks[0].Role != "architect" || tasks[0].Status != "failed" {
		t.Fatalf("expected failed architect task, got %+v", tasks)
	}
}

func TestRunQAFailureKeepsBuildings(t *testing.T) {
	client := &fakeClient{
		responses: []string{"no structured output"},
		errs:      []error{nil, errors.New("timeout waiting for completion")},
	}
	env := newTestEnv(t, client)
	pid := env.createProject(t)

	if err := env.Orch.Run(env.Ctx, pid); err == nil {
		t.Fatal("expected run error")
	}
	proj, _ := env.Repo.GetProject(env.Ctx, pid)
	if proj.Status != "failed" {
		t.Fatalf("status = %q, want failed", proj.Status)
	}
	// buildings created before the failure stay
	n, _ := env.Repo.CountBuildings(env.Ctx, pid)
	if n != plan.Fallback().TotalBuildings() {
		t.Fatalf("buildings = %d, want %d", n, plan.Fallback().TotalBuildings())
	}
	tasks, _ := env.Repo.ListTasks(env.Ctx, pid)
	if tasks[0].Role != "qa" || tasks[0].Status != "failed" {
		t.Fatalf("expected failed qa task first, got %+v", tasks[0])
	}
}

func TestRunAbortsWhenBuildingInsertFails(t *testing.T) {
	planJSON, p := conformingPlanJSON(t)
	client := &fakeClient{responses: []string{planJSON, "QA done."}}
	env := newTestEnv(t, client)
	pid := env.createProject(t)

	// Reject the 25th insert to simulate storage giving out mid-phase.
	if _, err := env.Repo.DB.Exec(`CREATE TRIGGER building_cap BEFORE INSERT ON buildings
		WHEN (SELECT COUNT(*) FROM buildings) >= 24
		BEGIN SELECT RAISE(ABORT, 'storage exhausted'); END`); err != nil {
		t.Fatalf("create trigger: %v", err)
	}

	if err := env.Orch.Run(env.Ctx, pid); err == nil {
		t.Fatal("expected run error")
	}
	proj, _ := env.Repo.GetProject(env.Ctx, pid)
	if proj.Status != "failed" {
		t.Fatalf("status = %q, want failed", proj.Status)
	}

	// Exactly the first 24 planned buildings survive, in plan order.
	buildings, err := env.Repo.ListBuildings(env.Ctx, pid)
	if err != nil {
		t.Fatal(err)
	}
	if len(buildings) != 24 {
		t.Fatalf("buildings = %d, want 24", len(buildings))
	}
	i := 0
	for _, ph := range p.Phases {
		for _, want := range ph.Buildings {
			if i == len(buildings) {
				break
			}
			if buildings[i].Name != want.Name {
				t.Fatalf("building %d: got %q, want %q", i, buildings[i].Name, want.Name)
			}
			i++
		}
	}
	if client.callCount() != 1 {
		t.Fatalf("llm calls = %d, want 1", client.callCount())
	}
}

func TestRunMissingProject(t *testing.T) {
	env := newTestEnv(t, &fakeClient{})
	if err := env.Orch.Run(env.Ctx, 424242); !errors.Is(err, repo.ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}

func TestSummarizeEmptyLogSkipsModel(t *testing.T) {
	client := &fakeClient{}
	env := newTestEnv(t, client)
	pid := env.createProject(t)

	s := env.Orch.Summarize(env.Ctx, pid)
	if s.Conclusion != "No debate data available yet." {
		t.Fatalf("conclusion = %q", s.Conclusion)
	}
	if s.KeyArguments == nil || s.Agreements == nil || s.Disagreements == nil {
		t.Fatalf("expected empty slices, got %+v", s)
	}
	if client.callCount() != 0 {
		t.Fatalf("llm calls = %d, want 0", client.callCount())
	}
}

func TestSummarizeParsesResponse(t *testing.T) {
	client := &fakeClient{responses: []string{
		`{"keyArguments":[{"llm":"GPT-4 (Architect)","argument":"grid layout scales"}],"agreements":["phased build"],"disagreements":[],"conclusion":"consensus reached"}`,
	}}
	env := newTestEnv(t, client)
	pid := env.createProject(t)
	if err := env.Repo.AppendLog(env.Ctx, pid, "System", "All", "kickoff"); err != nil {
		t.Fatal(err)
	}

	s := env.Orch.Summarize(env.Ctx, pid)
	if s.Conclusion != "consensus reached" {
		t.Fatalf("conclusion = %q", s.Conclusion)
	}
	if len(s.KeyArguments) != 1 || s.KeyArguments[0].Role != "GPT-4 (Architect)" {
		t.Fatalf("key arguments = %+v", s.KeyArguments)
	}
	if s.Disagreements == nil {
		t.Fatal("nil disagreements should be normalized to empty")
	}
}

func TestSummarizeNeverFails(t *testing.T) {
	cases := map[string]*fakeClient{
		"model error":   {errs: []error{errors.New("boom")}},
		"prose response": {responses: []string{"the team mostly agreed on things"}},
	}
	for name, client := range cases {
		t.Run(name, func(t *testing.T) {
			env := newTestEnv(t, client)
			pid := env.createProject(t)
			if err := env.Repo.AppendLog(env.Ctx, pid, "System", "All", "kickoff"); err != nil {
				t.Fatal(err)
			}
			s := env.Orch.Summarize(env.Ctx, pid)
			if s.Conclusion != "Failed to generate summary." {
				t.Fatalf("conclusion = %q", s.Conclusion)
			}
		})
	}
}
