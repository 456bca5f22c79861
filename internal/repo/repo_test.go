package repo_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"cityline/internal/db"
	"cityline/internal/domain"
	"cityline/internal/migrate"
	"cityline/internal/repo"
)

func newTestRepo(t *testing.T) (repo.Repo, context.Context) {
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
	r := repo.Repo{DB: conn}
	return r, context.Background()
}

func TestProjectLifecycle(t *testing.T) {
	r, ctx := newTestRepo(t)
	id, err := r.InsertProject(ctx, 7, "Metro", "a dense modern city")
	if err != nil {
		t.Fatalf("insert: %v", err)
	}
	p, err := r.GetProject(ctx, id)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if p.Status != "pending" || p.UserID != 7 || p.Name != "Metro" {
		t.Fatalf("unexpected project: %+v", p)
	}
	if _, err := time.Parse(time.RFC3339, p.CreatedAt); err != nil {
		t.Fatalf("created_at not RFC3339: %q", p.CreatedAt)
	}

	if err := r.UpdateProjectStatus(ctx, id, "in_progress", "architect"); err != nil {
		t.Fatalf("status: %v", err)
	}
	p, _ = r.GetProject(ctx, id)
	if p.Status != "in_progress" || p.CurrentStep != "architect" {
		t.Fatalf("unexpected after update: %+v", p)
	}

	// empty step leaves the previous label in place
	if err := r.UpdateProjectStatus(ctx, id, "completed", ""); err != nil {
		t.Fatalf("complete: %v", err)
	}
	p, _ = r.GetProject(ctx, id)
	if p.Status != "completed" || p.CurrentStep != "architect" {
		t.Fatalf("unexpected after complete: %+v", p)
	}
}

func TestProjectNotFound(t *testing.T) {
	r, ctx := newTestRepo(t)
	if _, err := r.GetProject(ctx, 999); !errors.Is(err, repo.ErrNotFound) {
		t.Fatalf("get: want ErrNotFound, got %v", err)
	}
	if err := r.UpdateProjectStatus(ctx, 999, "failed", ""); !errors.Is(err, repo.ErrNotFound) {
		t.Fatalf("update: want ErrNotFound, got %v", err)
	}
}

func TestListProjectsByUser(t *testing.T) {
	r, ctx := newTestRepo(t)
	if _, err := r.InsertProject(ctx, 1, "Mine", "p"); err != nil {
		t.Fatal(err)
	}
	if _, err := r.InsertProject(ctx, 2, "Theirs", "p"); err != nil {
		t.Fatal(err)
	}
	if _, err := r.InsertProject(ctx, 1, "Mine too", "p"); err != nil {
		t.Fatal(err)
	}
	items, err := r.ListProjectsByUser(ctx, 1)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("len = %d, want 2", len(items))
	}
	// newest first
	if items[0].Name != "Mine too" || items[1].Name != "Mine" {
		t.Fatalf("unexpected order: %q, %q", items[0].Name, items[1].Name)
	}
}

func TestBuildingsCreationOrder(t *testing.T) {
	r, ctx := newTestRepo(t)
	pid, _ := r.InsertProject(ctx, 0, "City", "p")
	names := []string{"First", "Second", "Third"}
	for _, n := range names {
		if _, err := r.InsertBuilding(ctx, domain.Building{
			ProjectID: pid, Name: n, Type: "office",
			Width: 3, Height: 10, Depth: 3, Color: "#3b82f6",
		}); err != nil {
			t.Fatalf("insert %s: %v", n, err)
		}
	}
	items, err := r.ListBuildings(ctx, pid)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(items) != len(names) {
		t.Fatalf("len = %d", len(items))
	}
	for i, b := range items {
		if b.Name != names[i] {
			t.Fatalf("position %d: got %q, want %q", i, b.Name, names[i])
		}
	}
	n, err := r.CountBuildings(ctx, pid)
	if err != nil || n != 3 {
		t.Fatalf("count = %d, %v", n, err)
	}
}

func TestTaskTerminalTransition(t *testing.T) {
	r, ctx := newTestRepo(t)
	pid, _ := r.InsertProject(ctx, 0, "City", "p")
	id, err := r.InsertTask(ctx, pid, "architect", "GPT-4 (Architect)", "draft the plan")
	if err != nil {
		t.Fatalf("insert: %v", err)
	}
	tasks, _ := r.ListTasks(ctx, pid)
	if len(tasks) != 1 {
		t.Fatalf("len = %d", len(tasks))
	}
	tk := tasks[0]
	if tk.Status != "in_progress" || tk.StartedAt == nil || tk.CompletedAt != nil {
		t.Fatalf("unexpected initial task: %+v", tk)
	}
	if tk.Input == nil || *tk.Input != "draft the plan" {
		t.Fatalf("input not captured: %+v", tk.Input)
	}

	out := "the plan text"
	if err := r.SetTaskStatus(ctx, id, "completed", &out, nil); err != nil {
		t.Fatalf("complete: %v", err)
	}
	tasks, _ = r.ListTasks(ctx, pid)
	tk = tasks[0]
	if tk.Status != "completed" || tk.Output == nil || *tk.Output != out {
		t.Fatalf("unexpected completed task: %+v", tk)
	}
	if tk.CompletedAt == nil {
		t.Fatal("completed_at not set")
	}

	if err := r.SetTaskStatus(ctx, 999, "failed", nil, nil); !errors.Is(err, repo.ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}

func TestTasksNewestFirst(t *testing.T) {
	r, ctx := newTestRepo(t)
	pid, _ := r.InsertProject(ctx, 0, "City", "p")
	_, _ = r.InsertTask(ctx, pid, "architect", "m", "first")
	_, _ = r.InsertTask(ctx, pid, "qa", "m", "second")
	tasks, err := r.ListTasks(ctx, pid)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(tasks) != 2 || tasks[0].Description != "second" {
		t.Fatalf("unexpected order: %+v", tasks)
	}
}

func TestLogsAppendOnlyNewestFirst(t *testing.T) {
	r, ctx := newTestRepo(t)
	pid, _ := r.InsertProject(ctx, 0, "City", "p")
	msgs := []string{"one", "two", "three"}
	for _, m := range msgs {
		if err := r.AppendLog(ctx, pid, "System", "All", m); err != nil {
			t.Fatalf("append: %v", err)
		}
	}
	entries, err := r.ListLogs(ctx, pid)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("len = %d", len(entries))
	}
	for i, e := range entries {
		if e.Message != msgs[len(msgs)-1-i] {
			t.Fatalf("position %d: got %q", i, e.Message)
		}
	}
}
