package repo

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"cityline/internal/domain"
)

type Repo struct {
	DB  *sql.DB
	Now func() time.Time
}

var ErrNotFound = errors.New("not found")

func (r Repo) now() time.Time {
	if r.Now != nil {
		return r.Now()
	}
	return time.Now()
}

func (r Repo) nowStr() string {
	return r.now().UTC().Format(time.RFC3339)
}

// InsertProject persists a new project in pending state and returns its id.
func (r Repo) InsertProject(ctx context.Context, userID int64, name, prompt string) (int64, error) {
	now := r.nowStr()
	res, err := r.DB.ExecContext(ctx,
		`INSERT INTO projects(user_id,name,prompt,status,created_at,updated_at) VALUES (?,?,?,'pending',?,?)`,
		userID, name, prompt, now, now)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func scanProject(row *sql.Row) (domain.Project, error) {
	var p domain.Project
	var step sql.NullString
	err := row.Scan(&p.ID, &p.UserID, &p.Name, &p.Prompt, &p.Status, &step, &p.CreatedAt, &p.UpdatedAt)
	if err == sql.ErrNoRows {
		return p, ErrNotFound
	}
	if step.Valid {
		p.CurrentStep = step.String
	}
	return p, err
}

func (r Repo) GetProject(ctx context.Context, id int64) (domain.Project, error) {
	return scanProject(r.DB.QueryRowContext(ctx,
		`SELECT id,user_id,name,prompt,status,current_step,created_at,updated_at FROM projects WHERE id=?`, id))
}

func (r Repo) ListProjectsByUser(ctx context.Context, userID int64) ([]domain.Project, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT id,user_id,name,prompt,status,current_step,created_at,updated_at FROM projects WHERE user_id=? ORDER BY created_at DESC, id DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var res []domain.Project
	for rows.Next() {
		var p domain.Project
		var step sql.NullString
		if err := rows.Scan(&p.ID, &p.UserID, &p.Name, &p.Prompt, &p.Status, &step, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		if step.Valid {
			p.CurrentStep = step.String
		}
		res = append(res, p)
	}
	return res, rows.Err()
}

// UpdateProjectStatus sets the project status and, when step is non-empty, the
// current step label.
func (r Repo) UpdateProjectStatus(ctx context.Context, id int64, status, step string) error {
	var res sql.Result
	var err error
	if step != "" {
		res, err = r.DB.ExecContext(ctx, `UPDATE projects SET status=?, current_step=?, updated_at=? WHERE id=?`,
			status, step, r.nowStr(), id)
	} else {
		res, err = r.DB.ExecContext(ctx, `UPDATE projects SET status=?, updated_at=? WHERE id=?`,
			status, r.nowStr(), id)
	}
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// InsertBuilding persists one materialized building. Buildings are never
// updated afterwards.
func (r Repo) InsertBuilding(ctx context.Context, b domain.Building) (int64, error) {
	res, err := r.DB.ExecContext(ctx,
		`INSERT INTO buildings(project_id,name,type,position_x,position_y,position_z,width,height,depth,color,created_at)
VALUES (?,?,?,?,?,?,?,?,?,?,?)`,
		b.ProjectID, b.Name, b.Type, b.PositionX, b.PositionY, b.PositionZ,
		b.Width, b.Height, b.Depth, nullable(b.Color), r.nowStr())
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// ListBuildings returns a project's buildings in creation order, which by
// construction equals plan order.
func (r Repo) ListBuildings(ctx context.Context, projectID int64) ([]domain.Building, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT id,project_id,name,type,position_x,position_y,position_z,width,height,depth,color,created_at
FROM buildings WHERE project_id=? ORDER BY id ASC`, projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var res []domain.Building
	for rows.Next() {
		var b domain.Building
		var color sql.NullString
		if err := rows.Scan(&b.ID, &b.ProjectID, &b.Name, &b.Type, &b.PositionX, &b.PositionY, &b.PositionZ,
			&b.Width, &b.Height, &b.Depth, &color, &b.CreatedAt); err != nil {
			return nil, err
		}
		if color.Valid {
			b.Color = color.String
		}
		res = append(res, b)
	}
	return res, rows.Err()
}

func (r Repo) CountBuildings(ctx context.Context, projectID int64) (int, error) {
	var n int
	err := r.DB.QueryRowContext(ctx, `SELECT count(*) FROM buildings WHERE project_id=?`, projectID).Scan(&n)
	return n, err
}

// InsertTask creates a task already in in_progress state with started_at set.
func (r Repo) InsertTask(ctx context.Context, projectID int64, role, model, description string) (int64, error) {
	now := r.nowStr()
	res, err := r.DB.ExecContext(ctx,
		`INSERT INTO tasks(project_id,role,model,description,status,input,started_at,created_at)
VALUES (?,?,?,?,'in_progress',?,?,?)`,
		projectID, role, model, description, description, now, now)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// SetTaskStatus transitions a task to a terminal state, recording output and
// the generated artifact when present.
func (r Repo) SetTaskStatus(ctx context.Context, id int64, status string, output, artifact *string) error {
	res, err := r.DB.ExecContext(ctx,
		`UPDATE tasks SET status=?, output=COALESCE(?,output), artifact=COALESCE(?,artifact), completed_at=? WHERE id=?`,
		status, nullableStringPtr(output), nullableStringPtr(artifact), r.nowStr(), id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// ListTasks returns a project's tasks newest first.
func (r Repo) ListTasks(ctx context.Context, projectID int64) ([]domain.Task, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT id,project_id,role,model,description,status,input,output,artifact,started_at,completed_at,created_at
FROM tasks WHERE project_id=? ORDER BY id DESC`, projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var res []domain.Task
	for rows.Next() {
		var t domain.Task
		var input, output, artifact, startedAt, completedAt sql.NullString
		if err := rows.Scan(&t.ID, &t.ProjectID, &t.Role, &t.Model, &t.Description, &t.Status,
			&input, &output, &artifact, &startedAt, &completedAt, &t.CreatedAt); err != nil {
			return nil, err
		}
		if input.Valid {
			t.Input = &input.String
		}
		if output.Valid {
			t.Output = &output.String
		}
		if artifact.Valid {
			t.Artifact = &artifact.String
		}
		if startedAt.Valid {
			t.StartedAt = &startedAt.String
		}
		if completedAt.Valid {
			t.CompletedAt = &completedAt.String
		}
		res = append(res, t)
	}
	return res, rows.Err()
}

// AppendLog appends one communication-log entry. The table is append-only;
// insertion order is the total order.
func (r Repo) AppendLog(ctx context.Context, projectID int64, from, to, message string) error {
	_, err := r.DB.ExecContext(ctx,
		`INSERT INTO communication_logs(project_id,from_role,to_role,message,ts) VALUES (?,?,?,?,?)`,
		projectID, from, to, message, r.nowStr())
	return err
}

// ListLogs returns a project's communication log newest first.
func (r Repo) ListLogs(ctx context.Context, projectID int64) ([]domain.LogEntry, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT id,project_id,from_role,to_role,message,ts FROM communication_logs WHERE project_id=? ORDER BY id DESC`, projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var res []domain.LogEntry
	for rows.Next() {
		var e domain.LogEntry
		if err := rows.Scan(&e.ID, &e.ProjectID, &e.From, &e.To, &e.Message, &e.Timestamp); err != nil {
			return nil, err
		}
		res = append(res, e)
	}
	return res, rows.Err()
}

func nullable(v string) any {
	if v == "" {
		return nil
	}
	return v
}

func nullableStringPtr(v *string) any {
	if v == nil {
		return nil
	}
	if *v == "" {
		return nil
	}
	return *v
}
