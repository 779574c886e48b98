package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"task-planner/internal/errors"
	"task-planner/internal/repository/sqlite/migrations"

	_ "modernc.org/sqlite"
)

// Repository defines the interface for database operations
type Repository interface {
	// Users and tokens
	CreateUser(ctx context.Context, user *User) error
	GetUser(ctx context.Context, id string) (*User, error)
	GetUserByEmail(ctx context.Context, email string) (*User, error)
	CreateAPIToken(ctx context.Context, token *APIToken) error
	FindAPIToken(ctx context.Context, tokenHash string) (*APIToken, error)
	DeleteAPIToken(ctx context.Context, tokenHash string) error

	// Projects and membership
	CreateProject(ctx context.Context, project *Project) error
	GetProject(ctx context.Context, id string) (*Project, error)
	ListProjectsForUser(ctx context.Context, userID string) ([]*Project, error)
	AddMember(ctx context.Context, member *ProjectMember) error
	FindMembership(ctx context.Context, projectID, userID string) (*ProjectMember, error)
	ListMembers(ctx context.Context, projectID string) ([]*ProjectMember, error)

	// Tasks
	CreateTask(ctx context.Context, task *Task) error
	FindTask(ctx context.Context, id, projectID string) (*Task, error)
	ListSubtasks(ctx context.Context, parentTaskID, projectID string) ([]*Task, error)
	UpdateTaskStatus(ctx context.Context, id, projectID, status string) error
	UpsertTasks(ctx context.Context, tasks []*Task) error

	// Utility
	Close() error
}

// SQLiteRepository implements the Repository interface
type SQLiteRepository struct {
	db  *sql.DB
	now func() time.Time
}

const taskColumns = `id, project_id, parent_task_id, title, description, start_date, end_date,
	status, hierarchy_type, created_by, created_at, updated_at`

// New creates a new SQLite repository instance and applies pending migrations
func New(dbPath string) (*SQLiteRepository, error) {
	db, err := sql.Open("sqlite", buildDSN(dbPath))
	if err != nil {
		return nil, errors.NewStoreError("open database", err)
	}

	// Every connection to ":memory:" gets its own empty database
	if isMemory(dbPath) {
		db.SetMaxOpenConns(1)
	}

	if err := migrations.RunMigrations(context.Background(), db); err != nil {
		db.Close()
		return nil, errors.NewStoreError("run migrations", err)
	}

	return &SQLiteRepository{db: db, now: time.Now}, nil
}

// DB exposes the underlying handle for maintenance commands
func (r *SQLiteRepository) DB() *sql.DB {
	return r.db
}

func isMemory(dbPath string) bool {
	return dbPath == ":memory:" || strings.HasPrefix(dbPath, "file::memory:")
}

func buildDSN(dbPath string) string {
	sep := "?"
	if strings.Contains(dbPath, "?") {
		sep = "&"
	}
	return dbPath + sep + "_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
}

// Close closes the database connection
func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}

// withTx runs fn inside a transaction, rolling back on any error
func (r *SQLiteRepository) withTx(ctx context.Context, operation string, fn func(tx *sql.Tx) error) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return HandleDatabaseError("begin "+operation, err)
	}

	if err := fn(tx); err != nil {
		tx.Rollback()
		return err
	}

	if err := tx.Commit(); err != nil {
		return HandleDatabaseError("commit "+operation, err)
	}
	return nil
}

// CreateUser inserts a user; emails are unique
func (r *SQLiteRepository) CreateUser(ctx context.Context, user *User) error {
	if user.CreatedAt.IsZero() {
		user.CreatedAt = r.now().UTC()
	}

	query := `INSERT INTO users (id, email, created_at) VALUES (?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query, user.ID, user.Email, FormatTimeForDB(user.CreatedAt))
	if err != nil {
		if IsUniqueViolation(err) {
			return errors.NewConflictError("user", "email already registered")
		}
		return HandleDatabaseError("create user", err)
	}
	return nil
}

// GetUser retrieves a user by ID
func (r *SQLiteRepository) GetUser(ctx context.Context, id string) (*User, error) {
	query := `SELECT id, email, created_at FROM users WHERE id = ?`
	return QuerySingle(ctx, r.db, query, ScanUser, "user", id, id)
}

// GetUserByEmail retrieves a user by email address
func (r *SQLiteRepository) GetUserByEmail(ctx context.Context, email string) (*User, error) {
	query := `SELECT id, email, created_at FROM users WHERE email = ?`
	return QuerySingle(ctx, r.db, query, ScanUser, "user", email, email)
}

// CreateAPIToken stores a token hash for a user
func (r *SQLiteRepository) CreateAPIToken(ctx context.Context, token *APIToken) error {
	if token.CreatedAt.IsZero() {
		token.CreatedAt = r.now().UTC()
	}

	query := `
	INSERT INTO api_tokens (token_hash, user_id, expires_at, created_at)
	VALUES (?, ?, ?, ?)`

	_, err := r.db.ExecContext(ctx, query, token.TokenHash, token.UserID,
		FormatTimeForDB(token.ExpiresAt), FormatTimeForDB(token.CreatedAt))
	if err != nil {
		if IsForeignKeyViolation(err) {
			return errors.NewNotFoundError("user", token.UserID)
		}
		return HandleDatabaseError("create api token", err)
	}
	return nil
}

// FindAPIToken retrieves a token by its hash
func (r *SQLiteRepository) FindAPIToken(ctx context.Context, tokenHash string) (*APIToken, error) {
	query := `
	SELECT token_hash, user_id, expires_at, created_at
	FROM api_tokens
	WHERE token_hash = ?`

	return QuerySingle(ctx, r.db, query, ScanAPIToken, "api token", "<redacted>", tokenHash)
}

// DeleteAPIToken removes a token by its hash
func (r *SQLiteRepository) DeleteAPIToken(ctx context.Context, tokenHash string) error {
	query := `DELETE FROM api_tokens WHERE token_hash = ?`
	return ExecuteWithRowsAffected(ctx, r.db, query, "api token", "<redacted>", tokenHash)
}

// CreateProject inserts a project and its owner membership in one transaction
func (r *SQLiteRepository) CreateProject(ctx context.Context, project *Project) error {
	if project.CreatedAt.IsZero() {
		project.CreatedAt = r.now().UTC()
	}
	createdAt := FormatTimeForDB(project.CreatedAt)

	return r.withTx(ctx, "create project", func(tx *sql.Tx) error {
		query := `
		INSERT INTO projects (id, name, description, owner_id, created_at)
		VALUES (?, ?, ?, ?, ?)`

		_, err := tx.ExecContext(ctx, query, project.ID, project.Name, project.Description, project.OwnerID, createdAt)
		if err != nil {
			if IsForeignKeyViolation(err) {
				return errors.NewNotFoundError("user", project.OwnerID)
			}
			return HandleDatabaseError("create project", err)
		}

		_, err = Execute(ctx, tx, "add project owner",
			`INSERT INTO project_members (project_id, user_id, role, created_at) VALUES (?, ?, 'owner', ?)`,
			project.ID, project.OwnerID, createdAt)
		return err
	})
}

// GetProject retrieves a project by ID
func (r *SQLiteRepository) GetProject(ctx context.Context, id string) (*Project, error) {
	query := `
	SELECT id, name, description, owner_id, created_at
	FROM projects
	WHERE id = ?`

	return QuerySingle(ctx, r.db, query, ScanProject, "project", id, id)
}

// ListProjectsForUser retrieves every project the user is a member of
func (r *SQLiteRepository) ListProjectsForUser(ctx context.Context, userID string) ([]*Project, error) {
	query := `
	SELECT p.id, p.name, p.description, p.owner_id, p.created_at
	FROM projects p
	JOIN project_members m ON m.project_id = p.id
	WHERE m.user_id = ?
	ORDER BY p.created_at ASC, p.name ASC`

	return QueryMultiple(ctx, r.db, query, ScanProjects, "projects", userID)
}

// AddMember inserts a membership row
func (r *SQLiteRepository) AddMember(ctx context.Context, member *ProjectMember) error {
	if member.CreatedAt.IsZero() {
		member.CreatedAt = r.now().UTC()
	}

	query := `
	INSERT INTO project_members (project_id, user_id, role, created_at)
	VALUES (?, ?, ?, ?)`

	_, err := r.db.ExecContext(ctx, query, member.ProjectID, member.UserID, member.Role, FormatTimeForDB(member.CreatedAt))
	if err != nil {
		switch {
		case IsUniqueViolation(err):
			return errors.NewConflictError("membership", "already a member")
		case IsForeignKeyViolation(err):
			return errors.NewNotFoundError("user", member.UserID).
				WithContext("project_id", member.ProjectID)
		}
		return HandleDatabaseError("add member", err)
	}
	return nil
}

// FindMembership retrieves the membership of a user in a project
func (r *SQLiteRepository) FindMembership(ctx context.Context, projectID, userID string) (*ProjectMember, error) {
	query := `
	SELECT project_id, user_id, role, created_at
	FROM project_members
	WHERE project_id = ? AND user_id = ?`

	return QuerySingle(ctx, r.db, query, ScanProjectMember, "membership",
		fmt.Sprintf("%s/%s", projectID, userID), projectID, userID)
}

// ListMembers retrieves all members of a project
func (r *SQLiteRepository) ListMembers(ctx context.Context, projectID string) ([]*ProjectMember, error) {
	query := `
	SELECT project_id, user_id, role, created_at
	FROM project_members
	WHERE project_id = ?
	ORDER BY created_at ASC`

	return QueryMultiple(ctx, r.db, query, ScanProjectMembers, "members", projectID)
}

// CreateTask inserts a goal, task or subtask
func (r *SQLiteRepository) CreateTask(ctx context.Context, task *Task) error {
	now := r.now().UTC()
	if task.CreatedAt.IsZero() {
		task.CreatedAt = now
	}
	task.UpdatedAt = task.CreatedAt

	query := `INSERT INTO tasks (` + taskColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := r.db.ExecContext(ctx, query, task.ID, task.ProjectID, NullableString(task.ParentTaskID),
		task.Title, task.Description, task.StartDate, task.EndDate, task.Status, task.HierarchyType,
		task.CreatedBy, FormatTimeForDB(task.CreatedAt), FormatTimeForDB(task.UpdatedAt))
	if err != nil {
		switch {
		case IsUniqueViolation(err):
			return errors.NewConflictError("task", "id already exists")
		case IsForeignKeyViolation(err):
			return errors.NewIntegrityError("task references a missing project or parent", err)
		}
		return HandleDatabaseError("create task", err)
	}
	return nil
}

// FindTask retrieves a task by ID, scoped to a project
func (r *SQLiteRepository) FindTask(ctx context.Context, id, projectID string) (*Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE id = ? AND project_id = ?`
	return QuerySingle(ctx, r.db, query, ScanTask, "task", id, id, projectID)
}

// ListSubtasks retrieves the direct children of a task ordered by start date
func (r *SQLiteRepository) ListSubtasks(ctx context.Context, parentTaskID, projectID string) ([]*Task, error) {
	query := `SELECT ` + taskColumns + `
	FROM tasks
	WHERE parent_task_id = ? AND project_id = ?
	ORDER BY start_date ASC, title ASC`

	return QueryMultiple(ctx, r.db, query, ScanTasks, "tasks", parentTaskID, projectID)
}

// UpdateTaskStatus sets the status of a task within a project
func (r *SQLiteRepository) UpdateTaskStatus(ctx context.Context, id, projectID, status string) error {
	query := `UPDATE tasks SET status = ?, updated_at = ? WHERE id = ? AND project_id = ?`
	return ExecuteWithRowsAffected(ctx, r.db, query, "task", id,
		status, FormatTimeForDB(r.now()), id, projectID)
}

// UpsertTasks inserts or updates tasks by id in a single transaction.
// Existing rows keep their status, creator and position in the tree;
// an id that already belongs to another project or parent aborts the whole batch.
func (r *SQLiteRepository) UpsertTasks(ctx context.Context, tasks []*Task) error {
	now := r.now().UTC()

	query := `INSERT INTO tasks (` + taskColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	ON CONFLICT(id) DO UPDATE SET
		title = excluded.title,
		description = excluded.description,
		start_date = excluded.start_date,
		end_date = excluded.end_date,
		updated_at = excluded.updated_at
	WHERE tasks.project_id = excluded.project_id
		AND tasks.parent_task_id IS excluded.parent_task_id`

	return r.withTx(ctx, "upsert tasks", func(tx *sql.Tx) error {
		for _, task := range tasks {
			if task.CreatedAt.IsZero() {
				task.CreatedAt = now
			}
			task.UpdatedAt = now

			result, err := tx.ExecContext(ctx, query, task.ID, task.ProjectID, NullableString(task.ParentTaskID),
				task.Title, task.Description, task.StartDate, task.EndDate, task.Status, task.HierarchyType,
				task.CreatedBy, FormatTimeForDB(task.CreatedAt), FormatTimeForDB(task.UpdatedAt))
			if err != nil {
				if IsForeignKeyViolation(err) {
					return errors.NewIntegrityError("task references a missing project or parent", err).
						WithContext("task_id", task.ID)
				}
				return HandleDatabaseError("upsert task", err)
			}

			rows, err := result.RowsAffected()
			if err != nil {
				return HandleDatabaseError("get rows affected", err)
			}
			if rows == 0 {
				return errors.NewIntegrityError("task id belongs to a different project or parent", nil).
					WithContext("task_id", task.ID)
			}
		}
		return nil
	})
}
