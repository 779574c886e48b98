package sqlite

import (
	"database/sql"
)

// Scanner interface defines the common scanning behavior for both sql.Row and sql.Rows
type Scanner interface {
	Scan(dest ...interface{}) error
}

// Rows interface defines the common behavior for sql.Rows
type Rows interface {
	Next() bool
	Scan(dest ...interface{}) error
	Err() error
}

// ScanAll drains rows through a single-row scan function
func ScanAll[T any](rows Rows, scan func(Scanner) (*T, error)) ([]*T, error) {
	var results []*T
	for rows.Next() {
		item, err := scan(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, item)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return results, nil
}

// ScanUser scans a single user from a database row
func ScanUser(scanner Scanner) (*User, error) {
	user := &User{}
	var createdAt string

	if err := scanner.Scan(&user.ID, &user.Email, &createdAt); err != nil {
		return nil, err
	}

	var err error
	if user.CreatedAt, err = ParseTimeFromDB(createdAt); err != nil {
		return nil, err
	}
	return user, nil
}

// ScanAPIToken scans a single token row
func ScanAPIToken(scanner Scanner) (*APIToken, error) {
	token := &APIToken{}
	var expiresAt, createdAt string

	if err := scanner.Scan(&token.TokenHash, &token.UserID, &expiresAt, &createdAt); err != nil {
		return nil, err
	}

	var err error
	if token.ExpiresAt, err = ParseTimeFromDB(expiresAt); err != nil {
		return nil, err
	}
	if token.CreatedAt, err = ParseTimeFromDB(createdAt); err != nil {
		return nil, err
	}
	return token, nil
}

// ScanProject scans a single project from a database row
func ScanProject(scanner Scanner) (*Project, error) {
	project := &Project{}
	var createdAt string

	err := scanner.Scan(
		&project.ID,
		&project.Name,
		&project.Description,
		&project.OwnerID,
		&createdAt,
	)
	if err != nil {
		return nil, err
	}

	if project.CreatedAt, err = ParseTimeFromDB(createdAt); err != nil {
		return nil, err
	}
	return project, nil
}

// ScanProjects scans multiple projects from database rows
func ScanProjects(rows Rows) ([]*Project, error) {
	return ScanAll(rows, ScanProject)
}

// ScanProjectMember scans a single membership row
func ScanProjectMember(scanner Scanner) (*ProjectMember, error) {
	member := &ProjectMember{}
	var createdAt string

	if err := scanner.Scan(&member.ProjectID, &member.UserID, &member.Role, &createdAt); err != nil {
		return nil, err
	}

	var err error
	if member.CreatedAt, err = ParseTimeFromDB(createdAt); err != nil {
		return nil, err
	}
	return member, nil
}

// ScanProjectMembers scans multiple membership rows
func ScanProjectMembers(rows Rows) ([]*ProjectMember, error) {
	return ScanAll(rows, ScanProjectMember)
}

// ScanTask scans a single task from a database row
func ScanTask(scanner Scanner) (*Task, error) {
	task := &Task{}
	var parentTaskID sql.NullString
	var createdAt, updatedAt string

	err := scanner.Scan(
		&task.ID,
		&task.ProjectID,
		&parentTaskID,
		&task.Title,
		&task.Description,
		&task.StartDate,
		&task.EndDate,
		&task.Status,
		&task.HierarchyType,
		&task.CreatedBy,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if parentTaskID.Valid {
		task.ParentTaskID = &parentTaskID.String
	}
	if task.CreatedAt, err = ParseTimeFromDB(createdAt); err != nil {
		return nil, err
	}
	if task.UpdatedAt, err = ParseTimeFromDB(updatedAt); err != nil {
		return nil, err
	}
	return task, nil
}

// ScanTasks scans multiple tasks from database rows
func ScanTasks(rows Rows) ([]*Task, error) {
	return ScanAll(rows, ScanTask)
}
