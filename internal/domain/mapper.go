package domain

import (
	"task-planner/internal/repository/sqlite"
)

// TaskMapper handles conversion between domain and database Task models.
type TaskMapper struct{}

// NewTaskMapper creates a new TaskMapper instance.
func NewTaskMapper() *TaskMapper {
	return &TaskMapper{}
}

// ToDatabase converts a domain Task to a database Task.
func (m *TaskMapper) ToDatabase(domainTask Task) sqlite.Task {
	return sqlite.Task{
		ID:            domainTask.ID,
		ProjectID:     domainTask.ProjectID,
		ParentTaskID:  domainTask.ParentTaskID,
		Title:         domainTask.Title,
		Description:   domainTask.Description,
		StartDate:     domainTask.StartDate,
		EndDate:       domainTask.EndDate,
		Status:        domainTask.Status,
		HierarchyType: string(domainTask.HierarchyType),
		CreatedBy:     domainTask.CreatedBy,
		CreatedAt:     domainTask.CreatedAt,
		UpdatedAt:     domainTask.UpdatedAt,
	}
}

// FromDatabase converts a database Task to a domain Task.
func (m *TaskMapper) FromDatabase(dbTask sqlite.Task) Task {
	return Task{
		ID:            dbTask.ID,
		ProjectID:     dbTask.ProjectID,
		ParentTaskID:  dbTask.ParentTaskID,
		Title:         dbTask.Title,
		Description:   dbTask.Description,
		StartDate:     dbTask.StartDate,
		EndDate:       dbTask.EndDate,
		Status:        dbTask.Status,
		HierarchyType: HierarchyType(dbTask.HierarchyType),
		CreatedBy:     dbTask.CreatedBy,
		CreatedAt:     dbTask.CreatedAt,
		UpdatedAt:     dbTask.UpdatedAt,
	}
}

// ToDatabaseSlice converts a slice of domain Tasks to database Tasks.
func (m *TaskMapper) ToDatabaseSlice(domainTasks []Task) []sqlite.Task {
	dbTasks := make([]sqlite.Task, len(domainTasks))
	for i, task := range domainTasks {
		dbTasks[i] = m.ToDatabase(task)
	}
	return dbTasks
}

// FromDatabaseSlice converts a slice of database Tasks to domain Tasks.
func (m *TaskMapper) FromDatabaseSlice(dbTasks []*sqlite.Task) []Task {
	domainTasks := make([]Task, len(dbTasks))
	for i, task := range dbTasks {
		domainTasks[i] = m.FromDatabase(*task)
	}
	return domainTasks
}

// SubtaskRecordMapper converts between regeneration records and database Tasks.
type SubtaskRecordMapper struct{}

// NewSubtaskRecordMapper creates a new SubtaskRecordMapper instance.
func NewSubtaskRecordMapper() *SubtaskRecordMapper {
	return &SubtaskRecordMapper{}
}

// ToDatabase converts a record to a subtask row created by createdBy.
func (m *SubtaskRecordMapper) ToDatabase(record SubtaskRecord, createdBy string) sqlite.Task {
	parentID := record.ParentTaskID
	return sqlite.Task{
		ID:            record.ID,
		ProjectID:     record.ProjectID,
		ParentTaskID:  &parentID,
		Title:         record.Title,
		Description:   record.Description,
		StartDate:     record.StartTime,
		EndDate:       record.EndTime,
		Status:        record.Status,
		HierarchyType: string(HierarchySubtask),
		CreatedBy:     createdBy,
	}
}

// FromDatabase converts a stored subtask row to a record.
func (m *SubtaskRecordMapper) FromDatabase(dbTask sqlite.Task) SubtaskRecord {
	record := SubtaskRecord{
		ID:          dbTask.ID,
		Title:       dbTask.Title,
		Description: dbTask.Description,
		StartTime:   dbTask.StartDate,
		EndTime:     dbTask.EndDate,
		ProjectID:   dbTask.ProjectID,
		Status:      dbTask.Status,
	}
	if dbTask.ParentTaskID != nil {
		record.ParentTaskID = *dbTask.ParentTaskID
	}
	return record
}

// FromDatabaseSlice converts stored subtask rows to records.
func (m *SubtaskRecordMapper) FromDatabaseSlice(dbTasks []*sqlite.Task) []SubtaskRecord {
	records := make([]SubtaskRecord, len(dbTasks))
	for i, task := range dbTasks {
		records[i] = m.FromDatabase(*task)
	}
	return records
}

// ProjectMapper handles conversion between domain and database Project models.
type ProjectMapper struct{}

// NewProjectMapper creates a new ProjectMapper instance.
func NewProjectMapper() *ProjectMapper {
	return &ProjectMapper{}
}

// ToDatabase converts a domain Project to a database Project.
func (m *ProjectMapper) ToDatabase(p Project) sqlite.Project {
	return sqlite.Project{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		OwnerID:     p.OwnerID,
		CreatedAt:   p.CreatedAt,
	}
}

// FromDatabase converts a database Project to a domain Project.
func (m *ProjectMapper) FromDatabase(p sqlite.Project) Project {
	return Project{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		OwnerID:     p.OwnerID,
		CreatedAt:   p.CreatedAt,
	}
}

// FromDatabaseSlice converts a slice of database Projects to domain Projects.
func (m *ProjectMapper) FromDatabaseSlice(dbProjects []*sqlite.Project) []Project {
	projects := make([]Project, len(dbProjects))
	for i, p := range dbProjects {
		projects[i] = m.FromDatabase(*p)
	}
	return projects
}

// MembershipMapper handles conversion between domain Memberships and project_members rows.
type MembershipMapper struct{}

// NewMembershipMapper creates a new MembershipMapper instance.
func NewMembershipMapper() *MembershipMapper {
	return &MembershipMapper{}
}

// ToDatabase converts a domain Membership to a database ProjectMember.
func (m *MembershipMapper) ToDatabase(mb Membership) sqlite.ProjectMember {
	return sqlite.ProjectMember{
		ProjectID: mb.ProjectID,
		UserID:    mb.UserID,
		Role:      string(mb.Role),
		CreatedAt: mb.CreatedAt,
	}
}

// FromDatabase converts a database ProjectMember to a domain Membership.
func (m *MembershipMapper) FromDatabase(pm sqlite.ProjectMember) Membership {
	return Membership{
		ProjectID: pm.ProjectID,
		UserID:    pm.UserID,
		Role:      Role(pm.Role),
		CreatedAt: pm.CreatedAt,
	}
}

// Mapper provides a unified interface for all mapping operations.
type Mapper struct {
	Task          *TaskMapper
	SubtaskRecord *SubtaskRecordMapper
	Project       *ProjectMapper
	Membership    *MembershipMapper
}

// NewMapper creates a new Mapper instance with all sub-mappers.
func NewMapper() *Mapper {
	return &Mapper{
		Task:          NewTaskMapper(),
		SubtaskRecord: NewSubtaskRecordMapper(),
		Project:       NewProjectMapper(),
		Membership:    NewMembershipMapper(),
	}
}
