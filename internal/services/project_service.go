package services

import (
	"context"
	"strings"

	log "github.com/sirupsen/logrus"

	"task-planner/internal/domain"
	"task-planner/internal/errors"
	"task-planner/internal/repository/sqlite"
	"task-planner/internal/validation"
)

// projectServiceImpl implements the ProjectService interface
type projectServiceImpl struct {
	repo             sqlite.Repository
	access           *access
	mapper           *domain.Mapper
	projectValidator *validation.ProjectValidator
}

// NewProjectService creates a new ProjectService instance
func NewProjectService(repo sqlite.Repository, validator *validation.Validator) ProjectService {
	return &projectServiceImpl{
		repo:             repo,
		access:           newAccess(repo),
		mapper:           domain.NewMapper(),
		projectValidator: validation.NewProjectValidator(validator),
	}
}

// CreateProject creates a project; the caller becomes its owner
func (p *projectServiceImpl) CreateProject(ctx context.Context, callerID, name, description string) (*domain.Project, error) {
	if callerID == "" {
		return nil, errors.NewAuthError("authentication required")
	}
	if err := p.projectValidator.ValidateProjectForCreation(name, description); err != nil {
		return nil, invalid(err)
	}

	project := domain.NewProject(strings.TrimSpace(name), strings.TrimSpace(description), callerID)
	project.ID = domain.NewID()

	dbProject := p.mapper.Project.ToDatabase(project)
	if err := p.repo.CreateProject(ctx, &dbProject); err != nil {
		return nil, err
	}

	log.WithFields(log.Fields{
		"operation":  "services.CreateProject",
		"project_id": dbProject.ID,
	}).Info("project created")

	created := p.mapper.Project.FromDatabase(dbProject)
	return &created, nil
}

// ListProjects lists the projects the caller belongs to
func (p *projectServiceImpl) ListProjects(ctx context.Context, callerID string) ([]domain.Project, error) {
	if callerID == "" {
		return nil, errors.NewAuthError("authentication required")
	}

	dbProjects, err := p.repo.ListProjectsForUser(ctx, callerID)
	if err != nil {
		return nil, err
	}
	return p.mapper.Project.FromDatabaseSlice(dbProjects), nil
}

// AddMember adds a user to a project. Only the owner may do this.
func (p *projectServiceImpl) AddMember(ctx context.Context, callerID, projectID, userID string, role domain.Role) (*domain.Membership, error) {
	if role == "" {
		role = domain.DefaultRole
	}
	userID = strings.TrimSpace(userID)
	if err := p.projectValidator.ValidateMember(userID, role); err != nil {
		return nil, invalid(err)
	}

	caller, err := p.access.requireMember(ctx, callerID, projectID)
	if err != nil {
		return nil, err
	}
	if !caller.Role.CanManageMembers() {
		return nil, errors.NewForbiddenError("add member", "project "+projectID)
	}

	member := p.mapper.Membership.ToDatabase(domain.Membership{
		ProjectID: projectID,
		UserID:    userID,
		Role:      role,
	})
	if err := p.repo.AddMember(ctx, &member); err != nil {
		if errors.IsErrorType(err, errors.ErrorTypeNotFound) {
			return nil, errors.WrapError(err, errors.ErrorTypeNotFound, "user does not exist").
				WithContext("user_id", userID)
		}
		return nil, err
	}

	added := p.mapper.Membership.FromDatabase(member)
	return &added, nil
}

// ListMembers lists a project's members; any member may look
func (p *projectServiceImpl) ListMembers(ctx context.Context, callerID, projectID string) ([]domain.Membership, error) {
	if _, err := p.access.requireMember(ctx, callerID, projectID); err != nil {
		return nil, err
	}

	dbMembers, err := p.repo.ListMembers(ctx, projectID)
	if err != nil {
		return nil, err
	}

	members := make([]domain.Membership, 0, len(dbMembers))
	for _, m := range dbMembers {
		members = append(members, p.mapper.Membership.FromDatabase(*m))
	}
	return members, nil
}
