package services

import (
	"task-planner/internal/config"
	"task-planner/internal/generation"
	"task-planner/internal/repository/sqlite"
	"task-planner/internal/validation"
)

// NewServiceContainer wires every service over one repository and provider
func NewServiceContainer(repo sqlite.Repository, provider generation.Provider, cfg *config.Config) *ServiceContainer {
	validator := validation.NewValidatorWithConfig(cfg)

	return &ServiceContainer{
		RegenerationService: NewRegenerationService(repo, provider, validator, cfg.Generation.Timeout),
		ProjectService:      NewProjectService(repo, validator),
		TaskService:         NewTaskService(repo, validator),
		AuthService:         NewAuthService(repo, validator, cfg.Auth.TokenTTL),
	}
}
