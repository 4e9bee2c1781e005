package services

import (
	"time"

	"project_manager/internal/apperrors"
	"project_manager/internal/database"
	"project_manager/internal/models"
	"project_manager/internal/redis"
	"project_manager/internal/repository"
)

type CreateModuleInput struct {
	Name                 string     `json:"name" binding:"required"`
	Description          string     `json:"description"`
	Type                 string     `json:"type"`
	Priority             string     `json:"priority"`
	BuildTime            int        `json:"build_time"`
	BufferTime           int        `json:"buffer_time"`
	StartDate            *time.Time `json:"start_date"`
	EndDate              *time.Time `json:"end_date"`
	EstimatedHours       float64    `json:"estimated_hours"`
	ProjectID            uint       `json:"project_id" binding:"required"`
	DepartmentID         uint       `json:"department_id"`
	AssignedDeveloperIDs []uint     `json:"assigned_developer_ids"`
}

type UpdateModuleInput struct {
	Name                 *string    `json:"name"`
	Description          *string    `json:"description"`
	Type                 *string    `json:"type"`
	Priority             *string    `json:"priority"`
	BuildTime            *int       `json:"build_time"`
	BufferTime           *int       `json:"buffer_time"`
	StartDate            *time.Time `json:"start_date"`
	EndDate              *time.Time `json:"end_date"`
	EstimatedHours       *float64   `json:"estimated_hours"`
	AssignedDeveloperIDs []uint     `json:"assigned_developer_ids"`
}

type ModuleService interface {
	Create(input CreateModuleInput) (*models.Module, error)
	FindAll() ([]models.Module, error)
	FindOne(id uint) (*models.Module, error)
	FindByProjectID(projectID uint) ([]models.Module, error)
	Update(id uint, input UpdateModuleInput) (*models.Module, error)
	Delete(id uint) (*models.Module, error)
	AssignedDevelopers(id uint) ([]models.User, error)
}

type moduleService struct {
	moduleRepo  repository.ModuleRepository
	projectRepo repository.ProjectRepository
	validator   *Validator
	cache       *redis.Client
}

func NewModuleService(
	moduleRepo repository.ModuleRepository,
	projectRepo repository.ProjectRepository,
	validator *Validator,
	cache *redis.Client,
) ModuleService {
	return &moduleService{
		moduleRepo:  moduleRepo,
		projectRepo: projectRepo,
		validator:   validator,
		cache:       cache,
	}
}

// Create validates the project and developers, stores the module, and adds
// the developers as project members so team views stay consistent.
func (s *moduleService) Create(input CreateModuleInput) (*models.Module, error) {
	project, err := s.validator.ProjectExists(input.ProjectID)
	if err != nil {
		return nil, err
	}
	developers, err := s.validator.UsersExist(input.AssignedDeveloperIDs)
	if err != nil {
		return nil, err
	}

	module := &models.Module{
		Name:           input.Name,
		Description:    input.Description,
		Type:           input.Type,
		Priority:       input.Priority,
		BuildTime:      input.BuildTime,
		BufferTime:     input.BufferTime,
		StartDate:      input.StartDate,
		EndDate:        input.EndDate,
		EstimatedHours: input.EstimatedHours,
		ProjectID:      input.ProjectID,
		DepartmentID:   input.DepartmentID,
	}
	if err := s.moduleRepo.Create(module); err != nil {
		return nil, err
	}

	if len(developers) > 0 {
		if err := s.moduleRepo.SetDevelopers(module, developers); err != nil {
			return nil, err
		}
		if err := s.projectRepo.AddMembers(project, developers); err != nil {
			return nil, err
		}
	}
	invalidateDashboards(s.cache)
	return module, nil
}

func (s *moduleService) FindAll() ([]models.Module, error) {
	return s.moduleRepo.GetAll()
}

func (s *moduleService) FindOne(id uint) (*models.Module, error) {
	return s.validator.ModuleExists(id)
}

func (s *moduleService) FindByProjectID(projectID uint) ([]models.Module, error) {
	if _, err := s.validator.ProjectExists(projectID); err != nil {
		return nil, err
	}
	return s.moduleRepo.GetByProjectID(projectID)
}

func (s *moduleService) Update(id uint, input UpdateModuleInput) (*models.Module, error) {
	module, err := s.validator.ModuleExists(id)
	if err != nil {
		return nil, err
	}

	if input.AssignedDeveloperIDs != nil {
		developers, err := s.validator.UsersExist(input.AssignedDeveloperIDs)
		if err != nil {
			return nil, err
		}
		if err := s.moduleRepo.SetDevelopers(module, developers); err != nil {
			return nil, err
		}
	}

	fields := map[string]interface{}{}
	if input.Name != nil {
		fields["name"] = *input.Name
	}
	if input.Description != nil {
		fields["description"] = *input.Description
	}
	if input.Type != nil {
		fields["type"] = *input.Type
	}
	if input.Priority != nil {
		fields["priority"] = *input.Priority
	}
	if input.BuildTime != nil {
		fields["build_time"] = *input.BuildTime
	}
	if input.BufferTime != nil {
		fields["buffer_time"] = *input.BufferTime
	}
	if input.StartDate != nil {
		fields["start_date"] = *input.StartDate
	}
	if input.EndDate != nil {
		fields["end_date"] = *input.EndDate
	}
	if input.EstimatedHours != nil {
		fields["estimated_hours"] = *input.EstimatedHours
	}
	if len(fields) > 0 {
		if err := s.moduleRepo.UpdateFields(id, fields); err != nil {
			return nil, err
		}
		invalidateDashboards(s.cache)
	}
	return s.moduleRepo.GetByID(id)
}

func (s *moduleService) Delete(id uint) (*models.Module, error) {
	module, err := s.validator.ModuleExists(id)
	if err != nil {
		return nil, err
	}
	if err := s.moduleRepo.Delete(id); err != nil {
		if database.IsForeignKeyViolation(err) {
			return nil, apperrors.Conflict("Cannot delete this item because it is referenced by other records")
		}
		return nil, err
	}
	invalidateDashboards(s.cache)
	return module, nil
}

func (s *moduleService) AssignedDevelopers(id uint) ([]models.User, error) {
	if _, err := s.validator.ModuleExists(id); err != nil {
		return nil, err
	}
	return s.moduleRepo.GetDevelopers(id)
}
