package services

import (
	"time"

	"project_manager/internal/apperrors"
	"project_manager/internal/database"
	"project_manager/internal/models"
	"project_manager/internal/redis"
	"project_manager/internal/repository"
)

type CreateProjectInput struct {
	Name         string     `json:"name" binding:"required"`
	Description  string     `json:"description"`
	Type         string     `json:"type"`
	Priority     string     `json:"priority"`
	DueDate      *time.Time `json:"due_date"`
	DepartmentID uint       `json:"department_id"`
}

type UpdateProjectInput struct {
	Name        *string    `json:"name"`
	Description *string    `json:"description"`
	Type        *string    `json:"type"`
	Priority    *string    `json:"priority"`
	DueDate     *time.Time `json:"due_date"`
	Active      *bool      `json:"active"`
}

// ProjectOverview is a listing row with child counts attached.
type ProjectOverview struct {
	models.Project
	TotalTasks       int64 `json:"total_tasks"`
	CompletedTasks   int64 `json:"completed_tasks"`
	TotalModules     int64 `json:"total_modules"`
	CompletedModules int64 `json:"completed_modules"`
	Members          int64 `json:"members"`
}

// ProjectDetail is the single-project view with module summaries.
type ProjectDetail struct {
	models.Project
	TotalTasks       int64           `json:"total_tasks"`
	CompletedTasks   int64           `json:"completed_tasks"`
	TotalModules     int             `json:"total_modules"`
	CompletedModules int             `json:"completed_modules"`
	TotalBufferTime  int             `json:"total_buffer_time"`
	TotalBuildTime   int             `json:"total_build_time"`
	Modules          []ModuleSummary `json:"modules"`
}

type ModuleSummary struct {
	models.Module
	TotalTasks     int `json:"total_tasks"`
	CompletedTasks int `json:"completed_tasks"`
	Developers     int `json:"developers"`
}

type ProjectTeam struct {
	Project         *models.Project `json:"project"`
	Members         []models.User   `json:"members"`
	TotalDevelopers int64           `json:"total_developers"`
}

type ProjectService interface {
	Create(input CreateProjectInput) (*models.Project, error)
	FindAll() ([]ProjectOverview, error)
	FindOne(id uint) (*ProjectDetail, error)
	Update(id uint, input UpdateProjectInput) (*models.Project, error)
	Delete(id uint) (*models.Project, error)
	Members(id uint) (*ProjectTeam, error)
}

type projectService struct {
	projectRepo repository.ProjectRepository
	moduleRepo  repository.ModuleRepository
	taskRepo    repository.TaskRepository
	validator   *Validator
	cache       *redis.Client
}

func NewProjectService(
	projectRepo repository.ProjectRepository,
	moduleRepo repository.ModuleRepository,
	taskRepo repository.TaskRepository,
	validator *Validator,
	cache *redis.Client,
) ProjectService {
	return &projectService{
		projectRepo: projectRepo,
		moduleRepo:  moduleRepo,
		taskRepo:    taskRepo,
		validator:   validator,
		cache:       cache,
	}
}

func (s *projectService) Create(input CreateProjectInput) (*models.Project, error) {
	if err := s.validator.ProjectNameAvailable(input.Name); err != nil {
		return nil, err
	}
	project := &models.Project{
		Name:         input.Name,
		Description:  input.Description,
		Type:         input.Type,
		Priority:     input.Priority,
		DueDate:      input.DueDate,
		Active:       true,
		DepartmentID: input.DepartmentID,
	}
	if err := s.projectRepo.Create(project); err != nil {
		return nil, err
	}
	invalidateDashboards(s.cache)
	return project, nil
}

func (s *projectService) FindAll() ([]ProjectOverview, error) {
	projects, err := s.projectRepo.GetAll()
	if err != nil {
		return nil, err
	}

	overviews := make([]ProjectOverview, 0, len(projects))
	for _, p := range projects {
		totalTasks, err := s.taskRepo.CountByProjectID(p.ID, false)
		if err != nil {
			return nil, err
		}
		completedTasks, err := s.taskRepo.CountByProjectID(p.ID, true)
		if err != nil {
			return nil, err
		}
		totalModules, err := s.moduleRepo.CountByProjectID(p.ID, false)
		if err != nil {
			return nil, err
		}
		completedModules, err := s.moduleRepo.CountByProjectID(p.ID, true)
		if err != nil {
			return nil, err
		}
		members, err := s.projectRepo.CountMembers(p.ID)
		if err != nil {
			return nil, err
		}
		overviews = append(overviews, ProjectOverview{
			Project:          p,
			TotalTasks:       totalTasks,
			CompletedTasks:   completedTasks,
			TotalModules:     totalModules,
			CompletedModules: completedModules,
			Members:          members,
		})
	}
	return overviews, nil
}

func (s *projectService) FindOne(id uint) (*ProjectDetail, error) {
	project, err := s.validator.ProjectExists(id)
	if err != nil {
		return nil, err
	}

	modules, err := s.moduleRepo.GetByProjectID(id)
	if err != nil {
		return nil, err
	}
	tasks, err := s.taskRepo.GetByProjectID(id)
	if err != nil {
		return nil, err
	}

	detail := &ProjectDetail{
		Project:    *project,
		TotalTasks: int64(len(tasks)),
		Modules:    make([]ModuleSummary, 0, len(modules)),
	}
	for _, t := range tasks {
		if t.Completed {
			detail.CompletedTasks++
		}
	}
	detail.TotalModules = len(modules)
	for _, m := range modules {
		if m.Completed {
			detail.CompletedModules++
		}
		detail.TotalBufferTime += m.BufferTime
		detail.TotalBuildTime += m.BuildTime

		moduleTasks, err := s.taskRepo.GetByModuleID(m.ID)
		if err != nil {
			return nil, err
		}
		completed := 0
		for _, t := range moduleTasks {
			if t.Completed {
				completed++
			}
		}
		developers, err := s.moduleRepo.GetDevelopers(m.ID)
		if err != nil {
			return nil, err
		}
		detail.Modules = append(detail.Modules, ModuleSummary{
			Module:         m,
			TotalTasks:     len(moduleTasks),
			CompletedTasks: completed,
			Developers:     len(developers),
		})
	}
	return detail, nil
}

func (s *projectService) Update(id uint, input UpdateProjectInput) (*models.Project, error) {
	if _, err := s.validator.ProjectExists(id); err != nil {
		return nil, err
	}

	fields := map[string]interface{}{}
	if input.Name != nil {
		if err := s.validator.ProjectNameAvailable(*input.Name); err != nil {
			return nil, err
		}
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
	if input.DueDate != nil {
		fields["due_date"] = *input.DueDate
	}
	if input.Active != nil {
		fields["active"] = *input.Active
	}
	if len(fields) > 0 {
		if err := s.projectRepo.UpdateFields(id, fields); err != nil {
			return nil, err
		}
		invalidateDashboards(s.cache)
	}
	return s.projectRepo.GetByID(id)
}

func (s *projectService) Delete(id uint) (*models.Project, error) {
	project, err := s.validator.ProjectExists(id)
	if err != nil {
		return nil, err
	}
	if err := s.projectRepo.Delete(id); err != nil {
		if database.IsForeignKeyViolation(err) {
			return nil, apperrors.Conflict("Cannot delete this item because it is referenced by other records")
		}
		return nil, err
	}
	invalidateDashboards(s.cache)
	return project, nil
}

func (s *projectService) Members(id uint) (*ProjectTeam, error) {
	project, err := s.validator.ProjectExists(id)
	if err != nil {
		return nil, err
	}
	members, err := s.projectRepo.GetMembers(id)
	if err != nil {
		return nil, err
	}
	return &ProjectTeam{
		Project:         project,
		Members:         members,
		TotalDevelopers: int64(len(members)),
	}, nil
}
