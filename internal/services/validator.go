package services

import (
	"errors"

	"project_manager/internal/apperrors"
	"project_manager/internal/models"
	"project_manager/internal/repository"

	"gorm.io/gorm"
)

// Validator resolves entity ids to rows, failing with a NotFound error
// carrying the entity name and id. Services share one instance.
type Validator struct {
	projectRepo repository.ProjectRepository
	moduleRepo  repository.ModuleRepository
	taskRepo    repository.TaskRepository
	userRepo    repository.UserRepository
}

func NewValidator(
	projectRepo repository.ProjectRepository,
	moduleRepo repository.ModuleRepository,
	taskRepo repository.TaskRepository,
	userRepo repository.UserRepository,
) *Validator {
	return &Validator{
		projectRepo: projectRepo,
		moduleRepo:  moduleRepo,
		taskRepo:    taskRepo,
		userRepo:    userRepo,
	}
}

func notFound(err error, entity string, id uint) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperrors.NotFound("%s with ID %d not found", entity, id)
	}
	return err
}

func (v *Validator) ProjectExists(id uint) (*models.Project, error) {
	project, err := v.projectRepo.GetByID(id)
	if err != nil {
		return nil, notFound(err, "Project", id)
	}
	return project, nil
}

func (v *Validator) ModuleExists(id uint) (*models.Module, error) {
	module, err := v.moduleRepo.GetByID(id)
	if err != nil {
		return nil, notFound(err, "Module", id)
	}
	return module, nil
}

func (v *Validator) ModuleInProject(moduleID, projectID uint) (*models.Module, error) {
	module, err := v.ModuleExists(moduleID)
	if err != nil {
		return nil, err
	}
	if module.ProjectID != projectID {
		return nil, apperrors.NotFound("Module does not belong to project")
	}
	return module, nil
}

func (v *Validator) TaskExists(id uint) (*models.Task, error) {
	task, err := v.taskRepo.GetByID(id)
	if err != nil {
		return nil, notFound(err, "Task", id)
	}
	return task, nil
}

func (v *Validator) UserExists(id uint) (*models.User, error) {
	user, err := v.userRepo.GetByID(id)
	if err != nil {
		return nil, notFound(err, "User", id)
	}
	return user, nil
}

// UsersExist confirms every id resolves to a user and returns the rows.
func (v *Validator) UsersExist(ids []uint) ([]models.User, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	users, err := v.userRepo.GetByIDs(ids)
	if err != nil {
		return nil, err
	}
	if len(users) != len(ids) {
		found := make(map[uint]bool, len(users))
		for _, u := range users {
			found[u.ID] = true
		}
		for _, id := range ids {
			if !found[id] {
				return nil, apperrors.NotFound("User with ID %d not found", id)
			}
		}
	}
	return users, nil
}

// ModuleWithUser validates that both the module and the user exist. Used by
// task creation, which needs the module to denormalize its project id.
func (v *Validator) ModuleWithUser(moduleID, userID uint) (*models.Module, error) {
	module, err := v.ModuleExists(moduleID)
	if err != nil {
		return nil, err
	}
	if _, err := v.UserExists(userID); err != nil {
		return nil, err
	}
	return module, nil
}

func (v *Validator) ProjectNameAvailable(name string) error {
	_, err := v.projectRepo.GetByName(name)
	if err == nil {
		return apperrors.Conflict("Project with name %q already exists", name)
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	return err
}
