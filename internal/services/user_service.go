package services

import (
	"errors"
	"math"

	"project_manager/internal/apperrors"
	"project_manager/internal/database"
	"project_manager/internal/models"
	"project_manager/internal/repository"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type CreateUserInput struct {
	Username     string `json:"username" binding:"required"`
	FullName     string `json:"full_name" binding:"required"`
	Email        string `json:"email" binding:"required,email"`
	Phone        string `json:"phone"`
	Password     string `json:"password" binding:"required,min=8"`
	Role         string `json:"role"`
	DepartmentID uint   `json:"department_id"`
}

type UpdateUserInput struct {
	Username *string `json:"username"`
	FullName *string `json:"full_name"`
	Email    *string `json:"email"`
	Phone    *string `json:"phone"`
	Role     *string `json:"role"`
}

// ProjectRef names a project a team member belongs to.
type ProjectRef struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

// TeamMember is a department member with workload totals derived from their
// work sessions, assigned tasks and assigned modules.
type TeamMember struct {
	models.User
	Projects          []ProjectRef `json:"projects"`
	TotalWorkingHours float64      `json:"total_working_hours"`
	TotalTasks        int          `json:"total_tasks"`
	CompletedTasks    int          `json:"completed_tasks"`
	TotalModules      int          `json:"total_modules"`
	CompletedModules  int          `json:"completed_modules"`
}

type UserService interface {
	Create(input CreateUserInput) (*models.User, error)
	FindAll() ([]models.User, error)
	FindOne(id uint) (*models.User, error)
	Update(id uint, input UpdateUserInput) (*models.User, error)
	Delete(id uint) error
	Team(departmentID uint) ([]TeamMember, error)
}

type userService struct {
	userRepo    repository.UserRepository
	sessionRepo repository.WorkSessionRepository
	taskRepo    repository.TaskRepository
	moduleRepo  repository.ModuleRepository
	projectRepo repository.ProjectRepository
	validator   *Validator
}

func NewUserService(
	userRepo repository.UserRepository,
	sessionRepo repository.WorkSessionRepository,
	taskRepo repository.TaskRepository,
	moduleRepo repository.ModuleRepository,
	projectRepo repository.ProjectRepository,
	validator *Validator,
) UserService {
	return &userService{
		userRepo:    userRepo,
		sessionRepo: sessionRepo,
		taskRepo:    taskRepo,
		moduleRepo:  moduleRepo,
		projectRepo: projectRepo,
		validator:   validator,
	}
}

func (s *userService) Create(input CreateUserInput) (*models.User, error) {
	if _, err := s.userRepo.GetByEmail(input.Email); err == nil {
		return nil, apperrors.Conflict("User with this email already exists")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if _, err := s.userRepo.GetByUsername(input.Username); err == nil {
		return nil, apperrors.Conflict("User with this username already exists")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	role := input.Role
	if role == "" {
		role = string(models.RoleDeveloper)
	}
	user := &models.User{
		Username:     input.Username,
		FullName:     input.FullName,
		Email:        input.Email,
		Phone:        input.Phone,
		Password:     string(hashedPassword),
		Role:         role,
		DepartmentID: input.DepartmentID,
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *userService) FindAll() ([]models.User, error) {
	return s.userRepo.GetAll()
}

func (s *userService) FindOne(id uint) (*models.User, error) {
	return s.validator.UserExists(id)
}

func (s *userService) Update(id uint, input UpdateUserInput) (*models.User, error) {
	if _, err := s.validator.UserExists(id); err != nil {
		return nil, err
	}

	fields := map[string]interface{}{}
	if input.Username != nil {
		fields["username"] = *input.Username
	}
	if input.FullName != nil {
		fields["full_name"] = *input.FullName
	}
	if input.Email != nil {
		fields["email"] = *input.Email
	}
	if input.Phone != nil {
		fields["phone"] = *input.Phone
	}
	if input.Role != nil {
		fields["role"] = *input.Role
	}
	if len(fields) > 0 {
		if err := s.userRepo.UpdateFields(id, fields); err != nil {
			return nil, err
		}
	}
	return s.userRepo.GetByID(id)
}

func (s *userService) Delete(id uint) error {
	if _, err := s.validator.UserExists(id); err != nil {
		return err
	}
	if err := s.userRepo.Delete(id); err != nil {
		if database.IsForeignKeyViolation(err) {
			return apperrors.Conflict("Cannot delete this item because it is referenced by other records")
		}
		return err
	}
	return nil
}

// Team lists a department's members with their accumulated working hours
// (session minutes converted to hours, two decimals), task and module
// completion counts, and project memberships.
func (s *userService) Team(departmentID uint) ([]TeamMember, error) {
	users, err := s.userRepo.GetByDepartmentID(departmentID)
	if err != nil {
		return nil, err
	}

	members := make([]TeamMember, 0, len(users))
	for _, u := range users {
		sessions, err := s.sessionRepo.GetByUserID(u.ID)
		if err != nil {
			return nil, err
		}
		tasks, err := s.taskRepo.GetAllByAssignedUser(u.ID)
		if err != nil {
			return nil, err
		}
		modules, err := s.moduleRepo.GetByDeveloperID(u.ID)
		if err != nil {
			return nil, err
		}
		projects, err := s.projectRepo.GetByMemberID(u.ID)
		if err != nil {
			return nil, err
		}

		member := TeamMember{
			User:       u,
			Projects:   make([]ProjectRef, 0, len(projects)),
			TotalTasks: len(tasks),
		}
		minutes := 0
		for _, session := range sessions {
			minutes += session.DurationMinutes
		}
		member.TotalWorkingHours = math.Round(float64(minutes)/60*100) / 100
		for _, t := range tasks {
			if t.Completed {
				member.CompletedTasks++
			}
		}
		member.TotalModules = len(modules)
		for _, m := range modules {
			if m.Completed {
				member.CompletedModules++
			}
		}
		for _, p := range projects {
			member.Projects = append(member.Projects, ProjectRef{ID: p.ID, Name: p.Name})
		}
		members = append(members, member)
	}
	return members, nil
}
