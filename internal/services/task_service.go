package services

import (
	"time"

	"project_manager/internal/apperrors"
	"project_manager/internal/database"
	"project_manager/internal/models"
	"project_manager/internal/redis"
	"project_manager/internal/repository"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type CreateTaskInput struct {
	Title          string     `json:"title" binding:"required"`
	Description    string     `json:"description"`
	Type           string     `json:"type" binding:"required"`
	Priority       string     `json:"priority" binding:"required"`
	DueDate        *time.Time `json:"due_date"`
	EstimatedHours float64    `json:"estimated_hours"`
	ModuleID       uint       `json:"module_id" binding:"required"`
	AssignedUserID uint       `json:"assigned_user_id" binding:"required"`
	DepartmentID   uint       `json:"department_id"`
}

type UpdateTaskInput struct {
	Title          *string    `json:"title"`
	Description    *string    `json:"description"`
	Type           *string    `json:"type"`
	Priority       *string    `json:"priority"`
	DueDate        *time.Time `json:"due_date"`
	EstimatedHours *float64   `json:"estimated_hours"`
}

// TaskOverview is the flattened listing row with related entity names.
type TaskOverview struct {
	ID             uint       `json:"id"`
	Title          string     `json:"title"`
	Description    string     `json:"description"`
	Type           string     `json:"type"`
	Priority       string     `json:"priority"`
	DueDate        *time.Time `json:"due_date"`
	Progress       float64    `json:"progress"`
	TotalWorkHours int        `json:"total_work_hours"`
	EstimatedHours float64    `json:"estimated_hours"`
	Completed      bool       `json:"completed"`
	Status         string     `json:"status"`
	Project        string     `json:"project"`
	ProjectID      uint       `json:"project_id"`
	Module         string     `json:"module"`
	ModuleID       uint       `json:"module_id"`
	AssignedUser   string     `json:"assigned_user"`
	AssignedUserID uint       `json:"assigned_user_id"`
}

type TaskDashboard struct {
	TotalTasks      int64 `json:"total_tasks"`
	CompletedTasks  int64 `json:"completed_tasks"`
	NotStartedTasks int64 `json:"not_started_tasks"`
	InProgressTasks int64 `json:"in_progress_tasks"`
}

type TaskService interface {
	Create(input CreateTaskInput) (*models.Task, error)
	FindAll() ([]TaskOverview, error)
	FindOne(id uint) (*models.Task, error)
	FindByProjectID(projectID uint) ([]models.Task, error)
	FindByModuleID(moduleID uint) ([]models.Task, error)
	Update(id uint, input UpdateTaskInput) (*models.Task, error)
	Delete(id uint) (*models.Task, error)
	StartTask(id uint) (*models.Task, error)
	EndTask(id uint, progress float64, summary string) (*models.Task, *models.WorkSession, error)
	MyTasks(userID uint) ([]models.Task, error)
	MyCompletedTasks(userID uint) ([]models.Task, error)
	ManagementDashboard() (*TaskDashboard, error)
}

type taskService struct {
	db          *gorm.DB
	taskRepo    repository.TaskRepository
	sessionRepo repository.WorkSessionRepository
	moduleRepo  repository.ModuleRepository
	projectRepo repository.ProjectRepository
	userRepo    repository.UserRepository
	validator   *Validator
	progress    ProgressService
	cache       *redis.Client
	cacheTTL    time.Duration
}

func NewTaskService(
	db *gorm.DB,
	taskRepo repository.TaskRepository,
	sessionRepo repository.WorkSessionRepository,
	moduleRepo repository.ModuleRepository,
	projectRepo repository.ProjectRepository,
	userRepo repository.UserRepository,
	validator *Validator,
	progress ProgressService,
	cache *redis.Client,
	cacheTTL time.Duration,
) TaskService {
	return &taskService{
		db:          db,
		taskRepo:    taskRepo,
		sessionRepo: sessionRepo,
		moduleRepo:  moduleRepo,
		projectRepo: projectRepo,
		userRepo:    userRepo,
		validator:   validator,
		progress:    progress,
		cache:       cache,
		cacheTTL:    cacheTTL,
	}
}

func (s *taskService) Create(input CreateTaskInput) (*models.Task, error) {
	module, err := s.validator.ModuleWithUser(input.ModuleID, input.AssignedUserID)
	if err != nil {
		return nil, err
	}

	task := &models.Task{
		Title:          input.Title,
		Description:    input.Description,
		Type:           input.Type,
		Priority:       input.Priority,
		DueDate:        input.DueDate,
		EstimatedHours: input.EstimatedHours,
		Status:         string(models.StatusTodo),
		ModuleID:       input.ModuleID,
		ProjectID:      module.ProjectID,
		AssignedUserID: input.AssignedUserID,
		DepartmentID:   input.DepartmentID,
	}
	if err := s.taskRepo.Create(task); err != nil {
		return nil, err
	}
	invalidateDashboards(s.cache)

	if err := s.aggregate(input.ModuleID, module.ProjectID); err != nil {
		return task, err
	}
	return task, nil
}

func (s *taskService) FindAll() ([]TaskOverview, error) {
	tasks, err := s.taskRepo.GetAll()
	if err != nil {
		return nil, err
	}

	projects, err := s.projectRepo.GetAll()
	if err != nil {
		return nil, err
	}
	modules, err := s.moduleRepo.GetAll()
	if err != nil {
		return nil, err
	}
	users, err := s.userRepo.GetAll()
	if err != nil {
		return nil, err
	}

	projectNames := make(map[uint]string, len(projects))
	for _, p := range projects {
		projectNames[p.ID] = p.Name
	}
	moduleNames := make(map[uint]string, len(modules))
	for _, m := range modules {
		moduleNames[m.ID] = m.Name
	}
	userNames := make(map[uint]string, len(users))
	for _, u := range users {
		userNames[u.ID] = u.FullName
	}

	overviews := make([]TaskOverview, 0, len(tasks))
	for _, t := range tasks {
		overviews = append(overviews, TaskOverview{
			ID:             t.ID,
			Title:          t.Title,
			Description:    t.Description,
			Type:           t.Type,
			Priority:       t.Priority,
			DueDate:        t.DueDate,
			Progress:       t.Progress,
			TotalWorkHours: t.TotalWorkHours,
			EstimatedHours: t.EstimatedHours,
			Completed:      t.Completed,
			Status:         t.Status,
			Project:        projectNames[t.ProjectID],
			ProjectID:      t.ProjectID,
			Module:         moduleNames[t.ModuleID],
			ModuleID:       t.ModuleID,
			AssignedUser:   userNames[t.AssignedUserID],
			AssignedUserID: t.AssignedUserID,
		})
	}
	return overviews, nil
}

func (s *taskService) FindOne(id uint) (*models.Task, error) {
	return s.validator.TaskExists(id)
}

func (s *taskService) FindByProjectID(projectID uint) ([]models.Task, error) {
	if _, err := s.validator.ProjectExists(projectID); err != nil {
		return nil, err
	}
	return s.taskRepo.GetByProjectID(projectID)
}

func (s *taskService) FindByModuleID(moduleID uint) ([]models.Task, error) {
	if _, err := s.validator.ModuleExists(moduleID); err != nil {
		return nil, err
	}
	return s.taskRepo.GetByModuleID(moduleID)
}

// Update edits plain task fields. It never touches the state machine fields;
// those only move through StartTask and EndTask.
func (s *taskService) Update(id uint, input UpdateTaskInput) (*models.Task, error) {
	if _, err := s.validator.TaskExists(id); err != nil {
		return nil, err
	}

	fields := map[string]interface{}{}
	if input.Title != nil {
		fields["title"] = *input.Title
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
	if input.EstimatedHours != nil {
		fields["estimated_hours"] = *input.EstimatedHours
	}
	if len(fields) > 0 {
		if err := s.taskRepo.UpdateFields(id, fields); err != nil {
			return nil, err
		}
		invalidateDashboards(s.cache)
	}
	return s.taskRepo.GetByID(id)
}

func (s *taskService) Delete(id uint) (*models.Task, error) {
	task, err := s.validator.TaskExists(id)
	if err != nil {
		return nil, err
	}
	if err := s.taskRepo.Delete(id); err != nil {
		if database.IsForeignKeyViolation(err) {
			return nil, apperrors.Conflict("Cannot delete this item because it is referenced by other records")
		}
		return nil, err
	}
	invalidateDashboards(s.cache)
	return task, nil
}

// StartTask moves a TODO task into IN_PROGRESS and stamps startedAt.
// Starting does not change completion percentage, so no aggregation runs.
func (s *taskService) StartTask(id uint) (*models.Task, error) {
	task, err := s.validator.TaskExists(id)
	if err != nil {
		return nil, err
	}
	if task.Status == string(models.StatusInProgress) {
		return nil, apperrors.PreconditionFailed("Task is already in progress")
	}
	if task.Status == string(models.StatusDone) {
		return nil, apperrors.Conflict("Task is already completed")
	}

	now := time.Now()
	err = s.taskRepo.UpdateFields(id, map[string]interface{}{
		"status":     models.StatusInProgress,
		"started_at": now,
	})
	if err != nil {
		return nil, err
	}
	invalidateDashboards(s.cache)
	return s.taskRepo.GetByID(id)
}

// EndTask closes the current work session: it records a WorkSession and
// updates the task in one transaction, then recomputes module and project
// progress outside of it. Module aggregation must run before project
// aggregation because the project pass reads the modules' stored values.
func (s *taskService) EndTask(id uint, progress float64, summary string) (*models.Task, *models.WorkSession, error) {
	var task *models.Task
	var session *models.WorkSession

	err := s.db.Transaction(func(tx *gorm.DB) error {
		taskRepo := repository.NewTaskRepository(tx)

		current, err := taskRepo.GetByID(id)
		if err != nil {
			return notFound(err, "Task", id)
		}
		if current.Completed {
			return apperrors.Conflict("Task is already completed")
		}
		if current.Status != string(models.StatusInProgress) {
			return apperrors.PreconditionFailed("Task is not in progress")
		}
		if progress < 0 || progress > 100 {
			return apperrors.BadRequest("Progress must be between 0 and 100")
		}

		now := time.Now()
		durationMinutes := int(now.Sub(*current.StartedAt) / time.Minute)

		session = &models.WorkSession{
			Start:           *current.StartedAt,
			End:             now,
			DurationMinutes: durationMinutes,
			Summary:         summary,
			Progress:        progress,
			TaskID:          id,
			ModuleID:        current.ModuleID,
			ProjectID:       current.ProjectID,
			UserID:          current.AssignedUserID,
			DepartmentID:    current.DepartmentID,
		}
		if err := repository.NewWorkSessionRepository(tx).Create(session); err != nil {
			return err
		}

		// Exactly 100 completes the task; anything below goes back to TODO.
		status := models.StatusTodo
		if progress == 100 {
			status = models.StatusDone
		}
		affected, err := taskRepo.EndInProgress(id, map[string]interface{}{
			"started_at":       nil,
			"status":           status,
			"progress":         progress,
			"completed":        progress == 100,
			"total_work_hours": gorm.Expr("total_work_hours + ?", durationMinutes),
		})
		if err != nil {
			return err
		}
		if affected == 0 {
			return apperrors.PreconditionFailed("Task is not in progress")
		}

		task, err = taskRepo.GetByID(id)
		return err
	})
	if err != nil {
		return nil, nil, err
	}

	if s.cache != nil {
		if err := s.cache.SetTaskProgress(id, progress, s.cacheTTL); err != nil {
			zap.L().Warn("failed to cache task progress", zap.Uint("task_id", id), zap.Error(err))
		}
	}
	invalidateDashboards(s.cache)

	// The task mutation is already committed; an aggregation failure leaves
	// module/project progress stale until the next aggregating event.
	if err := s.aggregate(task.ModuleID, task.ProjectID); err != nil {
		return task, session, err
	}
	return task, session, nil
}

func (s *taskService) aggregate(moduleID, projectID uint) error {
	if _, err := s.progress.UpdateModuleProgress(moduleID); err != nil {
		zap.L().Error("module progress aggregation failed", zap.Uint("module_id", moduleID), zap.Error(err))
		return apperrors.Internal("task change committed but module progress aggregation failed: %v", err)
	}
	if _, err := s.progress.UpdateProjectProgress(projectID); err != nil {
		zap.L().Error("project progress aggregation failed", zap.Uint("project_id", projectID), zap.Error(err))
		return apperrors.Internal("task change committed but project progress aggregation failed: %v", err)
	}
	return nil
}

func (s *taskService) MyTasks(userID uint) ([]models.Task, error) {
	if _, err := s.validator.UserExists(userID); err != nil {
		return nil, err
	}
	return s.taskRepo.GetByAssignedUser(userID, false)
}

func (s *taskService) MyCompletedTasks(userID uint) ([]models.Task, error) {
	if _, err := s.validator.UserExists(userID); err != nil {
		return nil, err
	}
	return s.taskRepo.GetByAssignedUser(userID, true)
}

func (s *taskService) ManagementDashboard() (*TaskDashboard, error) {
	total, err := s.taskRepo.Count()
	if err != nil {
		return nil, err
	}
	completed, err := s.taskRepo.CountByStatus(models.StatusDone)
	if err != nil {
		return nil, err
	}
	notStarted, err := s.taskRepo.CountByStatus(models.StatusTodo)
	if err != nil {
		return nil, err
	}
	inProgress, err := s.taskRepo.CountByStatus(models.StatusInProgress)
	if err != nil {
		return nil, err
	}
	return &TaskDashboard{
		TotalTasks:      total,
		CompletedTasks:  completed,
		NotStartedTasks: notStarted,
		InProgressTasks: inProgress,
	}, nil
}
