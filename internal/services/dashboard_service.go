package services

import (
	"fmt"
	"time"

	"project_manager/internal/models"
	"project_manager/internal/redis"
	"project_manager/internal/repository"

	"go.uber.org/zap"
)

type TeamLeadDashboard struct {
	Projects []models.Project `json:"projects"`
	Modules  []models.Module  `json:"modules"`
	Tasks    []models.Task    `json:"tasks"`

	TotalProjects       int `json:"total_projects"`
	CompletedProjects   int `json:"completed_projects"`
	ActiveProjects      int `json:"active_projects"`
	UpcomingDueProjects int `json:"upcoming_due_projects"` // due within 14 days
	TotalModules        int `json:"total_modules"`
	CompletedModules    int `json:"completed_modules"`
	ActiveModules       int `json:"active_modules"`
	UpcomingDueModules  int `json:"upcoming_due_modules"` // ending within 3 days
	TotalTasks          int `json:"total_tasks"`
	CompletedTasks      int `json:"completed_tasks"`
	ActiveTasks         int `json:"active_tasks"`
	TodayDueTasks       int `json:"today_due_tasks"`
}

// DeveloperDashboard is one user's personal workload view.
type DeveloperDashboard struct {
	TotalTasks        int           `json:"total_tasks"`
	CompletedTasks    int           `json:"completed_tasks"`
	InProgressTasks   int           `json:"in_progress_tasks"`
	NotStartedTasks   int           `json:"not_started_tasks"`
	TotalProjects     int           `json:"total_projects"`
	CompletedProjects int           `json:"completed_projects"`
	UpcomingDueTasks  []models.Task `json:"upcoming_due_tasks"`
}

type ManagerDashboard struct {
	TotalProjects   int64 `json:"total_projects"`
	TotalModules    int64 `json:"total_modules"`
	TotalTasks      int64 `json:"total_tasks"`
	CompletedTasks  int64 `json:"completed_tasks"`
	InProgressTasks int64 `json:"in_progress_tasks"`
	TotalUsers      int64 `json:"total_users"`
}

type DashboardService interface {
	TeamLead(departmentID uint) (*TeamLeadDashboard, error)
	Manager() (*ManagerDashboard, error)
	Developer(userID uint) (*DeveloperDashboard, error)
}

type dashboardService struct {
	projectRepo repository.ProjectRepository
	moduleRepo  repository.ModuleRepository
	taskRepo    repository.TaskRepository
	userRepo    repository.UserRepository
	cache       *redis.Client
	cacheTTL    time.Duration
}

func NewDashboardService(
	projectRepo repository.ProjectRepository,
	moduleRepo repository.ModuleRepository,
	taskRepo repository.TaskRepository,
	userRepo repository.UserRepository,
	cache *redis.Client,
	cacheTTL time.Duration,
) DashboardService {
	return &dashboardService{
		projectRepo: projectRepo,
		moduleRepo:  moduleRepo,
		taskRepo:    taskRepo,
		userRepo:    userRepo,
		cache:       cache,
		cacheTTL:    cacheTTL,
	}
}

func (s *dashboardService) TeamLead(departmentID uint) (*TeamLeadDashboard, error) {
	cacheKey := fmt.Sprintf("teamlead:%d", departmentID)
	if s.cache != nil {
		var cached TeamLeadDashboard
		if hit, err := s.cache.GetDashboard(cacheKey, &cached); err == nil && hit {
			return &cached, nil
		}
	}

	projects, err := s.projectRepo.GetByDepartmentID(departmentID)
	if err != nil {
		return nil, err
	}
	modules, err := s.moduleRepo.GetByDepartmentID(departmentID)
	if err != nil {
		return nil, err
	}
	tasks, err := s.taskRepo.GetByDepartmentID(departmentID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	twoWeeksLater := now.AddDate(0, 0, 14)
	threeDaysLater := now.AddDate(0, 0, 3)
	tomorrow := now.AddDate(0, 0, 1)

	dashboard := &TeamLeadDashboard{
		Projects:      projects,
		Modules:       modules,
		Tasks:         tasks,
		TotalProjects: len(projects),
		TotalModules:  len(modules),
		TotalTasks:    len(tasks),
	}

	for _, p := range projects {
		if p.Completed {
			dashboard.CompletedProjects++
			continue
		}
		if p.DueDate != nil && !p.DueDate.Before(now) && !p.DueDate.After(twoWeeksLater) {
			dashboard.UpcomingDueProjects++
		}
	}
	dashboard.ActiveProjects = dashboard.TotalProjects - dashboard.CompletedProjects

	for _, m := range modules {
		if m.Completed {
			dashboard.CompletedModules++
			continue
		}
		if m.EndDate != nil && !m.EndDate.Before(now) && !m.EndDate.After(threeDaysLater) {
			dashboard.UpcomingDueModules++
		}
	}
	dashboard.ActiveModules = dashboard.TotalModules - dashboard.CompletedModules

	for _, t := range tasks {
		if t.Completed {
			dashboard.CompletedTasks++
			continue
		}
		if t.DueDate != nil && !t.DueDate.Before(now) && !t.DueDate.After(tomorrow) {
			dashboard.TodayDueTasks++
		}
	}
	dashboard.ActiveTasks = dashboard.TotalTasks - dashboard.CompletedTasks

	s.cacheDashboard(cacheKey, dashboard)
	return dashboard, nil
}

func (s *dashboardService) Manager() (*ManagerDashboard, error) {
	if s.cache != nil {
		var cached ManagerDashboard
		if hit, err := s.cache.GetDashboard("manager", &cached); err == nil && hit {
			return &cached, nil
		}
	}

	projects, err := s.projectRepo.Count()
	if err != nil {
		return nil, err
	}
	modules, err := s.moduleRepo.Count()
	if err != nil {
		return nil, err
	}
	tasks, err := s.taskRepo.Count()
	if err != nil {
		return nil, err
	}
	completed, err := s.taskRepo.CountByStatus(models.StatusDone)
	if err != nil {
		return nil, err
	}
	inProgress, err := s.taskRepo.CountByStatus(models.StatusInProgress)
	if err != nil {
		return nil, err
	}
	users, err := s.userRepo.Count()
	if err != nil {
		return nil, err
	}

	dashboard := &ManagerDashboard{
		TotalProjects:   projects,
		TotalModules:    modules,
		TotalTasks:      tasks,
		CompletedTasks:  completed,
		InProgressTasks: inProgress,
		TotalUsers:      users,
	}
	s.cacheDashboard("manager", dashboard)
	return dashboard, nil
}

// Developer summarizes one user's assigned tasks and member projects. The
// task list is ordered open-first by due date, so the first five open tasks
// are the nearest deadlines.
func (s *dashboardService) Developer(userID uint) (*DeveloperDashboard, error) {
	if _, err := s.userRepo.GetByID(userID); err != nil {
		return nil, notFound(err, "User", userID)
	}

	cacheKey := fmt.Sprintf("developer:%d", userID)
	if s.cache != nil {
		var cached DeveloperDashboard
		if hit, err := s.cache.GetDashboard(cacheKey, &cached); err == nil && hit {
			return &cached, nil
		}
	}

	tasks, err := s.taskRepo.GetAllByAssignedUser(userID)
	if err != nil {
		return nil, err
	}
	projects, err := s.projectRepo.GetByMemberID(userID)
	if err != nil {
		return nil, err
	}

	dashboard := &DeveloperDashboard{
		TotalTasks:       len(tasks),
		TotalProjects:    len(projects),
		UpcomingDueTasks: make([]models.Task, 0, 5),
	}
	for _, t := range tasks {
		switch t.Status {
		case string(models.StatusDone):
			dashboard.CompletedTasks++
		case string(models.StatusInProgress):
			dashboard.InProgressTasks++
		case string(models.StatusTodo):
			dashboard.NotStartedTasks++
		}
		if t.Status != string(models.StatusDone) && len(dashboard.UpcomingDueTasks) < 5 {
			dashboard.UpcomingDueTasks = append(dashboard.UpcomingDueTasks, t)
		}
	}
	for _, p := range projects {
		if p.Completed {
			dashboard.CompletedProjects++
		}
	}

	s.cacheDashboard(cacheKey, dashboard)
	return dashboard, nil
}

func (s *dashboardService) cacheDashboard(key string, data interface{}) {
	if s.cache == nil {
		return
	}
	if err := s.cache.SetDashboard(key, data, s.cacheTTL); err != nil {
		zap.L().Warn("failed to cache dashboard", zap.String("key", key), zap.Error(err))
	}
}

// invalidateDashboards drops all cached dashboards. Mutating services call it
// so a cached view never outlives the data it was derived from.
func invalidateDashboards(cache *redis.Client) {
	if cache == nil {
		return
	}
	if err := cache.InvalidateDashboards(); err != nil {
		zap.L().Warn("failed to invalidate dashboard cache", zap.Error(err))
	}
}
