package services

import (
	"time"

	"project_manager/internal/redis"
	"project_manager/internal/repository"

	"go.uber.org/zap"
)

// ProgressService recomputes a parent's stored progress from its children's
// currently stored values. It is pure numeric aggregation and knows nothing
// about the task state machine.
type ProgressService interface {
	UpdateModuleProgress(moduleID uint) (float64, error)
	UpdateProjectProgress(projectID uint) (float64, error)
}

type progressService struct {
	taskRepo    repository.TaskRepository
	moduleRepo  repository.ModuleRepository
	projectRepo repository.ProjectRepository
	cache       *redis.Client
	cacheTTL    time.Duration
}

func NewProgressService(
	taskRepo repository.TaskRepository,
	moduleRepo repository.ModuleRepository,
	projectRepo repository.ProjectRepository,
	cache *redis.Client,
	cacheTTL time.Duration,
) ProgressService {
	return &progressService{
		taskRepo:    taskRepo,
		moduleRepo:  moduleRepo,
		projectRepo: projectRepo,
		cache:       cache,
		cacheTTL:    cacheTTL,
	}
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var total float64
	for _, v := range values {
		total += v
	}
	return total / float64(len(values))
}

// UpdateModuleProgress sets the module's progress to the unweighted mean of
// its tasks' progress values. A module with no tasks is persisted at 0 and
// not completed. Completion requires the mean to be exactly 100.
func (s *progressService) UpdateModuleProgress(moduleID uint) (float64, error) {
	values, err := s.taskRepo.ProgressByModuleID(moduleID)
	if err != nil {
		return 0, err
	}

	avg := mean(values)
	err = s.moduleRepo.UpdateFields(moduleID, map[string]interface{}{
		"progress":  avg,
		"completed": avg == 100,
	})
	if err != nil {
		return 0, err
	}

	s.cacheProgress("module", moduleID, avg)
	return avg, nil
}

// UpdateProjectProgress averages the stored progress of the project's
// modules. It reads the modules' cached values, so module aggregation must
// run first whenever a task changed.
func (s *progressService) UpdateProjectProgress(projectID uint) (float64, error) {
	values, err := s.moduleRepo.ProgressByProjectID(projectID)
	if err != nil {
		return 0, err
	}

	avg := mean(values)
	err = s.projectRepo.UpdateFields(projectID, map[string]interface{}{
		"progress":  avg,
		"completed": avg == 100,
	})
	if err != nil {
		return 0, err
	}

	s.cacheProgress("project", projectID, avg)
	return avg, nil
}

func (s *progressService) cacheProgress(kind string, id uint, progress float64) {
	if s.cache == nil {
		return
	}
	var err error
	if kind == "module" {
		err = s.cache.SetModuleProgress(id, progress, s.cacheTTL)
	} else {
		err = s.cache.SetProjectProgress(id, progress, s.cacheTTL)
	}
	if err != nil {
		zap.L().Warn("failed to cache progress",
			zap.String("kind", kind),
			zap.Uint("id", id),
			zap.Error(err),
		)
	}
}
