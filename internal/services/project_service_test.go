package services

import (
	"testing"

	"project_manager/internal/apperrors"
	"project_manager/internal/models"
	"project_manager/internal/repository"
	"project_manager/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newProjectFixture(t *testing.T) (ProjectService, *gorm.DB) {
	t.Helper()

	db := testutil.NewTestDB(t,
		&models.User{}, &models.Project{}, &models.Module{},
		&models.Task{}, &models.WorkSession{},
	)
	userRepo := repository.NewUserRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	moduleRepo := repository.NewModuleRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	validator := NewValidator(projectRepo, moduleRepo, taskRepo, userRepo)
	return NewProjectService(projectRepo, moduleRepo, taskRepo, validator, nil), db
}

func TestCreateProject(t *testing.T) {
	svc, _ := newProjectFixture(t)

	project, err := svc.Create(CreateProjectInput{Name: "Apollo", Priority: "HIGH"})
	require.NoError(t, err)
	assert.True(t, project.Active)
	assert.Zero(t, project.Progress)
}

func TestCreateProject_DuplicateName(t *testing.T) {
	svc, _ := newProjectFixture(t)

	_, err := svc.Create(CreateProjectInput{Name: "Apollo"})
	require.NoError(t, err)

	_, err = svc.Create(CreateProjectInput{Name: "Apollo"})
	require.Error(t, err)
	assert.Equal(t, apperrors.KindConflict, apperrors.KindOf(err))
}

func TestProjectFindOne_Detail(t *testing.T) {
	svc, db := newProjectFixture(t)

	project, err := svc.Create(CreateProjectInput{Name: "Apollo"})
	require.NoError(t, err)

	module := models.Module{Name: "Auth", ProjectID: project.ID, BuildTime: 5, BufferTime: 2}
	require.NoError(t, db.Create(&module).Error)
	done := models.Task{Title: "a", Completed: true, Status: string(models.StatusDone), ModuleID: module.ID, ProjectID: project.ID, AssignedUserID: 1}
	open := models.Task{Title: "b", Status: string(models.StatusTodo), ModuleID: module.ID, ProjectID: project.ID, AssignedUserID: 1}
	require.NoError(t, db.Create(&done).Error)
	require.NoError(t, db.Create(&open).Error)

	detail, err := svc.FindOne(project.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), detail.TotalTasks)
	assert.Equal(t, int64(1), detail.CompletedTasks)
	assert.Equal(t, 1, detail.TotalModules)
	assert.Equal(t, 5, detail.TotalBuildTime)
	assert.Equal(t, 2, detail.TotalBufferTime)
	require.Len(t, detail.Modules, 1)
	assert.Equal(t, 2, detail.Modules[0].TotalTasks)
	assert.Equal(t, 1, detail.Modules[0].CompletedTasks)
}

func TestProjectFindOne_NotFound(t *testing.T) {
	svc, _ := newProjectFixture(t)

	_, err := svc.FindOne(42)
	require.Error(t, err)
	assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(err))
	assert.Contains(t, err.Error(), "Project with ID 42 not found")
}

func TestProjectDelete(t *testing.T) {
	svc, _ := newProjectFixture(t)

	project, err := svc.Create(CreateProjectInput{Name: "Apollo"})
	require.NoError(t, err)

	_, err = svc.Delete(project.ID)
	require.NoError(t, err)

	_, err = svc.FindOne(project.ID)
	require.Error(t, err)
	assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(err))
}
