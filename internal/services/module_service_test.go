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

type moduleFixture struct {
	db          *gorm.DB
	svc         ModuleService
	projectRepo repository.ProjectRepository
	project     models.Project
	dev         models.User
}

func newModuleFixture(t *testing.T) *moduleFixture {
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

	f := &moduleFixture{
		db:          db,
		svc:         NewModuleService(moduleRepo, projectRepo, validator, nil),
		projectRepo: projectRepo,
	}
	f.project = models.Project{Name: "Apollo"}
	require.NoError(t, db.Create(&f.project).Error)
	f.dev = models.User{Username: "dev1", FullName: "Dev One", Email: "dev1@example.com", Password: "x"}
	require.NoError(t, db.Create(&f.dev).Error)
	return f
}

func TestCreateModule(t *testing.T) {
	f := newModuleFixture(t)

	module, err := f.svc.Create(CreateModuleInput{
		Name:                 "Auth",
		ProjectID:            f.project.ID,
		AssignedDeveloperIDs: []uint{f.dev.ID},
	})
	require.NoError(t, err)

	developers, err := f.svc.AssignedDevelopers(module.ID)
	require.NoError(t, err)
	require.Len(t, developers, 1)
	assert.Equal(t, f.dev.ID, developers[0].ID)

	// Assigned developers also become project members.
	members, err := f.projectRepo.GetMembers(f.project.ID)
	require.NoError(t, err)
	require.Len(t, members, 1)
	assert.Equal(t, f.dev.ID, members[0].ID)
}

func TestCreateModule_ProjectNotFound(t *testing.T) {
	f := newModuleFixture(t)

	_, err := f.svc.Create(CreateModuleInput{Name: "Auth", ProjectID: 99})
	require.Error(t, err)
	assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(err))
}

func TestCreateModule_DeveloperNotFound(t *testing.T) {
	f := newModuleFixture(t)

	_, err := f.svc.Create(CreateModuleInput{
		Name:                 "Auth",
		ProjectID:            f.project.ID,
		AssignedDeveloperIDs: []uint{77},
	})
	require.Error(t, err)
	assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(err))
	assert.Contains(t, err.Error(), "User with ID 77 not found")
}

func TestUpdateModule(t *testing.T) {
	f := newModuleFixture(t)

	module, err := f.svc.Create(CreateModuleInput{Name: "Auth", ProjectID: f.project.ID})
	require.NoError(t, err)

	name := "Authentication"
	buildTime := 7
	updated, err := f.svc.Update(module.ID, UpdateModuleInput{Name: &name, BuildTime: &buildTime})
	require.NoError(t, err)
	assert.Equal(t, "Authentication", updated.Name)
	assert.Equal(t, 7, updated.BuildTime)
}

func TestModuleFindByProject(t *testing.T) {
	f := newModuleFixture(t)

	_, err := f.svc.Create(CreateModuleInput{Name: "Auth", ProjectID: f.project.ID})
	require.NoError(t, err)
	_, err = f.svc.Create(CreateModuleInput{Name: "Billing", ProjectID: f.project.ID})
	require.NoError(t, err)

	modules, err := f.svc.FindByProjectID(f.project.ID)
	require.NoError(t, err)
	assert.Len(t, modules, 2)
}
