package services

import (
	"testing"
	"time"

	"project_manager/internal/models"
	"project_manager/internal/repository"
	"project_manager/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newUserFixture(t *testing.T) (UserService, *gorm.DB) {
	t.Helper()

	db := testutil.NewTestDB(t,
		&models.User{}, &models.Project{}, &models.Module{},
		&models.Task{}, &models.WorkSession{},
	)
	userRepo := repository.NewUserRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	moduleRepo := repository.NewModuleRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	sessionRepo := repository.NewWorkSessionRepository(db)
	validator := NewValidator(projectRepo, moduleRepo, taskRepo, userRepo)
	return NewUserService(userRepo, sessionRepo, taskRepo, moduleRepo, projectRepo, validator), db
}

func TestTeam(t *testing.T) {
	svc, db := newUserFixture(t)

	member := models.User{Username: "dev1", FullName: "Dev One", Email: "dev1@example.com", Password: "x", DepartmentID: 1}
	outsider := models.User{Username: "dev2", FullName: "Dev Two", Email: "dev2@example.com", Password: "x", DepartmentID: 2}
	require.NoError(t, db.Create(&member).Error)
	require.NoError(t, db.Create(&outsider).Error)

	project := models.Project{Name: "Apollo"}
	require.NoError(t, db.Create(&project).Error)
	require.NoError(t, db.Model(&project).Association("Members").Append(&member))

	doneModule := models.Module{Name: "Auth", ProjectID: project.ID, Completed: true}
	openModule := models.Module{Name: "Billing", ProjectID: project.ID}
	require.NoError(t, db.Create(&doneModule).Error)
	require.NoError(t, db.Create(&openModule).Error)
	require.NoError(t, db.Model(&doneModule).Association("AssignedDevelopers").Append(&member))
	require.NoError(t, db.Model(&openModule).Association("AssignedDevelopers").Append(&member))

	doneTask := models.Task{Title: "a", Status: string(models.StatusDone), Completed: true, ModuleID: doneModule.ID, ProjectID: project.ID, AssignedUserID: member.ID}
	openTask := models.Task{Title: "b", Status: string(models.StatusTodo), ModuleID: openModule.ID, ProjectID: project.ID, AssignedUserID: member.ID}
	require.NoError(t, db.Create(&doneTask).Error)
	require.NoError(t, db.Create(&openTask).Error)

	now := time.Now()
	for _, minutes := range []int{90, 45} {
		session := models.WorkSession{
			Start:           now.Add(-time.Duration(minutes) * time.Minute),
			End:             now,
			DurationMinutes: minutes,
			Summary:         "work",
			TaskID:          doneTask.ID,
			ModuleID:        doneModule.ID,
			ProjectID:       project.ID,
			UserID:          member.ID,
		}
		require.NoError(t, db.Create(&session).Error)
	}

	team, err := svc.Team(1)
	require.NoError(t, err)
	require.Len(t, team, 1, "only department members are listed")

	row := team[0]
	assert.Equal(t, member.ID, row.ID)
	assert.Equal(t, 2.25, row.TotalWorkingHours, "135 session minutes round to 2.25 hours")
	assert.Equal(t, 2, row.TotalTasks)
	assert.Equal(t, 1, row.CompletedTasks)
	assert.Equal(t, 2, row.TotalModules)
	assert.Equal(t, 1, row.CompletedModules)
	require.Len(t, row.Projects, 1)
	assert.Equal(t, "Apollo", row.Projects[0].Name)
}

func TestTeam_NoSessions(t *testing.T) {
	svc, db := newUserFixture(t)

	member := models.User{Username: "dev1", FullName: "Dev One", Email: "dev1@example.com", Password: "x", DepartmentID: 1}
	require.NoError(t, db.Create(&member).Error)

	team, err := svc.Team(1)
	require.NoError(t, err)
	require.Len(t, team, 1)
	assert.Zero(t, team[0].TotalWorkingHours)
	assert.Zero(t, team[0].TotalTasks)
	assert.Empty(t, team[0].Projects)
}
