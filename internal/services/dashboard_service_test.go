package services

import (
	"testing"
	"time"

	"project_manager/internal/apperrors"
	"project_manager/internal/models"
	"project_manager/internal/repository"
	"project_manager/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type dashboardFixture struct {
	db  *gorm.DB
	svc DashboardService
}

func newDashboardFixture(t *testing.T) *dashboardFixture {
	t.Helper()

	db := testutil.NewTestDB(t,
		&models.User{}, &models.Project{}, &models.Module{},
		&models.Task{}, &models.WorkSession{},
	)
	return &dashboardFixture{
		db: db,
		svc: NewDashboardService(
			repository.NewProjectRepository(db),
			repository.NewModuleRepository(db),
			repository.NewTaskRepository(db),
			repository.NewUserRepository(db),
			nil, 0,
		),
	}
}

func TestDeveloperDashboard(t *testing.T) {
	f := newDashboardFixture(t)

	dev := models.User{Username: "dev1", FullName: "Dev One", Email: "dev1@example.com", Password: "x"}
	require.NoError(t, f.db.Create(&dev).Error)

	open := models.Project{Name: "Apollo"}
	finished := models.Project{Name: "Hermes", Completed: true}
	require.NoError(t, f.db.Create(&open).Error)
	require.NoError(t, f.db.Create(&finished).Error)
	require.NoError(t, f.db.Model(&open).Association("Members").Append(&dev))
	require.NoError(t, f.db.Model(&finished).Association("Members").Append(&dev))

	module := models.Module{Name: "Auth", ProjectID: open.ID}
	require.NoError(t, f.db.Create(&module).Error)

	due := func(days int) *time.Time {
		d := time.Now().AddDate(0, 0, days)
		return &d
	}
	addTask := func(title string, status models.TaskStatus, completed bool, dueDate *time.Time) uint {
		task := models.Task{
			Title:          title,
			Status:         string(status),
			Completed:      completed,
			DueDate:        dueDate,
			ModuleID:       module.ID,
			ProjectID:      open.ID,
			AssignedUserID: dev.ID,
		}
		require.NoError(t, f.db.Create(&task).Error)
		return task.ID
	}

	addTask("shipped", models.StatusDone, true, due(1))
	addTask("shipped too", models.StatusDone, true, due(2))
	active := addTask("active", models.StatusInProgress, false, due(5))
	soon := addTask("due soon", models.StatusTodo, false, due(3))
	later := addTask("due later", models.StatusTodo, false, due(9))
	addTask("someday", models.StatusTodo, false, due(30))

	dashboard, err := f.svc.Developer(dev.ID)
	require.NoError(t, err)

	assert.Equal(t, 6, dashboard.TotalTasks)
	assert.Equal(t, 2, dashboard.CompletedTasks)
	assert.Equal(t, 1, dashboard.InProgressTasks)
	assert.Equal(t, 3, dashboard.NotStartedTasks)
	assert.Equal(t, 2, dashboard.TotalProjects)
	assert.Equal(t, 1, dashboard.CompletedProjects)

	// Open tasks in due-date order, completed ones excluded.
	require.Len(t, dashboard.UpcomingDueTasks, 4)
	assert.Equal(t, soon, dashboard.UpcomingDueTasks[0].ID)
	assert.Equal(t, active, dashboard.UpcomingDueTasks[1].ID)
	assert.Equal(t, later, dashboard.UpcomingDueTasks[2].ID)
}

func TestDeveloperDashboard_CapsUpcomingAtFive(t *testing.T) {
	f := newDashboardFixture(t)

	dev := models.User{Username: "dev1", FullName: "Dev One", Email: "dev1@example.com", Password: "x"}
	require.NoError(t, f.db.Create(&dev).Error)
	project := models.Project{Name: "Apollo"}
	require.NoError(t, f.db.Create(&project).Error)
	module := models.Module{Name: "Auth", ProjectID: project.ID}
	require.NoError(t, f.db.Create(&module).Error)

	for i := 0; i < 7; i++ {
		d := time.Now().AddDate(0, 0, i+1)
		task := models.Task{
			Title:          "open",
			Status:         string(models.StatusTodo),
			DueDate:        &d,
			ModuleID:       module.ID,
			ProjectID:      project.ID,
			AssignedUserID: dev.ID,
		}
		require.NoError(t, f.db.Create(&task).Error)
	}

	dashboard, err := f.svc.Developer(dev.ID)
	require.NoError(t, err)
	assert.Equal(t, 7, dashboard.TotalTasks)
	assert.Len(t, dashboard.UpcomingDueTasks, 5)
}

func TestDeveloperDashboard_UserNotFound(t *testing.T) {
	f := newDashboardFixture(t)

	_, err := f.svc.Developer(404)
	require.Error(t, err)
	assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(err))
	assert.Contains(t, err.Error(), "User with ID 404 not found")
}
