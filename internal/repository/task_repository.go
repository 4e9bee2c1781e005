package repository

import (
	"project_manager/internal/models"

	"gorm.io/gorm"
)

type TaskRepository interface {
	Create(task *models.Task) error
	GetByID(id uint) (*models.Task, error)
	GetAll() ([]models.Task, error)
	GetByModuleID(moduleID uint) ([]models.Task, error)
	GetByProjectID(projectID uint) ([]models.Task, error)
	GetByDepartmentID(departmentID uint) ([]models.Task, error)
	GetByAssignedUser(userID uint, completed bool) ([]models.Task, error)
	GetAllByAssignedUser(userID uint) ([]models.Task, error)
	Update(task *models.Task) error
	UpdateFields(id uint, fields map[string]interface{}) error
	EndInProgress(id uint, fields map[string]interface{}) (int64, error)
	Delete(id uint) error
	Count() (int64, error)
	CountByStatus(status models.TaskStatus) (int64, error)
	CountByProjectID(projectID uint, completedOnly bool) (int64, error)
	ProgressByModuleID(moduleID uint) ([]float64, error)
}

type taskRepository struct {
	db *gorm.DB
}

func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &taskRepository{db: db}
}

func (r *taskRepository) Create(task *models.Task) error {
	return r.db.Create(task).Error
}

func (r *taskRepository) GetByID(id uint) (*models.Task, error) {
	var task models.Task
	err := r.db.First(&task, id).Error
	if err != nil {
		return nil, err
	}
	return &task, nil
}

func (r *taskRepository) GetAll() ([]models.Task, error) {
	var tasks []models.Task
	err := r.db.Find(&tasks).Error
	return tasks, err
}

func (r *taskRepository) GetByModuleID(moduleID uint) ([]models.Task, error) {
	var tasks []models.Task
	err := r.db.Where("module_id = ?", moduleID).Find(&tasks).Error
	return tasks, err
}

func (r *taskRepository) GetByProjectID(projectID uint) ([]models.Task, error) {
	var tasks []models.Task
	err := r.db.Where("project_id = ?", projectID).Find(&tasks).Error
	return tasks, err
}

func (r *taskRepository) GetByDepartmentID(departmentID uint) ([]models.Task, error) {
	var tasks []models.Task
	err := r.db.Where("department_id = ?", departmentID).
		Order("completed asc").Order("due_date asc").
		Find(&tasks).Error
	return tasks, err
}

func (r *taskRepository) GetByAssignedUser(userID uint, completed bool) ([]models.Task, error) {
	var tasks []models.Task
	err := r.db.Where("assigned_user_id = ? AND completed = ?", userID, completed).
		Order("status desc").Order("due_date asc").
		Find(&tasks).Error
	return tasks, err
}

func (r *taskRepository) GetAllByAssignedUser(userID uint) ([]models.Task, error) {
	var tasks []models.Task
	err := r.db.Where("assigned_user_id = ?", userID).
		Order("completed asc").Order("due_date asc").
		Find(&tasks).Error
	return tasks, err
}

func (r *taskRepository) Update(task *models.Task) error {
	return r.db.Save(task).Error
}

func (r *taskRepository) UpdateFields(id uint, fields map[string]interface{}) error {
	return r.db.Model(&models.Task{}).Where("id = ?", id).Updates(fields).Error
}

// EndInProgress applies fields to the task only while it is still
// IN_PROGRESS. The affected-row count lets the caller detect a concurrent
// transition and fail instead of overwriting it.
func (r *taskRepository) EndInProgress(id uint, fields map[string]interface{}) (int64, error) {
	result := r.db.Model(&models.Task{}).
		Where("id = ? AND status = ?", id, models.StatusInProgress).
		Updates(fields)
	return result.RowsAffected, result.Error
}

func (r *taskRepository) Delete(id uint) error {
	return r.db.Delete(&models.Task{}, id).Error
}

func (r *taskRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.Task{}).Count(&count).Error
	return count, err
}

func (r *taskRepository) CountByStatus(status models.TaskStatus) (int64, error) {
	var count int64
	err := r.db.Model(&models.Task{}).Where("status = ?", status).Count(&count).Error
	return count, err
}

func (r *taskRepository) CountByProjectID(projectID uint, completedOnly bool) (int64, error) {
	var count int64
	query := r.db.Model(&models.Task{}).Where("project_id = ?", projectID)
	if completedOnly {
		query = query.Where("completed = ?", true)
	}
	err := query.Count(&count).Error
	return count, err
}

func (r *taskRepository) ProgressByModuleID(moduleID uint) ([]float64, error) {
	var values []float64
	err := r.db.Model(&models.Task{}).Where("module_id = ?", moduleID).
		Pluck("progress", &values).Error
	return values, err
}
