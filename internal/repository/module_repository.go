package repository

import (
	"project_manager/internal/models"

	"gorm.io/gorm"
)

type ModuleRepository interface {
	Create(module *models.Module) error
	GetByID(id uint) (*models.Module, error)
	GetAll() ([]models.Module, error)
	GetByProjectID(projectID uint) ([]models.Module, error)
	GetByDepartmentID(departmentID uint) ([]models.Module, error)
	GetByDeveloperID(userID uint) ([]models.Module, error)
	Update(module *models.Module) error
	UpdateFields(id uint, fields map[string]interface{}) error
	Delete(id uint) error
	Count() (int64, error)
	CountByProjectID(projectID uint, completedOnly bool) (int64, error)
	ProgressByProjectID(projectID uint) ([]float64, error)
	GetDevelopers(moduleID uint) ([]models.User, error)
	SetDevelopers(module *models.Module, developers []models.User) error
}

type moduleRepository struct {
	db *gorm.DB
}

func NewModuleRepository(db *gorm.DB) ModuleRepository {
	return &moduleRepository{db: db}
}

func (r *moduleRepository) Create(module *models.Module) error {
	return r.db.Create(module).Error
}

func (r *moduleRepository) GetByID(id uint) (*models.Module, error) {
	var module models.Module
	err := r.db.First(&module, id).Error
	if err != nil {
		return nil, err
	}
	return &module, nil
}

func (r *moduleRepository) GetAll() ([]models.Module, error) {
	var modules []models.Module
	err := r.db.Find(&modules).Error
	return modules, err
}

func (r *moduleRepository) GetByProjectID(projectID uint) ([]models.Module, error) {
	var modules []models.Module
	err := r.db.Where("project_id = ?", projectID).Find(&modules).Error
	return modules, err
}

func (r *moduleRepository) GetByDepartmentID(departmentID uint) ([]models.Module, error) {
	var modules []models.Module
	err := r.db.Where("department_id = ?", departmentID).
		Order("completed asc").Order("end_date asc").
		Find(&modules).Error
	return modules, err
}

func (r *moduleRepository) GetByDeveloperID(userID uint) ([]models.Module, error) {
	var modules []models.Module
	err := r.db.
		Joins("JOIN module_developers ON module_developers.module_id = modules.id").
		Where("module_developers.user_id = ?", userID).
		Find(&modules).Error
	return modules, err
}

func (r *moduleRepository) Update(module *models.Module) error {
	return r.db.Save(module).Error
}

func (r *moduleRepository) UpdateFields(id uint, fields map[string]interface{}) error {
	return r.db.Model(&models.Module{}).Where("id = ?", id).Updates(fields).Error
}

func (r *moduleRepository) Delete(id uint) error {
	return r.db.Delete(&models.Module{}, id).Error
}

func (r *moduleRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.Module{}).Count(&count).Error
	return count, err
}

func (r *moduleRepository) CountByProjectID(projectID uint, completedOnly bool) (int64, error) {
	var count int64
	query := r.db.Model(&models.Module{}).Where("project_id = ?", projectID)
	if completedOnly {
		query = query.Where("completed = ?", true)
	}
	err := query.Count(&count).Error
	return count, err
}

func (r *moduleRepository) ProgressByProjectID(projectID uint) ([]float64, error) {
	var values []float64
	err := r.db.Model(&models.Module{}).Where("project_id = ?", projectID).
		Pluck("progress", &values).Error
	return values, err
}

func (r *moduleRepository) GetDevelopers(moduleID uint) ([]models.User, error) {
	var module models.Module
	module.ID = moduleID
	var developers []models.User
	err := r.db.Model(&module).Association("AssignedDevelopers").Find(&developers)
	return developers, err
}

func (r *moduleRepository) SetDevelopers(module *models.Module, developers []models.User) error {
	return r.db.Model(module).Association("AssignedDevelopers").Replace(developers)
}
