package repository

import (
	"project_manager/internal/models"

	"gorm.io/gorm"
)

type ProjectRepository interface {
	Create(project *models.Project) error
	GetByID(id uint) (*models.Project, error)
	GetByName(name string) (*models.Project, error)
	GetAll() ([]models.Project, error)
	GetByDepartmentID(departmentID uint) ([]models.Project, error)
	Update(project *models.Project) error
	UpdateFields(id uint, fields map[string]interface{}) error
	Delete(id uint) error
	Count() (int64, error)
	GetByMemberID(userID uint) ([]models.Project, error)
	GetMembers(projectID uint) ([]models.User, error)
	AddMembers(project *models.Project, members []models.User) error
	CountMembers(projectID uint) (int64, error)
}

type projectRepository struct {
	db *gorm.DB
}

func NewProjectRepository(db *gorm.DB) ProjectRepository {
	return &projectRepository{db: db}
}

func (r *projectRepository) Create(project *models.Project) error {
	return r.db.Create(project).Error
}

func (r *projectRepository) GetByID(id uint) (*models.Project, error) {
	var project models.Project
	err := r.db.First(&project, id).Error
	if err != nil {
		return nil, err
	}
	return &project, nil
}

func (r *projectRepository) GetByName(name string) (*models.Project, error) {
	var project models.Project
	err := r.db.Where("name = ?", name).First(&project).Error
	if err != nil {
		return nil, err
	}
	return &project, nil
}

func (r *projectRepository) GetAll() ([]models.Project, error) {
	var projects []models.Project
	err := r.db.Find(&projects).Error
	return projects, err
}

func (r *projectRepository) GetByDepartmentID(departmentID uint) ([]models.Project, error) {
	var projects []models.Project
	err := r.db.Where("department_id = ?", departmentID).
		Order("completed asc").Order("due_date asc").
		Find(&projects).Error
	return projects, err
}

func (r *projectRepository) Update(project *models.Project) error {
	return r.db.Save(project).Error
}

func (r *projectRepository) UpdateFields(id uint, fields map[string]interface{}) error {
	return r.db.Model(&models.Project{}).Where("id = ?", id).Updates(fields).Error
}

func (r *projectRepository) Delete(id uint) error {
	return r.db.Delete(&models.Project{}, id).Error
}

func (r *projectRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.Project{}).Count(&count).Error
	return count, err
}

func (r *projectRepository) GetByMemberID(userID uint) ([]models.Project, error) {
	var projects []models.Project
	err := r.db.
		Joins("JOIN project_members ON project_members.project_id = projects.id").
		Where("project_members.user_id = ?", userID).
		Find(&projects).Error
	return projects, err
}

func (r *projectRepository) GetMembers(projectID uint) ([]models.User, error) {
	var project models.Project
	project.ID = projectID
	var members []models.User
	err := r.db.Model(&project).Association("Members").Find(&members)
	return members, err
}

func (r *projectRepository) AddMembers(project *models.Project, members []models.User) error {
	return r.db.Model(project).Association("Members").Append(members)
}

func (r *projectRepository) CountMembers(projectID uint) (int64, error) {
	var project models.Project
	project.ID = projectID
	count := r.db.Model(&project).Association("Members").Count()
	return count, nil
}
