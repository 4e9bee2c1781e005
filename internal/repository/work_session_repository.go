package repository

import (
	"project_manager/internal/models"

	"gorm.io/gorm"
)

type WorkSessionRepository interface {
	Create(session *models.WorkSession) error
	GetByUserID(userID uint) ([]models.WorkSession, error)
}

type workSessionRepository struct {
	db *gorm.DB
}

func NewWorkSessionRepository(db *gorm.DB) WorkSessionRepository {
	return &workSessionRepository{db: db}
}

func (r *workSessionRepository) Create(session *models.WorkSession) error {
	return r.db.Create(session).Error
}

func (r *workSessionRepository) GetByUserID(userID uint) ([]models.WorkSession, error) {
	var sessions []models.WorkSession
	err := r.db.Where("user_id = ?", userID).Order("start asc").Find(&sessions).Error
	return sessions, err
}
