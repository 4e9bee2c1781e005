package models

import (
	"time"
)

// WorkSession is an append-only record of one timed work interval on a task.
// It is created exactly once per ended task session and never updated.
type WorkSession struct {
	ID              uint      `json:"id" gorm:"primaryKey"`
	Start           time.Time `json:"start" gorm:"not null"`
	End             time.Time `json:"end" gorm:"not null"`
	DurationMinutes int       `json:"duration_minutes" gorm:"not null"`
	Summary         string    `json:"summary" gorm:"not null"`
	Progress        float64   `json:"progress"`
	TaskID          uint      `json:"task_id" gorm:"not null"`
	ModuleID        uint      `json:"module_id" gorm:"not null"`
	ProjectID       uint      `json:"project_id" gorm:"not null"`
	UserID          uint      `json:"user_id" gorm:"not null"`
	DepartmentID    uint      `json:"department_id"`
	CreatedAt       time.Time `json:"created_at"`
}
