package models

import (
	"time"
)

type Task struct {
	ID             uint       `json:"id" gorm:"primaryKey"`
	Title          string     `json:"title" gorm:"not null"`
	Description    string     `json:"description"`
	Type           string     `json:"type" gorm:"default:'FEATURE'"`    // FEATURE, BUG, IMPROVEMENT
	Priority       string     `json:"priority" gorm:"default:'MEDIUM'"` // LOW, MEDIUM, HIGH, URGENT
	DueDate        *time.Time `json:"due_date"`
	Status         string     `json:"status" gorm:"default:'TODO'"` // TODO, IN_PROGRESS, DONE
	Progress       float64    `json:"progress" gorm:"default:0"`
	Completed      bool       `json:"completed" gorm:"default:false"`
	StartedAt      *time.Time `json:"started_at"`
	EstimatedHours float64    `json:"estimated_hours"`
	TotalWorkHours int        `json:"total_work_hours" gorm:"default:0"` // accumulated minutes
	ModuleID       uint       `json:"module_id" gorm:"not null"`
	ProjectID      uint       `json:"project_id" gorm:"not null"`
	AssignedUserID uint       `json:"assigned_user_id" gorm:"not null"`
	DepartmentID   uint       `json:"department_id"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`

	WorkSessions []WorkSession `json:"-" gorm:"foreignKey:TaskID;constraint:OnDelete:RESTRICT"`
}

type TaskStatus string

const (
	StatusTodo       TaskStatus = "TODO"
	StatusInProgress TaskStatus = "IN_PROGRESS"
	StatusDone       TaskStatus = "DONE"
)

type Priority string

const (
	PriorityLow    Priority = "LOW"
	PriorityMedium Priority = "MEDIUM"
	PriorityHigh   Priority = "HIGH"
	PriorityUrgent Priority = "URGENT"
)
