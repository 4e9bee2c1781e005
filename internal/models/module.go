package models

import (
	"time"
)

type Module struct {
	ID             uint       `json:"id" gorm:"primaryKey"`
	Name           string     `json:"name" gorm:"not null"`
	Description    string     `json:"description"`
	Type           string     `json:"type"`
	Priority       string     `json:"priority" gorm:"default:'MEDIUM'"`
	BuildTime      int        `json:"build_time"`  // days
	BufferTime     int        `json:"buffer_time"` // days
	StartDate      *time.Time `json:"start_date"`
	EndDate        *time.Time `json:"end_date"`
	EstimatedHours float64    `json:"estimated_hours"`
	Progress       float64    `json:"progress" gorm:"default:0"`
	Completed      bool       `json:"completed" gorm:"default:false"`
	ProjectID      uint       `json:"project_id" gorm:"not null"`
	DepartmentID   uint       `json:"department_id"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`

	Tasks              []Task `json:"-" gorm:"foreignKey:ModuleID;constraint:OnDelete:RESTRICT"`
	AssignedDevelopers []User `json:"assigned_developers,omitempty" gorm:"many2many:module_developers"`
}
