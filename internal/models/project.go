package models

import (
	"time"
)

type Project struct {
	ID           uint       `json:"id" gorm:"primaryKey"`
	Name         string     `json:"name" gorm:"unique;not null"`
	Description  string     `json:"description"`
	Type         string     `json:"type"`
	Priority     string     `json:"priority" gorm:"default:'MEDIUM'"`
	DueDate      *time.Time `json:"due_date"`
	Active       bool       `json:"active" gorm:"default:true"`
	Progress     float64    `json:"progress" gorm:"default:0"`
	Completed    bool       `json:"completed" gorm:"default:false"`
	DepartmentID uint       `json:"department_id"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`

	Modules []Module `json:"-" gorm:"foreignKey:ProjectID;constraint:OnDelete:RESTRICT"`
	Tasks   []Task   `json:"-" gorm:"foreignKey:ProjectID;constraint:OnDelete:RESTRICT"`
	Members []User   `json:"members,omitempty" gorm:"many2many:project_members"`
}
