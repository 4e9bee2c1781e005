package models

import (
	"time"
)

type User struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Username     string    `json:"username" gorm:"unique;not null"`
	FullName     string    `json:"full_name" gorm:"not null"`
	Email        string    `json:"email" gorm:"unique;not null"`
	Phone        string    `json:"phone"`
	Password     string    `json:"-" gorm:"not null"`
	Role         string    `json:"role" gorm:"default:'DEVELOPER'"` // MANAGER, TEAM_LEAD, DEVELOPER
	DepartmentID uint      `json:"department_id"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	Tasks        []Task        `json:"-" gorm:"foreignKey:AssignedUserID;constraint:OnDelete:RESTRICT"`
	WorkSessions []WorkSession `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:RESTRICT"`
}

type UserRole string

const (
	RoleManager   UserRole = "MANAGER"
	RoleTeamLead  UserRole = "TEAM_LEAD"
	RoleDeveloper UserRole = "DEVELOPER"
)
