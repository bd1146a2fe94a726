package model

import "time"

type User struct {
	ID           string `json:"id" gorm:"primaryKey"`
	Email        string `json:"email" gorm:"uniqueIndex;not null"`
	Username     string `json:"username" gorm:"uniqueIndex;not null"`
	Password     string `json:"-" gorm:"not null"`
	FullName     string `json:"full_name"`
	TargetRole   string `json:"target_role"` // role the user is working towards
	IsActive     bool   `json:"is_active" gorm:"default:true"`
	LastLoginIP  string `json:"last_login_ip"`
	LastLoginAt  *time.Time `json:"last_login_at"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}
