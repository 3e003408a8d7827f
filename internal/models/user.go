package models

import "time"

// UserModel represents an author/admin account.
type UserModel struct {
	Base
	Username      string     `json:"username" gorm:"uniqueIndex;not null"`
	Name          string     `json:"name"`
	Password      string     `json:"-"        gorm:"not null"`
	Mail          string     `json:"mail"`
	IsSuperuser   bool       `json:"is_superuser" gorm:"default:false"`
	LastLoginTime *time.Time `json:"last_login_time"`
}

func (UserModel) TableName() string { return "users" }
