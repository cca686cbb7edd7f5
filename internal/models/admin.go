package models

import (
	"time"
)

// Admin is a back-office operator. IsSuperAdmin gates force-release and is
// re-read from this table on every privileged call; it is never trusted from
// the client.
type Admin struct {
	ID           int       `gorm:"primaryKey;autoIncrement" json:"id"`
	Username     string    `gorm:"column:username;size:50;not null;uniqueIndex" json:"username"`
	IsSuperAdmin bool      `gorm:"column:is_super_admin;default:false" json:"is_super_admin"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Admin) TableName() string {
	return "admins"
}
