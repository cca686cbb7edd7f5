package models

import (
	"time"
)

// Notification tells an admin that something happened to a request they were
// working on, currently only claim revocations. Observed on the next poll.
type Notification struct {
	ID        int       `gorm:"primaryKey;autoIncrement" json:"id"`
	AdminId   int       `gorm:"column:admin_id;not null;index:idx_notification_admin" json:"admin_id"`
	RequestId int       `gorm:"column:request_id;not null" json:"request_id"`
	Subject   string    `gorm:"column:subject;size:50;not null" json:"subject"`
	Message   string    `gorm:"column:message;type:text" json:"message"`
	IsRead    bool      `gorm:"column:is_read;default:false" json:"is_read"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (Notification) TableName() string {
	return "notifications"
}
