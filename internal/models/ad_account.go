package models

import (
	"time"
)

// AdAccount tracks the administrative balance of a resold ad account. The
// balance is bookkeeping only; no external payment rail is invoked here.
type AdAccount struct {
	ID        int        `gorm:"primaryKey;autoIncrement" json:"id"`
	UserId    int        `gorm:"column:user_id;not null;index:idx_account_user" json:"user_id"`
	Username  string     `gorm:"column:username;size:50;not null" json:"username"`
	Name      string     `gorm:"column:name;size:150;not null" json:"name"`
	Balance   float64    `gorm:"column:balance;type:decimal(20,2);default:0.00" json:"balance"`
	Currency  string     `gorm:"column:currency;size:10;not null" json:"currency"`
	IsDeleted bool       `gorm:"column:is_deleted;default:false" json:"is_deleted"`
	DeletedAt *time.Time `gorm:"column:deleted_at" json:"deleted_at"`
	CreatedAt time.Time  `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time  `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (AdAccount) TableName() string {
	return "ad_accounts"
}
