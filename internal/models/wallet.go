package models

import (
	"time"
)

// Wallet is a user's withdrawal wallet, one per currency. Settlement credits
// land here (top-ups and balance transfers on account deletion).
type Wallet struct {
	ID        int       `gorm:"primaryKey;autoIncrement" json:"id"`
	UserId    int       `gorm:"column:user_id;not null;uniqueIndex:idx_wallet_user_currency" json:"user_id"`
	Username  string    `gorm:"column:username;size:50;not null" json:"username"`
	Currency  string    `gorm:"column:currency;size:10;not null;uniqueIndex:idx_wallet_user_currency" json:"currency"`
	Balance   float64   `gorm:"column:balance;type:decimal(20,2);default:0.00" json:"balance"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Wallet) TableName() string {
	return "wallets"
}
