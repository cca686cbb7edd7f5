package models

import (
	"time"
)

// LedgerEntry records a completed settlement. The unique index on request_id
// is what makes settlement retries safe: a duplicate insert is treated as an
// already-settled no-op.
type LedgerEntry struct {
	ID            int         `gorm:"primaryKey;autoIncrement" json:"id"`
	RequestId     int         `gorm:"column:request_id;not null;uniqueIndex:idx_ledger_request" json:"request_id"`
	TransactionNo string      `gorm:"column:transaction_no;size:40;not null;index" json:"transaction_no"`
	Kind          RequestKind `gorm:"column:kind;size:40;not null" json:"kind"`
	UserId        int         `gorm:"column:user_id;not null;index:idx_ledger_user" json:"user_id"`
	AccountId     int         `gorm:"column:account_id;default:0" json:"account_id"`
	Amount        float64     `gorm:"column:amount;type:decimal(20,2);not null" json:"amount"`
	Currency      string      `gorm:"column:currency;size:10;not null" json:"currency"`
	Description   string      `gorm:"column:description;type:text" json:"description"`
	CreatedAt     time.Time   `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (LedgerEntry) TableName() string {
	return "ledger_entries"
}
