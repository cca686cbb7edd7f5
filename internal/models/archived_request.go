package models

import (
	"time"
)

// ArchivedRequest is a flattened copy of a terminal FinancialRequest moved out
// of the hot table by the archive scheduler. Proof rows stay in place.
type ArchivedRequest struct {
	ID              uint          `gorm:"primaryKey"`
	RequestId       int           `gorm:"column:request_id;uniqueIndex"`
	Kind            RequestKind   `gorm:"column:kind;size:40;index"`
	UserId          int           `gorm:"column:user_id;index"`
	Username        string        `gorm:"column:username;size:50"`
	AccountId       int           `gorm:"column:account_id;default:0"`
	RequestedAmount float64       `gorm:"column:requested_amount;type:decimal(20,2)"`
	VerifiedAmount  *float64      `gorm:"column:verified_amount;type:decimal(20,2)"`
	Currency        string        `gorm:"column:currency;size:10"`
	UniqueCode      int           `gorm:"column:unique_code;default:0"`
	Status          RequestStatus `gorm:"column:status;size:20"`
	AdminNotes      string        `gorm:"column:admin_notes;type:text"`
	ProcessedAt     *time.Time    `gorm:"column:processed_at"`
	VerifiedByAdmin *string       `gorm:"column:verified_by_admin;size:50"`
	CreatedAt       time.Time     `gorm:"autoCreateTime"`
	UpdatedAt       time.Time     `gorm:"autoUpdateTime"`
}

func (ArchivedRequest) TableName() string {
	return "archived_requests"
}
