package models

import (
	"time"
)

type RequestKind string

const (
	KindWithdrawal            RequestKind = "withdrawal"
	KindWalletTopup           RequestKind = "wallet_topup"
	KindBalanceTransferDelete RequestKind = "balance_transfer_on_delete"
)

type RequestStatus string

const (
	StatusPending       RequestStatus = "pending"
	StatusProofUploaded RequestStatus = "proof_uploaded"
	StatusApproved      RequestStatus = "approved"
	StatusRejected      RequestStatus = "rejected"
	StatusCompleted     RequestStatus = "completed"
)

// Terminal reports whether no further transition is defined out of s.
func (s RequestStatus) Terminal() bool {
	return s == StatusRejected || s == StatusCompleted
}

// FinancialRequest is a money-moving request reviewed by admins.
// The claim fields (claimed_by, claimed_by_username, claimed_at) are set
// together in a single conditional update and are all null exactly when the
// request is unclaimed.
type FinancialRequest struct {
	ID                 int           `gorm:"primaryKey;autoIncrement" json:"id"`
	Kind               RequestKind   `gorm:"column:kind;size:40;not null;index:idx_request_kind" json:"kind"`
	UserId             int           `gorm:"column:user_id;not null;index:idx_request_user" json:"user_id"`
	Username           string        `gorm:"column:username;size:50;not null" json:"username"`
	AccountId          int           `gorm:"column:account_id;default:0" json:"account_id"`
	RequestedAmount    float64       `gorm:"column:requested_amount;type:decimal(20,2);not null" json:"requested_amount"`
	VerifiedAmount     *float64      `gorm:"column:verified_amount;type:decimal(20,2)" json:"verified_amount"`
	Currency           string        `gorm:"column:currency;size:10;not null" json:"currency"`
	UniqueCode         int           `gorm:"column:unique_code;default:0" json:"unique_code"`
	DestinationAccount string        `gorm:"column:destination_account;size:50" json:"destination_account"`
	Status             RequestStatus `gorm:"column:status;size:20;default:pending;index:idx_request_status" json:"status"`
	ClaimedBy          *int          `gorm:"column:claimed_by" json:"claimed_by"`
	ClaimedByUsername  *string       `gorm:"column:claimed_by_username;size:50" json:"claimed_by_username"`
	ClaimedAt          *time.Time    `gorm:"column:claimed_at" json:"claimed_at"`
	AdminNotes         string        `gorm:"column:admin_notes;type:text" json:"admin_notes"`
	ProcessedAt        *time.Time    `gorm:"column:processed_at" json:"processed_at"`
	VerifiedByAdmin    *string       `gorm:"column:verified_by_admin;size:50" json:"verified_by_admin"`
	Proofs             []Proof       `gorm:"foreignKey:RequestId" json:"proofs"`
	CreatedAt          time.Time     `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt          time.Time     `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (FinancialRequest) TableName() string {
	return "financial_requests"
}

// Claimed reports whether some admin currently holds the request.
func (r *FinancialRequest) Claimed() bool {
	return r.ClaimedBy != nil
}

// IsClaimHolder reports whether adminId holds the current claim.
func (r *FinancialRequest) IsClaimHolder(adminId int) bool {
	return r.ClaimedBy != nil && *r.ClaimedBy == adminId
}

// TotalWithUniqueCode is the exact figure the payer must transfer. The unique
// code disambiguates otherwise-identical pending bank transfers.
func (r *FinancialRequest) TotalWithUniqueCode() float64 {
	return r.RequestedAmount + float64(r.UniqueCode)
}
