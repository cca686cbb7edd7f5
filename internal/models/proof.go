package models

import (
	"time"
)

// Proof is an uploaded evidence artifact bound to one request and one role.
// Write-once per (request, role); retained for audit after terminal statuses.
type Proof struct {
	ID         int       `gorm:"primaryKey;autoIncrement" json:"id"`
	RequestId  int       `gorm:"column:request_id;not null;uniqueIndex:idx_proof_request_role" json:"request_id"`
	Role       string    `gorm:"column:role;size:40;not null;uniqueIndex:idx_proof_request_role" json:"role"`
	StorageRef string    `gorm:"column:storage_ref;size:255;not null" json:"storage_ref"`
	MediaType  string    `gorm:"column:media_type;size:50;not null" json:"media_type"`
	SizeBytes  int64     `gorm:"column:size_bytes;not null" json:"size_bytes"`
	UploadedBy int       `gorm:"column:uploaded_by;not null" json:"uploaded_by"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (Proof) TableName() string {
	return "proofs"
}
