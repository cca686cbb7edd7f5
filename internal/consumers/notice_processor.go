package consumers

import (
	"fmt"
	"log"

	"settlement-service/internal/models"

	"gorm.io/gorm"
)

// NoticeProcessor materialises background events as notification rows that
// admin sessions pick up on their next poll.
type NoticeProcessor struct {
	DB *gorm.DB
}

func NewNoticeProcessor(db *gorm.DB) *NoticeProcessor {
	return &NoticeProcessor{DB: db}
}

type ClaimRevokedDTO struct {
	RequestId     int
	AdminId       int
	AdminUsername string
	RevokedBy     string
}

// ProcessClaimRevoked tells the prior claim holder that a super admin took
// their claim away.
func (p *NoticeProcessor) ProcessClaimRevoked(data ClaimRevokedDTO) error {
	notice := models.Notification{
		AdminId:   data.AdminId,
		RequestId: data.RequestId,
		Subject:   "Claim revoked",
		Message: fmt.Sprintf("Your claim on request #%d was force-released by %s",
			data.RequestId, data.RevokedBy),
	}

	if err := p.DB.Create(&notice).Error; err != nil {
		log.Printf("Failed to record claim revocation notice for admin %d: %v", data.AdminId, err)
		return err
	}

	log.Printf("Claim revocation notice recorded for %s (request %d)", data.AdminUsername, data.RequestId)
	return nil
}
