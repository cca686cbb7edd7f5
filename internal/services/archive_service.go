package services

import (
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"settlement-service/internal/models"

	"gorm.io/gorm"
)

type RequestArchiveService struct {
	DB *gorm.DB
}

func NewRequestArchiveService(db *gorm.DB) *RequestArchiveService {
	return &RequestArchiveService{DB: db}
}

// ArchiveRequests moves terminal requests older than 4 months to the archive
// table. Proof rows are left in place for audit.
func (s *RequestArchiveService) ArchiveRequests() {
	log.Println("Starting request archive process...")

	cutoff := time.Now().AddDate(0, -4, 0)

	var oldRequests []models.FinancialRequest
	if err := s.DB.
		Where("status IN ?", []models.RequestStatus{models.StatusCompleted, models.StatusRejected}).
		Where("updated_at < ?", cutoff).
		Find(&oldRequests).Error; err != nil {
		log.Printf("Error finding old requests: %v", err)
		return
	}

	if len(oldRequests) == 0 {
		log.Println("No requests to archive")
		return
	}

	log.Printf("Found %d requests to archive", len(oldRequests))

	var archivedData []models.ArchivedRequest
	for _, r := range oldRequests {
		archived := models.ArchivedRequest{
			RequestId:       r.ID,
			Kind:            r.Kind,
			UserId:          r.UserId,
			Username:        r.Username,
			AccountId:       r.AccountId,
			RequestedAmount: r.RequestedAmount,
			VerifiedAmount:  r.VerifiedAmount,
			Currency:        r.Currency,
			UniqueCode:      r.UniqueCode,
			Status:          r.Status,
			AdminNotes:      r.AdminNotes,
			ProcessedAt:     r.ProcessedAt,
			VerifiedByAdmin: r.VerifiedByAdmin,
			CreatedAt:       r.CreatedAt,
			UpdatedAt:       r.UpdatedAt,
		}
		archivedData = append(archivedData, archived)
	}

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&archivedData).Error; err != nil {
			return err
		}

		ids := make([]int, len(oldRequests))
		for i, r := range oldRequests {
			ids[i] = r.ID
		}

		if err := tx.Delete(&models.FinancialRequest{}, ids).Error; err != nil {
			return err
		}
		return nil
	})

	if err != nil {
		log.Printf("Error during request archiving: %v", err)
	} else {
		log.Printf("Archived and removed %d requests.", len(oldRequests))
	}
}

// StartScheduler initializes the cron job to run daily at midnight
func (s *RequestArchiveService) StartScheduler() {
	c := cron.New()
	_, err := c.AddFunc("0 0 * * *", func() {
		log.Println("Running scheduled request archive task...")
		s.ArchiveRequests()
	})
	if err != nil {
		log.Printf("Error scheduling archive task: %v", err)
		return
	}
	c.Start()
	log.Println("Request Archive Scheduler started (Daily at 00:00)")
}
