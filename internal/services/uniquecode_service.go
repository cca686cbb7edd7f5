package services

import (
	"fmt"

	"settlement-service/internal/models"
	"settlement-service/pkg/common"

	"gorm.io/gorm"
)

// Unique codes disambiguate otherwise-identical incoming bank transfers: the
// payer transfers requested_amount + code, and an admin matches that exact
// figure against the bank statement by hand.
const (
	UniqueCodeMin = 1
	UniqueCodeMax = 999

	maxCodeDraws = 50
)

type UniqueCodeService struct {
	DB *gorm.DB
}

func NewUniqueCodeService(db *gorm.DB) *UniqueCodeService {
	return &UniqueCodeService{DB: db}
}

// Assign draws a code that no other non-terminal request with the same base
// amount, currency and destination account currently holds. Collisions are
// redrawn rather than accepted.
func (s *UniqueCodeService) Assign(baseAmount float64, currency, destinationAccount string) (int, error) {
	for i := 0; i < maxCodeDraws; i++ {
		code := common.RandomCode(UniqueCodeMin, UniqueCodeMax)

		var count int64
		err := s.DB.Model(&models.FinancialRequest{}).
			Where("requested_amount = ? AND currency = ? AND destination_account = ? AND unique_code = ?",
				baseAmount, currency, destinationAccount, code).
			Where("status IN ?", []models.RequestStatus{models.StatusPending, models.StatusProofUploaded}).
			Count(&count).Error
		if err != nil {
			return 0, err
		}
		if count == 0 {
			return code, nil
		}
	}
	return 0, fmt.Errorf("could not assign a unique code for amount %.2f %s after %d draws",
		baseAmount, currency, maxCodeDraws)
}
