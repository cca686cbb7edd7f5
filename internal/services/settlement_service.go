package services

import (
	"fmt"
	"time"

	"settlement-service/internal/models"
	"settlement-service/pkg/common"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SettlementService applies the balance side effect of a terminal approval.
// Settle always runs inside the caller's transaction so the balance mutation
// and the status transition commit or roll back together. The ledger entry is
// keyed on request_id; finding one already there means a retry and is a no-op
// success.
type SettlementService struct{}

func NewSettlementService() *SettlementService {
	return &SettlementService{}
}

func (s *SettlementService) Settle(tx *gorm.DB, request *models.FinancialRequest) error {
	var existing models.LedgerEntry
	err := tx.Where("request_id = ?", request.ID).First(&existing).Error
	if err == nil {
		return nil // already settled
	}
	if err != gorm.ErrRecordNotFound {
		return err
	}

	if request.VerifiedAmount == nil {
		return fmt.Errorf("request %d has no verified amount", request.ID)
	}

	entry := models.LedgerEntry{
		RequestId:     request.ID,
		TransactionNo: common.GenerateTrxNo(),
		Kind:          request.Kind,
		UserId:        request.UserId,
		AccountId:     request.AccountId,
		Currency:      request.Currency,
	}

	switch request.Kind {
	case models.KindWithdrawal:
		amount := *request.VerifiedAmount
		res := tx.Model(&models.AdAccount{}).
			Where("id = ? AND is_deleted = false AND balance >= ?", request.AccountId, amount).
			UpdateColumn("balance", gorm.Expr("balance - ?", amount))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("account %d has insufficient balance for withdrawal of %.2f", request.AccountId, amount)
		}
		entry.Amount = amount
		entry.Description = fmt.Sprintf("Withdrawal of %.2f %s from account %d", amount, request.Currency, request.AccountId)

	case models.KindWalletTopup:
		amount := *request.VerifiedAmount
		if err := s.creditWallet(tx, request.UserId, request.Username, request.Currency, amount); err != nil {
			return err
		}
		entry.Amount = amount
		entry.Description = fmt.Sprintf("Wallet top-up of %.2f %s", amount, request.Currency)

	case models.KindBalanceTransferDelete:
		var account models.AdAccount
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&account, request.AccountId).Error; err != nil {
			return fmt.Errorf("account %d not found: %w", request.AccountId, err)
		}
		if account.IsDeleted {
			return fmt.Errorf("account %d is already deleted", account.ID)
		}

		// The credited wallet and the deleted account must commit together.
		amount := account.Balance
		if err := s.creditWallet(tx, account.UserId, account.Username, account.Currency, amount); err != nil {
			return err
		}
		now := time.Now()
		if err := tx.Model(&account).Updates(map[string]interface{}{
			"balance":    0,
			"is_deleted": true,
			"deleted_at": now,
		}).Error; err != nil {
			return err
		}
		entry.Amount = amount
		entry.Description = fmt.Sprintf("Balance transfer of %.2f %s on deletion of account %d", amount, account.Currency, account.ID)

	default:
		return fmt.Errorf("unsupported request kind %q", request.Kind)
	}

	// Unique index on request_id backs up the pre-check under concurrency.
	if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&entry).Error; err != nil {
		return err
	}
	return nil
}

func (s *SettlementService) creditWallet(tx *gorm.DB, userId int, username, currency string, amount float64) error {
	res := tx.Model(&models.Wallet{}).
		Where("user_id = ? AND currency = ?", userId, currency).
		UpdateColumn("balance", gorm.Expr("balance + ?", amount))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		wallet := models.Wallet{
			UserId:   userId,
			Username: username,
			Currency: currency,
			Balance:  amount,
		}
		return tx.Create(&wallet).Error
	}
	return nil
}
