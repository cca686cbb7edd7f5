package services

import (
	"testing"

	"settlement-service/internal/models"
	"settlement-service/pkg/common"

	"github.com/stretchr/testify/assert"
)

func TestSettleIsIdempotent(t *testing.T) {
	if testDB == nil {
		t.Skip("Database not configured")
	}
	defer cleanup()

	account := models.AdAccount{UserId: 901, Username: "owner", Name: "acct", Balance: 1000, Currency: "USD"}
	testDB.Create(&account)

	request := models.FinancialRequest{
		Kind:            models.KindWithdrawal,
		UserId:          901,
		Username:        "owner",
		AccountId:       account.ID,
		RequestedAmount: 400,
		VerifiedAmount:  floatPtr(400),
		Currency:        "USD",
		Status:          models.StatusApproved,
	}
	testDB.Create(&request)

	svc := NewSettlementService()

	if err := svc.Settle(testDB, &request); err != nil {
		t.Fatalf("First settle failed: %v", err)
	}
	if err := svc.Settle(testDB, &request); err != nil {
		t.Fatalf("Retried settle failed: %v", err)
	}

	// one ledger entry, one debit
	var entries int64
	testDB.Model(&models.LedgerEntry{}).Where("request_id = ?", request.ID).Count(&entries)
	assert.Equal(t, int64(1), entries)

	var after models.AdAccount
	testDB.First(&after, account.ID)
	assert.Equal(t, 600.0, after.Balance)
}

func TestSettleWithdrawalInsufficientBalance(t *testing.T) {
	if testDB == nil {
		t.Skip("Database not configured")
	}
	defer cleanup()

	account := models.AdAccount{UserId: 902, Username: "owner", Name: "acct", Balance: 100, Currency: "USD"}
	testDB.Create(&account)

	request := models.FinancialRequest{
		Kind:            models.KindWithdrawal,
		UserId:          902,
		Username:        "owner",
		AccountId:       account.ID,
		RequestedAmount: 400,
		VerifiedAmount:  floatPtr(400),
		Currency:        "USD",
		Status:          models.StatusApproved,
	}
	testDB.Create(&request)

	svc := NewSettlementService()
	if err := svc.Settle(testDB, &request); err == nil {
		t.Fatalf("Expected settlement failure on insufficient balance")
	}

	// nothing moved, nothing recorded
	var after models.AdAccount
	testDB.First(&after, account.ID)
	assert.Equal(t, 100.0, after.Balance)

	var entries int64
	testDB.Model(&models.LedgerEntry{}).Where("request_id = ?", request.ID).Count(&entries)
	assert.Equal(t, int64(0), entries)
}

func TestSettleTopupCreditsWallet(t *testing.T) {
	if testDB == nil {
		t.Skip("Database not configured")
	}
	defer cleanup()

	request := models.FinancialRequest{
		Kind:            models.KindWalletTopup,
		UserId:          903,
		Username:        "payer",
		RequestedAmount: 250,
		VerifiedAmount:  floatPtr(250),
		Currency:        "USD",
		UniqueCode:      17,
		Status:          models.StatusApproved,
	}
	testDB.Create(&request)

	svc := NewSettlementService()

	// no wallet exists yet: settle creates one
	if err := svc.Settle(testDB, &request); err != nil {
		t.Fatalf("Settle failed: %v", err)
	}

	var wallet models.Wallet
	if err := testDB.Where("user_id = ? AND currency = ?", 903, "USD").First(&wallet).Error; err != nil {
		t.Fatalf("Expected wallet to be created: %v", err)
	}
	assert.Equal(t, 250.0, wallet.Balance)
}

func TestSettleBalanceTransferOnDelete(t *testing.T) {
	if testDB == nil {
		t.Skip("Database not configured")
	}
	defer cleanup()

	account := models.AdAccount{UserId: 904, Username: "owner", Name: "acct", Balance: 120, Currency: "USD"}
	testDB.Create(&account)
	testDB.Create(&models.Wallet{UserId: 904, Username: "owner", Currency: "USD", Balance: 30})

	request := models.FinancialRequest{
		Kind:            models.KindBalanceTransferDelete,
		UserId:          904,
		Username:        "owner",
		AccountId:       account.ID,
		RequestedAmount: 120,
		VerifiedAmount:  floatPtr(120),
		Currency:        "USD",
		Status:          models.StatusApproved,
	}
	testDB.Create(&request)

	svc := NewSettlementService()
	if err := svc.Settle(testDB, &request); err != nil {
		t.Fatalf("Settle failed: %v", err)
	}

	// wallet credited with the full account balance
	var wallet models.Wallet
	testDB.Where("user_id = ? AND currency = ?", 904, "USD").First(&wallet)
	assert.Equal(t, 150.0, wallet.Balance)

	// account emptied and marked deleted together
	var after models.AdAccount
	testDB.First(&after, account.ID)
	assert.Equal(t, 0.0, after.Balance)
	assert.True(t, after.IsDeleted)
	if after.DeletedAt == nil {
		t.Errorf("Expected deleted_at to be set")
	}

	// settling a deleted account again must fail, not double-credit
	var fresh models.FinancialRequest
	testDB.First(&fresh, request.ID)
	testDB.Exec("DELETE FROM ledger_entries WHERE request_id = ?", request.ID)
	if err := svc.Settle(testDB, &fresh); err == nil {
		t.Errorf("Expected settle on a deleted account to fail")
	}
}

func TestDecisionRollsBackOnSettlementFailure(t *testing.T) {
	if testDB == nil {
		t.Skip("Database not configured")
	}
	defer cleanup()

	seedAdmin(t, 121, "admin_a", false)

	account := models.AdAccount{UserId: 905, Username: "owner", Name: "acct", Balance: 10, Currency: "IDR"}
	testDB.Create(&account)

	request := models.FinancialRequest{
		Kind:            models.KindWithdrawal,
		UserId:          905,
		Username:        "owner",
		AccountId:       account.ID,
		RequestedAmount: 5000,
		Currency:        "IDR",
		Status:          models.StatusPending,
	}
	testDB.Create(&request)

	claims := NewClaimService(testDB, nil)
	claims.Claim(ClaimDTO{RequestId: request.ID, AdminId: 121})
	attachProofs(t, request.ID, 121, []string{ProofBalanceBefore, ProofAfterWithdrawal})

	svc := newDecisionService()
	res, err := svc.Decide(DecideDTO{
		RequestId:      request.ID,
		AdminId:        121,
		Decision:       DecisionApproved,
		VerifiedAmount: floatPtr(5000),
	})
	assert.Nil(t, err)
	denied, ok := res.(common.ErrorResponse)
	if !ok {
		t.Fatalf("Expected SettlementFailure, got %T", res)
	}
	assert.Equal(t, common.CodeSettlementFailure, denied.Code)

	// the transition rolled back and the claim is retained for a retry
	var after models.FinancialRequest
	testDB.First(&after, request.ID)
	assert.Equal(t, models.StatusProofUploaded, after.Status)
	if !after.IsClaimHolder(121) {
		t.Errorf("Claim must be retained after settlement failure")
	}
	if after.VerifiedAmount != nil {
		t.Errorf("Verified amount must not survive a rolled back approval")
	}
}
