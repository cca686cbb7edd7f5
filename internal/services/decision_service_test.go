package services

import (
	"testing"

	"settlement-service/internal/models"
	"settlement-service/pkg/common"

	"github.com/stretchr/testify/assert"
)

func attachProofs(t *testing.T, requestId, adminId int, roles []string) {
	t.Helper()
	svc := NewProofService(testDB)
	for _, role := range roles {
		res, err := svc.Attach(AttachProofDTO{
			RequestId:  requestId,
			AdminId:    adminId,
			Role:       role,
			StorageRef: role + ".png",
			MediaType:  "image/png",
			SizeBytes:  1024,
		})
		if err != nil {
			t.Fatalf("Attach failed: %v", err)
		}
		if errRes, isErr := res.(common.ErrorResponse); isErr {
			t.Fatalf("Attach %s rejected: %s", role, errRes.Message)
		}
	}
}

func newDecisionService() *DecisionService {
	return NewDecisionService(testDB, NewProofService(testDB), NewSettlementService())
}

func TestApproveWithdrawalEndToEnd(t *testing.T) {
	if testDB == nil {
		t.Skip("Database not configured")
	}
	defer cleanup()

	seedAdmin(t, 61, "admin_a", false)
	seedAdmin(t, 62, "admin_b", false)

	account := models.AdAccount{UserId: 801, Username: "owner", Name: "FB main", Balance: 100000, Currency: "IDR"}
	testDB.Create(&account)

	request := models.FinancialRequest{
		Kind:            models.KindWithdrawal,
		UserId:          801,
		Username:        "owner",
		AccountId:       account.ID,
		RequestedAmount: 50000,
		Currency:        "IDR",
		Status:          models.StatusPending,
	}
	testDB.Create(&request)

	claims := NewClaimService(testDB, nil)
	res, _ := claims.Claim(ClaimDTO{RequestId: request.ID, AdminId: 61})
	if _, ok := res.(common.SuccessResponse); !ok {
		t.Fatalf("Expected claim to succeed, got %T", res)
	}

	// admin_b is denied while admin_a holds the claim
	res, _ = claims.Claim(ClaimDTO{RequestId: request.ID, AdminId: 62})
	denied := res.(common.ErrorResponse)
	assert.Equal(t, common.CodeAlreadyClaimed, denied.Code)

	attachProofs(t, request.ID, 61, []string{ProofBalanceBefore, ProofAfterWithdrawal})

	svc := newDecisionService()
	res, err := svc.Decide(DecideDTO{
		RequestId:      request.ID,
		AdminId:        61,
		Decision:       DecisionApproved,
		VerifiedAmount: floatPtr(49500),
	})
	assert.Nil(t, err)
	success, ok := res.(common.SuccessResponse)
	if !ok {
		t.Fatalf("Expected approval to succeed, got %+v", res)
	}

	final := success.Data.(models.FinancialRequest)
	assert.Equal(t, models.StatusCompleted, final.Status)
	if final.VerifiedAmount == nil || *final.VerifiedAmount != 49500 {
		t.Errorf("Expected verified amount 49500, got %v", final.VerifiedAmount)
	}
	if final.Claimed() {
		t.Errorf("Terminal transition must release the claim")
	}

	// balance reduced by the verified amount, not the requested one
	var after models.AdAccount
	testDB.First(&after, account.ID)
	assert.Equal(t, 50500.0, after.Balance)

	// exactly one ledger entry
	var entries int64
	testDB.Model(&models.LedgerEntry{}).Where("request_id = ?", request.ID).Count(&entries)
	assert.Equal(t, int64(1), entries)
}

func TestDecideStaleClaimAfterForceRelease(t *testing.T) {
	if testDB == nil {
		t.Skip("Database not configured")
	}
	defer cleanup()

	seedAdmin(t, 71, "admin_a", false)
	seedAdmin(t, 72, "root", true)

	request := seedPendingWithdrawal(t, 802, 25000)

	claims := NewClaimService(testDB, nil)
	claims.Claim(ClaimDTO{RequestId: request.ID, AdminId: 71})
	claims.ForceRelease(ClaimDTO{RequestId: request.ID, AdminId: 72})

	svc := newDecisionService()
	res, err := svc.Decide(DecideDTO{
		RequestId:  request.ID,
		AdminId:    71,
		Decision:   DecisionRejected,
		AdminNotes: "duplicate request",
	})
	assert.Nil(t, err)
	denied, ok := res.(common.ErrorResponse)
	if !ok {
		t.Fatalf("Expected StaleClaim, got %T", res)
	}
	assert.Equal(t, common.CodeStaleClaim, denied.Code)

	// no status change happened
	var after models.FinancialRequest
	testDB.First(&after, request.ID)
	assert.Equal(t, models.StatusPending, after.Status)
}

func TestApproveRequiresAllProofs(t *testing.T) {
	if testDB == nil {
		t.Skip("Database not configured")
	}
	defer cleanup()

	seedAdmin(t, 81, "admin_a", false)
	request := seedPendingWithdrawal(t, 803, 10000)

	claims := NewClaimService(testDB, nil)
	claims.Claim(ClaimDTO{RequestId: request.ID, AdminId: 81})

	// only one of the two required proofs
	attachProofs(t, request.ID, 81, []string{ProofBalanceBefore})

	svc := newDecisionService()
	res, _ := svc.Decide(DecideDTO{
		RequestId:      request.ID,
		AdminId:        81,
		Decision:       DecisionApproved,
		VerifiedAmount: floatPtr(10000),
	})
	denied, ok := res.(common.ErrorResponse)
	if !ok {
		t.Fatalf("Expected ProofIncomplete, got %T", res)
	}
	assert.Equal(t, common.CodeProofIncomplete, denied.Code)

	missing := denied.Data.(map[string]interface{})["missing_roles"].([]string)
	assert.Equal(t, []string{ProofAfterWithdrawal}, missing)
}

func TestApproveRequiresPositiveVerifiedAmount(t *testing.T) {
	if testDB == nil {
		t.Skip("Database not configured")
	}
	defer cleanup()

	seedAdmin(t, 91, "admin_a", false)
	request := seedPendingWithdrawal(t, 804, 10000)

	svc := newDecisionService()

	res, _ := svc.Decide(DecideDTO{RequestId: request.ID, AdminId: 91, Decision: DecisionApproved})
	denied := res.(common.ErrorResponse)
	assert.Equal(t, common.CodeInvalidAmount, denied.Code)

	res, _ = svc.Decide(DecideDTO{RequestId: request.ID, AdminId: 91, Decision: DecisionApproved, VerifiedAmount: floatPtr(-5)})
	denied = res.(common.ErrorResponse)
	assert.Equal(t, common.CodeInvalidAmount, denied.Code)
}

func TestRejectRequiresNote(t *testing.T) {
	if testDB == nil {
		t.Skip("Database not configured")
	}
	defer cleanup()

	seedAdmin(t, 101, "admin_a", false)
	request := seedPendingWithdrawal(t, 805, 10000)

	claims := NewClaimService(testDB, nil)
	claims.Claim(ClaimDTO{RequestId: request.ID, AdminId: 101})

	svc := newDecisionService()

	res, _ := svc.Decide(DecideDTO{RequestId: request.ID, AdminId: 101, Decision: DecisionRejected})
	if _, ok := res.(common.ErrorResponse); !ok {
		t.Fatalf("Expected rejection without note to fail, got %T", res)
	}

	res, _ = svc.Decide(DecideDTO{RequestId: request.ID, AdminId: 101, Decision: DecisionRejected, AdminNotes: "unverifiable transfer"})
	success, ok := res.(common.SuccessResponse)
	if !ok {
		t.Fatalf("Expected rejection with note to succeed, got %T", res)
	}

	final := success.Data.(models.FinancialRequest)
	assert.Equal(t, models.StatusRejected, final.Status)
	assert.Equal(t, "unverifiable transfer", final.AdminNotes)
	if final.Claimed() {
		t.Errorf("Terminal transition must release the claim")
	}

	// no settlement on rejection
	var entries int64
	testDB.Model(&models.LedgerEntry{}).Where("request_id = ?", request.ID).Count(&entries)
	assert.Equal(t, int64(0), entries)
}

func TestRejectedRequestStaysTerminal(t *testing.T) {
	if testDB == nil {
		t.Skip("Database not configured")
	}
	defer cleanup()

	seedAdmin(t, 111, "admin_a", false)
	request := seedPendingWithdrawal(t, 806, 10000)

	claims := NewClaimService(testDB, nil)
	claims.Claim(ClaimDTO{RequestId: request.ID, AdminId: 111})

	svc := newDecisionService()
	svc.Decide(DecideDTO{RequestId: request.ID, AdminId: 111, Decision: DecisionRejected, AdminNotes: "no"})

	// a second decision on a terminal request is refused
	claims.Claim(ClaimDTO{RequestId: request.ID, AdminId: 111})
	res, _ := svc.Decide(DecideDTO{RequestId: request.ID, AdminId: 111, Decision: DecisionRejected, AdminNotes: "again"})
	denied, ok := res.(common.ErrorResponse)
	if !ok {
		t.Fatalf("Expected terminal request to refuse decisions, got %T", res)
	}
	assert.Equal(t, common.CodeRequestProcessed, denied.Code)
}
