package services

import (
	"errors"
	"net/http"
	"time"

	"settlement-service/internal/models"
	"settlement-service/pkg/common"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// DecisionService runs the request status state machine. The claim is
// re-validated inside the same transaction that performs the transition, not
// only at claim time, which closes the window where a claim is force-released
// between an admin opening a request and submitting a decision.
type DecisionService struct {
	DB         *gorm.DB
	Proofs     *ProofService
	Settlement *SettlementService
}

func NewDecisionService(db *gorm.DB, proofs *ProofService, settlement *SettlementService) *DecisionService {
	return &DecisionService{DB: db, Proofs: proofs, Settlement: settlement}
}

// errDecisionDenied aborts the transaction when a business check fails; the
// ErrorResponse captured alongside it is what the caller receives.
var errDecisionDenied = errors.New("decision denied")

const (
	DecisionApproved = "approved"
	DecisionRejected = "rejected"
)

type DecideDTO struct {
	RequestId      int
	AdminId        int
	Decision       string
	VerifiedAmount *float64
	AdminNotes     string
}

// Decide moves a claimed request to its terminal status. Approval settles in
// the same transaction; if settlement fails everything rolls back and the
// claim is retained so the admin can retry.
func (s *DecisionService) Decide(data DecideDTO) (interface{}, error) {
	var admin models.Admin
	if err := s.DB.First(&admin, data.AdminId).Error; err != nil {
		return common.NewCodedErrorResponse(common.CodeNotFound, "Admin not found", nil, http.StatusNotFound), nil
	}

	switch data.Decision {
	case DecisionApproved:
		if data.VerifiedAmount == nil || *data.VerifiedAmount <= 0 {
			return common.NewCodedErrorResponse(common.CodeInvalidAmount,
				"A verified amount greater than zero is required to approve", nil, http.StatusBadRequest), nil
		}
	case DecisionRejected:
		if data.AdminNotes == "" {
			return common.NewErrorResponse("An admin note is required when rejecting", nil, http.StatusBadRequest), nil
		}
	default:
		return common.NewErrorResponse("Decision must be approved or rejected", nil, http.StatusBadRequest), nil
	}

	var denied common.ErrorResponse

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var request models.FinancialRequest
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&request, data.RequestId).Error; err != nil {
			denied = common.NewCodedErrorResponse(common.CodeNotFound, "Request not found", nil, http.StatusNotFound)
			return errDecisionDenied
		}

		if request.Status.Terminal() {
			denied = common.NewCodedErrorResponse(common.CodeRequestProcessed,
				"Request has already been processed", nil, http.StatusConflict)
			return errDecisionDenied
		}
		if !request.IsClaimHolder(data.AdminId) {
			denied = common.NewCodedErrorResponse(common.CodeStaleClaim,
				"You no longer hold the claim on this request, re-fetch and re-claim", nil, http.StatusConflict)
			return errDecisionDenied
		}

		now := time.Now()

		if data.Decision == DecisionRejected {
			return tx.Model(&request).Updates(map[string]interface{}{
				"status":              models.StatusRejected,
				"admin_notes":         data.AdminNotes,
				"processed_at":        now,
				"verified_by_admin":   admin.Username,
				"claimed_by":          nil,
				"claimed_by_username": nil,
				"claimed_at":          nil,
			}).Error
		}

		satisfied, missing, err := s.Proofs.IsSatisfied(tx, &request)
		if err != nil {
			return err
		}
		if !satisfied {
			denied = common.NewCodedErrorResponse(common.CodeProofIncomplete,
				"Required proofs are missing", map[string]interface{}{"missing_roles": missing},
				http.StatusUnprocessableEntity)
			return errDecisionDenied
		}

		request.VerifiedAmount = data.VerifiedAmount
		if err := tx.Model(&request).Updates(map[string]interface{}{
			"status":            models.StatusApproved,
			"verified_amount":   *data.VerifiedAmount,
			"admin_notes":       data.AdminNotes,
			"processed_at":      now,
			"verified_by_admin": admin.Username,
		}).Error; err != nil {
			return err
		}

		if err := s.Settlement.Settle(tx, &request); err != nil {
			denied = common.NewCodedErrorResponse(common.CodeSettlementFailure,
				"Settlement failed: "+err.Error(), nil, http.StatusInternalServerError)
			return errDecisionDenied
		}

		// Settlement succeeded: approved becomes completed in the same commit,
		// the two states are never observable separately.
		return tx.Model(&request).Updates(map[string]interface{}{
			"status":              models.StatusCompleted,
			"claimed_by":          nil,
			"claimed_by_username": nil,
			"claimed_at":          nil,
		}).Error
	})

	if errors.Is(err, errDecisionDenied) {
		return denied, nil
	}
	if err != nil {
		return common.ErrorResponse{}, err
	}

	var request models.FinancialRequest
	if err := s.DB.Preload("Proofs").First(&request, data.RequestId).Error; err != nil {
		return common.ErrorResponse{}, err
	}
	return common.NewSuccessResponse(request, "Decision recorded"), nil
}
