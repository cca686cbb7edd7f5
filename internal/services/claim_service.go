package services

import (
	"log"
	"net/http"
	"time"

	"settlement-service/internal/consumers"
	"settlement-service/internal/models"
	"settlement-service/internal/worker"
	"settlement-service/pkg/common"

	"github.com/hibiken/asynq"
	"gorm.io/gorm"
)

// ClaimService hands out advisory exclusive claims on requests. The claim
// fields act as a compare-and-set lock: every mutation here is a single
// conditional UPDATE, never read-then-write, so concurrent claims on the same
// request resolve to exactly one winner.
type ClaimService struct {
	DB    *gorm.DB
	Queue *asynq.Client
}

func NewClaimService(db *gorm.DB, queue *asynq.Client) *ClaimService {
	return &ClaimService{DB: db, Queue: queue}
}

var claimableStatuses = []models.RequestStatus{models.StatusPending, models.StatusProofUploaded}

type ClaimDTO struct {
	RequestId int
	AdminId   int
}

// Claim acquires the request for the admin. Re-claiming a request the admin
// already holds is idempotent and keeps the original claimed_at.
func (s *ClaimService) Claim(data ClaimDTO) (interface{}, error) {
	var admin models.Admin
	if err := s.DB.First(&admin, data.AdminId).Error; err != nil {
		return common.NewCodedErrorResponse(common.CodeNotFound, "Admin not found", nil, http.StatusNotFound), nil
	}

	res := s.DB.Model(&models.FinancialRequest{}).
		Where("id = ? AND status IN ? AND (claimed_by IS NULL OR claimed_by = ?)",
			data.RequestId, claimableStatuses, data.AdminId).
		Updates(map[string]interface{}{
			"claimed_by":          data.AdminId,
			"claimed_by_username": admin.Username,
			"claimed_at":          gorm.Expr("COALESCE(claimed_at, ?)", time.Now()),
		})
	if res.Error != nil {
		return common.ErrorResponse{}, res.Error
	}

	var request models.FinancialRequest
	if err := s.DB.Preload("Proofs").First(&request, data.RequestId).Error; err != nil {
		return common.NewCodedErrorResponse(common.CodeNotFound, "Request not found", nil, http.StatusNotFound), nil
	}

	if res.RowsAffected == 0 {
		if request.Status.Terminal() {
			return common.NewCodedErrorResponse(common.CodeRequestProcessed,
				"Request has already been processed", nil, http.StatusConflict), nil
		}
		// Someone else holds it. Tell the caller who and since when.
		return common.NewCodedErrorResponse(common.CodeAlreadyClaimed,
			"Request is already claimed", map[string]interface{}{
				"claimed_by_username": request.ClaimedByUsername,
				"claimed_at":          request.ClaimedAt,
			}, http.StatusConflict), nil
	}

	return common.NewSuccessResponse(request, "Request claimed"), nil
}

// Release gives up the admin's own claim.
func (s *ClaimService) Release(data ClaimDTO) (interface{}, error) {
	res := s.DB.Model(&models.FinancialRequest{}).
		Where("id = ? AND claimed_by = ?", data.RequestId, data.AdminId).
		Updates(map[string]interface{}{
			"claimed_by":          nil,
			"claimed_by_username": nil,
			"claimed_at":          nil,
		})
	if res.Error != nil {
		return common.ErrorResponse{}, res.Error
	}

	if res.RowsAffected == 0 {
		var count int64
		s.DB.Model(&models.FinancialRequest{}).Where("id = ?", data.RequestId).Count(&count)
		if count == 0 {
			return common.NewCodedErrorResponse(common.CodeNotFound, "Request not found", nil, http.StatusNotFound), nil
		}
		return common.NewCodedErrorResponse(common.CodeNotClaimHolder,
			"You do not hold the claim on this request", nil, http.StatusForbidden), nil
	}

	return common.NewSuccessResponse(nil, "Claim released"), nil
}

// ForceRelease clears the claim regardless of holder. Super admin only; the
// role is re-read from the admins table here, never taken from the client.
// The prior holder is notified through the worker queue.
func (s *ClaimService) ForceRelease(data ClaimDTO) (interface{}, error) {
	var admin models.Admin
	if err := s.DB.First(&admin, data.AdminId).Error; err != nil {
		return common.NewCodedErrorResponse(common.CodeNotFound, "Admin not found", nil, http.StatusNotFound), nil
	}
	if !admin.IsSuperAdmin {
		return common.NewCodedErrorResponse(common.CodeInsufficientPrivilege,
			"Force release requires a super admin", nil, http.StatusForbidden), nil
	}

	var request models.FinancialRequest
	if err := s.DB.First(&request, data.RequestId).Error; err != nil {
		return common.NewCodedErrorResponse(common.CodeNotFound, "Request not found", nil, http.StatusNotFound), nil
	}

	if !request.Claimed() {
		return common.NewSuccessResponse(nil, "Request was not claimed"), nil
	}

	priorHolder := *request.ClaimedBy
	priorUsername := ""
	if request.ClaimedByUsername != nil {
		priorUsername = *request.ClaimedByUsername
	}

	res := s.DB.Model(&models.FinancialRequest{}).
		Where("id = ? AND claimed_by = ?", data.RequestId, priorHolder).
		Updates(map[string]interface{}{
			"claimed_by":          nil,
			"claimed_by_username": nil,
			"claimed_at":          nil,
		})
	if res.Error != nil {
		return common.ErrorResponse{}, res.Error
	}
	if res.RowsAffected == 0 {
		// Holder changed or released between our read and the update; the
		// claim we meant to revoke is gone either way.
		return common.NewSuccessResponse(nil, "Claim already released"), nil
	}

	s.notifyClaimRevoked(consumers.ClaimRevokedDTO{
		RequestId:     data.RequestId,
		AdminId:       priorHolder,
		AdminUsername: priorUsername,
		RevokedBy:     admin.Username,
	})

	return common.NewSuccessResponse(nil, "Claim force-released"), nil
}

func (s *ClaimService) notifyClaimRevoked(payload consumers.ClaimRevokedDTO) {
	if s.Queue == nil {
		log.Printf("[QUEUE STUB] claim-revoked: %+v", payload)
		return
	}
	task, err := worker.NewClaimRevokedTask(payload)
	if err != nil {
		log.Printf("Failed to build claim-revoked task: %v", err)
		return
	}
	if _, err := s.Queue.Enqueue(task); err != nil {
		log.Printf("Failed to enqueue claim-revoked task: %v", err)
	}
}
