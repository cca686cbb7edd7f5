package services

import (
	"fmt"
	"net/http"

	"settlement-service/internal/models"
	"settlement-service/pkg/common"

	"gorm.io/gorm"
)

// MaxProofSize is the upload ceiling for a single evidence artifact.
const MaxProofSize = 10 << 20 // 10 MB

// Proof roles per request kind. Every role must have an artifact attached
// before a request can be approved.
const (
	ProofBalanceBefore   = "balance_before"
	ProofAfterWithdrawal = "after_withdrawal"
	ProofPaymentReceipt  = "payment_receipt"
	ProofBalance         = "balance_proof"
	ProofWithdraw        = "withdraw_proof"
	ProofLimitZero       = "limit_zero_proof"
)

var allowedProofMediaTypes = map[string]bool{
	"image/jpeg":      true,
	"image/png":       true,
	"image/webp":      true,
	"application/pdf": true,
}

var requiredProofRoles = map[models.RequestKind][]string{
	models.KindWithdrawal:            {ProofBalanceBefore, ProofAfterWithdrawal},
	models.KindWalletTopup:           {ProofPaymentReceipt},
	models.KindBalanceTransferDelete: {ProofBalance, ProofWithdraw, ProofLimitZero},
}

type ProofService struct {
	DB *gorm.DB
}

func NewProofService(db *gorm.DB) *ProofService {
	return &ProofService{DB: db}
}

// RequiredRoles returns the proof roles a request of the given kind must carry
// before approval.
func RequiredRoles(kind models.RequestKind) []string {
	return requiredProofRoles[kind]
}

// ValidRole reports whether role belongs to the required set for kind.
func ValidRole(kind models.RequestKind, role string) bool {
	for _, r := range requiredProofRoles[kind] {
		if r == role {
			return true
		}
	}
	return false
}

// ValidateArtifact checks size and media type limits. Returns an
// InvalidArtifact error response when the file cannot be accepted.
func ValidateArtifact(mediaType string, size int64) *common.ErrorResponse {
	if size <= 0 || size > MaxProofSize {
		res := common.NewCodedErrorResponse(common.CodeInvalidArtifact,
			fmt.Sprintf("File exceeds the %d MB limit", MaxProofSize>>20), nil, http.StatusUnprocessableEntity)
		return &res
	}
	if !allowedProofMediaTypes[mediaType] {
		res := common.NewCodedErrorResponse(common.CodeInvalidArtifact,
			"Unsupported file type, expected jpeg, png, webp or pdf", nil, http.StatusUnprocessableEntity)
		return &res
	}
	return nil
}

type AttachProofDTO struct {
	RequestId  int
	AdminId    int
	Role       string
	StorageRef string
	MediaType  string
	SizeBytes  int64
}

// Attach records an evidence artifact against a request and bumps a pending
// request to proof_uploaded. Only the current claim holder may attach, and a
// role is write-once.
func (s *ProofService) Attach(data AttachProofDTO) (interface{}, error) {
	if errRes := ValidateArtifact(data.MediaType, data.SizeBytes); errRes != nil {
		return *errRes, nil
	}

	var request models.FinancialRequest
	if err := s.DB.First(&request, data.RequestId).Error; err != nil {
		return common.NewCodedErrorResponse(common.CodeNotFound, "Request not found", nil, http.StatusNotFound), nil
	}

	if request.Status.Terminal() {
		return common.NewCodedErrorResponse(common.CodeRequestProcessed,
			"Request has already been processed", nil, http.StatusConflict), nil
	}
	if !request.IsClaimHolder(data.AdminId) {
		return common.NewCodedErrorResponse(common.CodeNotClaimHolder,
			"You must claim the request before attaching proofs", nil, http.StatusForbidden), nil
	}
	if !ValidRole(request.Kind, data.Role) {
		return common.NewCodedErrorResponse(common.CodeInvalidArtifact,
			fmt.Sprintf("Role %q is not valid for a %s request", data.Role, request.Kind), nil,
			http.StatusUnprocessableEntity), nil
	}

	var existing int64
	s.DB.Model(&models.Proof{}).
		Where("request_id = ? AND role = ?", data.RequestId, data.Role).
		Count(&existing)
	if existing > 0 {
		return common.NewCodedErrorResponse(common.CodeInvalidArtifact,
			fmt.Sprintf("A %s proof is already attached", data.Role), nil, http.StatusConflict), nil
	}

	proof := models.Proof{
		RequestId:  data.RequestId,
		Role:       data.Role,
		StorageRef: data.StorageRef,
		MediaType:  data.MediaType,
		SizeBytes:  data.SizeBytes,
		UploadedBy: data.AdminId,
	}

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&proof).Error; err != nil {
			return err
		}
		if request.Status == models.StatusPending {
			if err := tx.Model(&models.FinancialRequest{}).
				Where("id = ? AND status = ?", request.ID, models.StatusPending).
				Update("status", models.StatusProofUploaded).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return common.ErrorResponse{}, err
	}

	return common.NewSuccessResponse(proof, "Proof attached"), nil
}

// IsSatisfied reports whether every required role for the request's kind has
// an artifact attached. Uses the supplied handle so callers can run it inside
// their own transaction.
func (s *ProofService) IsSatisfied(tx *gorm.DB, request *models.FinancialRequest) (bool, []string, error) {
	var proofs []models.Proof
	if err := tx.Where("request_id = ?", request.ID).Find(&proofs).Error; err != nil {
		return false, nil, err
	}

	attached := make(map[string]bool, len(proofs))
	for _, p := range proofs {
		attached[p.Role] = true
	}

	var missing []string
	for _, role := range RequiredRoles(request.Kind) {
		if !attached[role] {
			missing = append(missing, role)
		}
	}
	return len(missing) == 0, missing, nil
}
