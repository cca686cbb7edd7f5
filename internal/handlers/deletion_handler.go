package handlers

import (
	"net/http"
	"strconv"

	"settlement-service/internal/models"
	"settlement-service/internal/services"
	"settlement-service/pkg/common"

	"github.com/gin-gonic/gin"
)

// DeleteAccountWithTransfer handles
// DELETE /accounts/:id/with-balance-transfer (multipart). The form carries
// balance_amount and one file per deletion proof role. The request is created
// already claimed by the caller, proofs are attached, and the approval is
// submitted in the same call, so the account is deleted and its balance moved
// to the owner's wallet atomically or not at all.
func (h *Handlers) DeleteAccountWithTransfer(c *gin.Context) {
	admin, ok := actorId(c)
	if !ok {
		return
	}
	accountId, ok := pathId(c, "id")
	if !ok {
		return
	}

	balanceAmount, err := strconv.ParseFloat(c.PostForm("balance_amount"), 64)
	if err != nil || balanceAmount <= 0 {
		respond(c, common.NewCodedErrorResponse(common.CodeInvalidAmount,
			"A positive balance_amount form field is required", nil, http.StatusBadRequest))
		return
	}

	// All three proofs must be present and valid before anything is created.
	roles := services.RequiredRoles(models.KindBalanceTransferDelete)
	var missing []string
	for _, role := range roles {
		file, err := c.FormFile(role)
		if err != nil {
			missing = append(missing, role)
			continue
		}
		if errRes := services.ValidateArtifact(file.Header.Get("Content-Type"), file.Size); errRes != nil {
			respond(c, *errRes)
			return
		}
	}
	if len(missing) > 0 {
		respond(c, common.NewCodedErrorResponse(common.CodeProofIncomplete,
			"Required proofs are missing", map[string]interface{}{"missing_roles": missing},
			http.StatusUnprocessableEntity))
		return
	}

	request, errRes, err := h.Requests.CreateDeletionTransfer(services.CreateDeletionTransferDTO{
		AccountId:     accountId,
		AdminId:       admin,
		BalanceAmount: balanceAmount,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if errRes != nil {
		respond(c, errRes)
		return
	}

	for _, role := range roles {
		file, _ := c.FormFile(role)
		storageRef, err := h.saveProofFile(c, file)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save file"})
			return
		}
		res, err := h.Proofs.Attach(services.AttachProofDTO{
			RequestId:  request.ID,
			AdminId:    admin,
			Role:       role,
			StorageRef: storageRef,
			MediaType:  file.Header.Get("Content-Type"),
			SizeBytes:  file.Size,
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		if attachErr, isErr := res.(common.ErrorResponse); isErr {
			respond(c, attachErr)
			return
		}
	}

	res, err := h.Decisions.Decide(services.DecideDTO{
		RequestId:      request.ID,
		AdminId:        admin,
		Decision:       services.DecisionApproved,
		VerifiedAmount: &balanceAmount,
		AdminNotes:     c.PostForm("admin_notes"),
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	respond(c, res)
}
