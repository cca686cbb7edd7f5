package handlers

import (
	"net/http"
	"strconv"

	"settlement-service/internal/services"
	"settlement-service/pkg/common"

	"github.com/gin-gonic/gin"
)

type Handlers struct {
	Requests      *services.RequestService
	Claims        *services.ClaimService
	Proofs        *services.ProofService
	Decisions     *services.DecisionService
	Notifications *services.NotificationService
	UploadDir     string
}

func NewHandlers(
	requests *services.RequestService,
	claims *services.ClaimService,
	proofs *services.ProofService,
	decisions *services.DecisionService,
	notifications *services.NotificationService,
	uploadDir string,
) *Handlers {
	return &Handlers{
		Requests:      requests,
		Claims:        claims,
		Proofs:        proofs,
		Decisions:     decisions,
		Notifications: notifications,
		UploadDir:     uploadDir,
	}
}

// actorId reads the acting admin from the X-Admin-ID header set by the
// upstream auth layer. Role and username are always re-resolved from the
// admins table inside the services.
func actorId(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.GetHeader("X-Admin-ID"))
	if err != nil || id <= 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Missing or invalid X-Admin-ID header"})
		return 0, false
	}
	return id, true
}

func pathId(c *gin.Context, name string) (int, bool) {
	id, err := strconv.Atoi(c.Param(name))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid " + name})
		return 0, false
	}
	return id, true
}

// respond relays the service result with its embedded HTTP status.
func respond(c *gin.Context, res interface{}) {
	switch r := res.(type) {
	case common.SuccessResponse:
		c.JSON(r.Status, r)
	case common.ErrorResponse:
		c.JSON(r.Status, r)
	case common.PaginationResult:
		c.JSON(http.StatusOK, r)
	default:
		c.JSON(http.StatusOK, r)
	}
}
