package handlers

import (
	"net/http"

	"settlement-service/internal/services"

	"github.com/gin-gonic/gin"
)

func (h *Handlers) ClaimRequest(c *gin.Context) {
	admin, ok := actorId(c)
	if !ok {
		return
	}
	id, ok := pathId(c, "id")
	if !ok {
		return
	}

	res, err := h.Claims.Claim(services.ClaimDTO{RequestId: id, AdminId: admin})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	respond(c, res)
}

func (h *Handlers) ReleaseRequest(c *gin.Context) {
	admin, ok := actorId(c)
	if !ok {
		return
	}
	id, ok := pathId(c, "id")
	if !ok {
		return
	}

	res, err := h.Claims.Release(services.ClaimDTO{RequestId: id, AdminId: admin})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	respond(c, res)
}

func (h *Handlers) ForceReleaseRequest(c *gin.Context) {
	admin, ok := actorId(c)
	if !ok {
		return
	}
	id, ok := pathId(c, "id")
	if !ok {
		return
	}

	res, err := h.Claims.ForceRelease(services.ClaimDTO{RequestId: id, AdminId: admin})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	respond(c, res)
}
