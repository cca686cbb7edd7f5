package handlers

import (
	"net/http"
	"strconv"

	"settlement-service/internal/services"

	"github.com/gin-gonic/gin"
)

type CreateWithdrawalRequest struct {
	UserId    int     `json:"user_id" binding:"required"`
	Username  string  `json:"username" binding:"required"`
	AccountId int     `json:"account_id" binding:"required"`
	Amount    float64 `json:"amount" binding:"required,gt=0"`
}

func (h *Handlers) CreateWithdrawal(c *gin.Context) {
	var req CreateWithdrawalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	res, err := h.Requests.CreateWithdrawal(services.CreateWithdrawalDTO{
		UserId:    req.UserId,
		Username:  req.Username,
		AccountId: req.AccountId,
		Amount:    req.Amount,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	respond(c, res)
}

type CreateTopupRequest struct {
	UserId             int     `json:"user_id" binding:"required"`
	Username           string  `json:"username" binding:"required"`
	Amount             float64 `json:"amount" binding:"required,gt=0"`
	Currency           string  `json:"currency" binding:"required,oneof=IDR USD"`
	DestinationAccount string  `json:"destination_account" binding:"required"`
}

func (h *Handlers) CreateTopup(c *gin.Context) {
	var req CreateTopupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	res, err := h.Requests.CreateTopup(services.CreateTopupDTO{
		UserId:             req.UserId,
		Username:           req.Username,
		Amount:             req.Amount,
		Currency:           req.Currency,
		DestinationAccount: req.DestinationAccount,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	respond(c, res)
}

func (h *Handlers) GetRequest(c *gin.Context) {
	id, ok := pathId(c, "id")
	if !ok {
		return
	}

	res, err := h.Requests.GetRequest(id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	respond(c, res)
}

func (h *Handlers) ListRequests(c *gin.Context) {
	page, _ := strconv.Atoi(c.Query("page"))
	limit, _ := strconv.Atoi(c.Query("limit"))
	userId, _ := strconv.Atoi(c.Query("user_id"))

	res, err := h.Requests.ListRequests(services.ListRequestsDTO{
		Status: c.Query("status"),
		Kind:   c.Query("kind"),
		UserId: userId,
		Page:   page,
		Limit:  limit,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	respond(c, res)
}

type DecisionRequest struct {
	Decision       string   `json:"decision" binding:"required,oneof=approved rejected"`
	VerifiedAmount *float64 `json:"verified_amount"`
	AdminNotes     string   `json:"admin_notes"`
}

func (h *Handlers) SubmitDecision(c *gin.Context) {
	admin, ok := actorId(c)
	if !ok {
		return
	}
	id, ok := pathId(c, "id")
	if !ok {
		return
	}

	var req DecisionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	res, err := h.Decisions.Decide(services.DecideDTO{
		RequestId:      id,
		AdminId:        admin,
		Decision:       req.Decision,
		VerifiedAmount: req.VerifiedAmount,
		AdminNotes:     req.AdminNotes,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	respond(c, res)
}

func (h *Handlers) ListNotifications(c *gin.Context) {
	admin, ok := actorId(c)
	if !ok {
		return
	}

	res, err := h.Notifications.ListNotifications(admin)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	respond(c, res)
}

func (h *Handlers) MarkNotificationRead(c *gin.Context) {
	admin, ok := actorId(c)
	if !ok {
		return
	}
	id, ok := pathId(c, "id")
	if !ok {
		return
	}

	res, err := h.Notifications.MarkRead(admin, id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	respond(c, res)
}
