package services

import (
	"fmt"
	"net/http"
	"time"

	"settlement-service/internal/models"
	"settlement-service/pkg/common"

	"gorm.io/gorm"
)

type RequestService struct {
	DB    *gorm.DB
	Codes *UniqueCodeService
}

func NewRequestService(db *gorm.DB, codes *UniqueCodeService) *RequestService {
	return &RequestService{DB: db, Codes: codes}
}

type CreateWithdrawalDTO struct {
	UserId    int
	Username  string
	AccountId int
	Amount    float64
}

// CreateWithdrawal opens a withdrawal request against an ad account. The
// balance is only checked here as an intake guard; the authoritative check
// happens again at settlement.
func (s *RequestService) CreateWithdrawal(data CreateWithdrawalDTO) (interface{}, error) {
	if data.Amount <= 0 {
		return common.NewCodedErrorResponse(common.CodeInvalidAmount,
			"Amount must be greater than zero", nil, http.StatusBadRequest), nil
	}

	var account models.AdAccount
	if err := s.DB.Where("id = ? AND user_id = ?", data.AccountId, data.UserId).First(&account).Error; err != nil {
		return common.NewCodedErrorResponse(common.CodeNotFound, "Ad account not found", nil, http.StatusNotFound), nil
	}
	if account.IsDeleted {
		return common.NewErrorResponse("Ad account has been deleted", nil, http.StatusBadRequest), nil
	}
	if account.Balance < data.Amount {
		return common.NewErrorResponse("You have insufficient funds to cover the withdrawal request.", nil, http.StatusBadRequest), nil
	}

	request := models.FinancialRequest{
		Kind:            models.KindWithdrawal,
		UserId:          data.UserId,
		Username:        data.Username,
		AccountId:       data.AccountId,
		RequestedAmount: data.Amount,
		Currency:        account.Currency,
		Status:          models.StatusPending,
	}

	if err := s.DB.Create(&request).Error; err != nil {
		return common.ErrorResponse{}, err
	}

	return common.NewSuccessResponse(request, "Withdrawal request created"), nil
}

type CreateTopupDTO struct {
	UserId             int
	Username           string
	Amount             float64
	Currency           string
	DestinationAccount string
}

// CreateTopup opens a wallet top-up request. A unique code is appended to the
// requested amount so the payer's bank transfer can be matched to this exact
// request.
func (s *RequestService) CreateTopup(data CreateTopupDTO) (interface{}, error) {
	if data.Amount <= 0 {
		return common.NewCodedErrorResponse(common.CodeInvalidAmount,
			"Amount must be greater than zero", nil, http.StatusBadRequest), nil
	}
	if data.Currency != "IDR" && data.Currency != "USD" {
		return common.NewErrorResponse(fmt.Sprintf("Unsupported currency %q", data.Currency), nil, http.StatusBadRequest), nil
	}

	code, err := s.Codes.Assign(data.Amount, data.Currency, data.DestinationAccount)
	if err != nil {
		return common.ErrorResponse{}, err
	}

	request := models.FinancialRequest{
		Kind:               models.KindWalletTopup,
		UserId:             data.UserId,
		Username:           data.Username,
		RequestedAmount:    data.Amount,
		Currency:           data.Currency,
		UniqueCode:         code,
		DestinationAccount: data.DestinationAccount,
		Status:             models.StatusPending,
	}

	if err := s.DB.Create(&request).Error; err != nil {
		return common.ErrorResponse{}, err
	}

	return common.NewSuccessResponse(map[string]interface{}{
		"request":                request,
		"total_with_unique_code": request.TotalWithUniqueCode(),
	}, "Top-up request created, transfer the exact total shown"), nil
}

type CreateDeletionTransferDTO struct {
	AccountId     int
	AdminId       int
	BalanceAmount float64
}

// CreateDeletionTransfer opens a balance_transfer_on_delete request already
// claimed by the initiating admin, so the deletion flow can attach proofs and
// decide in one go.
func (s *RequestService) CreateDeletionTransfer(data CreateDeletionTransferDTO) (*models.FinancialRequest, interface{}, error) {
	var admin models.Admin
	if err := s.DB.First(&admin, data.AdminId).Error; err != nil {
		return nil, common.NewCodedErrorResponse(common.CodeNotFound, "Admin not found", nil, http.StatusNotFound), nil
	}

	var account models.AdAccount
	if err := s.DB.First(&account, data.AccountId).Error; err != nil {
		return nil, common.NewCodedErrorResponse(common.CodeNotFound, "Ad account not found", nil, http.StatusNotFound), nil
	}
	if account.IsDeleted {
		return nil, common.NewErrorResponse("Ad account has already been deleted", nil, http.StatusConflict), nil
	}
	if data.BalanceAmount != account.Balance {
		return nil, common.NewCodedErrorResponse(common.CodeInvalidAmount,
			fmt.Sprintf("balance_amount %.2f does not match the account balance %.2f", data.BalanceAmount, account.Balance),
			nil, http.StatusBadRequest), nil
	}

	now := time.Now()
	request := models.FinancialRequest{
		Kind:              models.KindBalanceTransferDelete,
		UserId:            account.UserId,
		Username:          account.Username,
		AccountId:         account.ID,
		RequestedAmount:   data.BalanceAmount,
		Currency:          account.Currency,
		Status:            models.StatusPending,
		ClaimedBy:         &data.AdminId,
		ClaimedByUsername: &admin.Username,
		ClaimedAt:         &now,
	}

	if err := s.DB.Create(&request).Error; err != nil {
		return nil, common.ErrorResponse{}, err
	}

	return &request, nil, nil
}

func (s *RequestService) GetRequest(id int) (interface{}, error) {
	var request models.FinancialRequest
	if err := s.DB.Preload("Proofs").First(&request, id).Error; err != nil {
		return common.NewCodedErrorResponse(common.CodeNotFound, "Request not found", nil, http.StatusNotFound), nil
	}
	return common.NewSuccessResponse(request, "Successful"), nil
}

type ListRequestsDTO struct {
	Status string
	Kind   string
	UserId int
	Page   int
	Limit  int
}

// ListRequests is the admin queue view. Claim fields ride along so the UI can
// show "claimed by X since T" on rows someone else is working.
func (s *RequestService) ListRequests(data ListRequestsDTO) (common.PaginationResult, error) {
	limit := data.Limit
	if limit <= 0 {
		limit = 50
	}
	page := data.Page
	if page < 1 {
		page = 1
	}
	offset := (page - 1) * limit

	query := s.DB.Model(&models.FinancialRequest{})

	if data.Status != "" {
		query = query.Where("status = ?", data.Status)
	}
	if data.Kind != "" {
		query = query.Where("kind = ?", data.Kind)
	}
	if data.UserId != 0 {
		query = query.Where("user_id = ?", data.UserId)
	}

	var total int64
	query.Count(&total)

	var list []models.FinancialRequest
	if err := query.Preload("Proofs").Order("created_at DESC").Limit(limit).Offset(offset).Find(&list).Error; err != nil {
		return common.PaginationResult{}, err
	}

	return common.PaginateResponse(list, total, page, limit, "Requests fetched successfully"), nil
}
