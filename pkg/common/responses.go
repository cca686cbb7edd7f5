package common

import "net/http"

// Error codes surfaced to clients alongside the HTTP status. Claim and
// ownership errors are recoverable by re-fetching; artifact/amount errors
// require corrected input.
const (
	CodeAlreadyClaimed        = "AlreadyClaimed"
	CodeNotClaimHolder        = "NotClaimHolder"
	CodeInsufficientPrivilege = "InsufficientPrivilege"
	CodeStaleClaim            = "StaleClaim"
	CodeProofIncomplete       = "ProofIncomplete"
	CodeInvalidArtifact       = "InvalidArtifact"
	CodeInvalidAmount         = "InvalidAmount"
	CodeSettlementFailure     = "SettlementFailure"
	CodeNotFound              = "NotFound"
	CodeRequestProcessed      = "RequestProcessed"
)

type SuccessResponse struct {
	Status  int         `json:"status"`
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
}

type ErrorResponse struct {
	Status  int         `json:"status"`
	Code    string      `json:"code,omitempty"`
	Message string      `json:"message"`
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
}

func NewSuccessResponse(data interface{}, message string) SuccessResponse {
	return SuccessResponse{
		Status:  http.StatusOK,
		Success: true,
		Message: message,
		Data:    data,
	}
}

func NewErrorResponse(message string, data interface{}, status int) ErrorResponse {
	return ErrorResponse{
		Status:  status,
		Success: false,
		Message: message,
		Data:    data,
	}
}

// NewCodedErrorResponse is NewErrorResponse with a machine-readable code so
// clients can branch without parsing messages.
func NewCodedErrorResponse(code, message string, data interface{}, status int) ErrorResponse {
	res := NewErrorResponse(message, data, status)
	res.Code = code
	return res
}
