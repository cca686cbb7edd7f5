package worker

import (
	"encoding/json"

	"settlement-service/internal/consumers"

	"github.com/hibiken/asynq"
)

// Task Types
const (
	TypeClaimRevoked = "claim-revoked"
)

// Task Creators

func NewClaimRevokedTask(payload consumers.ClaimRevokedDTO) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeClaimRevoked, data), nil
}
