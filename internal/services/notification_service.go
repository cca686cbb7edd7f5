package services

import (
	"net/http"

	"settlement-service/internal/models"
	"settlement-service/pkg/common"

	"gorm.io/gorm"
)

type NotificationService struct {
	DB *gorm.DB
}

func NewNotificationService(db *gorm.DB) *NotificationService {
	return &NotificationService{DB: db}
}

// ListNotifications returns the latest notices for an admin, unread first.
func (s *NotificationService) ListNotifications(adminId int) (common.SuccessResponse, error) {
	var notices []models.Notification
	if err := s.DB.Where("admin_id = ?", adminId).
		Order("is_read ASC, created_at DESC").
		Limit(50).
		Find(&notices).Error; err != nil {
		return common.SuccessResponse{}, err
	}

	return common.NewSuccessResponse(notices, "Successful"), nil
}

// MarkRead acknowledges a single notice.
func (s *NotificationService) MarkRead(adminId, noticeId int) (interface{}, error) {
	res := s.DB.Model(&models.Notification{}).
		Where("id = ? AND admin_id = ?", noticeId, adminId).
		Update("is_read", true)
	if res.Error != nil {
		return common.ErrorResponse{}, res.Error
	}
	if res.RowsAffected == 0 {
		return common.NewCodedErrorResponse(common.CodeNotFound, "Notification not found", nil, http.StatusNotFound), nil
	}
	return common.NewSuccessResponse(nil, "Marked as read"), nil
}
