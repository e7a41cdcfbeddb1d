package services

import (
	"log/slog"
	"time"

	"github.com/xaabbigautam/Work-Tracker/internal/models"
	"gorm.io/gorm"
)

// ActivityService appends audit entries for state-changing operations.
// Recording is best-effort: a failed append is logged to the operator
// console and never fails or rolls back the operation it describes.
type ActivityService struct {
	db *gorm.DB
}

func NewActivityService(db *gorm.DB) *ActivityService {
	return &ActivityService{db: db}
}

// Record appends one entry. taskID is nil for actions that outlive the task
// row, such as a deletion.
func (s *ActivityService) Record(taskID *uint, actor *models.User, action, details string) {
	entry := models.ActivityLog{
		TaskID:    taskID,
		UserEmail: actor.Email,
		UserName:  actor.Name,
		Action:    action,
		Details:   details,
		Timestamp: time.Now(),
	}
	if err := s.db.Create(&entry).Error; err != nil {
		slog.Error("failed to record activity", "action", action, "user_email", actor.Email, "error", err)
	}
}

// ListForTask returns a task's audit trail, newest first.
func (s *ActivityService) ListForTask(taskID uint) ([]models.ActivityLog, error) {
	var logs []models.ActivityLog
	err := s.db.Where("task_id = ?", taskID).Order("timestamp DESC").Order("id DESC").Find(&logs).Error
	return logs, err
}
