package models

import "time"

// NotificationType classifies a notification record.
type NotificationType string

const (
	NotificationSwapRequest      NotificationType = "swap_request"
	NotificationSwapAccepted     NotificationType = "swap_accepted"
	NotificationSwapRejected     NotificationType = "swap_rejected"
	NotificationFeedbackReceived NotificationType = "feedback_received"
	NotificationSystem           NotificationType = "system"
)

// Notification is an append-only per-user message created as a side effect
// of lifecycle events. Writes are not deduplicated; a caller retry can
// produce duplicates and readers must tolerate them. Only IsRead is ever
// mutated after creation.
type Notification struct {
	ID        uint             `gorm:"primaryKey" json:"id"`
	UserID    uint             `gorm:"not null;index" json:"user_id"`
	Type      NotificationType `gorm:"type:varchar(30);not null" json:"type"`
	Title     string           `gorm:"not null" json:"title"`
	Message   string           `gorm:"type:text" json:"message"`
	IsRead    bool             `gorm:"default:false" json:"is_read"`
	RelatedID uint             `json:"related_id,omitempty"`
	CreatedAt time.Time        `json:"created_at"`
}

// TableName specifies the table name for GORM
func (Notification) TableName() string {
	return "notifications"
}
