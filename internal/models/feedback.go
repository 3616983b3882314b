package models

import "time"

// Feedback is a rating left by one participant of a completed swap about
// the other. Records are immutable after creation. There is deliberately no
// per-swap uniqueness constraint: a rater may submit feedback for the same
// swap more than once, a known gap carried over from the original design.
type Feedback struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	SwapRequestID uint      `gorm:"not null;index" json:"swap_request_id"`
	FromUserID    uint      `gorm:"not null;index" json:"from_user_id"`
	ToUserID      uint      `gorm:"not null;index" json:"to_user_id"`
	FromUserName  string    `json:"from_user_name"`
	ToUserName    string    `json:"to_user_name"`
	Rating        int       `gorm:"not null" json:"rating"`
	Comment       string    `gorm:"type:text" json:"comment"`
	CreatedAt     time.Time `json:"created_at"`
}

// TableName specifies the table name for GORM
func (Feedback) TableName() string {
	return "feedbacks"
}
