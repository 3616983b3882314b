package models

import "time"

// SwapStatus represents the lifecycle state of a swap request.
type SwapStatus string

const (
	// SwapStatusPending is the sole initial state of a new request.
	SwapStatusPending SwapStatus = "pending"
	// SwapStatusAccepted indicates the recipient agreed to the exchange.
	SwapStatusAccepted SwapStatus = "accepted"
	// SwapStatusRejected indicates the recipient declined the exchange.
	SwapStatusRejected SwapStatus = "rejected"
	// SwapStatusCompleted indicates both sides finished the exchange.
	SwapStatusCompleted SwapStatus = "completed"
	// SwapStatusCancelled indicates a participant withdrew the request.
	SwapStatusCancelled SwapStatus = "cancelled"
	// SwapStatusDeleted hides the request from listings. The record is
	// kept; there is no transition out of this state.
	SwapStatusDeleted SwapStatus = "deleted"
)

// swapTransitions is the full set of allowed status transitions.
var swapTransitions = map[SwapStatus][]SwapStatus{
	SwapStatusPending:   {SwapStatusAccepted, SwapStatusRejected, SwapStatusCancelled},
	SwapStatusAccepted:  {SwapStatusCompleted, SwapStatusCancelled},
	SwapStatusRejected:  {SwapStatusDeleted},
	SwapStatusCancelled: {SwapStatusDeleted},
	SwapStatusCompleted: {SwapStatusDeleted},
	SwapStatusDeleted:   nil,
}

// CanTransitionTo reports whether moving from s to next is a legal
// lifecycle transition.
func (s SwapStatus) CanTransitionTo(next SwapStatus) bool {
	for _, allowed := range swapTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// UserSnapshot is the denormalized participant copy frozen into a swap
// request when it is created. Reading stale participant data after a later
// profile edit is intentional; the snapshot is never refreshed.
type UserSnapshot struct {
	ID         uint   `json:"id"`
	Name       string `json:"name"`
	PhotoURL   string `json:"photo_url,omitempty"`
	Location   string `json:"location,omitempty"`
	TrustScore int    `json:"trust_score"`
}

// SwapRequest is a proposed exchange of skills between two users.
type SwapRequest struct {
	ID              uint         `gorm:"primaryKey" json:"id"`
	FromUserID      uint         `gorm:"not null;index" json:"from_user_id"`
	ToUserID        uint         `gorm:"not null;index" json:"to_user_id"`
	FromUser        UserSnapshot `gorm:"serializer:json" json:"from_user"`
	ToUser          UserSnapshot `gorm:"serializer:json" json:"to_user"`
	SkillsOffered   []Skill      `gorm:"serializer:json" json:"skills_offered"`
	SkillsWanted    []Skill      `gorm:"serializer:json" json:"skills_wanted"`
	Status          SwapStatus   `gorm:"type:varchar(20);default:'pending';index:idx_swap_requests_status" json:"status"`
	Message         string       `json:"message,omitempty"`
	ResponseMessage string       `json:"response_message,omitempty"`
	Notes           string       `json:"notes,omitempty"`
	CreatedAt       time.Time    `json:"created_at"`
	UpdatedAt       time.Time    `json:"updated_at"`
	CompletedAt     *time.Time   `json:"completed_at,omitempty"`
}

// TableName specifies the table name for GORM
func (SwapRequest) TableName() string {
	return "swap_requests"
}

// IsParticipant reports whether the given user is one of the two
// denormalized participants. Only participants may transition a request.
func (r *SwapRequest) IsParticipant(userID uint) bool {
	return r.FromUserID == userID || r.ToUserID == userID
}

// OtherParticipant returns the ID of the counterparty of userID.
// Returns 0 if userID is not a participant.
func (r *SwapRequest) OtherParticipant(userID uint) uint {
	switch userID {
	case r.FromUserID:
		return r.ToUserID
	case r.ToUserID:
		return r.FromUserID
	}
	return 0
}
