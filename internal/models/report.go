package models

import "time"

// ReportStatus tracks the moderation state of a report.
type ReportStatus string

const (
	ReportStatusPending   ReportStatus = "pending"
	ReportStatusResolved  ReportStatus = "resolved"
	ReportStatusDismissed ReportStatus = "dismissed"
)

// Report is a user-filed complaint about another user or a swap, handled
// by admins from the moderation dashboard.
type Report struct {
	ID             uint         `gorm:"primaryKey" json:"id"`
	ReporterID     uint         `gorm:"not null;index" json:"reporter_id"`
	ReportedUserID *uint        `gorm:"index" json:"reported_user_id,omitempty"`
	ReportedSwapID *uint        `gorm:"index" json:"reported_swap_id,omitempty"`
	Reason         string       `gorm:"not null" json:"reason"`
	Description    string       `gorm:"type:text" json:"description"`
	Status         ReportStatus `gorm:"type:varchar(20);default:'pending';index" json:"status"`
	CreatedAt      time.Time    `json:"created_at"`
	ResolvedAt     *time.Time   `json:"resolved_at,omitempty"`
	ResolvedBy     *uint        `json:"resolved_by,omitempty"`
}

// TableName specifies the table name for GORM
func (Report) TableName() string {
	return "reports"
}
