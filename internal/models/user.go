package models

import "time"

// Role distinguishes regular users from platform admins.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// Availability records when a user is generally free to swap.
type Availability struct {
	Weekends bool   `json:"weekends"`
	Evenings bool   `json:"evenings"`
	Custom   string `json:"custom,omitempty"`
}

// User represents a member of the SkillSwap platform.
//
// TrustScore is a clamped weighted average over historical ratings and is
// always recomputed, never incremented in place. Points only ever increase.
// Users are never hard-deleted; banning is a soft state.
//
// IsPublic carries no column default on purpose: GORM drops zero-valued
// fields with a default tag on insert, which would turn a private signup
// public. Signup and the seeder set the value explicitly.
type User struct {
	ID            uint         `gorm:"primaryKey" json:"id"`
	Name          string       `gorm:"not null" json:"name"`
	Email         string       `gorm:"unique;not null" json:"email"`
	Password      string       `gorm:"not null" json:"-"`
	PhotoURL      string       `json:"photo_url,omitempty"`
	Location      string       `json:"location,omitempty"`
	SkillsOffered []Skill      `gorm:"serializer:json" json:"skills_offered"`
	SkillsWanted  []Skill      `gorm:"serializer:json" json:"skills_wanted"`
	Availability  Availability `gorm:"serializer:json" json:"availability"`
	IsPublic      bool         `json:"is_public"`
	TrustScore    int          `gorm:"default:100" json:"trust_score"`
	Points        int          `gorm:"default:0" json:"points"`
	Badges        []Badge      `gorm:"serializer:json" json:"badges"`
	Role          Role         `gorm:"type:varchar(10);default:'user';index" json:"role"`
	IsBanned      bool         `gorm:"default:false;index" json:"is_banned"`
	BanReason     string       `json:"ban_reason,omitempty"`
	BannedAt      *time.Time   `json:"banned_at,omitempty"`
	CreatedAt     time.Time    `json:"created_at"`
	UpdatedAt     time.Time    `json:"updated_at"`
}

// TableName specifies the table name for GORM
func (User) TableName() string {
	return "users"
}

// IsAdmin reports whether the user holds the admin role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// HasBadge reports whether the user already earned a badge with the given name.
func (u *User) HasBadge(name string) bool {
	for _, b := range u.Badges {
		if b.Name == name {
			return true
		}
	}
	return false
}

// Snapshot returns the denormalized copy of the user embedded into swap
// requests at creation time. Later profile edits do not propagate to it.
func (u *User) Snapshot() UserSnapshot {
	return UserSnapshot{
		ID:         u.ID,
		Name:       u.Name,
		PhotoURL:   u.PhotoURL,
		Location:   u.Location,
		TrustScore: u.TrustScore,
	}
}
