// Package models contains data structures for the application's domain models.
package models

import "time"

// SkillLevel is the self-assessed proficiency of a skill.
type SkillLevel string

const (
	SkillLevelBeginner     SkillLevel = "beginner"
	SkillLevelIntermediate SkillLevel = "intermediate"
	SkillLevelAdvanced     SkillLevel = "advanced"
	SkillLevelExpert       SkillLevel = "expert"
)

// skillLevelRank orders proficiency levels for comparison.
var skillLevelRank = map[SkillLevel]int{
	SkillLevelBeginner:     0,
	SkillLevelIntermediate: 1,
	SkillLevelAdvanced:     2,
	SkillLevelExpert:       3,
}

// Valid reports whether the level is one of the known proficiency values.
func (l SkillLevel) Valid() bool {
	_, ok := skillLevelRank[l]
	return ok
}

// AtLeast reports whether the level is at or above the given minimum.
func (l SkillLevel) AtLeast(min SkillLevel) bool {
	return skillLevelRank[l] >= skillLevelRank[min]
}

// Skill is a value object owned by a user's offered or wanted list.
// It is copied by value into swap requests; there is no back-reference
// from a swap's exchange record to the user's live list.
type Skill struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Category    string     `json:"category"`
	Description string     `json:"description,omitempty"`
	Level       SkillLevel `json:"level"`
}

// Badge is a one-time achievement marker. Badges are unique per user by
// name; a name already present is never re-awarded.
type Badge struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Icon        string    `json:"icon"`
	EarnedAt    time.Time `json:"earned_at"`
}
