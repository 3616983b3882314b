package reputation

import (
	"time"

	"skillswap/internal/models"

	"github.com/google/uuid"
)

// Badge names. Dedup is by name: once a name appears in a user's badge set
// it is never awarded again, even if the qualifying condition re-occurs.
const (
	BadgeFirstSwap       = "First Swap"
	BadgeTrustedUser     = "Trusted User"
	BadgeSkillMaster     = "Skill Master"
	BadgeCommunityHelper = "Community Helper"
)

type badgeRule struct {
	name        string
	description string
	icon        string
	qualifies   func(*models.User) bool
}

// badgeRules are evaluated independently; rules are neither ordered nor
// mutually exclusive.
var badgeRules = []badgeRule{
	{
		name:        BadgeFirstSwap,
		description: "Completed your first skill swap",
		icon:        "🎯",
		qualifies:   func(u *models.User) bool { return u.Points >= 10 },
	},
	{
		name:        BadgeTrustedUser,
		description: "Maintained a high trust score",
		icon:        "⭐",
		qualifies:   func(u *models.User) bool { return u.TrustScore >= 90 },
	},
	{
		name:        BadgeSkillMaster,
		description: "Offered 5 or more skills",
		icon:        "🏆",
		qualifies:   func(u *models.User) bool { return len(u.SkillsOffered) >= 5 },
	},
	{
		name:        BadgeCommunityHelper,
		description: "Earned 100+ points helping others",
		icon:        "🤝",
		qualifies:   func(u *models.User) bool { return u.Points >= 100 },
	},
}

// EvaluateBadges returns the badges the user newly qualifies for and does
// not already hold. The caller appends the result to the user's badge set
// and emits one notification per badge. Evaluating twice on unchanged stats
// yields nothing the second time.
func EvaluateBadges(user *models.User) []models.Badge {
	var earned []models.Badge
	now := time.Now()
	for _, rule := range badgeRules {
		if user.HasBadge(rule.name) || !rule.qualifies(user) {
			continue
		}
		earned = append(earned, models.Badge{
			ID:          uuid.New().String(),
			Name:        rule.name,
			Description: rule.description,
			Icon:        rule.icon,
			EarnedAt:    now,
		})
	}
	return earned
}
