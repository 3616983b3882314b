// Package export renders read-only CSV exports for admin tooling.
package export

import (
	"strconv"
	"strings"
	"time"

	"skillswap/internal/models"
)

var userHeader = []string{
	"id", "name", "email", "location", "role", "isPublic", "isBanned",
	"trustScore", "points", "skillsOffered", "skillsWanted", "createdAt", "updatedAt",
}

var swapHeader = []string{
	"id", "fromUserId", "toUserId", "status",
	"skillsOffered", "skillsWanted", "createdAt", "updatedAt", "completedAt",
}

// field quotes a value only when it contains a comma. Everything else is
// rendered verbatim, and absent values render as the empty string.
func field(v string) string {
	if strings.Contains(v, ",") {
		return `"` + v + `"`
	}
	return v
}

func timestamp(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}

func optionalTimestamp(t *time.Time) string {
	if t == nil {
		return ""
	}
	return timestamp(*t)
}

func writeRow(b *strings.Builder, values []string) {
	for i, v := range values {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(field(v))
	}
	b.WriteByte('\n')
}

// UsersCSV renders the users export: a header row followed by one row per user.
// Skill lists are rendered as counts.
func UsersCSV(users []models.User) string {
	var b strings.Builder
	writeRow(&b, userHeader)
	for _, u := range users {
		writeRow(&b, []string{
			strconv.FormatUint(uint64(u.ID), 10),
			u.Name,
			u.Email,
			u.Location,
			string(u.Role),
			strconv.FormatBool(u.IsPublic),
			strconv.FormatBool(u.IsBanned),
			strconv.Itoa(u.TrustScore),
			strconv.Itoa(u.Points),
			strconv.Itoa(len(u.SkillsOffered)),
			strconv.Itoa(len(u.SkillsWanted)),
			timestamp(u.CreatedAt),
			timestamp(u.UpdatedAt),
		})
	}
	return b.String()
}

// SwapsCSV renders the swaps export: a header row followed by one row per swap.
func SwapsCSV(swaps []models.SwapRequest) string {
	var b strings.Builder
	writeRow(&b, swapHeader)
	for _, s := range swaps {
		writeRow(&b, []string{
			strconv.FormatUint(uint64(s.ID), 10),
			strconv.FormatUint(uint64(s.FromUserID), 10),
			strconv.FormatUint(uint64(s.ToUserID), 10),
			string(s.Status),
			strconv.Itoa(len(s.SkillsOffered)),
			strconv.Itoa(len(s.SkillsWanted)),
			timestamp(s.CreatedAt),
			timestamp(s.UpdatedAt),
			optionalTimestamp(s.CompletedAt),
		})
	}
	return b.String()
}
