package server

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	"skillswap/internal/models"
	"skillswap/internal/repository"
	"skillswap/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// newAdminTestApp extends the shared test server with the moderation
// routes. The stub auth middleware stays in charge of identity; admin
// status is whatever the user row says.
func newAdminTestApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()
	app, s, db := newTestServer(t)

	reportRepo := repository.NewReportRepository(db)
	s.reportRepo = reportRepo
	s.adminService = service.NewAdminService(
		s.userRepo, s.swapRepo, s.feedbackRepo, reportRepo,
		s.notificationService, nil,
	)

	app.Post("/api/reports", s.SubmitReport)
	app.Get("/api/admin/users", s.AdminListUsers)
	app.Post("/api/admin/users/:id/ban", s.BanUser)
	app.Post("/api/admin/users/:id/unban", s.UnbanUser)
	app.Put("/api/admin/users/:id/role", s.SetUserRole)
	app.Get("/api/admin/reports", s.ListReports)
	app.Post("/api/admin/reports/:id/resolve", s.ResolveReport)
	app.Get("/api/admin/stats", s.GetPlatformStats)
	app.Post("/api/admin/broadcast", s.BroadcastMessage)
	app.Get("/api/admin/export/users", s.ExportUsersCSV)
	app.Get("/api/admin/export/swaps", s.ExportSwapsCSV)

	return app, db
}

func createTestAdmin(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	admin := createTestUser(t, db, "Admin", "admin@example.com")
	require.NoError(t, db.Model(admin).Update("role", models.RoleAdmin).Error)
	admin.Role = models.RoleAdmin
	return admin
}

func TestBanUnbanOverHTTP(t *testing.T) {
	app, db := newAdminTestApp(t)
	admin := createTestAdmin(t, db)
	target := createTestUser(t, db, "Riley", "riley@example.com")

	resp := doJSON(t, app, http.MethodPost, "/api/admin/users/2/ban", admin.ID,
		map[string]string{"reason": "Spamming swap requests"})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var banned models.User
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&banned))
	_ = resp.Body.Close()
	assert.True(t, banned.IsBanned)
	assert.Equal(t, "Spamming swap requests", banned.BanReason)
	assert.NotNil(t, banned.BannedAt)

	// A ban without a reason is rejected before reaching the service.
	resp = doJSON(t, app, http.MethodPost, "/api/admin/users/2/ban", admin.ID,
		map[string]string{})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	_ = resp.Body.Close()

	resp = doJSON(t, app, http.MethodPost, "/api/admin/users/2/unban", admin.ID, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var unbanned models.User
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&unbanned))
	_ = resp.Body.Close()
	assert.False(t, unbanned.IsBanned)
	assert.Empty(t, unbanned.BanReason)
	assert.Nil(t, unbanned.BannedAt)

	// Both the suspension and the reinstatement notified the account.
	var count int64
	require.NoError(t, db.Model(&models.Notification{}).
		Where("user_id = ? AND type = ?", target.ID, models.NotificationSystem).
		Count(&count).Error)
	assert.Equal(t, int64(2), count)
}

func TestReportLifecycleOverHTTP(t *testing.T) {
	app, db := newAdminTestApp(t)
	admin := createTestAdmin(t, db)
	reporter := createTestUser(t, db, "Sam", "sam@example.com")
	offender := createTestUser(t, db, "Casey", "casey@example.com")

	resp := doJSON(t, app, http.MethodPost, "/api/reports", reporter.ID,
		map[string]interface{}{
			"reported_user_id": offender.ID,
			"reason":           "Abusive messages in a swap",
		})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var report models.Report
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&report))
	_ = resp.Body.Close()
	assert.Equal(t, models.ReportStatusPending, report.Status)
	assert.Equal(t, reporter.ID, report.ReporterID)

	resp = doJSON(t, app, http.MethodPost, "/api/admin/reports/1/resolve", admin.ID,
		map[string]string{"status": "resolved"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var resolved models.Report
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&resolved))
	_ = resp.Body.Close()
	assert.Equal(t, models.ReportStatusResolved, resolved.Status)
	require.NotNil(t, resolved.ResolvedBy)
	assert.Equal(t, admin.ID, *resolved.ResolvedBy)
	assert.NotNil(t, resolved.ResolvedAt)

	// Resolving twice conflicts.
	resp = doJSON(t, app, http.MethodPost, "/api/admin/reports/1/resolve", admin.ID,
		map[string]string{"status": "dismissed"})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	_ = resp.Body.Close()
}

func TestExportUsersCSVOverHTTP(t *testing.T) {
	app, db := newAdminTestApp(t)
	admin := createTestAdmin(t, db)
	createTestUser(t, db, "Jordan", "jordan@example.com")

	resp := doJSON(t, app, http.MethodGet, "/api/admin/export/users", admin.ID, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "text/csv", resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "users.csv")

	raw, err := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(string(raw), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "id,name,email,"))
	assert.Contains(t, lines[1], "admin@example.com")
	assert.Contains(t, lines[2], "jordan@example.com")
}

func TestExportSwapsCSVOverHTTP(t *testing.T) {
	app, db := newAdminTestApp(t)
	admin := createTestAdmin(t, db)
	sam := createTestUser(t, db, "Sam", "sam@example.com")

	completedAt := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, db.Create(&models.SwapRequest{
		FromUserID: admin.ID, ToUserID: sam.ID,
		Status:      models.SwapStatusCompleted,
		CompletedAt: &completedAt,
		SkillsOffered: []models.Skill{
			{Name: "Guitar", Category: "Music", Level: models.SkillLevelAdvanced},
		},
		SkillsWanted: []models.Skill{
			{Name: "Spanish", Category: "Languages", Level: models.SkillLevelBeginner},
		},
	}).Error)

	resp := doJSON(t, app, http.MethodGet, "/api/admin/export/swaps", admin.ID, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "text/csv", resp.Header.Get("Content-Type"))

	raw, err := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(string(raw), "\n"), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[1], "completed")
	assert.Contains(t, lines[1], "2026-03-01T12:00:00Z")
}

func TestPlatformStatsOverHTTP(t *testing.T) {
	app, db := newAdminTestApp(t)
	admin := createTestAdmin(t, db)
	createTestUser(t, db, "Sam", "sam@example.com")

	resp := doJSON(t, app, http.MethodGet, "/api/admin/stats", admin.ID, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var stats map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&stats))
	_ = resp.Body.Close()
	assert.EqualValues(t, 2, stats["total_users"])
}

func TestBroadcastOverHTTP(t *testing.T) {
	app, db := newAdminTestApp(t)
	admin := createTestAdmin(t, db)
	createTestUser(t, db, "Sam", "sam@example.com")
	createTestUser(t, db, "Riley", "riley@example.com")

	resp := doJSON(t, app, http.MethodPost, "/api/admin/broadcast", admin.ID,
		map[string]string{"title": "Maintenance", "message": "Down at noon"})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	_ = resp.Body.Close()
	assert.EqualValues(t, 3, out["recipients"])

	var count int64
	require.NoError(t, db.Model(&models.Notification{}).
		Where("type = ?", models.NotificationSystem).Count(&count).Error)
	assert.Equal(t, int64(3), count)
}
