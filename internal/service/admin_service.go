package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"skillswap/internal/middleware"
	"skillswap/internal/models"
	"skillswap/internal/repository"
)

// AdminService provides moderation and platform administration logic.
type AdminService struct {
	userRepo      repository.UserRepository
	swapRepo      repository.SwapRepository
	feedbackRepo  repository.FeedbackRepository
	reportRepo    repository.ReportRepository
	notifications NotificationCreator
	publisher     EventPublisher
}

// NewAdminService returns a new AdminService.
func NewAdminService(
	userRepo repository.UserRepository,
	swapRepo repository.SwapRepository,
	feedbackRepo repository.FeedbackRepository,
	reportRepo repository.ReportRepository,
	notifications NotificationCreator,
	publisher EventPublisher,
) *AdminService {
	return &AdminService{
		userRepo:      userRepo,
		swapRepo:      swapRepo,
		feedbackRepo:  feedbackRepo,
		reportRepo:    reportRepo,
		notifications: notifications,
		publisher:     publisher,
	}
}

// BanUser places a user in the banned soft state. Admins cannot ban
// themselves or other admins.
func (s *AdminService) BanUser(ctx context.Context, adminID, userID uint, reason string) (*models.User, error) {
	if adminID == userID {
		return nil, models.NewValidationError("You cannot ban yourself")
	}
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.IsAdmin() {
		return nil, models.NewValidationError("Admins cannot be banned")
	}
	if user.IsBanned {
		return nil, models.NewConflictError("User is already banned")
	}

	now := time.Now()
	user.IsBanned = true
	user.BanReason = reason
	user.BannedAt = &now
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	middleware.Logger.InfoContext(ctx, "user banned",
		slog.Uint64("admin_id", uint64(adminID)),
		slog.Uint64("user_id", uint64(userID)),
		slog.String("reason", reason),
	)

	s.notifyUser(ctx, &models.Notification{
		UserID:  userID,
		Type:    models.NotificationSystem,
		Title:   "Account suspended",
		Message: fmt.Sprintf("Your account has been suspended: %s", reason),
	})
	return user, nil
}

// UnbanUser lifts a ban.
func (s *AdminService) UnbanUser(ctx context.Context, adminID, userID uint) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !user.IsBanned {
		return nil, models.NewConflictError("User is not banned")
	}

	user.IsBanned = false
	user.BanReason = ""
	user.BannedAt = nil
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	middleware.Logger.InfoContext(ctx, "user unbanned",
		slog.Uint64("admin_id", uint64(adminID)),
		slog.Uint64("user_id", uint64(userID)),
	)

	s.notifyUser(ctx, &models.Notification{
		UserID:  userID,
		Type:    models.NotificationSystem,
		Title:   "Account reinstated",
		Message: "Your account has been reinstated. Welcome back!",
	})
	return user, nil
}

// SetRole changes a user's role. An admin cannot demote themselves.
func (s *AdminService) SetRole(ctx context.Context, adminID, userID uint, role models.Role) (*models.User, error) {
	if role != models.RoleUser && role != models.RoleAdmin {
		return nil, models.NewValidationError("Invalid role")
	}
	if adminID == userID && role != models.RoleAdmin {
		return nil, models.NewValidationError("You cannot remove your own admin role")
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	user.Role = role
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// ListUsers returns all users for admin views, newest first.
func (s *AdminService) ListUsers(ctx context.Context, limit, offset int) ([]models.User, error) {
	if limit <= 0 || limit > 200 {
		limit = 100
	}
	return s.userRepo.List(ctx, limit, offset)
}

// PlatformStats summarizes platform activity for the admin dashboard.
type PlatformStats struct {
	TotalUsers    int64                       `json:"total_users"`
	TotalFeedback int64                       `json:"total_feedback"`
	SwapsByStatus map[models.SwapStatus]int64 `json:"swaps_by_status"`
}

// Stats aggregates platform counters.
func (s *AdminService) Stats(ctx context.Context) (*PlatformStats, error) {
	users, err := s.userRepo.Count(ctx)
	if err != nil {
		return nil, err
	}
	feedback, err := s.feedbackRepo.Count(ctx)
	if err != nil {
		return nil, err
	}
	swaps, err := s.swapRepo.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}
	return &PlatformStats{
		TotalUsers:    users,
		TotalFeedback: feedback,
		SwapsByStatus: swaps,
	}, nil
}

// BroadcastMessage persists a system notification for every user and pushes
// it to all connected clients.
func (s *AdminService) BroadcastMessage(ctx context.Context, adminID uint, title, message string) (int, error) {
	if title == "" || message == "" {
		return 0, models.NewValidationError("Title and message are required")
	}

	users, err := s.userRepo.ListAll(ctx)
	if err != nil {
		return 0, err
	}

	created := 0
	for _, user := range users {
		notification := &models.Notification{
			UserID:  user.ID,
			Type:    models.NotificationSystem,
			Title:   title,
			Message: message,
		}
		if err := s.notifications.Notify(ctx, notification); err != nil {
			middleware.Logger.WarnContext(ctx, "failed to record broadcast notification",
				slog.Uint64("user_id", uint64(user.ID)),
				slog.String("error", err.Error()),
			)
			continue
		}
		created++
	}

	if s.publisher != nil {
		payload, err := json.Marshal(map[string]interface{}{
			"type": "notification",
			"payload": map[string]interface{}{
				"type":    models.NotificationSystem,
				"title":   title,
				"message": message,
			},
		})
		if err == nil {
			if err := s.publisher.PublishBroadcast(ctx, string(payload)); err != nil {
				middleware.Logger.WarnContext(ctx, "failed to publish broadcast",
					slog.String("error", err.Error()))
			}
		}
	}

	middleware.Logger.InfoContext(ctx, "platform broadcast sent",
		slog.Uint64("admin_id", uint64(adminID)),
		slog.Int("recipients", created),
	)
	return created, nil
}

// SubmitReport files a moderation report against a user or a swap.
func (s *AdminService) SubmitReport(ctx context.Context, reporterID uint, reportedUserID, reportedSwapID *uint, reason, description string) (*models.Report, error) {
	if reason == "" {
		return nil, models.NewValidationError("A reason is required")
	}
	if reportedUserID == nil && reportedSwapID == nil {
		return nil, models.NewValidationError("A report must target a user or a swap")
	}
	if reportedUserID != nil {
		if *reportedUserID == reporterID {
			return nil, models.NewValidationError("You cannot report yourself")
		}
		if _, err := s.userRepo.GetByID(ctx, *reportedUserID); err != nil {
			return nil, err
		}
	}
	if reportedSwapID != nil {
		if _, err := s.swapRepo.GetByID(ctx, *reportedSwapID); err != nil {
			return nil, err
		}
	}

	report := &models.Report{
		ReporterID:     reporterID,
		ReportedUserID: reportedUserID,
		ReportedSwapID: reportedSwapID,
		Reason:         reason,
		Description:    description,
		Status:         models.ReportStatusPending,
	}
	if err := s.reportRepo.Create(ctx, report); err != nil {
		return nil, err
	}
	return report, nil
}

// ListReports returns reports for admin review, optionally filtered by status.
func (s *AdminService) ListReports(ctx context.Context, status models.ReportStatus, limit, offset int) ([]models.Report, error) {
	if status != "" && status != models.ReportStatusPending &&
		status != models.ReportStatusResolved && status != models.ReportStatusDismissed {
		return nil, models.NewValidationError("Invalid report status")
	}
	if limit <= 0 || limit > 200 {
		limit = 100
	}
	return s.reportRepo.List(ctx, status, limit, offset)
}

// ResolveReport closes a pending report as resolved or dismissed.
func (s *AdminService) ResolveReport(ctx context.Context, adminID, reportID uint, status models.ReportStatus) (*models.Report, error) {
	if status != models.ReportStatusResolved && status != models.ReportStatusDismissed {
		return nil, models.NewValidationError("Reports can only be resolved or dismissed")
	}

	report, err := s.reportRepo.GetByID(ctx, reportID)
	if err != nil {
		return nil, err
	}
	if report.Status != models.ReportStatusPending {
		return nil, models.NewConflictError("Report is already closed")
	}

	now := time.Now()
	report.Status = status
	report.ResolvedAt = &now
	report.ResolvedBy = &adminID
	if err := s.reportRepo.Update(ctx, report); err != nil {
		return nil, err
	}
	return report, nil
}

func (s *AdminService) notifyUser(ctx context.Context, notification *models.Notification) {
	if s.notifications == nil {
		return
	}
	if err := s.notifications.Notify(ctx, notification); err != nil {
		middleware.Logger.WarnContext(ctx, "failed to record admin notification",
			slog.Uint64("user_id", uint64(notification.UserID)),
			slog.String("error", err.Error()),
		)
	}
}
