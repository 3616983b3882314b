// Package service provides application business logic (swaps, feedback, users, admin).
package service

import (
	"context"
	"encoding/json"
	"log/slog"

	"skillswap/internal/middleware"
	"skillswap/internal/models"
	"skillswap/internal/repository"
)

// EventPublisher delivers realtime notification payloads to connected clients.
type EventPublisher interface {
	PublishUser(ctx context.Context, userID uint, payload string) error
	PublishBroadcast(ctx context.Context, payload string) error
}

// NotificationService persists notification records and pushes them to
// connected clients. Persistence is the source of truth; realtime delivery
// is best effort.
type NotificationService struct {
	notificationRepo repository.NotificationRepository
	publisher        EventPublisher
}

// NewNotificationService returns a new NotificationService.
func NewNotificationService(notificationRepo repository.NotificationRepository, publisher EventPublisher) *NotificationService {
	return &NotificationService{
		notificationRepo: notificationRepo,
		publisher:        publisher,
	}
}

// Notify persists a notification and publishes it to the target user's
// realtime channel. A publish failure is logged, not returned: the record is
// already durable and clients re-fetch on reconnect.
func (s *NotificationService) Notify(ctx context.Context, notification *models.Notification) error {
	if err := s.notificationRepo.Create(ctx, notification); err != nil {
		return err
	}
	s.publish(ctx, notification)
	return nil
}

func (s *NotificationService) publish(ctx context.Context, notification *models.Notification) {
	if s.publisher == nil {
		return
	}
	payload, err := json.Marshal(map[string]interface{}{
		"type":    "notification",
		"payload": notification,
	})
	if err != nil {
		return
	}
	if err := s.publisher.PublishUser(ctx, notification.UserID, string(payload)); err != nil {
		middleware.Logger.WarnContext(ctx, "failed to publish notification",
			slog.Uint64("user_id", uint64(notification.UserID)),
			slog.String("error", err.Error()),
		)
	}
}

// List returns the user's notifications, newest first.
func (s *NotificationService) List(ctx context.Context, userID uint, limit, offset int) ([]models.Notification, error) {
	return s.notificationRepo.ListForUser(ctx, userID, limit, offset)
}

// UnreadCount returns the number of unread notifications for the user.
func (s *NotificationService) UnreadCount(ctx context.Context, userID uint) (int64, error) {
	return s.notificationRepo.UnreadCount(ctx, userID)
}

// MarkRead flips the read flag on a single notification owned by userID.
func (s *NotificationService) MarkRead(ctx context.Context, userID, notificationID uint) error {
	notification, err := s.notificationRepo.GetByID(ctx, notificationID)
	if err != nil {
		return err
	}
	if notification.UserID != userID {
		return models.NewUnauthorizedError("You can only mark your own notifications as read")
	}
	return s.notificationRepo.MarkRead(ctx, notificationID)
}

// MarkAllRead flips the read flag on every unread notification for the user.
func (s *NotificationService) MarkAllRead(ctx context.Context, userID uint) error {
	return s.notificationRepo.MarkAllRead(ctx, userID)
}
