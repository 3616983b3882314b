package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"skillswap/internal/cache"
	"skillswap/internal/middleware"
	"skillswap/internal/models"
	"skillswap/internal/repository"
	"skillswap/internal/reputation"
	"skillswap/internal/validation"

	"gorm.io/gorm"
)

// FeedbackService records post-swap ratings and applies their reputation
// effects. The feedback row, the rated user's trust score, points and badges,
// and the feedback notification are written in one database transaction: if
// any write fails, none of the effects apply.
type FeedbackService struct {
	feedbackRepo repository.FeedbackRepository
	swapRepo     repository.SwapRepository
	db           *gorm.DB
	publisher    EventPublisher
}

// NewFeedbackService returns a new FeedbackService.
func NewFeedbackService(
	feedbackRepo repository.FeedbackRepository,
	swapRepo repository.SwapRepository,
	db *gorm.DB,
	publisher EventPublisher,
) *FeedbackService {
	return &FeedbackService{
		feedbackRepo: feedbackRepo,
		swapRepo:     swapRepo,
		db:           db,
		publisher:    publisher,
	}
}

// SubmitFeedbackInput is the input for submitting feedback on a swap.
type SubmitFeedbackInput struct {
	SwapRequestID uint
	FromUserID    uint
	Rating        int
	Comment       string
}

// Submit records a rating for the counterparty of a completed swap and
// updates their reputation. Resubmitting for the same swap is not prevented;
// each submission applies the formula again.
func (s *FeedbackService) Submit(ctx context.Context, in SubmitFeedbackInput) (*models.Feedback, error) {
	if err := validation.ValidateRating(in.Rating); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	swap, err := s.swapRepo.GetByID(ctx, in.SwapRequestID)
	if err != nil {
		return nil, err
	}
	if !swap.IsParticipant(in.FromUserID) {
		return nil, models.NewUnauthorizedError("You are not a participant of this swap request")
	}
	if swap.Status != models.SwapStatusCompleted {
		return nil, models.NewValidationError("Feedback can only be left on completed swaps")
	}

	ratedUserID := swap.OtherParticipant(in.FromUserID)

	var feedback *models.Feedback
	var newBadges []models.Badge
	var notification *models.Notification

	txErr := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var rater, rated models.User
		if err := tx.First(&rater, in.FromUserID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("User", in.FromUserID)
			}
			return models.NewInternalError(err)
		}
		if err := tx.First(&rated, ratedUserID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("User", ratedUserID)
			}
			return models.NewInternalError(err)
		}

		feedback = &models.Feedback{
			SwapRequestID: swap.ID,
			FromUserID:    rater.ID,
			ToUserID:      rated.ID,
			FromUserName:  rater.Name,
			ToUserName:    rated.Name,
			Rating:        in.Rating,
			Comment:       in.Comment,
		}
		if err := tx.Create(feedback).Error; err != nil {
			return models.NewInternalError(err)
		}

		rated.TrustScore = reputation.NextTrustScore(rated.TrustScore, in.Rating)
		rated.Points += reputation.PointsForRating(in.Rating)
		newBadges = reputation.EvaluateBadges(&rated)
		rated.Badges = append(rated.Badges, newBadges...)

		if err := tx.Save(&rated).Error; err != nil {
			return models.NewInternalError(err)
		}

		notification = &models.Notification{
			UserID:    rated.ID,
			Type:      models.NotificationFeedbackReceived,
			Title:     "New feedback",
			Message:   fmt.Sprintf("%s rated your swap %d stars", rater.Name, in.Rating),
			RelatedID: swap.ID,
		}
		if err := tx.Create(notification).Error; err != nil {
			return models.NewInternalError(err)
		}

		for _, badge := range newBadges {
			badgeNote := &models.Notification{
				UserID:  rated.ID,
				Type:    models.NotificationSystem,
				Title:   "New badge earned",
				Message: fmt.Sprintf("You earned the %s badge! %s", badge.Name, badge.Icon),
			}
			if err := tx.Create(badgeNote).Error; err != nil {
				return models.NewInternalError(err)
			}
		}

		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	cache.InvalidateUser(ctx, ratedUserID)
	cache.InvalidateUnreadCount(ctx, ratedUserID)

	middleware.FeedbackSubmitted.WithLabelValues(strconv.Itoa(in.Rating)).Inc()
	for _, badge := range newBadges {
		middleware.BadgesAwarded.WithLabelValues(badge.Name).Inc()
	}

	s.publishNotification(ctx, notification)

	return feedback, nil
}

// ListForUser returns feedback received by the user, newest first.
func (s *FeedbackService) ListForUser(ctx context.Context, userID uint, limit, offset int) ([]models.Feedback, error) {
	return s.feedbackRepo.ListForUser(ctx, userID, limit, offset)
}

// ListForSwap returns all feedback left on a swap request.
func (s *FeedbackService) ListForSwap(ctx context.Context, userID, swapID uint, isAdmin bool) ([]models.Feedback, error) {
	swap, err := s.swapRepo.GetByID(ctx, swapID)
	if err != nil {
		return nil, err
	}
	if !swap.IsParticipant(userID) && !isAdmin {
		return nil, models.NewUnauthorizedError("You are not a participant of this swap request")
	}
	return s.feedbackRepo.ListForSwap(ctx, swapID)
}

func (s *FeedbackService) publishNotification(ctx context.Context, notification *models.Notification) {
	if s.publisher == nil || notification == nil {
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
		middleware.Logger.WarnContext(ctx, "failed to publish feedback notification",
			slog.Uint64("user_id", uint64(notification.UserID)),
			slog.String("error", err.Error()),
		)
	}
}
