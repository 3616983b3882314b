package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"skillswap/internal/middleware"
	"skillswap/internal/models"
	"skillswap/internal/repository"
	"skillswap/internal/validation"
)

// NotificationCreator records notification side effects of lifecycle events.
type NotificationCreator interface {
	Notify(ctx context.Context, notification *models.Notification) error
}

// SwapService governs the swap request lifecycle: creation, status
// transitions, and their notification side effects.
//
// Transition authorization: accept and reject belong to the recipient alone;
// complete, cancel and delete belong to either participant. Non-participants
// can never mutate a request.
type SwapService struct {
	swapRepo      repository.SwapRepository
	userRepo      repository.UserRepository
	notifications NotificationCreator
}

// NewSwapService returns a new SwapService.
func NewSwapService(swapRepo repository.SwapRepository, userRepo repository.UserRepository, notifications NotificationCreator) *SwapService {
	return &SwapService{
		swapRepo:      swapRepo,
		userRepo:      userRepo,
		notifications: notifications,
	}
}

// CreateSwapInput is the input for creating a swap request.
type CreateSwapInput struct {
	FromUserID    uint
	ToUserID      uint
	SkillsOffered []models.Skill
	SkillsWanted  []models.Skill
	Message       string
}

// Create opens a new pending swap request from one user to another.
// Participant profiles are frozen into the request as snapshots.
func (s *SwapService) Create(ctx context.Context, in CreateSwapInput) (*models.SwapRequest, error) {
	if in.FromUserID == in.ToUserID {
		return nil, models.NewValidationError("Cannot send a swap request to yourself")
	}
	if len(in.SkillsOffered) == 0 {
		return nil, models.NewValidationError("At least one offered skill is required")
	}
	if len(in.SkillsWanted) == 0 {
		return nil, models.NewValidationError("At least one wanted skill is required")
	}
	for _, skill := range append(append([]models.Skill{}, in.SkillsOffered...), in.SkillsWanted...) {
		if err := validation.ValidateSkillName(skill.Name); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		if !skill.Level.Valid() {
			return nil, models.NewValidationError(fmt.Sprintf("invalid skill level %q", skill.Level))
		}
	}

	fromUser, err := s.userRepo.GetByID(ctx, in.FromUserID)
	if err != nil {
		return nil, err
	}
	toUser, err := s.userRepo.GetByID(ctx, in.ToUserID)
	if err != nil {
		return nil, err
	}
	if toUser.IsBanned {
		return nil, models.NewValidationError("Cannot send a swap request to this user")
	}

	swap := &models.SwapRequest{
		FromUserID:    fromUser.ID,
		ToUserID:      toUser.ID,
		FromUser:      fromUser.Snapshot(),
		ToUser:        toUser.Snapshot(),
		SkillsOffered: in.SkillsOffered,
		SkillsWanted:  in.SkillsWanted,
		Status:        models.SwapStatusPending,
		Message:       in.Message,
	}
	if err := s.swapRepo.Create(ctx, swap); err != nil {
		return nil, err
	}
	middleware.SwapTransitions.WithLabelValues(string(models.SwapStatusPending)).Inc()

	s.notify(ctx, &models.Notification{
		UserID:    toUser.ID,
		Type:      models.NotificationSwapRequest,
		Title:     "New swap request",
		Message:   fmt.Sprintf("%s wants to swap skills with you", fromUser.Name),
		RelatedID: swap.ID,
	})

	return swap, nil
}

// Get returns a swap request visible to the caller. Only participants and
// admins may read a request.
func (s *SwapService) Get(ctx context.Context, userID, swapID uint, isAdmin bool) (*models.SwapRequest, error) {
	swap, err := s.swapRepo.GetByID(ctx, swapID)
	if err != nil {
		return nil, err
	}
	if !swap.IsParticipant(userID) && !isAdmin {
		return nil, models.NewUnauthorizedError("You are not a participant of this swap request")
	}
	return swap, nil
}

// ListForUser returns the caller's swap requests, newest first. Soft-deleted
// requests are hidden.
func (s *SwapService) ListForUser(ctx context.Context, userID uint, limit, offset int) ([]models.SwapRequest, error) {
	return s.swapRepo.ListForUser(ctx, userID, limit, offset)
}

// Accept moves a pending request to accepted. Only the recipient may accept.
func (s *SwapService) Accept(ctx context.Context, userID, swapID uint, responseMessage string) (*models.SwapRequest, error) {
	swap, err := s.transition(ctx, userID, swapID, models.SwapStatusAccepted, func(swap *models.SwapRequest) error {
		if swap.ToUserID != userID {
			return models.NewUnauthorizedError("Only the recipient can accept a swap request")
		}
		swap.ResponseMessage = responseMessage
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.notify(ctx, &models.Notification{
		UserID:    swap.FromUserID,
		Type:      models.NotificationSwapAccepted,
		Title:     "Swap request accepted",
		Message:   fmt.Sprintf("%s accepted your swap request", swap.ToUser.Name),
		RelatedID: swap.ID,
	})
	return swap, nil
}

// Reject moves a pending request to rejected. Only the recipient may reject.
func (s *SwapService) Reject(ctx context.Context, userID, swapID uint, responseMessage string) (*models.SwapRequest, error) {
	swap, err := s.transition(ctx, userID, swapID, models.SwapStatusRejected, func(swap *models.SwapRequest) error {
		if swap.ToUserID != userID {
			return models.NewUnauthorizedError("Only the recipient can reject a swap request")
		}
		swap.ResponseMessage = responseMessage
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.notify(ctx, &models.Notification{
		UserID:    swap.FromUserID,
		Type:      models.NotificationSwapRejected,
		Title:     "Swap request rejected",
		Message:   fmt.Sprintf("%s rejected your swap request", swap.ToUser.Name),
		RelatedID: swap.ID,
	})
	return swap, nil
}

// Complete moves an accepted request to completed and records the completion
// time. Either participant may complete.
func (s *SwapService) Complete(ctx context.Context, userID, swapID uint, notes string) (*models.SwapRequest, error) {
	// Completion drives no notification; feedback is a separate
	// user-initiated action and carries its own.
	return s.transition(ctx, userID, swapID, models.SwapStatusCompleted, func(swap *models.SwapRequest) error {
		now := time.Now()
		swap.CompletedAt = &now
		if notes != "" {
			swap.Notes = notes
		}
		return nil
	})
}

// Cancel withdraws a pending or accepted request. Either participant may
// cancel.
func (s *SwapService) Cancel(ctx context.Context, userID, swapID uint) (*models.SwapRequest, error) {
	swap, err := s.transition(ctx, userID, swapID, models.SwapStatusCancelled, nil)
	if err != nil {
		return nil, err
	}

	s.notify(ctx, &models.Notification{
		UserID:    swap.OtherParticipant(userID),
		Type:      models.NotificationSystem,
		Title:     "Swap cancelled",
		Message:   "A swap request you were part of was cancelled",
		RelatedID: swap.ID,
	})
	return swap, nil
}

// Delete hides a terminal request from listings. The record is retained;
// this is the request's final state.
func (s *SwapService) Delete(ctx context.Context, userID, swapID uint) (*models.SwapRequest, error) {
	return s.transition(ctx, userID, swapID, models.SwapStatusDeleted, nil)
}

// transition loads the request, checks participation and the lifecycle
// table, applies a per-transition mutation, and persists. Any failure leaves
// the stored request untouched.
func (s *SwapService) transition(
	ctx context.Context,
	userID, swapID uint,
	next models.SwapStatus,
	mutate func(*models.SwapRequest) error,
) (*models.SwapRequest, error) {
	swap, err := s.swapRepo.GetByID(ctx, swapID)
	if err != nil {
		return nil, err
	}
	if !swap.IsParticipant(userID) {
		return nil, models.NewUnauthorizedError("You are not a participant of this swap request")
	}
	if !swap.Status.CanTransitionTo(next) {
		return nil, models.NewValidationError(
			fmt.Sprintf("Cannot move swap request from %s to %s", swap.Status, next))
	}
	if mutate != nil {
		if err := mutate(swap); err != nil {
			return nil, err
		}
	}

	swap.Status = next
	if err := s.swapRepo.Update(ctx, swap); err != nil {
		return nil, err
	}
	middleware.SwapTransitions.WithLabelValues(string(next)).Inc()
	return swap, nil
}

// notify records a lifecycle notification. Failures are logged rather than
// returned: the transition itself already committed.
func (s *SwapService) notify(ctx context.Context, notification *models.Notification) {
	if s.notifications == nil {
		return
	}
	if err := s.notifications.Notify(ctx, notification); err != nil {
		middleware.Logger.WarnContext(ctx, "failed to record swap notification",
			slog.Uint64("user_id", uint64(notification.UserID)),
			slog.String("type", string(notification.Type)),
			slog.String("error", err.Error()),
		)
	}
}
