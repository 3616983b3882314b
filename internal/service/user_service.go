package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"skillswap/internal/middleware"
	"skillswap/internal/models"
	"skillswap/internal/repository"
	"skillswap/internal/reputation"
	"skillswap/internal/validation"
)

// UserService provides profile and skill-listing business logic.
type UserService struct {
	userRepo      repository.UserRepository
	notifications NotificationCreator
}

// NewUserService returns a new UserService.
func NewUserService(userRepo repository.UserRepository, notifications NotificationCreator) *UserService {
	return &UserService{userRepo: userRepo, notifications: notifications}
}

// Get returns a user profile. Private profiles are only visible to their
// owner and admins.
func (s *UserService) Get(ctx context.Context, callerID, userID uint, isAdmin bool) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !user.IsPublic && callerID != userID && !isAdmin {
		return nil, models.NewNotFoundError("User", userID)
	}
	return user, nil
}

// UpdateProfileInput is the input for editing profile fields. Nil pointers
// leave the corresponding field unchanged.
type UpdateProfileInput struct {
	Name         *string
	PhotoURL     *string
	Location     *string
	Availability *models.Availability
	IsPublic     *bool
}

// UpdateProfile applies a partial profile edit for the user.
func (s *UserService) UpdateProfile(ctx context.Context, userID uint, in UpdateProfileInput) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if in.Name != nil {
		if err := validation.ValidateName(*in.Name); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		user.Name = *in.Name
	}
	if in.PhotoURL != nil {
		user.PhotoURL = *in.PhotoURL
	}
	if in.Location != nil {
		user.Location = *in.Location
	}
	if in.Availability != nil {
		user.Availability = *in.Availability
	}
	if in.IsPublic != nil {
		user.IsPublic = *in.IsPublic
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// UpdateSkills replaces the user's offered and wanted skill lists and
// re-evaluates achievement badges against the new stats.
func (s *UserService) UpdateSkills(ctx context.Context, userID uint, offered, wanted []models.Skill) (*models.User, error) {
	for _, skill := range append(append([]models.Skill{}, offered...), wanted...) {
		if err := validation.ValidateSkillName(skill.Name); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		if err := validation.ValidateCategory(skill.Category); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		if !skill.Level.Valid() {
			return nil, models.NewValidationError("invalid skill level")
		}
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	user.SkillsOffered = offered
	user.SkillsWanted = wanted

	newBadges := reputation.EvaluateBadges(user)
	user.Badges = append(user.Badges, newBadges...)

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	for _, badge := range newBadges {
		middleware.BadgesAwarded.WithLabelValues(badge.Name).Inc()
		s.notifyBadge(ctx, userID, badge)
	}
	return user, nil
}

// notifyBadge records a badge-award notification. Failures are logged
// rather than returned: the badge itself already persisted.
func (s *UserService) notifyBadge(ctx context.Context, userID uint, badge models.Badge) {
	if s.notifications == nil {
		return
	}
	err := s.notifications.Notify(ctx, &models.Notification{
		UserID:  userID,
		Type:    models.NotificationSystem,
		Title:   "New badge earned",
		Message: fmt.Sprintf("You earned the %s badge! %s", badge.Name, badge.Icon),
	})
	if err != nil {
		middleware.Logger.WarnContext(ctx, "failed to record badge notification",
			slog.Uint64("user_id", uint64(userID)),
			slog.String("badge", badge.Name),
			slog.String("error", err.Error()),
		)
	}
}

// SearchInput narrows the public user listing. CallerID, when non-zero,
// drops the searching user from their own results.
type SearchInput struct {
	CallerID uint
	Query    string
	Category string
	MinLevel models.SkillLevel
	Limit    int
	Offset   int
}

// Search returns public, non-banned users matching the filters, never
// including the caller. Query is a case-insensitive substring against the
// user's name, location, and offered/wanted skill names. Category is an
// exact (case-insensitive) match on offered skills; MinLevel keeps users
// offering a skill at that proficiency or higher.
func (s *UserService) Search(ctx context.Context, in SearchInput) ([]models.User, error) {
	if in.Limit <= 0 || in.Limit > 100 {
		in.Limit = 50
	}

	users, err := s.userRepo.ListPublic(ctx, in.Limit, in.Offset)
	if err != nil {
		return nil, err
	}

	query := strings.ToLower(in.Query)
	category := strings.ToLower(in.Category)

	matched := make([]models.User, 0, len(users))
	for _, user := range users {
		if in.CallerID != 0 && user.ID == in.CallerID {
			continue
		}
		if userMatches(user, query, category, in.MinLevel) {
			matched = append(matched, user)
		}
	}
	return matched, nil
}

func userMatches(user models.User, query, category string, minLevel models.SkillLevel) bool {
	if query != "" && !textMatches(user, query) {
		return false
	}
	if category == "" && minLevel == "" {
		return true
	}
	for _, skill := range user.SkillsOffered {
		if category != "" && strings.ToLower(skill.Category) != category {
			continue
		}
		if minLevel != "" && !skill.Level.AtLeast(minLevel) {
			continue
		}
		return true
	}
	return false
}

func textMatches(user models.User, query string) bool {
	if strings.Contains(strings.ToLower(user.Name), query) ||
		strings.Contains(strings.ToLower(user.Location), query) {
		return true
	}
	for _, skill := range user.SkillsOffered {
		if strings.Contains(strings.ToLower(skill.Name), query) {
			return true
		}
	}
	for _, skill := range user.SkillsWanted {
		if strings.Contains(strings.ToLower(skill.Name), query) {
			return true
		}
	}
	return false
}

// List returns public users ordered by trust score.
func (s *UserService) List(ctx context.Context, limit, offset int) ([]models.User, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	return s.userRepo.ListPublic(ctx, limit, offset)
}
