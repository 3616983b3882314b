package service

import (
	"context"
	"testing"
	"time"

	"skillswap/internal/models"
	"skillswap/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupFeedbackTest(t *testing.T) (*FeedbackService, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.SwapRequest{},
		&models.Feedback{},
		&models.Notification{},
	))

	svc := NewFeedbackService(
		repository.NewFeedbackRepository(db),
		repository.NewSwapRepository(db),
		db,
		nil,
	)
	return svc, db
}

func createCompletedSwap(t *testing.T, db *gorm.DB, rater, rated *models.User) *models.SwapRequest {
	t.Helper()
	now := time.Now()
	swap := &models.SwapRequest{
		FromUserID:  rater.ID,
		ToUserID:    rated.ID,
		FromUser:    rater.Snapshot(),
		ToUser:      rated.Snapshot(),
		Status:      models.SwapStatusCompleted,
		CompletedAt: &now,
	}
	require.NoError(t, db.Create(swap).Error)
	return swap
}

func TestFeedbackService_Submit(t *testing.T) {
	svc, db := setupFeedbackTest(t)
	ctx := context.Background()

	rater := &models.User{Name: "Alex", Email: "alex@example.com", Password: "x", TrustScore: 100}
	rated := &models.User{Name: "Sam", Email: "sam@example.com", Password: "x", TrustScore: 100}
	require.NoError(t, db.Create(rater).Error)
	require.NoError(t, db.Create(rated).Error)

	swap := createCompletedSwap(t, db, rater, rated)

	feedback, err := svc.Submit(ctx, SubmitFeedbackInput{
		SwapRequestID: swap.ID,
		FromUserID:    rater.ID,
		Rating:        5,
		Comment:       "Great teacher!",
	})
	require.NoError(t, err)

	assert.Equal(t, rater.ID, feedback.FromUserID)
	assert.Equal(t, rated.ID, feedback.ToUserID)
	assert.Equal(t, "Alex", feedback.FromUserName)
	assert.Equal(t, "Sam", feedback.ToUserName)

	// Reputation: 100*0.7 + 5*20*0.3 = 100, plus 10 points for five stars.
	var updated models.User
	require.NoError(t, db.First(&updated, rated.ID).Error)
	assert.Equal(t, 100, updated.TrustScore)
	assert.Equal(t, 10, updated.Points)

	// 10 points crosses the first-swap threshold; 100 trust keeps the
	// trusted-user badge in reach too.
	names := make([]string, 0, len(updated.Badges))
	for _, b := range updated.Badges {
		names = append(names, b.Name)
	}
	assert.Contains(t, names, "First Swap")
	assert.Contains(t, names, "Trusted User")

	// The rated user got a feedback notification in the same batch.
	var notifications []models.Notification
	require.NoError(t, db.Where("user_id = ? AND type = ?",
		rated.ID, models.NotificationFeedbackReceived).Find(&notifications).Error)
	require.Len(t, notifications, 1)
	assert.Equal(t, swap.ID, notifications[0].RelatedID)

	// Each newly awarded badge carries its own system notification.
	var badgeNotes []models.Notification
	require.NoError(t, db.Where("user_id = ? AND type = ?",
		rated.ID, models.NotificationSystem).Find(&badgeNotes).Error)
	require.Len(t, badgeNotes, 2)
	messages := badgeNotes[0].Message + " " + badgeNotes[1].Message
	assert.Contains(t, messages, "First Swap")
	assert.Contains(t, messages, "Trusted User")
}

func TestFeedbackService_Submit_LowRating(t *testing.T) {
	svc, db := setupFeedbackTest(t)
	ctx := context.Background()

	rater := &models.User{Name: "Alex", Email: "alex@example.com", Password: "x", TrustScore: 100}
	rated := &models.User{Name: "Sam", Email: "sam@example.com", Password: "x", TrustScore: 100}
	require.NoError(t, db.Create(rater).Error)
	require.NoError(t, db.Create(rated).Error)
	swap := createCompletedSwap(t, db, rater, rated)

	_, err := svc.Submit(ctx, SubmitFeedbackInput{
		SwapRequestID: swap.ID,
		FromUserID:    rater.ID,
		Rating:        1,
	})
	require.NoError(t, err)

	// 100*0.7 + 1*20*0.3 = 76, and one star is worth a single point.
	var updated models.User
	require.NoError(t, db.First(&updated, rated.ID).Error)
	assert.Equal(t, 76, updated.TrustScore)
	assert.Equal(t, 1, updated.Points)
}

func TestFeedbackService_Submit_Rejections(t *testing.T) {
	svc, db := setupFeedbackTest(t)
	ctx := context.Background()

	rater := &models.User{Name: "Alex", Email: "alex@example.com", Password: "x"}
	rated := &models.User{Name: "Sam", Email: "sam@example.com", Password: "x"}
	outsider := &models.User{Name: "Pat", Email: "pat@example.com", Password: "x"}
	require.NoError(t, db.Create(rater).Error)
	require.NoError(t, db.Create(rated).Error)
	require.NoError(t, db.Create(outsider).Error)
	swap := createCompletedSwap(t, db, rater, rated)

	t.Run("rating out of range", func(t *testing.T) {
		_, err := svc.Submit(ctx, SubmitFeedbackInput{SwapRequestID: swap.ID, FromUserID: rater.ID, Rating: 0})
		assertAppErrorCode(t, err, "VALIDATION_ERROR")
		_, err = svc.Submit(ctx, SubmitFeedbackInput{SwapRequestID: swap.ID, FromUserID: rater.ID, Rating: 6})
		assertAppErrorCode(t, err, "VALIDATION_ERROR")
	})

	t.Run("non participant", func(t *testing.T) {
		_, err := svc.Submit(ctx, SubmitFeedbackInput{SwapRequestID: swap.ID, FromUserID: outsider.ID, Rating: 4})
		assertAppErrorCode(t, err, "UNAUTHORIZED")
	})

	t.Run("swap not completed", func(t *testing.T) {
		pending := &models.SwapRequest{
			FromUserID: rater.ID, ToUserID: rated.ID,
			Status: models.SwapStatusPending,
		}
		require.NoError(t, db.Create(pending).Error)
		_, err := svc.Submit(ctx, SubmitFeedbackInput{SwapRequestID: pending.ID, FromUserID: rater.ID, Rating: 4})
		assertAppErrorCode(t, err, "VALIDATION_ERROR")
	})

	t.Run("missing swap", func(t *testing.T) {
		_, err := svc.Submit(ctx, SubmitFeedbackInput{SwapRequestID: 9999, FromUserID: rater.ID, Rating: 4})
		assertAppErrorCode(t, err, "NOT_FOUND")
	})
}

// Feedback has no per-swap uniqueness; repeat submissions apply the formula
// again each time.
func TestFeedbackService_Submit_RepeatApplies(t *testing.T) {
	svc, db := setupFeedbackTest(t)
	ctx := context.Background()

	rater := &models.User{Name: "Alex", Email: "alex@example.com", Password: "x", TrustScore: 100}
	rated := &models.User{Name: "Sam", Email: "sam@example.com", Password: "x", TrustScore: 100}
	require.NoError(t, db.Create(rater).Error)
	require.NoError(t, db.Create(rated).Error)
	swap := createCompletedSwap(t, db, rater, rated)

	for i := 0; i < 2; i++ {
		_, err := svc.Submit(ctx, SubmitFeedbackInput{SwapRequestID: swap.ID, FromUserID: rater.ID, Rating: 5})
		require.NoError(t, err)
	}

	var count int64
	require.NoError(t, db.Model(&models.Feedback{}).Where("swap_request_id = ?", swap.ID).Count(&count).Error)
	assert.Equal(t, int64(2), count)

	var updated models.User
	require.NoError(t, db.First(&updated, rated.ID).Error)
	assert.Equal(t, 20, updated.Points, "points accumulate per submission")
}

func TestFeedbackService_ListForSwap(t *testing.T) {
	svc, db := setupFeedbackTest(t)
	ctx := context.Background()

	rater := &models.User{Name: "Alex", Email: "alex@example.com", Password: "x"}
	rated := &models.User{Name: "Sam", Email: "sam@example.com", Password: "x"}
	require.NoError(t, db.Create(rater).Error)
	require.NoError(t, db.Create(rated).Error)
	swap := createCompletedSwap(t, db, rater, rated)

	_, err := svc.Submit(ctx, SubmitFeedbackInput{SwapRequestID: swap.ID, FromUserID: rater.ID, Rating: 4})
	require.NoError(t, err)

	t.Run("participant lists", func(t *testing.T) {
		list, err := svc.ListForSwap(ctx, rated.ID, swap.ID, false)
		require.NoError(t, err)
		assert.Len(t, list, 1)
	})

	t.Run("outsider denied unless admin", func(t *testing.T) {
		_, err := svc.ListForSwap(ctx, 9999, swap.ID, false)
		assertAppErrorCode(t, err, "UNAUTHORIZED")

		list, err := svc.ListForSwap(ctx, 9999, swap.ID, true)
		require.NoError(t, err)
		assert.Len(t, list, 1)
	})
}
