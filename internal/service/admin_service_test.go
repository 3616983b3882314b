package service

import (
	"context"
	"testing"

	"skillswap/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type feedbackRepoStub struct {
	createFn      func(context.Context, *models.Feedback) error
	getByIDFn     func(context.Context, uint) (*models.Feedback, error)
	listForUserFn func(context.Context, uint, int, int) ([]models.Feedback, error)
	listForSwapFn func(context.Context, uint) ([]models.Feedback, error)
	countFn       func(context.Context) (int64, error)
}

func (s *feedbackRepoStub) Create(ctx context.Context, feedback *models.Feedback) error {
	return s.createFn(ctx, feedback)
}
func (s *feedbackRepoStub) GetByID(ctx context.Context, id uint) (*models.Feedback, error) {
	return s.getByIDFn(ctx, id)
}
func (s *feedbackRepoStub) ListForUser(ctx context.Context, userID uint, limit, offset int) ([]models.Feedback, error) {
	return s.listForUserFn(ctx, userID, limit, offset)
}
func (s *feedbackRepoStub) ListForSwap(ctx context.Context, swapID uint) ([]models.Feedback, error) {
	return s.listForSwapFn(ctx, swapID)
}
func (s *feedbackRepoStub) Count(ctx context.Context) (int64, error) {
	return s.countFn(ctx)
}

type reportRepoStub struct {
	createFn  func(context.Context, *models.Report) error
	getByIDFn func(context.Context, uint) (*models.Report, error)
	listFn    func(context.Context, models.ReportStatus, int, int) ([]models.Report, error)
	updateFn  func(context.Context, *models.Report) error
}

func (s *reportRepoStub) Create(ctx context.Context, report *models.Report) error {
	return s.createFn(ctx, report)
}
func (s *reportRepoStub) GetByID(ctx context.Context, id uint) (*models.Report, error) {
	return s.getByIDFn(ctx, id)
}
func (s *reportRepoStub) List(ctx context.Context, status models.ReportStatus, limit, offset int) ([]models.Report, error) {
	return s.listFn(ctx, status, limit, offset)
}
func (s *reportRepoStub) Update(ctx context.Context, report *models.Report) error {
	return s.updateFn(ctx, report)
}

func uintPtr(v uint) *uint { return &v }

func adminServiceFixture(users map[uint]*models.User) (*AdminService, *notificationRecorder) {
	userRepo := &userRepoStub{
		getByIDFn: func(_ context.Context, id uint) (*models.User, error) {
			user, ok := users[id]
			if !ok {
				return nil, models.NewNotFoundError("User", id)
			}
			return user, nil
		},
		updateFn: func(_ context.Context, u *models.User) error {
			users[u.ID] = u
			return nil
		},
		listAllFn: func(_ context.Context) ([]models.User, error) {
			all := make([]models.User, 0, len(users))
			for _, u := range users {
				all = append(all, *u)
			}
			return all, nil
		},
	}
	recorder := &notificationRecorder{}
	svc := NewAdminService(userRepo, &swapRepoStub{}, &feedbackRepoStub{}, &reportRepoStub{}, recorder, nil)
	return svc, recorder
}

func TestAdminService_BanUser(t *testing.T) {
	t.Parallel()

	t.Run("ban sets soft state", func(t *testing.T) {
		t.Parallel()
		users := map[uint]*models.User{
			1: {ID: 1, Role: models.RoleAdmin},
			2: {ID: 2, Role: models.RoleUser},
		}
		svc, recorder := adminServiceFixture(users)

		banned, err := svc.BanUser(context.Background(), 1, 2, "spam")
		require.NoError(t, err)
		assert.True(t, banned.IsBanned)
		assert.Equal(t, "spam", banned.BanReason)
		require.NotNil(t, banned.BannedAt)

		// The suspended account is told, with the reason.
		require.Len(t, recorder.created, 1)
		assert.Equal(t, models.NotificationSystem, recorder.created[0].Type)
		assert.Equal(t, uint(2), recorder.created[0].UserID)
		assert.Contains(t, recorder.created[0].Message, "spam")
	})

	t.Run("cannot ban self", func(t *testing.T) {
		t.Parallel()
		svc, _ := adminServiceFixture(map[uint]*models.User{1: {ID: 1, Role: models.RoleAdmin}})
		_, err := svc.BanUser(context.Background(), 1, 1, "oops")
		assertAppErrorCode(t, err, "VALIDATION_ERROR")
	})

	t.Run("cannot ban another admin", func(t *testing.T) {
		t.Parallel()
		users := map[uint]*models.User{
			1: {ID: 1, Role: models.RoleAdmin},
			2: {ID: 2, Role: models.RoleAdmin},
		}
		svc, _ := adminServiceFixture(users)
		_, err := svc.BanUser(context.Background(), 1, 2, "power struggle")
		assertAppErrorCode(t, err, "VALIDATION_ERROR")
	})

	t.Run("double ban conflicts", func(t *testing.T) {
		t.Parallel()
		users := map[uint]*models.User{
			1: {ID: 1, Role: models.RoleAdmin},
			2: {ID: 2, IsBanned: true},
		}
		svc, _ := adminServiceFixture(users)
		_, err := svc.BanUser(context.Background(), 1, 2, "again")
		assertAppErrorCode(t, err, "CONFLICT")
	})
}

func TestAdminService_UnbanUser(t *testing.T) {
	t.Parallel()

	users := map[uint]*models.User{
		1: {ID: 1, Role: models.RoleAdmin},
		2: {ID: 2, IsBanned: true, BanReason: "spam"},
	}
	svc, recorder := adminServiceFixture(users)

	unbanned, err := svc.UnbanUser(context.Background(), 1, 2)
	require.NoError(t, err)
	assert.False(t, unbanned.IsBanned)
	assert.Empty(t, unbanned.BanReason)
	assert.Nil(t, unbanned.BannedAt)

	require.Len(t, recorder.created, 1)
	assert.Equal(t, uint(2), recorder.created[0].UserID)
	assert.Equal(t, models.NotificationSystem, recorder.created[0].Type)

	_, err = svc.UnbanUser(context.Background(), 1, 2)
	assertAppErrorCode(t, err, "CONFLICT")
}

func TestAdminService_SetRole(t *testing.T) {
	t.Parallel()

	t.Run("promote", func(t *testing.T) {
		t.Parallel()
		users := map[uint]*models.User{2: {ID: 2, Role: models.RoleUser}}
		svc, _ := adminServiceFixture(users)

		user, err := svc.SetRole(context.Background(), 1, 2, models.RoleAdmin)
		require.NoError(t, err)
		assert.Equal(t, models.RoleAdmin, user.Role)
	})

	t.Run("cannot demote self", func(t *testing.T) {
		t.Parallel()
		svc, _ := adminServiceFixture(map[uint]*models.User{1: {ID: 1, Role: models.RoleAdmin}})
		_, err := svc.SetRole(context.Background(), 1, 1, models.RoleUser)
		assertAppErrorCode(t, err, "VALIDATION_ERROR")
	})

	t.Run("unknown role rejected", func(t *testing.T) {
		t.Parallel()
		svc, _ := adminServiceFixture(map[uint]*models.User{2: {ID: 2}})
		_, err := svc.SetRole(context.Background(), 1, 2, "superuser")
		assertAppErrorCode(t, err, "VALIDATION_ERROR")
	})
}

func TestAdminService_BroadcastMessage(t *testing.T) {
	t.Parallel()

	users := map[uint]*models.User{
		1: {ID: 1}, 2: {ID: 2}, 3: {ID: 3},
	}
	svc, recorder := adminServiceFixture(users)

	count, err := svc.BroadcastMessage(context.Background(), 1, "Maintenance", "Down at midnight")
	require.NoError(t, err)
	assert.Equal(t, 3, count)
	assert.Len(t, recorder.created, 3)

	_, err = svc.BroadcastMessage(context.Background(), 1, "", "missing title")
	assertAppErrorCode(t, err, "VALIDATION_ERROR")
}

func TestAdminService_SubmitReport(t *testing.T) {
	t.Parallel()

	newService := func() *AdminService {
		userRepo := &userRepoStub{
			getByIDFn: func(_ context.Context, id uint) (*models.User, error) {
				if id == 404 {
					return nil, models.NewNotFoundError("User", id)
				}
				return &models.User{ID: id}, nil
			},
		}
		reportRepo := &reportRepoStub{
			createFn: func(_ context.Context, report *models.Report) error {
				report.ID = 1
				return nil
			},
		}
		return NewAdminService(userRepo, &swapRepoStub{}, &feedbackRepoStub{}, reportRepo, nil, nil)
	}

	t.Run("report against user", func(t *testing.T) {
		t.Parallel()
		report, err := newService().SubmitReport(context.Background(), 1, uintPtr(2), nil, "harassment", "details")
		require.NoError(t, err)
		assert.Equal(t, models.ReportStatusPending, report.Status)
		assert.Equal(t, uint(2), *report.ReportedUserID)
	})

	t.Run("reason required", func(t *testing.T) {
		t.Parallel()
		_, err := newService().SubmitReport(context.Background(), 1, uintPtr(2), nil, "", "")
		assertAppErrorCode(t, err, "VALIDATION_ERROR")
	})

	t.Run("must target something", func(t *testing.T) {
		t.Parallel()
		_, err := newService().SubmitReport(context.Background(), 1, nil, nil, "spam", "")
		assertAppErrorCode(t, err, "VALIDATION_ERROR")
	})

	t.Run("cannot report self", func(t *testing.T) {
		t.Parallel()
		_, err := newService().SubmitReport(context.Background(), 1, uintPtr(1), nil, "spam", "")
		assertAppErrorCode(t, err, "VALIDATION_ERROR")
	})

	t.Run("reported user must exist", func(t *testing.T) {
		t.Parallel()
		_, err := newService().SubmitReport(context.Background(), 1, uintPtr(404), nil, "spam", "")
		assertAppErrorCode(t, err, "NOT_FOUND")
	})
}

func TestAdminService_ResolveReport(t *testing.T) {
	t.Parallel()

	newService := func(report *models.Report) *AdminService {
		reportRepo := &reportRepoStub{
			getByIDFn: func(_ context.Context, id uint) (*models.Report, error) {
				if report == nil || report.ID != id {
					return nil, models.NewNotFoundError("Report", id)
				}
				return report, nil
			},
			updateFn: func(_ context.Context, _ *models.Report) error { return nil },
		}
		return NewAdminService(&userRepoStub{}, &swapRepoStub{}, &feedbackRepoStub{}, reportRepo, nil, nil)
	}

	t.Run("resolve pending report", func(t *testing.T) {
		t.Parallel()
		report := &models.Report{ID: 1, Status: models.ReportStatusPending}
		resolved, err := newService(report).ResolveReport(context.Background(), 9, 1, models.ReportStatusResolved)
		require.NoError(t, err)
		assert.Equal(t, models.ReportStatusResolved, resolved.Status)
		require.NotNil(t, resolved.ResolvedAt)
		require.NotNil(t, resolved.ResolvedBy)
		assert.Equal(t, uint(9), *resolved.ResolvedBy)
	})

	t.Run("dismiss pending report", func(t *testing.T) {
		t.Parallel()
		report := &models.Report{ID: 1, Status: models.ReportStatusPending}
		dismissed, err := newService(report).ResolveReport(context.Background(), 9, 1, models.ReportStatusDismissed)
		require.NoError(t, err)
		assert.Equal(t, models.ReportStatusDismissed, dismissed.Status)
	})

	t.Run("closed report conflicts", func(t *testing.T) {
		t.Parallel()
		report := &models.Report{ID: 1, Status: models.ReportStatusResolved}
		_, err := newService(report).ResolveReport(context.Background(), 9, 1, models.ReportStatusResolved)
		assertAppErrorCode(t, err, "CONFLICT")
	})

	t.Run("invalid target status", func(t *testing.T) {
		t.Parallel()
		report := &models.Report{ID: 1, Status: models.ReportStatusPending}
		_, err := newService(report).ResolveReport(context.Background(), 9, 1, models.ReportStatusPending)
		assertAppErrorCode(t, err, "VALIDATION_ERROR")
	})
}

func TestAdminService_Stats(t *testing.T) {
	t.Parallel()

	userRepo := &userRepoStub{
		countFn: func(_ context.Context) (int64, error) { return 12, nil },
	}
	swapRepo := &swapRepoStub{
		countByStatusFn: func(_ context.Context) (map[models.SwapStatus]int64, error) {
			return map[models.SwapStatus]int64{
				models.SwapStatusPending:   3,
				models.SwapStatusCompleted: 7,
			}, nil
		},
	}
	feedbackRepo := &feedbackRepoStub{
		countFn: func(_ context.Context) (int64, error) { return 5, nil },
	}
	svc := NewAdminService(userRepo, swapRepo, feedbackRepo, &reportRepoStub{}, nil, nil)

	stats, err := svc.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(12), stats.TotalUsers)
	assert.Equal(t, int64(5), stats.TotalFeedback)
	assert.Equal(t, int64(3), stats.SwapsByStatus[models.SwapStatusPending])
	assert.Equal(t, int64(7), stats.SwapsByStatus[models.SwapStatusCompleted])
}
