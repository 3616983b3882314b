package repository

import (
	"context"
	"errors"

	"skillswap/internal/cache"
	"skillswap/internal/models"

	"gorm.io/gorm"
)

// SwapRepository defines persistence operations for swap requests.
type SwapRepository interface {
	Create(ctx context.Context, swap *models.SwapRequest) error
	GetByID(ctx context.Context, id uint) (*models.SwapRequest, error)
	Update(ctx context.Context, swap *models.SwapRequest) error
	ListForUser(ctx context.Context, userID uint, limit, offset int) ([]models.SwapRequest, error)
	ListAll(ctx context.Context) ([]models.SwapRequest, error)
	CountByStatus(ctx context.Context) (map[models.SwapStatus]int64, error)
}

type swapRepository struct {
	db *gorm.DB
}

// NewSwapRepository returns a new SwapRepository implementation.
func NewSwapRepository(db *gorm.DB) SwapRepository {
	return &swapRepository{db: db}
}

func (r *swapRepository) Create(ctx context.Context, swap *models.SwapRequest) error {
	if err := r.db.WithContext(ctx).Create(swap).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateSwap(ctx, swap.ID, swap.FromUserID, swap.ToUserID)
	return nil
}

func (r *swapRepository) GetByID(ctx context.Context, id uint) (*models.SwapRequest, error) {
	var swap models.SwapRequest
	if err := r.db.WithContext(ctx).First(&swap, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Swap request", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &swap, nil
}

func (r *swapRepository) Update(ctx context.Context, swap *models.SwapRequest) error {
	if err := r.db.WithContext(ctx).Save(swap).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateSwap(ctx, swap.ID, swap.FromUserID, swap.ToUserID)
	return nil
}

// ListForUser returns swaps where the user is either participant, newest first.
// Soft-deleted swaps are hidden.
func (r *swapRepository) ListForUser(ctx context.Context, userID uint, limit, offset int) ([]models.SwapRequest, error) {
	var swaps []models.SwapRequest
	if err := r.db.WithContext(ctx).
		Where("(from_user_id = ? OR to_user_id = ?) AND status != ?",
			userID, userID, models.SwapStatusDeleted).
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&swaps).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return swaps, nil
}

func (r *swapRepository) ListAll(ctx context.Context) ([]models.SwapRequest, error) {
	var swaps []models.SwapRequest
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&swaps).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return swaps, nil
}

func (r *swapRepository) CountByStatus(ctx context.Context) (map[models.SwapStatus]int64, error) {
	type row struct {
		Status models.SwapStatus
		Count  int64
	}
	var rows []row
	if err := r.db.WithContext(ctx).
		Model(&models.SwapRequest{}).
		Select("status, count(*) as count").
		Group("status").
		Find(&rows).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	counts := make(map[models.SwapStatus]int64, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.Count
	}
	return counts, nil
}
