package profile

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/followai/followai-backend/internal/domain"
	pkgerrors "github.com/followai/followai-backend/internal/pkg/errors"
	"github.com/followai/followai-backend/internal/pkg/logger"
)

type PortfolioItemRepo interface {
	Create(ctx context.Context, tx *gorm.DB, item *domain.PortfolioItem) (*domain.PortfolioItem, error)
	ListByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*domain.PortfolioItem, error)
	CountByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (int64, error)
	UpdateFields(ctx context.Context, tx *gorm.DB, itemID, userID uuid.UUID, fields map[string]any) error
	Delete(ctx context.Context, tx *gorm.DB, itemID, userID uuid.UUID) error
}

type portfolioItemRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewPortfolioItemRepo(db *gorm.DB, baseLog *logger.Logger) PortfolioItemRepo {
	return &portfolioItemRepo{db: db, log: baseLog.With("repo", "PortfolioItemRepo")}
}

func (r *portfolioItemRepo) Create(ctx context.Context, tx *gorm.DB, item *domain.PortfolioItem) (*domain.PortfolioItem, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if item.ID == uuid.Nil {
		item.ID = uuid.New()
	}
	if err := transaction.WithContext(ctx).Create(item).Error; err != nil {
		return nil, err
	}
	return item, nil
}

func (r *portfolioItemRepo) ListByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*domain.PortfolioItem, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*domain.PortfolioItem
	if err := transaction.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *portfolioItemRepo) CountByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var count int64
	if err := transaction.WithContext(ctx).
		Model(&domain.PortfolioItem{}).
		Where("user_id = ?", userID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *portfolioItemRepo) UpdateFields(ctx context.Context, tx *gorm.DB, itemID, userID uuid.UUID, fields map[string]any) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(fields) == 0 {
		return nil
	}
	res := transaction.WithContext(ctx).
		Model(&domain.PortfolioItem{}).
		Where("id = ? AND user_id = ?", itemID, userID).
		Updates(fields)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("portfolio item %s: %w", itemID, pkgerrors.ErrNotFound)
	}
	return nil
}

func (r *portfolioItemRepo) Delete(ctx context.Context, tx *gorm.DB, itemID, userID uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	res := transaction.WithContext(ctx).
		Where("id = ? AND user_id = ?", itemID, userID).
		Delete(&domain.PortfolioItem{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("portfolio item %s: %w", itemID, pkgerrors.ErrNotFound)
	}
	return nil
}
