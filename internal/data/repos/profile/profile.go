package profile

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/followai/followai-backend/internal/domain"
	pkgerrors "github.com/followai/followai-backend/internal/pkg/errors"
	"github.com/followai/followai-backend/internal/pkg/logger"
)

type ProfileRepo interface {
	Create(ctx context.Context, tx *gorm.DB, profiles []*domain.Profile) ([]*domain.Profile, error)
	GetByID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*domain.Profile, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, userIDs []uuid.UUID) ([]*domain.Profile, error)
	UpdateFields(ctx context.Context, tx *gorm.DB, userID uuid.UUID, fields map[string]any) error
	IncrementTotalXp(ctx context.Context, tx *gorm.DB, userID uuid.UUID, amount int) error
	UpdateProgression(ctx context.Context, tx *gorm.DB, userID uuid.UUID, totalXp, level, currentLevelXp int) error
	UpdateCompletion(ctx context.Context, tx *gorm.DB, userID uuid.UUID, completion int) error
	ListTopByTotalXp(ctx context.Context, tx *gorm.DB, limit, offset int) ([]*domain.Profile, error)
	CountWithMoreXp(ctx context.Context, tx *gorm.DB, totalXp int) (int64, error)
}

type profileRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewProfileRepo(db *gorm.DB, baseLog *logger.Logger) ProfileRepo {
	return &profileRepo{db: db, log: baseLog.With("repo", "ProfileRepo")}
}

func (r *profileRepo) Create(ctx context.Context, tx *gorm.DB, profiles []*domain.Profile) ([]*domain.Profile, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(profiles) == 0 {
		return []*domain.Profile{}, nil
	}
	for _, p := range profiles {
		if p.ID == uuid.Nil {
			p.ID = uuid.New()
		}
		if p.Skills == nil {
			p.Skills = domain.EncodeStringList(nil)
		}
		if p.AITools == nil {
			p.AITools = domain.EncodeStringList(nil)
		}
		if p.Level < 1 {
			p.Level = 1
		}
	}

	if err := transaction.WithContext(ctx).Create(&profiles).Error; err != nil {
		return nil, err
	}
	return profiles, nil
}

func (r *profileRepo) GetByID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*domain.Profile, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var result domain.Profile
	if err := transaction.WithContext(ctx).
		Where("id = ?", userID).
		First(&result).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("profile %s: %w", userID, pkgerrors.ErrNotFound)
		}
		return nil, err
	}
	return &result, nil
}

func (r *profileRepo) GetByIDs(ctx context.Context, tx *gorm.DB, userIDs []uuid.UUID) ([]*domain.Profile, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*domain.Profile
	if len(userIDs) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("id IN ?", userIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *profileRepo) UpdateFields(ctx context.Context, tx *gorm.DB, userID uuid.UUID, fields map[string]any) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(fields) == 0 {
		return nil
	}
	res := transaction.WithContext(ctx).
		Model(&domain.Profile{}).
		Where("id = ?", userID).
		Updates(fields)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("profile %s: %w", userID, pkgerrors.ErrNotFound)
	}
	return nil
}

// IncrementTotalXp bumps the cached total in a single SQL expression so
// concurrent awards never lose an increment.
func (r *profileRepo) IncrementTotalXp(ctx context.Context, tx *gorm.DB, userID uuid.UUID, amount int) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	res := transaction.WithContext(ctx).
		Model(&domain.Profile{}).
		Where("id = ?", userID).
		Update("total_xp", gorm.Expr("total_xp + ?", amount))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("profile %s: %w", userID, pkgerrors.ErrNotFound)
	}
	return nil
}

func (r *profileRepo) UpdateProgression(ctx context.Context, tx *gorm.DB, userID uuid.UUID, totalXp, level, currentLevelXp int) error {
	return r.UpdateFields(ctx, tx, userID, map[string]any{
		"total_xp": totalXp,
		"level":    level,
		"xp":       currentLevelXp,
	})
}

func (r *profileRepo) UpdateCompletion(ctx context.Context, tx *gorm.DB, userID uuid.UUID, completion int) error {
	return r.UpdateFields(ctx, tx, userID, map[string]any{
		"profile_completion": completion,
	})
}

func (r *profileRepo) ListTopByTotalXp(ctx context.Context, tx *gorm.DB, limit, offset int) ([]*domain.Profile, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if limit <= 0 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}

	var results []*domain.Profile
	if err := transaction.WithContext(ctx).
		Order("total_xp DESC").
		Limit(limit).
		Offset(offset).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *profileRepo) CountWithMoreXp(ctx context.Context, tx *gorm.DB, totalXp int) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var count int64
	if err := transaction.WithContext(ctx).
		Model(&domain.Profile{}).
		Where("total_xp > ?", totalXp).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
