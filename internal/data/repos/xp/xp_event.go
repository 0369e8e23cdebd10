package xp

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/followai/followai-backend/internal/domain"
	pkgerrors "github.com/followai/followai-backend/internal/pkg/errors"
	"github.com/followai/followai-backend/internal/pkg/logger"
)

type XpEventRepo interface {
	Insert(ctx context.Context, tx *gorm.DB, event *domain.XpEvent) error
	ListByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID, limit int) ([]*domain.XpEvent, error)
	SumByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (int64, error)
}

type xpEventRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewXpEventRepo(db *gorm.DB, baseLog *logger.Logger) XpEventRepo {
	return &xpEventRepo{db: db, log: baseLog.With("repo", "XpEventRepo")}
}

// Insert appends one ledger entry. A collision on the
// (user_id, source, source_id) dedup index surfaces as
// pkgerrors.ErrDuplicate so the award service can treat it as an
// idempotent no-op. ON CONFLICT DO NOTHING keeps the enclosing
// transaction usable after a collision.
func (r *xpEventRepo) Insert(ctx context.Context, tx *gorm.DB, event *domain.XpEvent) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if event.ID == uuid.Nil {
		event.ID = uuid.New()
	}

	res := transaction.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(event)
	if res.Error != nil {
		if isDuplicateKey(res.Error) {
			return fmt.Errorf("xp event for source %s: %w", event.Source, pkgerrors.ErrDuplicate)
		}
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("xp event for source %s: %w", event.Source, pkgerrors.ErrDuplicate)
	}
	return nil
}

func (r *xpEventRepo) ListByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID, limit int) ([]*domain.XpEvent, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if limit <= 0 {
		limit = 50
	}

	var results []*domain.XpEvent
	if err := transaction.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

// SumByUser recomputes the ledger total. The profile aggregate is a cached
// projection of this sum.
func (r *xpEventRepo) SumByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var total int64
	if err := transaction.WithContext(ctx).
		Model(&domain.XpEvent{}).
		Where("user_id = ?", userID).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}

func isDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return true
	}
	return false
}
