package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	profilerepo "github.com/followai/followai-backend/internal/data/repos/profile"
	xprepo "github.com/followai/followai-backend/internal/data/repos/xp"
	"github.com/followai/followai-backend/internal/domain"
	pkgerrors "github.com/followai/followai-backend/internal/pkg/errors"
	"github.com/followai/followai-backend/internal/pkg/logger"
	"github.com/followai/followai-backend/internal/progression"
)

// AwardOutcome tags the three non-error results of an award attempt.
// Storage failures are returned as plain Go errors instead.
type AwardOutcome string

const (
	AwardGranted        AwardOutcome = "granted"
	AwardAlreadyGranted AwardOutcome = "already_granted"
	AwardRejected       AwardOutcome = "rejected"
)

type AwardParams struct {
	UserID   uuid.UUID
	Amount   int
	Reason   string
	Source   domain.XpSource
	SourceID *string
}

type AwardResult struct {
	Outcome        AwardOutcome `json:"outcome"`
	RejectedReason string       `json:"rejected_reason,omitempty"`
	NewTotalXp     int          `json:"new_total_xp,omitempty"`
	NewLevel       int          `json:"new_level,omitempty"`
	CurrentLevelXp int          `json:"current_level_xp,omitempty"`
	LeveledUp      bool         `json:"leveled_up,omitempty"`
}

// ScoreWriter receives the post-award total for leaderboard upkeep.
type ScoreWriter interface {
	SetScore(ctx context.Context, userID string, totalXp int) error
}

type XpService interface {
	Award(ctx context.Context, params AwardParams) (*AwardResult, error)
	History(ctx context.Context, userID uuid.UUID, limit int) ([]*domain.XpEvent, error)
	Stats(ctx context.Context, userID uuid.UUID) (*progression.Stats, error)
	Reconcile(ctx context.Context, userID uuid.UUID) (*progression.Stats, error)
}

type xpService struct {
	db       *gorm.DB
	log      *logger.Logger
	events   xprepo.XpEventRepo
	profiles profilerepo.ProfileRepo
	notifier XpNotifier
	scores   ScoreWriter // nil when Redis is not configured
}

func NewXpService(db *gorm.DB, baseLog *logger.Logger, events xprepo.XpEventRepo, profiles profilerepo.ProfileRepo, notifier XpNotifier, scores ScoreWriter) XpService {
	if notifier == nil {
		notifier = NoopXpNotifier{}
	}
	return &xpService{
		db:       db,
		log:      baseLog.With("service", "XpService"),
		events:   events,
		profiles: profiles,
		notifier: notifier,
		scores:   scores,
	}
}

// Award appends a ledger entry and updates the cached profile totals in one
// database transaction, so the ledger and the aggregate can never diverge.
// Retrying with the same (source, sourceID) is safe: the dedup index turns
// the retry into an AlreadyGranted no-op.
func (s *xpService) Award(ctx context.Context, p AwardParams) (*AwardResult, error) {
	if p.UserID == uuid.Nil {
		return &AwardResult{Outcome: AwardRejected, RejectedReason: "user id required"}, nil
	}
	if !p.Source.Valid() {
		return &AwardResult{Outcome: AwardRejected, RejectedReason: fmt.Sprintf("unknown xp source %q", p.Source)}, nil
	}
	if p.Amount <= 0 {
		return &AwardResult{Outcome: AwardRejected, RejectedReason: "xp amount must be positive"}, nil
	}

	var result *AwardResult
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		event := &domain.XpEvent{
			UserID:   p.UserID,
			Amount:   p.Amount,
			Reason:   p.Reason,
			Source:   p.Source,
			SourceID: p.SourceID,
		}
		if err := s.events.Insert(ctx, tx, event); err != nil {
			if errors.Is(err, pkgerrors.ErrDuplicate) {
				result = &AwardResult{Outcome: AwardAlreadyGranted}
				return nil
			}
			return fmt.Errorf("insert xp event: %w", err)
		}

		// Single-expression increment: concurrent awards both land.
		if err := s.profiles.IncrementTotalXp(ctx, tx, p.UserID, p.Amount); err != nil {
			return fmt.Errorf("increment total xp: %w", err)
		}

		prof, err := s.profiles.GetByID(ctx, tx, p.UserID)
		if err != nil {
			return fmt.Errorf("read profile after increment: %w", err)
		}

		// Level and within-level XP are pure functions of the fresh
		// total, so concurrent writers converge on the same values.
		newTotal := prof.TotalXp
		newLevel := progression.Level(newTotal)
		currentLevelXp := progression.CurrentLevelXp(newTotal, newLevel)
		if err := s.profiles.UpdateProgression(ctx, tx, p.UserID, newTotal, newLevel, currentLevelXp); err != nil {
			return fmt.Errorf("update progression: %w", err)
		}

		oldLevel := progression.Level(newTotal - p.Amount)
		result = &AwardResult{
			Outcome:        AwardGranted,
			NewTotalXp:     newTotal,
			NewLevel:       newLevel,
			CurrentLevelXp: currentLevelXp,
			LeveledUp:      newLevel > oldLevel,
		}
		return nil
	})
	if err != nil {
		s.log.Error("Award failed", "user_id", p.UserID, "source", p.Source, "error", err)
		return nil, err
	}

	if result.Outcome == AwardGranted {
		s.afterAward(ctx, p, result)
	}
	return result, nil
}

// afterAward runs the best-effort side channels once the transaction has
// committed. Failures here never fail the award.
func (s *xpService) afterAward(ctx context.Context, p AwardParams, res *AwardResult) {
	s.notifier.XpAwarded(ctx, p.UserID, p.Amount, p.Source, res)

	if s.scores != nil {
		if err := s.scores.SetScore(ctx, p.UserID.String(), res.NewTotalXp); err != nil {
			s.log.Warn("Leaderboard score update failed", "user_id", p.UserID, "error", err)
		}
	}
}

func (s *xpService) History(ctx context.Context, userID uuid.UUID, limit int) ([]*domain.XpEvent, error) {
	if userID == uuid.Nil {
		return nil, fmt.Errorf("user id: %w", pkgerrors.ErrInvalidArgument)
	}
	return s.events.ListByUser(ctx, nil, userID, limit)
}

func (s *xpService) Stats(ctx context.Context, userID uuid.UUID) (*progression.Stats, error) {
	prof, err := s.profiles.GetByID(ctx, nil, userID)
	if err != nil {
		return nil, err
	}
	stats := progression.StatsFor(prof.TotalXp)
	return &stats, nil
}

// Reconcile recomputes the cached totals from the ledger sum. The award
// path keeps both in step transactionally; this exists for admin tooling
// and for repairing rows that predate that guarantee.
func (s *xpService) Reconcile(ctx context.Context, userID uuid.UUID) (*progression.Stats, error) {
	var stats progression.Stats
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := s.profiles.GetByID(ctx, tx, userID); err != nil {
			return err
		}
		total, err := s.events.SumByUser(ctx, tx, userID)
		if err != nil {
			return fmt.Errorf("sum ledger: %w", err)
		}
		if total < 0 {
			total = 0
		}
		stats = progression.StatsFor(int(total))
		return s.profiles.UpdateProgression(ctx, tx, userID, stats.TotalXp, stats.Level, stats.CurrentLevelXp)
	})
	if err != nil {
		return nil, err
	}

	if s.scores != nil {
		if err := s.scores.SetScore(ctx, userID.String(), stats.TotalXp); err != nil {
			s.log.Warn("Leaderboard score update failed", "user_id", userID, "error", err)
		}
	}
	return &stats, nil
}
