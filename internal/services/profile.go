package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	profilerepo "github.com/followai/followai-backend/internal/data/repos/profile"
	"github.com/followai/followai-backend/internal/domain"
	pkgerrors "github.com/followai/followai-backend/internal/pkg/errors"
	"github.com/followai/followai-backend/internal/pkg/logger"
)

// ProfileUpdate carries the optional mutable profile fields; nil means
// "leave unchanged".
type ProfileUpdate struct {
	Username  *string
	FullName  *string
	Bio       *string
	AvatarURL *string
}

type ProfileService interface {
	GetProfile(ctx context.Context, userID uuid.UUID) (*domain.Profile, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, updates ProfileUpdate) (*domain.Profile, error)
	AddSkill(ctx context.Context, userID uuid.UUID, skill string) (*domain.Profile, error)
	RemoveSkill(ctx context.Context, userID uuid.UUID, skill string) (*domain.Profile, error)
	AddAITool(ctx context.Context, userID uuid.UUID, tool string) (*domain.Profile, error)
	RemoveAITool(ctx context.Context, userID uuid.UUID, tool string) (*domain.Profile, error)
	RecalculateCompletion(ctx context.Context, userID uuid.UUID) (int, error)
}

type profileService struct {
	db        *gorm.DB
	log       *logger.Logger
	profiles  profilerepo.ProfileRepo
	portfolio profilerepo.PortfolioItemRepo
	xp        XpService
}

func NewProfileService(db *gorm.DB, baseLog *logger.Logger, profiles profilerepo.ProfileRepo, portfolio profilerepo.PortfolioItemRepo, xp XpService) ProfileService {
	return &profileService{
		db:        db,
		log:       baseLog.With("service", "ProfileService"),
		profiles:  profiles,
		portfolio: portfolio,
		xp:        xp,
	}
}

// CompletionScore applies the five all-or-nothing completion criteria.
// Weights sum to exactly 100; the clamp is defensive.
func CompletionScore(p *domain.Profile, portfolioCount int64) int {
	score := 0

	if p.AvatarURL != nil && strings.TrimSpace(*p.AvatarURL) != "" {
		score += domain.CompletionWeightAvatar
	}
	if p.Bio != nil && len(strings.TrimSpace(*p.Bio)) >= domain.MinBioLength {
		score += domain.CompletionWeightBio
	}
	if len(p.SkillList()) >= 3 {
		score += domain.CompletionWeightSkills
	}
	if len(p.AIToolList()) >= 3 {
		score += domain.CompletionWeightAITools
	}
	if portfolioCount >= 1 {
		score += domain.CompletionWeightPortfolio
	}

	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}
	return score
}

func (s *profileService) GetProfile(ctx context.Context, userID uuid.UUID) (*domain.Profile, error) {
	return s.profiles.GetByID(ctx, nil, userID)
}

func (s *profileService) UpdateProfile(ctx context.Context, userID uuid.UUID, updates ProfileUpdate) (*domain.Profile, error) {
	fields := map[string]any{}
	if updates.Username != nil {
		name := strings.TrimSpace(*updates.Username)
		if name == "" {
			return nil, fmt.Errorf("username: %w", pkgerrors.ErrInvalidArgument)
		}
		fields["username"] = name
	}
	if updates.FullName != nil {
		fields["full_name"] = strings.TrimSpace(*updates.FullName)
	}
	if updates.Bio != nil {
		fields["bio"] = *updates.Bio
	}
	if updates.AvatarURL != nil {
		fields["avatar_url"] = *updates.AvatarURL
	}
	if len(fields) == 0 {
		return nil, fmt.Errorf("no profile updates provided: %w", pkgerrors.ErrInvalidArgument)
	}

	var updated *domain.Profile
	var score int
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.profiles.UpdateFields(ctx, tx, userID, fields); err != nil {
			return err
		}
		var err error
		score, err = s.recalculate(ctx, tx, userID)
		if err != nil {
			return err
		}
		updated, err = s.profiles.GetByID(ctx, tx, userID)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.maybeAwardProfileComplete(ctx, userID, score)
	return updated, nil
}

func (s *profileService) AddSkill(ctx context.Context, userID uuid.UUID, skill string) (*domain.Profile, error) {
	return s.mutateList(ctx, userID, "skills", func(values []string) ([]string, error) {
		return appendUnique(values, skill, domain.MaxSkills, "skill")
	})
}

func (s *profileService) RemoveSkill(ctx context.Context, userID uuid.UUID, skill string) (*domain.Profile, error) {
	return s.mutateList(ctx, userID, "skills", func(values []string) ([]string, error) {
		return removeExact(values, skill), nil
	})
}

func (s *profileService) AddAITool(ctx context.Context, userID uuid.UUID, tool string) (*domain.Profile, error) {
	return s.mutateList(ctx, userID, "ai_tools", func(values []string) ([]string, error) {
		return appendUnique(values, tool, domain.MaxAITools, "ai tool")
	})
}

func (s *profileService) RemoveAITool(ctx context.Context, userID uuid.UUID, tool string) (*domain.Profile, error) {
	return s.mutateList(ctx, userID, "ai_tools", func(values []string) ([]string, error) {
		return removeExact(values, tool), nil
	})
}

func (s *profileService) RecalculateCompletion(ctx context.Context, userID uuid.UUID) (int, error) {
	var score int
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		score, err = s.recalculate(ctx, tx, userID)
		return err
	})
	if err != nil {
		return 0, err
	}

	s.maybeAwardProfileComplete(ctx, userID, score)
	return score, nil
}

// mutateList applies one read-modify-write to a list column and recomputes
// completion inside the same transaction.
func (s *profileService) mutateList(ctx context.Context, userID uuid.UUID, column string, mutate func([]string) ([]string, error)) (*domain.Profile, error) {
	var updated *domain.Profile
	var score int
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		prof, err := s.profiles.GetByID(ctx, tx, userID)
		if err != nil {
			return err
		}

		var values []string
		switch column {
		case "skills":
			values = prof.SkillList()
		case "ai_tools":
			values = prof.AIToolList()
		default:
			return fmt.Errorf("unknown list column %q: %w", column, pkgerrors.ErrInvalidArgument)
		}

		next, err := mutate(values)
		if err != nil {
			return err
		}

		if err := s.profiles.UpdateFields(ctx, tx, userID, map[string]any{
			column: domain.EncodeStringList(next),
		}); err != nil {
			return err
		}

		score, err = s.recalculate(ctx, tx, userID)
		if err != nil {
			return err
		}

		updated, err = s.profiles.GetByID(ctx, tx, userID)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.maybeAwardProfileComplete(ctx, userID, score)
	return updated, nil
}

func (s *profileService) recalculate(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (int, error) {
	prof, err := s.profiles.GetByID(ctx, tx, userID)
	if err != nil {
		return 0, err
	}
	portfolioCount, err := s.portfolio.CountByUser(ctx, tx, userID)
	if err != nil {
		return 0, fmt.Errorf("count portfolio items: %w", err)
	}

	score := CompletionScore(prof, portfolioCount)
	if err := s.profiles.UpdateCompletion(ctx, tx, userID, score); err != nil {
		return 0, err
	}
	return score, nil
}

// maybeAwardProfileComplete grants the one-time completion bonus after the
// mutation transaction commits. The ledger dedup key (source_id = user id)
// makes repeats a no-op.
func (s *profileService) maybeAwardProfileComplete(ctx context.Context, userID uuid.UUID, score int) {
	if score < 100 || s.xp == nil {
		return
	}
	sourceID := userID.String()
	if _, err := s.xp.Award(ctx, AwardParams{
		UserID:   userID,
		Amount:   domain.XpRewardProfileComplete,
		Reason:   "Profile completed",
		Source:   domain.SourceProfileComplete,
		SourceID: &sourceID,
	}); err != nil {
		s.log.Warn("Profile completion award failed", "user_id", userID, "error", err)
	}
}

func appendUnique(values []string, raw string, max int, kind string) ([]string, error) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return nil, fmt.Errorf("%s cannot be empty: %w", kind, pkgerrors.ErrInvalidArgument)
	}
	if len(values) >= max {
		return nil, fmt.Errorf("maximum %d %ss allowed: %w", max, kind, pkgerrors.ErrCapacityExceeded)
	}
	for _, existing := range values {
		if existing == value {
			return nil, fmt.Errorf("%s already added: %w", kind, pkgerrors.ErrDuplicate)
		}
	}
	return append(values, value), nil
}

func removeExact(values []string, raw string) []string {
	value := strings.TrimSpace(raw)
	out := make([]string, 0, len(values))
	for _, existing := range values {
		if existing != value {
			out = append(out, existing)
		}
	}
	return out
}
