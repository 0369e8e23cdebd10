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

type PortfolioItemInput struct {
	Title       string
	Description *string
	ImageURL    *string
	Link        *string
}

type PortfolioService interface {
	List(ctx context.Context, userID uuid.UUID) ([]*domain.PortfolioItem, error)
	Create(ctx context.Context, userID uuid.UUID, input PortfolioItemInput) (*domain.PortfolioItem, error)
	Update(ctx context.Context, itemID, userID uuid.UUID, input PortfolioItemInput) (*domain.PortfolioItem, error)
	Delete(ctx context.Context, itemID, userID uuid.UUID) error
}

type portfolioService struct {
	db       *gorm.DB
	log      *logger.Logger
	items    profilerepo.PortfolioItemRepo
	profiles ProfileService
	xp       XpService
}

func NewPortfolioService(db *gorm.DB, baseLog *logger.Logger, items profilerepo.PortfolioItemRepo, profiles ProfileService, xp XpService) PortfolioService {
	return &portfolioService{
		db:       db,
		log:      baseLog.With("service", "PortfolioService"),
		items:    items,
		profiles: profiles,
		xp:       xp,
	}
}

func (s *portfolioService) List(ctx context.Context, userID uuid.UUID) ([]*domain.PortfolioItem, error) {
	return s.items.ListByUser(ctx, nil, userID)
}

func (s *portfolioService) Create(ctx context.Context, userID uuid.UUID, input PortfolioItemInput) (*domain.PortfolioItem, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, fmt.Errorf("title cannot be empty: %w", pkgerrors.ErrInvalidArgument)
	}

	item, err := s.items.Create(ctx, nil, &domain.PortfolioItem{
		UserID:      userID,
		Title:       title,
		Description: input.Description,
		ImageURL:    input.ImageURL,
		Link:        input.Link,
	})
	if err != nil {
		return nil, err
	}

	// Portfolio presence feeds the completion score.
	if _, err := s.profiles.RecalculateCompletion(ctx, userID); err != nil {
		s.log.Warn("Completion recalc after portfolio create failed", "user_id", userID, "error", err)
	}

	// One grant per item; retries dedupe on the item id.
	if s.xp != nil {
		sourceID := item.ID.String()
		if _, err := s.xp.Award(ctx, AwardParams{
			UserID:   userID,
			Amount:   domain.XpRewardPortfolioAdded,
			Reason:   "Portfolio item added",
			Source:   domain.SourcePortfolioAdded,
			SourceID: &sourceID,
		}); err != nil {
			s.log.Warn("Portfolio XP award failed", "user_id", userID, "error", err)
		}
	}

	return item, nil
}

func (s *portfolioService) Update(ctx context.Context, itemID, userID uuid.UUID, input PortfolioItemInput) (*domain.PortfolioItem, error) {
	fields := map[string]any{}
	if title := strings.TrimSpace(input.Title); title != "" {
		fields["title"] = title
	}
	if input.Description != nil {
		fields["description"] = *input.Description
	}
	if input.ImageURL != nil {
		fields["image_url"] = *input.ImageURL
	}
	if input.Link != nil {
		fields["link"] = *input.Link
	}
	if len(fields) == 0 {
		return nil, fmt.Errorf("no portfolio updates provided: %w", pkgerrors.ErrInvalidArgument)
	}

	if err := s.items.UpdateFields(ctx, nil, itemID, userID, fields); err != nil {
		return nil, err
	}

	items, err := s.items.ListByUser(ctx, nil, userID)
	if err != nil {
		return nil, err
	}
	for _, it := range items {
		if it.ID == itemID {
			return it, nil
		}
	}
	return nil, fmt.Errorf("portfolio item %s: %w", itemID, pkgerrors.ErrNotFound)
}

func (s *portfolioService) Delete(ctx context.Context, itemID, userID uuid.UUID) error {
	if err := s.items.Delete(ctx, nil, itemID, userID); err != nil {
		return err
	}

	if _, err := s.profiles.RecalculateCompletion(ctx, userID); err != nil {
		s.log.Warn("Completion recalc after portfolio delete failed", "user_id", userID, "error", err)
	}
	return nil
}
