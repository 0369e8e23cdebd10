package testutil

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/followai/followai-backend/internal/domain"
)

func SeedProfile(tb testing.TB, ctx context.Context, tx *gorm.DB, username string) *domain.Profile {
	tb.Helper()
	p := &domain.Profile{
		ID:       uuid.New(),
		Username: username,
		FullName: "Test User",
		Level:    1,
		Skills:   domain.EncodeStringList(nil),
		AITools:  domain.EncodeStringList(nil),
	}
	if err := tx.WithContext(ctx).Create(p).Error; err != nil {
		tb.Fatalf("seed profile: %v", err)
	}
	return p
}

func SeedXpEvent(tb testing.TB, ctx context.Context, tx *gorm.DB, userID uuid.UUID, amount int, source domain.XpSource, sourceID *string) *domain.XpEvent {
	tb.Helper()
	e := &domain.XpEvent{
		ID:       uuid.New(),
		UserID:   userID,
		Amount:   amount,
		Reason:   fmt.Sprintf("seed %s", source),
		Source:   source,
		SourceID: sourceID,
	}
	if err := tx.WithContext(ctx).Create(e).Error; err != nil {
		tb.Fatalf("seed xp event: %v", err)
	}
	return e
}

func SeedPortfolioItem(tb testing.TB, ctx context.Context, tx *gorm.DB, userID uuid.UUID, title string) *domain.PortfolioItem {
	tb.Helper()
	item := &domain.PortfolioItem{
		ID:     uuid.New(),
		UserID: userID,
		Title:  title,
	}
	if err := tx.WithContext(ctx).Create(item).Error; err != nil {
		tb.Fatalf("seed portfolio item: %v", err)
	}
	return item
}

// StringPtr is a fixture convenience for nullable columns.
func StringPtr(s string) *string { return &s }
