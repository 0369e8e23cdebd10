package services

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	profilerepo "github.com/followai/followai-backend/internal/data/repos/profile"
	"github.com/followai/followai-backend/internal/data/repos/testutil"
	xprepo "github.com/followai/followai-backend/internal/data/repos/xp"
	"github.com/followai/followai-backend/internal/domain"
	pkgerrors "github.com/followai/followai-backend/internal/pkg/errors"
)

func newPortfolioServiceForTest(t *testing.T) (PortfolioService, ProfileService, XpService) {
	t.Helper()
	db := testutil.DB(t)
	log := testutil.Logger(t)
	profiles := profilerepo.NewProfileRepo(db, log)
	items := profilerepo.NewPortfolioItemRepo(db, log)
	xp := NewXpService(db, log, xprepo.NewXpEventRepo(db, log), profiles, nil, nil)
	profileSvc := NewProfileService(db, log, profiles, items, xp)
	return NewPortfolioService(db, log, items, profileSvc, xp), profileSvc, xp
}

func TestPortfolioCreateAwardsXpAndCompletion(t *testing.T) {
	svc, profiles, xp := newPortfolioServiceForTest(t)
	db := testutil.DB(t)
	ctx := context.Background()

	user := testutil.SeedProfile(t, ctx, db, "pf-"+uuid.NewString()[:8])

	item, err := svc.Create(ctx, user.ID, PortfolioItemInput{
		Title:       "  Marketplace redesign  ",
		Description: testutil.StringPtr("Case study"),
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if item.Title != "Marketplace redesign" {
		t.Fatalf("title = %q, want trimmed", item.Title)
	}

	prof, err := profiles.GetProfile(ctx, user.ID)
	if err != nil {
		t.Fatalf("GetProfile: %v", err)
	}
	if prof.ProfileCompletion != domain.CompletionWeightPortfolio {
		t.Fatalf("completion = %d, want %d (portfolio criterion only)", prof.ProfileCompletion, domain.CompletionWeightPortfolio)
	}

	stats, err := xp.Stats(ctx, user.ID)
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if stats.TotalXp != domain.XpRewardPortfolioAdded {
		t.Fatalf("total xp = %d, want %d", stats.TotalXp, domain.XpRewardPortfolioAdded)
	}
}

func TestPortfolioCreateRejectsEmptyTitle(t *testing.T) {
	svc, _, _ := newPortfolioServiceForTest(t)
	db := testutil.DB(t)
	ctx := context.Background()

	user := testutil.SeedProfile(t, ctx, db, "pft-"+uuid.NewString()[:8])

	if _, err := svc.Create(ctx, user.ID, PortfolioItemInput{Title: "   "}); !errors.Is(err, pkgerrors.ErrInvalidArgument) {
		t.Fatalf("Create with blank title: %v, want ErrInvalidArgument", err)
	}
}

func TestPortfolioUpdateAndDelete(t *testing.T) {
	svc, profiles, _ := newPortfolioServiceForTest(t)
	db := testutil.DB(t)
	ctx := context.Background()

	user := testutil.SeedProfile(t, ctx, db, "pfd-"+uuid.NewString()[:8])
	item, err := svc.Create(ctx, user.ID, PortfolioItemInput{Title: "v1"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	updated, err := svc.Update(ctx, item.ID, user.ID, PortfolioItemInput{
		Title: "v2",
		Link:  testutil.StringPtr("https://example.com"),
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.Title != "v2" || updated.Link == nil || *updated.Link != "https://example.com" {
		t.Fatalf("updated item = %+v", updated)
	}

	// Another user cannot touch the item.
	stranger := testutil.SeedProfile(t, ctx, db, "pfs-"+uuid.NewString()[:8])
	if _, err := svc.Update(ctx, item.ID, stranger.ID, PortfolioItemInput{Title: "stolen"}); !errors.Is(err, pkgerrors.ErrNotFound) {
		t.Fatalf("cross-user update: %v, want ErrNotFound", err)
	}
	if err := svc.Delete(ctx, item.ID, stranger.ID); !errors.Is(err, pkgerrors.ErrNotFound) {
		t.Fatalf("cross-user delete: %v, want ErrNotFound", err)
	}

	if err := svc.Delete(ctx, item.ID, user.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	items, err := svc.List(ctx, user.ID)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(items) != 0 {
		t.Fatalf("items after delete = %d, want 0", len(items))
	}

	// Deleting the last item drops the portfolio criterion again.
	prof, _ := profiles.GetProfile(ctx, user.ID)
	if prof.ProfileCompletion != 0 {
		t.Fatalf("completion after delete = %d, want 0", prof.ProfileCompletion)
	}
}
