package services

import (
	"context"
	"testing"

	"github.com/google/uuid"

	profilerepo "github.com/followai/followai-backend/internal/data/repos/profile"
	"github.com/followai/followai-backend/internal/data/repos/testutil"
)

func TestLeaderboardFromDB(t *testing.T) {
	db := testutil.DB(t)
	log := testutil.Logger(t)
	ctx := context.Background()

	profiles := profilerepo.NewProfileRepo(db, log)
	svc := NewLeaderboardService(db, log, profiles, nil)

	// Totals far above anything other tests write, so ordering is stable
	// against the shared test database.
	first := testutil.SeedProfile(t, ctx, db, "lb1-"+uuid.NewString()[:8])
	second := testutil.SeedProfile(t, ctx, db, "lb2-"+uuid.NewString()[:8])
	third := testutil.SeedProfile(t, ctx, db, "lb3-"+uuid.NewString()[:8])
	for _, s := range []struct {
		id uuid.UUID
		xp int
	}{
		{first.ID, 900_000_000},
		{second.ID, 800_000_000},
		{third.ID, 700_000_000},
	} {
		if err := profiles.IncrementTotalXp(ctx, nil, s.id, s.xp); err != nil {
			t.Fatalf("IncrementTotalXp: %v", err)
		}
	}

	entries, err := svc.TopUsers(ctx, 3, 0)
	if err != nil {
		t.Fatalf("TopUsers: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("TopUsers: got %d entries, want 3", len(entries))
	}
	wantOrder := []uuid.UUID{first.ID, second.ID, third.ID}
	for i, e := range entries {
		if e.UserID != wantOrder[i] {
			t.Fatalf("rank %d = %s, want %s", i+1, e.UserID, wantOrder[i])
		}
		if e.Rank != int64(i+1) {
			t.Fatalf("entry %d rank = %d, want %d", i, e.Rank, i+1)
		}
	}

	rank, err := svc.UserRank(ctx, second.ID)
	if err != nil {
		t.Fatalf("UserRank: %v", err)
	}
	if rank != 2 {
		t.Fatalf("UserRank = %d, want 2", rank)
	}
}

func TestLeaderboardPagination(t *testing.T) {
	db := testutil.DB(t)
	log := testutil.Logger(t)
	ctx := context.Background()

	profiles := profilerepo.NewProfileRepo(db, log)
	svc := NewLeaderboardService(db, log, profiles, nil)

	top := testutil.SeedProfile(t, ctx, db, "lbp-"+uuid.NewString()[:8])
	if err := profiles.IncrementTotalXp(ctx, nil, top.ID, 99_000_000); err != nil {
		t.Fatalf("IncrementTotalXp: %v", err)
	}

	page, err := svc.TopUsers(ctx, 1, 0)
	if err != nil {
		t.Fatalf("TopUsers: %v", err)
	}
	if len(page) != 1 || page[0].TotalXp < 99_000_000 {
		t.Fatalf("first page = %+v, want a profile at or above the seeded total", page)
	}

	next, err := svc.TopUsers(ctx, 1, 1)
	if err != nil {
		t.Fatalf("TopUsers offset 1: %v", err)
	}
	if len(next) == 1 && next[0].UserID == page[0].UserID {
		t.Fatalf("offset 1 returned the rank-1 profile again")
	}
}
