package profile

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/followai/followai-backend/internal/data/repos/testutil"
	"github.com/followai/followai-backend/internal/domain"
	pkgerrors "github.com/followai/followai-backend/internal/pkg/errors"
)

func TestProfileRepo(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	repo := NewProfileRepo(db, testutil.Logger(t))
	ctx := context.Background()

	created, err := repo.Create(ctx, tx, []*domain.Profile{
		{Username: "profilerepo", FullName: "A B"},
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if len(created) != 1 || created[0].ID == uuid.Nil {
		t.Fatalf("Create: unexpected result %+v", created)
	}
	if created[0].Level != 1 {
		t.Fatalf("Create: level defaulted to %d, want 1", created[0].Level)
	}

	got, err := repo.GetByID(ctx, tx, created[0].ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Username != "profilerepo" {
		t.Fatalf("GetByID: unexpected profile %+v", got)
	}
	if len(got.SkillList()) != 0 {
		t.Fatalf("GetByID: fresh profile has skills %v", got.SkillList())
	}

	_, err = repo.GetByID(ctx, tx, uuid.New())
	if !errors.Is(err, pkgerrors.ErrNotFound) {
		t.Fatalf("GetByID (missing): got %v, want ErrNotFound", err)
	}

	if err := repo.IncrementTotalXp(ctx, tx, created[0].ID, 150); err != nil {
		t.Fatalf("IncrementTotalXp: %v", err)
	}
	if err := repo.IncrementTotalXp(ctx, tx, created[0].ID, 25); err != nil {
		t.Fatalf("IncrementTotalXp (again): %v", err)
	}
	got, err = repo.GetByID(ctx, tx, created[0].ID)
	if err != nil {
		t.Fatalf("GetByID after increment: %v", err)
	}
	if got.TotalXp != 175 {
		t.Fatalf("TotalXp after increments = %d, want 175", got.TotalXp)
	}

	if err := repo.IncrementTotalXp(ctx, tx, uuid.New(), 10); !errors.Is(err, pkgerrors.ErrNotFound) {
		t.Fatalf("IncrementTotalXp (missing): got %v, want ErrNotFound", err)
	}

	if err := repo.UpdateProgression(ctx, tx, created[0].ID, 175, 2, 75); err != nil {
		t.Fatalf("UpdateProgression: %v", err)
	}
	if err := repo.UpdateCompletion(ctx, tx, created[0].ID, 40); err != nil {
		t.Fatalf("UpdateCompletion: %v", err)
	}
	got, _ = repo.GetByID(ctx, tx, created[0].ID)
	if got.Level != 2 || got.Xp != 75 || got.ProfileCompletion != 40 {
		t.Fatalf("after updates: %+v", got)
	}
}

func TestProfileRepoLeaderboardQueries(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	repo := NewProfileRepo(db, testutil.Logger(t))
	ctx := context.Background()

	totals := []int{500, 100, 900}
	ids := make([]uuid.UUID, len(totals))
	for i, totalXp := range totals {
		p := testutil.SeedProfile(t, ctx, tx, uuid.NewString()[:8])
		if err := repo.IncrementTotalXp(ctx, tx, p.ID, totalXp); err != nil {
			t.Fatalf("IncrementTotalXp: %v", err)
		}
		ids[i] = p.ID
	}

	top, err := repo.ListTopByTotalXp(ctx, tx, 2, 0)
	if err != nil {
		t.Fatalf("ListTopByTotalXp: %v", err)
	}
	if len(top) != 2 {
		t.Fatalf("ListTopByTotalXp: got %d rows, want 2", len(top))
	}
	if top[0].ID != ids[2] || top[1].ID != ids[0] {
		t.Fatalf("ListTopByTotalXp: wrong order: %v then %v", top[0].TotalXp, top[1].TotalXp)
	}

	ahead, err := repo.CountWithMoreXp(ctx, tx, 500)
	if err != nil {
		t.Fatalf("CountWithMoreXp: %v", err)
	}
	if ahead != 1 {
		t.Fatalf("CountWithMoreXp(500) = %d, want 1", ahead)
	}
}
