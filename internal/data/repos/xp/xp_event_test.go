package xp

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/followai/followai-backend/internal/data/repos/testutil"
	"github.com/followai/followai-backend/internal/domain"
	pkgerrors "github.com/followai/followai-backend/internal/pkg/errors"
)

func TestXpEventRepo(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	repo := NewXpEventRepo(db, testutil.Logger(t))
	ctx := context.Background()

	user := testutil.SeedProfile(t, ctx, tx, "xpeventrepo")

	first := &domain.XpEvent{
		UserID:   user.ID,
		Amount:   100,
		Reason:   "task approved",
		Source:   domain.SourceTaskSubmission,
		SourceID: testutil.StringPtr("sub-1"),
	}
	if err := repo.Insert(ctx, tx, first); err != nil {
		t.Fatalf("Insert: %v", err)
	}
	if first.ID == uuid.Nil {
		t.Fatalf("Insert: id not assigned")
	}

	// Same dedup tuple must collide.
	dup := &domain.XpEvent{
		UserID:   user.ID,
		Amount:   100,
		Reason:   "task approved (retry)",
		Source:   domain.SourceTaskSubmission,
		SourceID: testutil.StringPtr("sub-1"),
	}
	err := repo.Insert(ctx, tx, dup)
	if !errors.Is(err, pkgerrors.ErrDuplicate) {
		t.Fatalf("Insert duplicate: got %v, want ErrDuplicate", err)
	}

	// Nil source_id rows never collide with each other.
	for i := 0; i < 2; i++ {
		e := &domain.XpEvent{
			UserID: user.ID,
			Amount: 10,
			Reason: "manual grant",
			Source: domain.SourceOnboardingStep,
		}
		if err := repo.Insert(ctx, tx, e); err != nil {
			t.Fatalf("Insert nil source_id #%d: %v", i, err)
		}
	}

	events, err := repo.ListByUser(ctx, tx, user.ID, 10)
	if err != nil {
		t.Fatalf("ListByUser: %v", err)
	}
	if len(events) != 3 {
		t.Fatalf("ListByUser: got %d events, want 3", len(events))
	}

	total, err := repo.SumByUser(ctx, tx, user.ID)
	if err != nil {
		t.Fatalf("SumByUser: %v", err)
	}
	if total != 120 {
		t.Fatalf("SumByUser: got %d, want 120", total)
	}

	// Other users see an empty ledger.
	total, err = repo.SumByUser(ctx, tx, uuid.New())
	if err != nil {
		t.Fatalf("SumByUser (empty): %v", err)
	}
	if total != 0 {
		t.Fatalf("SumByUser (empty): got %d, want 0", total)
	}
}

func TestXpEventRepoListLimit(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	repo := NewXpEventRepo(db, testutil.Logger(t))
	ctx := context.Background()

	user := testutil.SeedProfile(t, ctx, tx, "xpeventrepolimit")
	for i := 0; i < 5; i++ {
		testutil.SeedXpEvent(t, ctx, tx, user.ID, 10, domain.SourceOnboardingStep, nil)
	}

	events, err := repo.ListByUser(ctx, tx, user.ID, 3)
	if err != nil {
		t.Fatalf("ListByUser: %v", err)
	}
	if len(events) != 3 {
		t.Fatalf("ListByUser: got %d events, want 3", len(events))
	}
}
