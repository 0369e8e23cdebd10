package db

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/followai/followai-backend/internal/domain"
)

func AutoMigrateAll(db *gorm.DB) error {
	return db.AutoMigrate(
		// Per-user aggregate
		&domain.Profile{},

		// Append-only XP ledger
		&domain.XpEvent{},

		// Portfolio (feeds profile completion)
		&domain.PortfolioItem{},
	)
}

// EnsureXpIndexes adds the indexes AutoMigrate's tag syntax cannot express.
func EnsureXpIndexes(db *gorm.DB) error {
	// History reads are newest-first per user.
	if err := db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_xp_event_user_created
		ON xp_event (user_id, created_at DESC);
	`).Error; err != nil {
		return fmt.Errorf("create idx_xp_event_user_created: %w", err)
	}

	// Leaderboard fallback query orders the whole table by total_xp.
	if err := db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_profiles_total_xp
		ON profiles (total_xp DESC);
	`).Error; err != nil {
		return fmt.Errorf("create idx_profiles_total_xp: %w", err)
	}

	return nil
}

func (s *PostgresService) AutoMigrateAll() error {
	s.log.Info("Auto migrating postgres tables...")
	if err := AutoMigrateAll(s.db); err != nil {
		s.log.Error("Auto migration failed", "error", err)
		return err
	}
	if err := EnsureXpIndexes(s.db); err != nil {
		s.log.Error("XP index migration failed", "error", err)
		return err
	}
	return nil
}
