package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"

	redisclient "github.com/followai/followai-backend/internal/clients/redis"
	profilerepo "github.com/followai/followai-backend/internal/data/repos/profile"
	"github.com/followai/followai-backend/internal/pkg/logger"
)

type LeaderboardEntry struct {
	UserID    uuid.UUID `json:"user_id"`
	Username  string    `json:"username"`
	FullName  string    `json:"full_name"`
	AvatarURL *string   `json:"avatar_url,omitempty"`
	TotalXp   int       `json:"total_xp"`
	Level     int       `json:"level"`
	Rank      int64     `json:"rank"`
}

type LeaderboardService interface {
	TopUsers(ctx context.Context, limit, offset int) ([]LeaderboardEntry, error)
	UserRank(ctx context.Context, userID uuid.UUID) (int64, error)
}

type leaderboardService struct {
	db       *gorm.DB
	log      *logger.Logger
	profiles profilerepo.ProfileRepo
	cache    redisclient.LeaderboardCache // nil when Redis is not configured
	group    singleflight.Group
}

func NewLeaderboardService(db *gorm.DB, baseLog *logger.Logger, profiles profilerepo.ProfileRepo, cache redisclient.LeaderboardCache) LeaderboardService {
	return &leaderboardService{
		db:       db,
		log:      baseLog.With("service", "LeaderboardService"),
		profiles: profiles,
		cache:    cache,
	}
}

func (s *leaderboardService) TopUsers(ctx context.Context, limit, offset int) ([]LeaderboardEntry, error) {
	if limit <= 0 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}

	if s.cache != nil {
		entries, err := s.topFromCache(ctx, limit, offset)
		if err == nil {
			return entries, nil
		}
		s.log.Warn("Leaderboard cache read failed, falling back to SQL", "error", err)
	}

	// Identical concurrent reads collapse into one query.
	key := fmt.Sprintf("top:%d:%d", limit, offset)
	v, err, _ := s.group.Do(key, func() (any, error) {
		return s.topFromDB(ctx, limit, offset)
	})
	if err != nil {
		return nil, err
	}
	return v.([]LeaderboardEntry), nil
}

func (s *leaderboardService) topFromCache(ctx context.Context, limit, offset int) ([]LeaderboardEntry, error) {
	ranked, err := s.cache.Top(ctx, limit, offset)
	if err != nil {
		return nil, err
	}

	ids := make([]uuid.UUID, 0, len(ranked))
	for _, r := range ranked {
		id, err := uuid.Parse(r.UserID)
		if err != nil {
			return nil, fmt.Errorf("malformed member %q in leaderboard set: %w", r.UserID, err)
		}
		ids = append(ids, id)
	}

	profiles, err := s.profiles.GetByIDs(ctx, nil, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[uuid.UUID]int, len(profiles))
	for i, p := range profiles {
		byID[p.ID] = i
	}

	entries := make([]LeaderboardEntry, 0, len(ranked))
	for i, r := range ranked {
		idx, ok := byID[ids[i]]
		if !ok {
			// Set member without a profile row; skip rather than fail.
			continue
		}
		p := profiles[idx]
		entries = append(entries, LeaderboardEntry{
			UserID:    p.ID,
			Username:  p.Username,
			FullName:  p.FullName,
			AvatarURL: p.AvatarURL,
			TotalXp:   p.TotalXp,
			Level:     p.Level,
			Rank:      r.Rank,
		})
	}
	return entries, nil
}

func (s *leaderboardService) topFromDB(ctx context.Context, limit, offset int) ([]LeaderboardEntry, error) {
	profiles, err := s.profiles.ListTopByTotalXp(ctx, nil, limit, offset)
	if err != nil {
		return nil, err
	}

	entries := make([]LeaderboardEntry, 0, len(profiles))
	for i, p := range profiles {
		entries = append(entries, LeaderboardEntry{
			UserID:    p.ID,
			Username:  p.Username,
			FullName:  p.FullName,
			AvatarURL: p.AvatarURL,
			TotalXp:   p.TotalXp,
			Level:     p.Level,
			Rank:      int64(offset + i + 1),
		})
	}
	return entries, nil
}

// UserRank returns the 1-based rank by total XP.
func (s *leaderboardService) UserRank(ctx context.Context, userID uuid.UUID) (int64, error) {
	if s.cache != nil {
		rank, found, err := s.cache.Rank(ctx, userID.String())
		if err == nil && found {
			return rank, nil
		}
		if err != nil {
			s.log.Warn("Leaderboard cache rank failed, falling back to SQL", "error", err)
		}
	}

	prof, err := s.profiles.GetByID(ctx, nil, userID)
	if err != nil {
		return 0, err
	}
	ahead, err := s.profiles.CountWithMoreXp(ctx, nil, prof.TotalXp)
	if err != nil {
		return 0, err
	}
	return ahead + 1, nil
}
