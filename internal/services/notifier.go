package services

import (
	"context"

	"github.com/google/uuid"

	redisclient "github.com/followai/followai-backend/internal/clients/redis"
	"github.com/followai/followai-backend/internal/domain"
	"github.com/followai/followai-backend/internal/pkg/logger"
)

// XpNotifier is the fan-out hook for committed awards. Implementations must
// be best-effort: the award has already been persisted.
type XpNotifier interface {
	XpAwarded(ctx context.Context, userID uuid.UUID, amount int, source domain.XpSource, res *AwardResult)
}

type NoopXpNotifier struct{}

func (NoopXpNotifier) XpAwarded(context.Context, uuid.UUID, int, domain.XpSource, *AwardResult) {}

// busXpNotifier publishes to the Redis XP channel; downstream notification
// workers (push, email) subscribe there.
type busXpNotifier struct {
	log *logger.Logger
	bus redisclient.XpBus
}

func NewBusXpNotifier(baseLog *logger.Logger, bus redisclient.XpBus) XpNotifier {
	return &busXpNotifier{
		log: baseLog.With("service", "BusXpNotifier"),
		bus: bus,
	}
}

func (n *busXpNotifier) XpAwarded(ctx context.Context, userID uuid.UUID, amount int, source domain.XpSource, res *AwardResult) {
	msg := redisclient.XpBusMessage{
		Type:       redisclient.EventXpAwarded,
		UserID:     userID.String(),
		Amount:     amount,
		Source:     string(source),
		NewTotalXp: res.NewTotalXp,
		NewLevel:   res.NewLevel,
	}
	if err := n.bus.Publish(ctx, msg); err != nil {
		n.log.Warn("XP event publish failed", "user_id", userID, "error", err)
		return
	}

	if res.LeveledUp {
		msg.Type = redisclient.EventLevelUp
		if err := n.bus.Publish(ctx, msg); err != nil {
			n.log.Warn("Level-up event publish failed", "user_id", userID, "error", err)
		}
	}
}
