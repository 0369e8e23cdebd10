package domain

import (
	"time"

	"github.com/google/uuid"
)

// XpSource is the closed set of XP grant categories. The (user, source,
// source_id) tuple is the ledger's deduplication key.
type XpSource string

const (
	SourceOnboardingStep     XpSource = "onboarding_step"
	SourceOnboardingComplete XpSource = "onboarding_complete"
	SourceTaskSubmission     XpSource = "task_submission"
	SourceProfileComplete    XpSource = "profile_complete"
	SourcePortfolioAdded     XpSource = "portfolio_added"
)

var validXpSources = map[XpSource]struct{}{
	SourceOnboardingStep:     {},
	SourceOnboardingComplete: {},
	SourceTaskSubmission:     {},
	SourceProfileComplete:    {},
	SourcePortfolioAdded:     {},
}

func (s XpSource) Valid() bool {
	_, ok := validXpSources[s]
	return ok
}

// Default award amounts for grants the backend triggers itself.
const (
	XpRewardProfileComplete = 50
	XpRewardPortfolioAdded  = 25
)

// XpEvent is one immutable ledger entry. Rows are appended, never updated
// or deleted. The composite unique index makes duplicate awards for the
// same non-null source_id a constraint violation; NULL source_id rows
// never collide.
type XpEvent struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:idx_xp_event_dedup" json:"user_id"`
	Amount    int       `gorm:"not null" json:"amount"`
	Reason    string    `gorm:"size:255" json:"reason"`
	Source    XpSource  `gorm:"size:32;not null;uniqueIndex:idx_xp_event_dedup" json:"source"`
	SourceID  *string   `gorm:"size:255;uniqueIndex:idx_xp_event_dedup" json:"source_id,omitempty"`
	IsPenalty bool      `gorm:"not null;default:false" json:"is_penalty"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (XpEvent) TableName() string { return "xp_event" }
