package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

const (
	// MinBioLength is the minimum trimmed bio length that counts toward
	// profile completion. Characters, not words.
	MinBioLength = 50
	MaxSkills    = 50
	MaxAITools   = 50
)

// Profile completion weights. Must total 100.
const (
	CompletionWeightAvatar    = 20
	CompletionWeightBio       = 20
	CompletionWeightSkills    = 20
	CompletionWeightAITools   = 20
	CompletionWeightPortfolio = 20
)

// Profile is the per-user aggregate row. TotalXp/Level/Xp are a cached
// projection of the xp_event ledger, maintained transactionally by the
// award service.
type Profile struct {
	ID                uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Username          string         `gorm:"size:64;uniqueIndex" json:"username"`
	FullName          string         `gorm:"size:128" json:"full_name"`
	Bio               *string        `json:"bio,omitempty"`
	AvatarURL         *string        `gorm:"size:512" json:"avatar_url,omitempty"`
	Xp                int            `gorm:"not null;default:0" json:"xp"`
	Level             int            `gorm:"not null;default:1" json:"level"`
	TotalXp           int            `gorm:"not null;default:0" json:"total_xp"`
	ProfileCompletion int            `gorm:"not null;default:0" json:"profile_completion"`
	Skills            datatypes.JSON `gorm:"type:jsonb" json:"skills"`
	AITools           datatypes.JSON `gorm:"column:ai_tools;type:jsonb" json:"ai_tools"`
	CreatedAt         time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt         time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Profile) TableName() string { return "profiles" }

// SkillList decodes the skills column. A missing or malformed column reads
// as an empty list.
func (p *Profile) SkillList() []string {
	return decodeStringList(p.Skills)
}

func (p *Profile) AIToolList() []string {
	return decodeStringList(p.AITools)
}

func EncodeStringList(values []string) datatypes.JSON {
	if values == nil {
		values = []string{}
	}
	raw, _ := json.Marshal(values)
	return datatypes.JSON(raw)
}

func decodeStringList(raw datatypes.JSON) []string {
	if len(raw) == 0 {
		return []string{}
	}
	var values []string
	if err := json.Unmarshal(raw, &values); err != nil {
		return []string{}
	}
	return values
}
