package entities

import (
	"time"

	"github.com/google/uuid"
)

// PenaltyLevel is the closed set of escalation tiers applied to a host's
// account based on cumulative non-exempt cancellations.
type PenaltyLevel int

const (
	PenaltyLevelNone        PenaltyLevel = 0 // exempt / clean record
	PenaltyLevelWarning     PenaltyLevel = 1
	PenaltyLevelRestriction PenaltyLevel = 2 // 14-day creation restriction
	PenaltyLevelBan         PenaltyLevel = 3 // 30-day ban
	PenaltyLevelExtendedBan PenaltyLevel = 4 // 90-day ban
)

// PenaltyLevelForCount maps a cumulative non-exempt cancellation count
// to its tier. The tier table is exhaustive by construction.
func PenaltyLevelForCount(count int) PenaltyLevel {
	switch {
	case count <= 0:
		return PenaltyLevelNone
	case count == 1:
		return PenaltyLevelWarning
	case count <= 3:
		return PenaltyLevelRestriction
	case count == 4:
		return PenaltyLevelBan
	default:
		return PenaltyLevelExtendedBan
	}
}

// Duration returns how long the tier's creation restriction lasts.
// Warning carries no restriction.
func (l PenaltyLevel) Duration() time.Duration {
	switch l {
	case PenaltyLevelRestriction:
		return 14 * 24 * time.Hour
	case PenaltyLevelBan:
		return 30 * 24 * time.Hour
	case PenaltyLevelExtendedBan:
		return 90 * 24 * time.Hour
	default:
		return 0
	}
}

// Restricts reports whether the tier bars new invitation creation
func (l PenaltyLevel) Restricts() bool {
	return l >= PenaltyLevelRestriction
}

// Icon returns the badge shown next to the penalty message
func (l PenaltyLevel) Icon() string {
	switch l {
	case PenaltyLevelWarning:
		return "⚠️"
	case PenaltyLevelRestriction:
		return "⏸️"
	case PenaltyLevelBan:
		return "🚫"
	case PenaltyLevelExtendedBan:
		return "⛔"
	default:
		return ""
	}
}

// PenaltyState is the persisted (and cached) per-user penalty snapshot
type PenaltyState struct {
	UserID    uuid.UUID    `gorm:"type:uuid;primary_key" json:"user_id"`
	Level     PenaltyLevel `gorm:"not null;default:0" json:"level"`
	Until     *time.Time   `json:"until,omitempty"`
	Reason    string       `gorm:"type:text" json:"reason"`
	UpdatedAt time.Time    `gorm:"default:now()" json:"updated_at"`
}

// TableName specifies the table name for PenaltyState
func (PenaltyState) TableName() string {
	return "penalty_states"
}

// ActiveRestriction reports whether the state currently bars creation
func (p *PenaltyState) ActiveRestriction(now time.Time) bool {
	return p.Level.Restricts() && p.Until != nil && p.Until.After(now)
}
