package entities

import (
	"time"

	"github.com/google/uuid"
)

// CancellationReason is the fixed taxonomy of cancellation reasons
type CancellationReason string

const (
	ReasonScheduleConflict  CancellationReason = "schedule_conflict"
	ReasonNoParticipants    CancellationReason = "no_participants"
	ReasonVenueClosed       CancellationReason = "venue_closed"
	ReasonPersonalEmergency CancellationReason = "personal_emergency"
	ReasonBadWeather        CancellationReason = "bad_weather"
	ReasonOther             CancellationReason = "other"
)

var reasonMessages = map[CancellationReason]string{
	ReasonScheduleConflict:  "Schedule conflict",
	ReasonNoParticipants:    "Nobody joined",
	ReasonVenueClosed:       "Venue closed",
	ReasonPersonalEmergency: "Personal emergency",
	ReasonBadWeather:        "Bad weather",
	ReasonOther:             "Other",
}

// IsValidCancellationReason reports whether r is in the taxonomy
func IsValidCancellationReason(r CancellationReason) bool {
	_, ok := reasonMessages[r]
	return ok
}

// ResolveReasonText returns the human-readable cancellation reason.
// For ReasonOther the custom text wins when present.
func ResolveReasonText(reason CancellationReason, customReason string) string {
	if reason == ReasonOther && customReason != "" {
		return customReason
	}
	if msg, ok := reasonMessages[reason]; ok {
		return msg
	}
	return string(reason)
}

// CancellationRecord is one entry in a user's rolling cancellation
// history. Exempt records are retained for audit but never drive
// penalty escalation.
type CancellationRecord struct {
	ID           uuid.UUID          `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	UserID       uuid.UUID          `gorm:"type:uuid;not null;index" json:"user_id"`
	InvitationID uuid.UUID          `gorm:"type:uuid;not null" json:"invitation_id"`
	Reason       CancellationReason `gorm:"type:varchar(30);not null" json:"reason"`
	CustomReason *string            `gorm:"type:text" json:"custom_reason,omitempty"`
	Exempt       bool               `gorm:"not null;default:false" json:"exempt"`
	CreatedAt    time.Time          `gorm:"default:now();index" json:"created_at"`
}

// TableName specifies the table name for CancellationRecord
func (CancellationRecord) TableName() string {
	return "cancellation_records"
}
