package invitation

import (
	"time"
)

// UserSummary is the trimmed user view embedded in responses
type UserSummary struct {
	ID          string  `json:"id"`
	DisplayName string  `json:"display_name"`
	AvatarURL   *string `json:"avatar_url,omitempty"`
}

// EditRecordResponse is one entry of the edit history
type EditRecordResponse struct {
	EditedAt time.Time `json:"edited_at"`
	EditedBy string    `json:"edited_by"`
	OldDate  string    `json:"old_date"`
	OldTime  string    `json:"old_time"`
	NewDate  string    `json:"new_date"`
	NewTime  string    `json:"new_time"`
}

// InvitationResponse represents an invitation in responses
type InvitationResponse struct {
	ID                    string               `json:"id"`
	AuthorID              string               `json:"author_id"`
	Author                *UserSummary         `json:"author,omitempty"`
	Title                 string               `json:"title"`
	Description           *string              `json:"description,omitempty"`
	Date                  string               `json:"date"`
	Time                  string               `json:"time"`
	GuestsNeeded          int                  `json:"guests_needed"`
	Requests              []string             `json:"requests"`
	Joined                []string             `json:"joined"`
	Privacy               string               `json:"privacy"`
	GenderPreference      string               `json:"gender_preference"`
	AgeGroups             []string             `json:"age_groups"`
	Location              string               `json:"location"`
	Lat                   *float64             `json:"lat,omitempty"`
	Lng                   *float64             `json:"lng,omitempty"`
	VenueID               *string              `json:"venue_id,omitempty"`
	MeetingStatus         string               `json:"meeting_status"`
	ParticipantStatus     map[string]string    `json:"participant_status"`
	CompletedAt           *time.Time           `json:"completed_at,omitempty"`
	CompletedBy           *string              `json:"completed_by,omitempty"`
	EditHistory           []EditRecordResponse `json:"edit_history"`
	PendingChangeApproval []string             `json:"pending_change_approval"`
	Status                string               `json:"status"`
	CreatedAt             time.Time            `json:"created_at"`
	UpdatedAt             time.Time            `json:"updated_at"`
}

// InvitationListResponse represents a paginated list of invitations
type InvitationListResponse struct {
	Invitations []*InvitationResponse `json:"invitations"`
	Total       int64                 `json:"total"`
	Page        int                   `json:"page"`
	PageSize    int                   `json:"page_size"`
}

// CompletionCheckResponse reports whether completion is currently allowed
type CompletionCheckResponse struct {
	Allowed bool     `json:"allowed"`
	Reasons []string `json:"reasons,omitempty"`
}

// PenaltyResponse is the penalty outcome embedded in cancel responses
type PenaltyResponse struct {
	Level        int        `json:"level"`
	Icon         string     `json:"icon,omitempty"`
	DurationDays int        `json:"duration_days"`
	Until        *time.Time `json:"until,omitempty"`
	Exempt       bool       `json:"exempt"`
	Reason       string     `json:"reason,omitempty"`
}

// CancelInvitationResponse summarizes what the cancellation did
type CancelInvitationResponse struct {
	NotifiedUsers int              `json:"notified_users"`
	VenueNotified bool             `json:"venue_notified"`
	Penalty       *PenaltyResponse `json:"penalty,omitempty"`
	PenaltyError  string           `json:"penalty_error,omitempty"`
}
