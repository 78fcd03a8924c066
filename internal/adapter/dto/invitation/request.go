package invitation

import (
	"time"
)

// CreateInvitationRequest represents the request to create an invitation
type CreateInvitationRequest struct {
	Title            string     `json:"title" validate:"required,min=1,max=255"`
	Description      *string    `json:"description,omitempty"`
	Date             time.Time  `json:"date" validate:"required"`
	Time             string     `json:"time" validate:"required,hhmm"`
	MinDate          *time.Time `json:"min_date,omitempty"`
	MaxDate          *time.Time `json:"max_date,omitempty"`
	GuestsNeeded     int        `json:"guests_needed" validate:"required,min=1,max=20"`
	Privacy          string     `json:"privacy" validate:"omitempty,oneof=public followers private"`
	InvitedUserIDs   []string   `json:"invited_user_ids,omitempty" validate:"dive,uuid"`
	GenderPreference string     `json:"gender_preference" validate:"omitempty,oneof=any male female"`
	AgeGroups        []string   `json:"age_groups,omitempty" validate:"dive,agegroup"`
	Location         string     `json:"location" validate:"required,min=1,max=255"`
	Lat              *float64   `json:"lat,omitempty" validate:"omitempty,min=-90,max=90"`
	Lng              *float64   `json:"lng,omitempty" validate:"omitempty,min=-180,max=180"`
	VenueID          *string    `json:"venue_id,omitempty" validate:"omitempty,uuid"`
	Draft            bool       `json:"draft,omitempty"`
}

// ListInvitationsRequest represents query parameters for listing invitations
type ListInvitationsRequest struct {
	AuthorID *string `query:"author_id" validate:"omitempty,uuid"`
	Privacy  *string `query:"privacy" validate:"omitempty,oneof=public followers private"`
	Status   *string `query:"status" validate:"omitempty,oneof=draft published completed"`
	Search   string  `query:"search"`
	Page     int     `query:"page" validate:"min=0"`
	PageSize int     `query:"page_size" validate:"min=0,max=100"`
}

// UpdateGuestCountRequest represents the request to change capacity
type UpdateGuestCountRequest struct {
	GuestsNeeded int `json:"guests_needed" validate:"required,min=1,max=20"`
}

// UpdateScheduleRequest represents the request to change date/time
type UpdateScheduleRequest struct {
	Date time.Time `json:"date" validate:"required"`
	Time string    `json:"time" validate:"required,hhmm"`
}

// UpdateJourneyStatusRequest represents a participant reporting their
// own journey progress
type UpdateJourneyStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=planning on_way arrived completed"`
}

// CompleteInvitationRequest carries the client-reported device position,
// used when the location provider cannot produce a fix
type CompleteInvitationRequest struct {
	Lat *float64 `json:"lat,omitempty" validate:"omitempty,min=-90,max=90"`
	Lng *float64 `json:"lng,omitempty" validate:"omitempty,min=-180,max=180"`
}

// CancelInvitationRequest represents the request to cancel an invitation
type CancelInvitationRequest struct {
	Reason       string `json:"reason" validate:"required,oneof=schedule_conflict no_participants venue_closed personal_emergency bad_weather other"`
	CustomReason string `json:"custom_reason,omitempty" validate:"max=500"`
}
