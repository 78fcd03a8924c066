package entities

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Privacy controls who may request to join an invitation
type Privacy string

const (
	PrivacyPublic    Privacy = "public"
	PrivacyFollowers Privacy = "followers"
	PrivacyPrivate   Privacy = "private"
)

// GenderPreference restricts who may request to join
type GenderPreference string

const (
	GenderPreferenceAny    GenderPreference = "any"
	GenderPreferenceMale   GenderPreference = "male"
	GenderPreferenceFemale GenderPreference = "female"
)

// InvitationStatus represents the lifecycle status of an invitation
type InvitationStatus string

const (
	InvitationStatusDraft     InvitationStatus = "draft"
	InvitationStatusPublished InvitationStatus = "published"
	InvitationStatusCompleted InvitationStatus = "completed"
)

// MeetingStatus is the invitation-wide journey marker, distinct from
// per-participant journey status
type MeetingStatus string

const (
	MeetingStatusPlanning  MeetingStatus = "planning"
	MeetingStatusCompleted MeetingStatus = "completed"
)

// JourneyStatus represents a single participant's journey to the venue
type JourneyStatus string

const (
	JourneyStatusPlanning  JourneyStatus = "planning"
	JourneyStatusOnWay     JourneyStatus = "on_way"
	JourneyStatusArrived   JourneyStatus = "arrived"
	JourneyStatusCompleted JourneyStatus = "completed"
)

// journeyRank orders journey states; transitions must strictly increase.
var journeyRank = map[JourneyStatus]int{
	JourneyStatusPlanning:  0,
	JourneyStatusOnWay:     1,
	JourneyStatusArrived:   2,
	JourneyStatusCompleted: 3,
}

// IsValidJourneyStatus reports whether s is a known journey status
func IsValidJourneyStatus(s JourneyStatus) bool {
	_, ok := journeyRank[s]
	return ok
}

// CanAdvance reports whether a participant may move from current to next.
// Only strictly forward moves are allowed; regression and no-ops are not.
func CanAdvance(current, next JourneyStatus) bool {
	cr, ok1 := journeyRank[current]
	nr, ok2 := journeyRank[next]
	return ok1 && ok2 && nr > cr
}

// AgeGroupAny matches every age bucket
const AgeGroupAny = "any"

// ageGroups are the fixed age bucket labels used by eligibility filters.
var ageGroups = map[string]bool{
	AgeGroupAny: true,
	"20s":       true,
	"30s":       true,
	"40s":       true,
	"50s+":      true,
}

// IsValidAgeGroup reports whether label is a known age bucket
func IsValidAgeGroup(label string) bool {
	return ageGroups[label]
}

// EditRecord is one immutable entry in an invitation's edit history
type EditRecord struct {
	EditedAt time.Time `json:"edited_at"`
	EditedBy uuid.UUID `json:"edited_by"`
	OldDate  string    `json:"old_date"`
	OldTime  string    `json:"old_time"`
	NewDate  string    `json:"new_date"`
	NewTime  string    `json:"new_time"`
}

// Invitation is the central aggregate: a meal plan at a venue with a
// host, capacity-limited guests, and a location-gated completion.
type Invitation struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	AuthorID    uuid.UUID `gorm:"type:uuid;not null;index" json:"author_id"`
	Author      *User     `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
	Title       string    `gorm:"type:varchar(255);not null" json:"title"`
	Description *string   `gorm:"type:text" json:"description,omitempty"`

	Date    time.Time  `gorm:"type:date;not null;index" json:"date"`
	Time    string     `gorm:"type:varchar(5);not null" json:"time"` // "19:30"
	MinDate *time.Time `gorm:"type:date" json:"min_date,omitempty"`
	MaxDate *time.Time `gorm:"type:date" json:"max_date,omitempty"`

	GuestsNeeded int                              `gorm:"not null;check:guests_needed >= 1" json:"guests_needed"`
	Requests     datatypes.JSONSlice[uuid.UUID]   `gorm:"type:jsonb;default:'[]'" json:"requests"`
	Joined       datatypes.JSONSlice[uuid.UUID]   `gorm:"type:jsonb;default:'[]'" json:"joined"`

	Privacy          Privacy                        `gorm:"type:varchar(20);not null;default:'public';index" json:"privacy"`
	InvitedUserIDs   datatypes.JSONSlice[uuid.UUID] `gorm:"type:jsonb;default:'[]'" json:"invited_user_ids"`
	GenderPreference GenderPreference               `gorm:"type:varchar(10);not null;default:'any'" json:"gender_preference"`
	AgeGroups        datatypes.JSONSlice[string]    `gorm:"type:jsonb;default:'[\"any\"]'" json:"age_groups"`

	Location string   `gorm:"type:varchar(255);not null" json:"location"`
	Lat      *float64 `json:"lat,omitempty"`
	Lng      *float64 `json:"lng,omitempty"`
	VenueID  *uuid.UUID `gorm:"type:uuid;index" json:"venue_id,omitempty"`
	Venue    *Venue     `gorm:"foreignKey:VenueID" json:"venue,omitempty"`

	MeetingStatus     MeetingStatus                                   `gorm:"type:varchar(20);not null;default:'planning'" json:"meeting_status"`
	ParticipantStatus datatypes.JSONType[map[string]JourneyStatus]    `gorm:"type:jsonb" json:"participant_status"`
	CompletedAt       *time.Time                                      `json:"completed_at,omitempty"`
	CompletedBy       *uuid.UUID                                      `gorm:"type:uuid" json:"completed_by,omitempty"`

	EditHistory           datatypes.JSONSlice[EditRecord] `gorm:"type:jsonb;default:'[]'" json:"edit_history"`
	PendingChangeApproval datatypes.JSONSlice[uuid.UUID]  `gorm:"type:jsonb;default:'[]'" json:"pending_change_approval"`

	Status  InvitationStatus `gorm:"type:varchar(20);not null;default:'published';index" json:"status"`
	Version int              `gorm:"not null;default:1" json:"version"`

	// EverJoined flips on the first approval and never resets. Penalty
	// exemption uses it to tell "nobody ever joined" from "everyone was
	// demoted by a schedule edit".
	EverJoined bool `gorm:"not null;default:false" json:"ever_joined"`

	CreatedAt time.Time `gorm:"default:now()" json:"created_at"`
	UpdatedAt time.Time `gorm:"default:now()" json:"updated_at"`
}

// TableName specifies the table name for Invitation
func (Invitation) TableName() string {
	return "invitations"
}

// IsHost checks whether userID is the invitation's author
func (i *Invitation) IsHost(userID uuid.UUID) bool {
	return i.AuthorID == userID
}

// IsFull checks whether the joined set has reached capacity
func (i *Invitation) IsFull() bool {
	return len(i.Joined) >= i.GuestsNeeded
}

// IsCompleted checks whether the meeting reached its terminal state
func (i *Invitation) IsCompleted() bool {
	return i.MeetingStatus == MeetingStatusCompleted
}

// HasCoordinates reports whether the venue has verifiable coordinates
func (i *Invitation) HasCoordinates() bool {
	return i.Lat != nil && i.Lng != nil
}

// HasRequested checks whether userID is awaiting approval
func (i *Invitation) HasRequested(userID uuid.UUID) bool {
	return containsID(i.Requests, userID)
}

// HasJoined checks whether userID is an approved participant
func (i *Invitation) HasJoined(userID uuid.UUID) bool {
	return containsID(i.Joined, userID)
}

// IsInvited checks whether userID is on the private invite list
func (i *Invitation) IsInvited(userID uuid.UUID) bool {
	return containsID(i.InvitedUserIDs, userID)
}

// AddRequest appends userID to the request set. Returns false when the
// user already requested or joined, keeping the operation idempotent.
func (i *Invitation) AddRequest(userID uuid.UUID) bool {
	if i.HasRequested(userID) || i.HasJoined(userID) {
		return false
	}
	i.Requests = append(i.Requests, userID)
	return true
}

// RemoveRequest drops userID from the request set. No-op if absent.
func (i *Invitation) RemoveRequest(userID uuid.UUID) bool {
	before := len(i.Requests)
	i.Requests = removeID(i.Requests, userID)
	return len(i.Requests) != before
}

// PromoteToJoined moves userID from requests to joined. The caller is
// responsible for the capacity check; a user never appears in both sets.
func (i *Invitation) PromoteToJoined(userID uuid.UUID) {
	i.Requests = removeID(i.Requests, userID)
	if !i.HasJoined(userID) {
		i.Joined = append(i.Joined, userID)
	}
	i.EverJoined = true
}

// DemoteJoinedToRequests moves every joined participant back into the
// request set for re-confirmation and records them as pending approval.
// Returns the displaced user ids.
func (i *Invitation) DemoteJoinedToRequests() []uuid.UUID {
	displaced := make([]uuid.UUID, 0, len(i.Joined))
	for _, id := range i.Joined {
		displaced = append(displaced, id)
		if !containsID(i.Requests, id) {
			i.Requests = append(i.Requests, id)
		}
	}
	i.Joined = datatypes.JSONSlice[uuid.UUID]{}
	i.PendingChangeApproval = datatypes.NewJSONSlice(displaced)
	return displaced
}

// AppendEdit records one immutable edit-history entry
func (i *Invitation) AppendEdit(rec EditRecord) {
	i.EditHistory = append(i.EditHistory, rec)
}

// JourneyStatusOf returns the participant's journey status, defaulting
// to planning when the participant never reported one.
func (i *Invitation) JourneyStatusOf(userID uuid.UUID) JourneyStatus {
	m := i.ParticipantStatus.Data()
	if m == nil {
		return JourneyStatusPlanning
	}
	if s, ok := m[userID.String()]; ok {
		return s
	}
	return JourneyStatusPlanning
}

// SetJourneyStatus records the participant's journey status
func (i *Invitation) SetJourneyStatus(userID uuid.UUID, status JourneyStatus) {
	m := i.ParticipantStatus.Data()
	if m == nil {
		m = make(map[string]JourneyStatus)
	}
	m[userID.String()] = status
	i.ParticipantStatus = datatypes.NewJSONType(m)
}

// Complete marks the meeting as completed by the given host
func (i *Invitation) Complete(by uuid.UUID, at time.Time) {
	i.MeetingStatus = MeetingStatusCompleted
	i.Status = InvitationStatusCompleted
	i.CompletedAt = &at
	i.CompletedBy = &by
}

// RecipientIDs returns requests ∪ joined, deduplicated, in request order
func (i *Invitation) RecipientIDs() []uuid.UUID {
	seen := make(map[uuid.UUID]bool, len(i.Requests)+len(i.Joined))
	out := make([]uuid.UUID, 0, len(i.Requests)+len(i.Joined))
	for _, id := range i.Requests {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	for _, id := range i.Joined {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}

func containsID(ids []uuid.UUID, target uuid.UUID) bool {
	for _, id := range ids {
		if id == target {
			return true
		}
	}
	return false
}

func removeID(ids datatypes.JSONSlice[uuid.UUID], target uuid.UUID) datatypes.JSONSlice[uuid.UUID] {
	out := ids[:0:0]
	for _, id := range ids {
		if id != target {
			out = append(out, id)
		}
	}
	return out
}
