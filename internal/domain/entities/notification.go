package entities

import "github.com/google/uuid"

// NotificationType classifies outgoing notifications
type NotificationType string

const (
	NotificationJoinRequest     NotificationType = "join_request"
	NotificationRequestApproved NotificationType = "request_approved"
	NotificationRequestRejected NotificationType = "request_rejected"
	NotificationGroupFull       NotificationType = "group_full"
	NotificationScheduleChanged NotificationType = "schedule_changed"
	NotificationMeetingDone     NotificationType = "meeting_completed"
	NotificationCancelled       NotificationType = "invitation_cancelled"
)

// Notification is the payload handed to the dispatcher. Delivery is
// fire-and-forget; the state transition that produced it is the source
// of truth.
type Notification struct {
	Type       NotificationType  `json:"type"`
	Title      string            `json:"title"`
	Message    string            `json:"message"`
	ActionURL  string            `json:"action_url,omitempty"`
	FromUserID *uuid.UUID        `json:"from_user_id,omitempty"`
	Metadata   map[string]string `json:"metadata,omitempty"`
}
