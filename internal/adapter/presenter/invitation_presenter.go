package presenter

import (
	"github.com/google/uuid"

	"github.com/mealmeet-team/mealmeet/internal/adapter/dto/invitation"
	"github.com/mealmeet-team/mealmeet/internal/domain/entities"
	invitationUsecase "github.com/mealmeet-team/mealmeet/internal/usecase/invitation"
)

// ToInvitationResponse converts an Invitation entity to its DTO
func ToInvitationResponse(inv *entities.Invitation) *invitation.InvitationResponse {
	if inv == nil {
		return nil
	}

	resp := &invitation.InvitationResponse{
		ID:                    inv.ID.String(),
		AuthorID:              inv.AuthorID.String(),
		Author:                toUserSummary(inv.Author),
		Title:                 inv.Title,
		Description:           inv.Description,
		Date:                  inv.Date.Format("2006-01-02"),
		Time:                  inv.Time,
		GuestsNeeded:          inv.GuestsNeeded,
		Requests:              idsToStrings(inv.Requests),
		Joined:                idsToStrings(inv.Joined),
		Privacy:               string(inv.Privacy),
		GenderPreference:      string(inv.GenderPreference),
		AgeGroups:             inv.AgeGroups,
		Location:              inv.Location,
		Lat:                   inv.Lat,
		Lng:                   inv.Lng,
		MeetingStatus:         string(inv.MeetingStatus),
		ParticipantStatus:     journeyStatuses(inv),
		CompletedAt:           inv.CompletedAt,
		EditHistory:           editHistory(inv.EditHistory),
		PendingChangeApproval: idsToStrings(inv.PendingChangeApproval),
		Status:                string(inv.Status),
		CreatedAt:             inv.CreatedAt,
		UpdatedAt:             inv.UpdatedAt,
	}

	if inv.VenueID != nil {
		v := inv.VenueID.String()
		resp.VenueID = &v
	}
	if inv.CompletedBy != nil {
		v := inv.CompletedBy.String()
		resp.CompletedBy = &v
	}

	return resp
}

// ToInvitationListResponse converts a page of invitations
func ToInvitationListResponse(invs []*entities.Invitation, total int64, page, pageSize int) *invitation.InvitationListResponse {
	out := make([]*invitation.InvitationResponse, 0, len(invs))
	for _, inv := range invs {
		out = append(out, ToInvitationResponse(inv))
	}
	return &invitation.InvitationListResponse{
		Invitations: out,
		Total:       total,
		Page:        page,
		PageSize:    pageSize,
	}
}

// ToCancelResponse converts a cancellation summary to its DTO
func ToCancelResponse(summary *invitationUsecase.CancelSummary) *invitation.CancelInvitationResponse {
	resp := &invitation.CancelInvitationResponse{
		NotifiedUsers: summary.NotifiedUsers,
		VenueNotified: summary.VenueNotified,
	}
	if summary.Penalty != nil {
		resp.Penalty = &invitation.PenaltyResponse{
			Level:        int(summary.Penalty.Level),
			Icon:         summary.Penalty.Level.Icon(),
			DurationDays: int(summary.Penalty.Duration.Hours() / 24),
			Until:        summary.Penalty.Until,
			Exempt:       summary.Penalty.Exempt,
			Reason:       summary.Penalty.Reason,
		}
	}
	if summary.PenaltyErr != nil {
		resp.PenaltyError = summary.PenaltyErr.Error()
	}
	return resp
}

func toUserSummary(u *entities.User) *invitation.UserSummary {
	if u == nil {
		return nil
	}
	return &invitation.UserSummary{
		ID:          u.ID.String(),
		DisplayName: u.DisplayName,
		AvatarURL:   u.AvatarURL,
	}
}

func idsToStrings(ids []uuid.UUID) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		out = append(out, id.String())
	}
	return out
}

func journeyStatuses(inv *entities.Invitation) map[string]string {
	m := inv.ParticipantStatus.Data()
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[k] = string(v)
	}
	return out
}

func editHistory(records []entities.EditRecord) []invitation.EditRecordResponse {
	out := make([]invitation.EditRecordResponse, 0, len(records))
	for _, r := range records {
		out = append(out, invitation.EditRecordResponse{
			EditedAt: r.EditedAt,
			EditedBy: r.EditedBy.String(),
			OldDate:  r.OldDate,
			OldTime:  r.OldTime,
			NewDate:  r.NewDate,
			NewTime:  r.NewTime,
		})
	}
	return out
}
