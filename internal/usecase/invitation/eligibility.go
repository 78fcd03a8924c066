package invitation

import (
	"time"

	"github.com/mealmeet-team/mealmeet/internal/domain/entities"
	usecaseErrors "github.com/mealmeet-team/mealmeet/internal/usecase/errors"
)

// checkEligibility applies the privacy, gender, and age-group filters a
// prospective guest must pass before a join request is accepted.
// Requests themselves are not capacity-limited; only the joined set is.
func checkEligibility(inv *entities.Invitation, user *entities.User, now time.Time) error {
	if inv.Privacy == entities.PrivacyPrivate && !inv.IsInvited(user.ID) {
		return usecaseErrors.ErrNotEligible
	}

	if inv.GenderPreference != entities.GenderPreferenceAny {
		if string(inv.GenderPreference) != string(user.Gender) {
			return usecaseErrors.ErrNotEligible
		}
	}

	if !ageGroupsMatch(inv.AgeGroups, user.AgeGroup(now)) {
		return usecaseErrors.ErrNotEligible
	}

	return nil
}

func ageGroupsMatch(groups []string, userGroup string) bool {
	if len(groups) == 0 {
		return true
	}
	for _, g := range groups {
		if g == entities.AgeGroupAny || g == userGroup {
			return true
		}
	}
	// A user without a birth date on file matches only the any-bucket,
	// which was handled above.
	return false
}
