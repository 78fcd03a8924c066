package entities

import (
	"time"

	"github.com/google/uuid"
)

// Gender of a user, used by invitation eligibility filters
type Gender string

const (
	GenderMale        Gender = "male"
	GenderFemale      Gender = "female"
	GenderUnspecified Gender = "unspecified"
)

// User represents an account. Authentication lives outside this service;
// the row exists for eligibility filters and display joins.
type User struct {
	ID          uuid.UUID  `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Email       string     `gorm:"type:varchar(255);unique;not null" json:"email"`
	DisplayName string     `gorm:"type:varchar(100);not null" json:"display_name"`
	Gender      Gender     `gorm:"type:varchar(20);not null;default:'unspecified'" json:"gender"`
	BirthDate   *time.Time `gorm:"type:date" json:"birth_date,omitempty"`
	AvatarURL   *string    `gorm:"type:text" json:"avatar_url,omitempty"`
	CreatedAt   time.Time  `gorm:"default:now()" json:"created_at"`
	UpdatedAt   time.Time  `gorm:"default:now()" json:"updated_at"`
}

// TableName specifies the table name for User
func (User) TableName() string {
	return "users"
}

// AgeGroup returns the user's age bucket at the given time, or the
// any-bucket when no birth date is on file.
func (u *User) AgeGroup(now time.Time) string {
	if u.BirthDate == nil {
		return AgeGroupAny
	}
	age := now.Year() - u.BirthDate.Year()
	if now.YearDay() < u.BirthDate.YearDay() {
		age--
	}
	switch {
	case age < 30:
		return "20s"
	case age < 40:
		return "30s"
	case age < 50:
		return "40s"
	default:
		return "50s+"
	}
}
