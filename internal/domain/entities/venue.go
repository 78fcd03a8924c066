package entities

import (
	"time"

	"github.com/google/uuid"
)

// Venue is a registered restaurant account. Invitations may link to one;
// the linked owner account is notified when such an invitation is cancelled.
type Venue struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Name        string    `gorm:"type:varchar(255);not null" json:"name"`
	OwnerUserID uuid.UUID `gorm:"type:uuid;not null;index" json:"owner_user_id"`
	Address     *string   `gorm:"type:text" json:"address,omitempty"`
	Lat         *float64  `json:"lat,omitempty"`
	Lng         *float64  `json:"lng,omitempty"`
	CreatedAt   time.Time `gorm:"default:now()" json:"created_at"`
	UpdatedAt   time.Time `gorm:"default:now()" json:"updated_at"`
}

// TableName specifies the table name for Venue
func (Venue) TableName() string {
	return "venues"
}
