package models

import (
	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// User roles. Authority represents physical counter staff empowered to
// adjudicate claims and confirm handovers.
const (
	RoleNormal    = "normal"
	RoleAssisted  = "assisted"
	RoleAuthority = "authority"
	RoleAdmin     = "admin"
)

// User represents a local user profile synced from the identity provider.
// Email is the sync key: the first authenticated request for an unseen
// email creates the row.
type User struct {
	ID               string         `gorm:"primaryKey" json:"id"`
	Email            string         `gorm:"uniqueIndex;not null" json:"email"`
	Name             string         `json:"name"`
	Picture          string         `json:"picture,omitempty"`
	Role             string         `gorm:"default:normal" json:"role"`
	ReputationPoints int            `json:"reputation_points"` // cached sum of ReputationEvents, mutated only by settlement
	StrikeCount      int            `json:"strike_count"`
	IsBanned         bool           `json:"is_banned"`
	Badges           pq.StringArray `gorm:"type:text[]" json:"badges,omitempty"`

	// Campus profile fields, filled in by the user after first login.
	CollegeID         string `json:"college_id,omitempty"`
	CollegeRollNumber string `json:"college_roll_number,omitempty"`
	Department        string `json:"department,omitempty"`
	Block             string `json:"block,omitempty"`
	PhoneNumber       string `json:"phone_number,omitempty"`
	AlternativeEmail  string `json:"alternative_email,omitempty"`
	AlternativePhone  string `json:"alternative_phone,omitempty"`
	CollegeIDImageURL string `json:"college_id_image_url,omitempty"`
}

// BeforeCreate is a GORM hook that assigns a UUID if the ID is unset.
func (u *User) BeforeCreate(tx *gorm.DB) (err error) {
	if u.ID == "" {
		u.ID = uuid.New().String()
	}
	return
}

// IsAuthority reports whether the user may adjudicate claims and confirm
// handovers (counter staff or admin).
func (u *User) IsAuthority() bool {
	return u.Role == RoleAuthority || u.Role == RoleAdmin
}
