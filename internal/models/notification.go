package models

import "gorm.io/gorm"

// Notification types.
const (
	NotifyClaimReceived = "claim_received"
	NotifyClaimApproved = "claim_approved"
	NotifyClaimRejected = "claim_rejected"
	NotifyKarmaEarned   = "karma_earned"
	NotifyInfo          = "info"
)

// Notification is a user-facing message read by a polling client.
// Writes are best-effort: a failed insert never fails the operation that
// triggered it.
type Notification struct {
	gorm.Model

	UserID  string `gorm:"type:text;not null;index" json:"user_id"`
	Title   string `gorm:"type:text;not null" json:"title"`
	Message string `gorm:"type:text;not null" json:"message"`
	Type    string `gorm:"type:text;not null" json:"type"`

	ItemID  *uint `json:"item_id,omitempty"`
	ClaimID *uint `json:"claim_id,omitempty"`

	IsRead bool `gorm:"default:false" json:"is_read"`
}
