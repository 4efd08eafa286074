package models

import (
	"time"

	"gorm.io/gorm"
)

// Claim statuses. pending -> approved -> completed, or pending -> rejected.
const (
	ClaimStatusPending   = "pending"
	ClaimStatusApproved  = "approved"
	ClaimStatusRejected  = "rejected"
	ClaimStatusCompleted = "completed"
)

// Claim is an ownership assertion against a found item.
// The partial unique index closes the duplicate-submission race: at most one
// pending claim may exist per (item, claimant) pair, enforced by Postgres
// rather than by the check-then-insert read alone.
type Claim struct {
	gorm.Model

	ItemID     uint   `gorm:"not null;uniqueIndex:uniq_pending_claim,where:status = 'pending'" json:"item_id"`
	ClaimantID string `gorm:"type:text;not null;uniqueIndex:uniq_pending_claim,where:status = 'pending'" json:"claimant_id"`

	ProofDescription string `gorm:"type:text;not null" json:"proof_description"`
	ProofImageURL    string `gorm:"type:text" json:"proof_image_url,omitempty"`

	Status     string `gorm:"type:text;not null;default:pending;index" json:"status"`
	AdminNotes string `gorm:"type:text" json:"admin_notes,omitempty"`

	// VerifiedByUserID and VerifiedAt record who performed the last status
	// transition and when.
	VerifiedByUserID *string    `gorm:"type:text" json:"verified_by_user_id,omitempty"`
	VerifiedAt       *time.Time `json:"verified_at,omitempty"`

	// Item is preloaded by storage lookups that need the claim's subject.
	Item *Item `gorm:"foreignKey:ItemID" json:"item,omitempty"`
}
