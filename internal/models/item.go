package models

import "gorm.io/gorm"

// Item types. Immutable after creation.
const (
	ItemTypeFound = "found"
	ItemTypeLost  = "lost"
)

// Item statuses. Found items start at pending, lost items at reported.
// An item becomes claimed only through an approved claim and returned only
// through a completed claim on that same item.
const (
	ItemStatusPending  = "pending"
	ItemStatusReported = "reported"
	ItemStatusClaimed  = "claimed"
	ItemStatusReturned = "returned"
)

// Item represents a reported lost or found item.
// The embedded gorm.Model provides ID, CreatedAt, UpdatedAt, and DeletedAt.
type Item struct {
	gorm.Model

	// Type is "found" or "lost".
	Type string `gorm:"type:text;not null;index" json:"type"`
	// UserID is the reporter: the finder for found items, the loser for lost ones.
	UserID string `gorm:"type:text;not null;index" json:"user_id"`

	Title           string `gorm:"type:text;not null" json:"title"`
	Category        string `gorm:"type:text;not null" json:"category"`
	Description     string `gorm:"type:text;not null" json:"description"`
	Location        string `gorm:"type:text;not null" json:"location"`
	DateFoundOrLost string `gorm:"type:text;not null" json:"date_found_or_lost"`
	ImageURL        string `gorm:"type:text" json:"image_url,omitempty"`
	ItemCondition   string `gorm:"type:text" json:"item_condition,omitempty"`

	Status string `gorm:"type:text;not null;index" json:"status"`

	// PrivateProof is an owner-supplied ownership detail on lost items.
	// Visible only to the owner and to authority staff.
	PrivateProof string `gorm:"type:text" json:"private_proof,omitempty"`

	// UniqueItemID is the human-readable id printed on counter slips,
	// e.g. FOUND-3F9A1C02BD.
	UniqueItemID string `gorm:"uniqueIndex" json:"unique_item_id"`

	RewardAmount             int  `json:"reward_amount"`
	IsDepositedWithAuthority bool `json:"is_deposited_with_authority"`
}
