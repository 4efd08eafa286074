package models

import "gorm.io/gorm"

// EventItemReturned is the event type written on every handover settlement,
// whether or not points were paid out.
const EventItemReturned = "item_returned"

// ReputationEvent is a row in the append-only karma ledger. ChangeAmount may
// be zero; the reason string then carries the denial cause. User.ReputationPoints
// is a cached running sum over this ledger.
type ReputationEvent struct {
	gorm.Model

	UserID       string `gorm:"type:text;not null;index:idx_rep_user_event" json:"user_id"`
	ChangeAmount int    `json:"change_amount"`
	Reason       string `gorm:"type:text;not null" json:"reason"`
	EventType    string `gorm:"type:text;not null;index:idx_rep_user_event" json:"event_type"`
}
