package models

import "gorm.io/gorm"

// Reward is an entry in the karma redemption catalog.
type Reward struct {
	gorm.Model

	Name        string `gorm:"type:text;not null" json:"name"`
	Description string `gorm:"type:text" json:"description"`
	Cost        int    `gorm:"not null" json:"cost"`
	Active      bool   `gorm:"default:true" json:"active"`
}
