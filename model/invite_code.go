package model

import "time"

type InviteCode struct {
	ID        uint    `gorm:"primaryKey;autoIncrement" json:"id"`
	Code      string  `gorm:"unique;not null" json:"code"`
	CreatedBy string  `gorm:"index;not null" json:"created_by"`
	IsUsed    bool    `gorm:"default:false" json:"is_used"`
	UsedBy    *string `json:"used_by"`

	// Stored for the admin panel. Consumption does not check it, so a code
	// only ever dies by being used or deleted (see DESIGN.md)
	ExpiresAt *time.Time `json:"expires_at"`

	CreatedAt time.Time `json:"created_at"`

	Creator  *User `gorm:"foreignKey:CreatedBy" json:"creator,omitempty"`
	Consumer *User `gorm:"foreignKey:UsedBy" json:"consumer,omitempty"`
}
