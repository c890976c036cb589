package model

import "time"

type Archive struct {
	ID          uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string `gorm:"not null" json:"name"`
	Description string `json:"description"`
	OwnerID     string `gorm:"index;not null" json:"owner_id"`

	ParentID *uint    `gorm:"index" json:"parent_id"`
	Parent   *Archive `gorm:"foreignKey:ParentID" json:"parent,omitempty"`

	// Materialized full path, computed once at creation time by walking
	// the ancestor chain. Renames do not rewrite descendant paths.
	Path string `gorm:"default:/" json:"path"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
