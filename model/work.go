package model

import "time"

type Work struct {
	ID          uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Title       string `gorm:"not null" json:"title"`
	Description string `json:"description"`
	OwnerID     string `gorm:"index;not null" json:"owner_id"`

	// Generated name the stored file is kept under. Never the original
	// filename, since different users may upload files with the same name.
	FileKey  string `gorm:"not null" json:"file_key,omitempty"`
	FileType string `gorm:"not null" json:"file_type"`
	FileSize int64  `json:"file_size"`

	ArchiveID *uint    `gorm:"index" json:"archive_id"`
	Archive   *Archive `gorm:"foreignKey:ArchiveID" json:"archive,omitempty"`

	IsPasswordProtected bool    `json:"is_password_protected"`
	PasswordHash        *string `json:"-"`

	// Share tokens are generated at upload time and overwritten on every
	// re-share, which invalidates older links immediately
	ShareLink   string     `gorm:"index" json:"share_link"`
	ShareExpiry *time.Time `json:"share_expiry"`
	ViewCount   int64      `json:"view_count"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
