package model

import "time"

// Note — свободная текстовая заметка.
type Note struct {
	ID string `gorm:"primaryKey;type:uuid"`

	Title    string `gorm:"not null;index"`
	Subtitle string
	Content  string `gorm:"not null"`
	Folders  string
	Tags     string

	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}
