package model

import "time"

// Contact — запись адресной книги.
type Contact struct {
	ID string `gorm:"primaryKey;type:uuid"`

	FullName    string `gorm:"not null;index"`
	Profession  string
	PhoneNumber string
	Email       string `gorm:"not null;index"`
	Address     string
	Company     string
	BirthDate   string // формат YYYY-MM-DD, опционально
	Tags        string
	Notes       string

	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}
