package model

import "time"

// Допустимые категории учётных данных.
const (
	CategoryPersonal = "personal"
	CategoryWork     = "work"
	CategorySocial   = "social"
	CategoryFinance  = "finance"
	CategoryOther    = "other"
)

// AllowedCategories — фиксированный список значений поля category.
var AllowedCategories = []string{
	CategoryPersonal,
	CategoryWork,
	CategorySocial,
	CategoryFinance,
	CategoryOther,
}

// Credential — запись учётных данных в хранилище.
// SecretHash хранит только односторонний хеш пароля (argon2id),
// AuxiliaryEncrypted — base64(IV||шифртекст) либо пустую строку.
type Credential struct {
	ID string `gorm:"primaryKey;type:uuid"`

	SiteLabel         string `gorm:"not null;index"`
	AccountIdentifier string `gorm:"not null"`

	SecretHash         string `gorm:"not null"`
	AuxiliaryEncrypted string

	Category string `gorm:"index"`

	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}
