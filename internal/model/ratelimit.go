package model

import "time"

// RateHit — один учтённый запрос клиента для скользящего окна лимитера.
type RateHit struct {
	ID uint   `gorm:"primaryKey"`
	IP string `gorm:"not null;index"`
	At time.Time
}

// IPBlock — временная блокировка IP-адреса.
type IPBlock struct {
	IP    string `gorm:"primaryKey"`
	Until time.Time
}
