package model

import "time"

// Допустимые приоритеты задач.
const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
)

// AllowedPriorities — фиксированный список значений поля priority.
var AllowedPriorities = []string{PriorityLow, PriorityMedium, PriorityHigh}

// Допустимые статусы задач.
const (
	StatusTodo       = "todo"
	StatusInProgress = "in_progress"
	StatusDone       = "done"
	StatusCancelled  = "cancelled"
)

// AllowedStatuses — фиксированный список значений поля status.
var AllowedStatuses = []string{StatusTodo, StatusInProgress, StatusDone, StatusCancelled}

// Task — запись планировщика задач.
type Task struct {
	ID string `gorm:"primaryKey;type:uuid"`

	Title       string `gorm:"not null;index"`
	StartAt     time.Time
	EndAt       *time.Time
	Description string
	Priority    string
	Status      string `gorm:"index"`

	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}
