package service

import (
	"errors"
	"fmt"
	"strings"
)

// Ошибки слоя сервисов.
var (
	// ErrNotFound — записи с таким id нет.
	ErrNotFound = errors.New("record not found")
	// ErrStorage — операция с хранилищем не удалась; исходный текст ошибки БД
	// наружу не отдаётся, см. маппинг в хендлерах.
	ErrStorage = errors.New("storage operation failed")
)

// ValidationError — исправимая ошибка входных данных с детализацией по полям.
type ValidationError struct {
	Fields map[string][]string
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for field, msgs := range e.Fields {
		parts = append(parts, fmt.Sprintf("%s: %s", field, strings.Join(msgs, "; ")))
	}
	return "validation failed: " + strings.Join(parts, ", ")
}
