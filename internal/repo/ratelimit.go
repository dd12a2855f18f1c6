package repo

import (
	"DataKeeper/internal/model"
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// RateLimitRepository — персистентный учёт запросов и блокировок по IP
// для скользящего окна лимитера.
type RateLimitRepository interface {
	// RecordHit фиксирует запрос клиента в момент at.
	RecordHit(ctx context.Context, ip string, at time.Time) error

	// CountHits возвращает число запросов IP строго после момента since.
	CountHits(ctx context.Context, ip string, since time.Time) (int64, error)

	// PurgeHits удаляет учтённые запросы старше момента before (по всем IP).
	PurgeHits(ctx context.Context, before time.Time) error

	// Block блокирует IP до момента until (повторный вызов продлевает).
	Block(ctx context.Context, ip string, until time.Time) error

	// IsBlocked сообщает, заблокирован ли IP сейчас; истёкшая блокировка снимается.
	IsBlocked(ctx context.Context, ip string, now time.Time) (bool, error)
}

type rateLimitRepo struct {
	db *gorm.DB
}

// NewRateLimitRepository создаёт реализацию репозитория лимитера.
func NewRateLimitRepository(db *gorm.DB) RateLimitRepository {
	return &rateLimitRepo{db: db}
}

func (r *rateLimitRepo) RecordHit(ctx context.Context, ip string, at time.Time) error {
	return r.db.WithContext(ctx).Create(&model.RateHit{IP: ip, At: at}).Error
}

func (r *rateLimitRepo) CountHits(ctx context.Context, ip string, since time.Time) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&model.RateHit{}).
		Where("ip = ? AND at > ?", ip, since).
		Count(&n).Error
	return n, err
}

func (r *rateLimitRepo) PurgeHits(ctx context.Context, before time.Time) error {
	return r.db.WithContext(ctx).Where("at <= ?", before).Delete(&model.RateHit{}).Error
}

func (r *rateLimitRepo) Block(ctx context.Context, ip string, until time.Time) error {
	b := &model.IPBlock{IP: ip, Until: until}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "ip"}},
		DoUpdates: clause.AssignmentColumns([]string{"until"}),
	}).Create(b).Error
}

func (r *rateLimitRepo) IsBlocked(ctx context.Context, ip string, now time.Time) (bool, error) {
	var b model.IPBlock
	err := r.db.WithContext(ctx).First(&b, "ip = ?", ip).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if !b.Until.After(now) {
		// блокировка истекла — снимаем запись
		_ = r.db.WithContext(ctx).Delete(&model.IPBlock{}, "ip = ?", ip).Error
		return false, nil
	}
	return true, nil
}
