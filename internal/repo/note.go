package repo

import (
	"DataKeeper/internal/model"
	"context"
	"strings"

	"gorm.io/gorm"
)

// NoteOrderColumns — allow-list колонок сортировки списка заметок.
var NoteOrderColumns = []string{"title", "created_at", "updated_at"}

// NoteRepository определяет контракт доступа к Note.
type NoteRepository interface {
	Create(ctx context.Context, n *model.Note) error
	GetByID(ctx context.Context, id string) (*model.Note, error)
	List(ctx context.Context, p model.ListParams) ([]model.Note, int64, error)
	Update(ctx context.Context, id string, updates map[string]any) (int64, error)
	Delete(ctx context.Context, id string) (int64, error)
}

type noteRepo struct {
	db *gorm.DB
}

// NewNoteRepository создаёт реализацию репозитория для Note.
func NewNoteRepository(db *gorm.DB) NoteRepository {
	return &noteRepo{db: db}
}

func (r *noteRepo) Create(ctx context.Context, n *model.Note) error {
	return r.db.WithContext(ctx).Create(n).Error
}

func (r *noteRepo) GetByID(ctx context.Context, id string) (*model.Note, error) {
	var n model.Note
	if err := r.db.WithContext(ctx).First(&n, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &n, nil
}

func (r *noteRepo) List(ctx context.Context, p model.ListParams) ([]model.Note, int64, error) {
	p = p.Normalize(NoteOrderColumns)

	q := r.db.WithContext(ctx).Model(&model.Note{})
	if p.Search != "" {
		needle := "%" + strings.ToLower(p.Search) + "%"
		q = q.Where(
			"LOWER(title) LIKE ? OR LOWER(subtitle) LIKE ? OR LOWER(content) LIKE ?",
			needle, needle, needle,
		)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []model.Note
	err := q.
		Order(p.OrderBy + " " + p.OrderDir).
		Limit(p.PageSize).
		Offset(p.Offset()).
		Find(&rows).Error
	if err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

func (r *noteRepo) Update(ctx context.Context, id string, updates map[string]any) (int64, error) {
	tx := r.db.WithContext(ctx).Model(&model.Note{}).Where("id = ?", id).Updates(updates)
	return tx.RowsAffected, tx.Error
}

func (r *noteRepo) Delete(ctx context.Context, id string) (int64, error) {
	tx := r.db.WithContext(ctx).Delete(&model.Note{}, "id = ?", id)
	return tx.RowsAffected, tx.Error
}
