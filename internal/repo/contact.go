package repo

import (
	"DataKeeper/internal/model"
	"context"
	"strings"

	"gorm.io/gorm"
)

// ContactOrderColumns — allow-list колонок сортировки списка контактов.
var ContactOrderColumns = []string{"full_name", "email", "profession", "company", "created_at", "updated_at"}

// ContactRepository определяет контракт доступа к Contact.
type ContactRepository interface {
	Create(ctx context.Context, c *model.Contact) error
	GetByID(ctx context.Context, id string) (*model.Contact, error)
	List(ctx context.Context, p model.ListParams) ([]model.Contact, int64, error)
	Update(ctx context.Context, id string, updates map[string]any) (int64, error)
	Delete(ctx context.Context, id string) (int64, error)
}

type contactRepo struct {
	db *gorm.DB
}

// NewContactRepository создаёт реализацию репозитория для Contact.
func NewContactRepository(db *gorm.DB) ContactRepository {
	return &contactRepo{db: db}
}

func (r *contactRepo) Create(ctx context.Context, c *model.Contact) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *contactRepo) GetByID(ctx context.Context, id string) (*model.Contact, error) {
	var c model.Contact
	if err := r.db.WithContext(ctx).First(&c, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *contactRepo) List(ctx context.Context, p model.ListParams) ([]model.Contact, int64, error) {
	p = p.Normalize(ContactOrderColumns)

	q := r.db.WithContext(ctx).Model(&model.Contact{})
	if p.Search != "" {
		needle := "%" + strings.ToLower(p.Search) + "%"
		q = q.Where(
			"LOWER(full_name) LIKE ? OR LOWER(email) LIKE ? OR LOWER(profession) LIKE ? OR LOWER(company) LIKE ?",
			needle, needle, needle, needle,
		)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []model.Contact
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

func (r *contactRepo) Update(ctx context.Context, id string, updates map[string]any) (int64, error) {
	tx := r.db.WithContext(ctx).Model(&model.Contact{}).Where("id = ?", id).Updates(updates)
	return tx.RowsAffected, tx.Error
}

func (r *contactRepo) Delete(ctx context.Context, id string) (int64, error) {
	tx := r.db.WithContext(ctx).Delete(&model.Contact{}, "id = ?", id)
	return tx.RowsAffected, tx.Error
}
