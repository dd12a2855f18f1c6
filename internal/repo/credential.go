package repo

import (
	"DataKeeper/internal/model"
	"context"
	"strings"

	"gorm.io/gorm"
)

// CredentialOrderColumns — allow-list колонок сортировки списка учётных данных.
var CredentialOrderColumns = []string{"site_label", "account_identifier", "category", "created_at", "updated_at"}

// CredentialRepository определяет контракт доступа к Credential для слоя сервиса.
type CredentialRepository interface {
	// Create вставляет новую запись.
	Create(ctx context.Context, c *model.Credential) error

	// GetByID возвращает запись целиком (включая хеш и шифртекст).
	// Отсутствие записи — gorm.ErrRecordNotFound.
	GetByID(ctx context.Context, id string) (*model.Credential, error)

	// List возвращает страницу записей без секретных колонок и общее число строк.
	List(ctx context.Context, p model.ListParams) ([]model.Credential, int64, error)

	// Update применяет набор колонок к записи, возвращает число затронутых строк.
	Update(ctx context.Context, id string, updates map[string]any) (int64, error)

	// Delete удаляет запись безвозвратно, возвращает число затронутых строк.
	Delete(ctx context.Context, id string) (int64, error)

	// GetSecretHash возвращает только хранимый хеш пароля записи.
	GetSecretHash(ctx context.Context, id string) (string, error)
}

type credentialRepo struct {
	db *gorm.DB
}

// NewCredentialRepository создаёт реализацию репозитория для Credential.
func NewCredentialRepository(db *gorm.DB) CredentialRepository {
	return &credentialRepo{db: db}
}

func (r *credentialRepo) Create(ctx context.Context, c *model.Credential) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *credentialRepo) GetByID(ctx context.Context, id string) (*model.Credential, error) {
	var c model.Credential
	if err := r.db.WithContext(ctx).First(&c, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

// List никогда не выбирает secret_hash и auxiliary_encrypted:
// секретные колонки не покидают БД в списочных выборках.
func (r *credentialRepo) List(ctx context.Context, p model.ListParams) ([]model.Credential, int64, error) {
	p = p.Normalize(CredentialOrderColumns)

	q := r.db.WithContext(ctx).Model(&model.Credential{})
	if p.Search != "" {
		needle := "%" + strings.ToLower(p.Search) + "%"
		q = q.Where(
			"LOWER(site_label) LIKE ? OR LOWER(account_identifier) LIKE ? OR LOWER(category) LIKE ?",
			needle, needle, needle,
		)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []model.Credential
	err := q.
		Select("id", "site_label", "account_identifier", "category", "created_at", "updated_at").
		Order(p.OrderBy + " " + p.OrderDir).
		Limit(p.PageSize).
		Offset(p.Offset()).
		Find(&rows).Error
	if err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

func (r *credentialRepo) Update(ctx context.Context, id string, updates map[string]any) (int64, error) {
	tx := r.db.WithContext(ctx).Model(&model.Credential{}).Where("id = ?", id).Updates(updates)
	return tx.RowsAffected, tx.Error
}

func (r *credentialRepo) Delete(ctx context.Context, id string) (int64, error) {
	tx := r.db.WithContext(ctx).Delete(&model.Credential{}, "id = ?", id)
	return tx.RowsAffected, tx.Error
}

func (r *credentialRepo) GetSecretHash(ctx context.Context, id string) (string, error) {
	var c model.Credential
	if err := r.db.WithContext(ctx).Select("secret_hash").First(&c, "id = ?", id).Error; err != nil {
		return "", err
	}
	return c.SecretHash, nil
}
