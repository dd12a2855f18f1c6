package repo

import (
	"DataKeeper/internal/model"
	"context"
	"strings"

	"gorm.io/gorm"
)

// TaskOrderColumns — allow-list колонок сортировки списка задач.
var TaskOrderColumns = []string{"title", "start_at", "priority", "status", "created_at", "updated_at"}

// TaskRepository определяет контракт доступа к Task.
type TaskRepository interface {
	Create(ctx context.Context, tk *model.Task) error
	GetByID(ctx context.Context, id string) (*model.Task, error)
	List(ctx context.Context, p model.ListParams) ([]model.Task, int64, error)
	Update(ctx context.Context, id string, updates map[string]any) (int64, error)
	Delete(ctx context.Context, id string) (int64, error)
}

type taskRepo struct {
	db *gorm.DB
}

// NewTaskRepository создаёт реализацию репозитория для Task.
func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &taskRepo{db: db}
}

func (r *taskRepo) Create(ctx context.Context, tk *model.Task) error {
	return r.db.WithContext(ctx).Create(tk).Error
}

func (r *taskRepo) GetByID(ctx context.Context, id string) (*model.Task, error) {
	var tk model.Task
	if err := r.db.WithContext(ctx).First(&tk, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &tk, nil
}

func (r *taskRepo) List(ctx context.Context, p model.ListParams) ([]model.Task, int64, error) {
	p = p.Normalize(TaskOrderColumns)

	q := r.db.WithContext(ctx).Model(&model.Task{})
	if p.Search != "" {
		needle := "%" + strings.ToLower(p.Search) + "%"
		q = q.Where(
			"LOWER(title) LIKE ? OR LOWER(description) LIKE ? OR LOWER(status) LIKE ?",
			needle, needle, needle,
		)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []model.Task
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

func (r *taskRepo) Update(ctx context.Context, id string, updates map[string]any) (int64, error) {
	tx := r.db.WithContext(ctx).Model(&model.Task{}).Where("id = ?", id).Updates(updates)
	return tx.RowsAffected, tx.Error
}

func (r *taskRepo) Delete(ctx context.Context, id string) (int64, error) {
	tx := r.db.WithContext(ctx).Delete(&model.Task{}, "id = ?", id)
	return tx.RowsAffected, tx.Error
}
