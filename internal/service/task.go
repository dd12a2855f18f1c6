package service

import (
	"DataKeeper/internal/model"
	"DataKeeper/internal/repo"
	"DataKeeper/internal/sanitize"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// TaskInput — входные данные создания/обновления задачи.
// StartAt обязателен, EndAt опционален; оба — RFC3339.
type TaskInput struct {
	Title       string
	StartAt     string
	EndAt       string
	Description string
	Priority    string
	Status      string
}

// ValidateTaskInput проверяет форму входных данных задачи.
func ValidateTaskInput(in TaskInput) error {
	v := newValidator()

	if v.required(in.Title, "title") {
		v.minLength(in.Title, "title", 2)
		v.maxLength(in.Title, "title", 200)
	}
	startOK := v.required(in.StartAt, "start_at") && v.datetime(in.StartAt, "start_at")
	if in.EndAt != "" && v.datetime(in.EndAt, "end_at") && startOK {
		start, _ := time.Parse(datetimeLayout, in.StartAt)
		end, _ := time.Parse(datetimeLayout, in.EndAt)
		if !end.After(start) {
			v.addError("end_at", "end time must be after start time")
		}
	}
	if in.Priority != "" {
		v.inList(in.Priority, "priority", model.AllowedPriorities)
	}
	if in.Status != "" {
		v.inList(in.Status, "status", model.AllowedStatuses)
	}

	return v.Err()
}

// TaskService — CRUD по задачам.
type TaskService struct {
	repo   repo.TaskRepository
	logger *zap.SugaredLogger
}

// NewTaskService создаёт сервис задач.
func NewTaskService(r repo.TaskRepository, logger *zap.SugaredLogger) *TaskService {
	return &TaskService{repo: r, logger: logger}
}

// sanitized возвращает копию входных данных с вычищенным HTML в текстовых полях.
func (in TaskInput) sanitized() TaskInput {
	in.Title = sanitize.Clean(in.Title)
	in.Description = sanitize.Clean(in.Description)
	in.Priority = sanitize.Clean(in.Priority)
	in.Status = sanitize.Clean(in.Status)
	return in
}

// parseTimes разбирает временные поля; вход уже прошёл валидацию.
func (in TaskInput) parseTimes() (time.Time, *time.Time, error) {
	start, err := time.Parse(datetimeLayout, in.StartAt)
	if err != nil {
		return time.Time{}, nil, fmt.Errorf("parse start_at: %w", err)
	}
	if in.EndAt == "" {
		return start, nil, nil
	}
	end, err := time.Parse(datetimeLayout, in.EndAt)
	if err != nil {
		return time.Time{}, nil, fmt.Errorf("parse end_at: %w", err)
	}
	return start, &end, nil
}

// Create вставляет новую задачу.
func (s *TaskService) Create(ctx context.Context, in TaskInput) (*model.Task, error) {
	in = in.sanitized()
	start, end, err := in.parseTimes()
	if err != nil {
		return nil, &ValidationError{Fields: map[string][]string{"start_at": {err.Error()}}}
	}

	tk := &model.Task{
		ID:          uuid.NewString(),
		Title:       in.Title,
		StartAt:     start,
		EndAt:       end,
		Description: in.Description,
		Priority:    in.Priority,
		Status:      in.Status,
	}
	if err := s.repo.Create(ctx, tk); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorage, err)
	}
	return tk, nil
}

// GetByID возвращает задачу по идентификатору.
func (s *TaskService) GetByID(ctx context.Context, id string) (*model.Task, error) {
	tk, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: %v", ErrStorage, err)
	}
	return tk, nil
}

// List возвращает страницу задач и метаданные пагинации.
func (s *TaskService) List(ctx context.Context, p model.ListParams) ([]model.Task, model.Pagination, error) {
	rows, total, err := s.repo.List(ctx, p)
	if err != nil {
		return nil, model.Pagination{}, fmt.Errorf("%w: %v", ErrStorage, err)
	}
	p = p.Normalize(repo.TaskOrderColumns)
	return rows, model.NewPagination(p, total), nil
}

// Update перезаписывает все поля задачи и обновляет updated_at.
func (s *TaskService) Update(ctx context.Context, id string, in TaskInput) error {
	in = in.sanitized()
	start, end, err := in.parseTimes()
	if err != nil {
		return &ValidationError{Fields: map[string][]string{"start_at": {err.Error()}}}
	}

	updates := map[string]any{
		"title":       in.Title,
		"start_at":    start,
		"end_at":      end,
		"description": in.Description,
		"priority":    in.Priority,
		"status":      in.Status,
		"updated_at":  time.Now().UTC(),
	}

	n, err := s.repo.Update(ctx, id, updates)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrStorage, err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete удаляет задачу безвозвратно.
func (s *TaskService) Delete(ctx context.Context, id string) error {
	n, err := s.repo.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrStorage, err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
