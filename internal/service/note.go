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

// NoteInput — входные данные создания/обновления заметки.
type NoteInput struct {
	Title    string
	Subtitle string
	Content  string
	Folders  string
	Tags     string
}

// ValidateNoteInput проверяет форму входных данных заметки.
func ValidateNoteInput(in NoteInput) error {
	v := newValidator()

	if v.required(in.Title, "title") {
		v.minLength(in.Title, "title", 2)
		v.maxLength(in.Title, "title", 200)
	}
	if v.required(in.Content, "content") {
		v.minLength(in.Content, "content", 5)
	}
	if in.Subtitle != "" {
		v.maxLength(in.Subtitle, "subtitle", 200)
	}

	return v.Err()
}

// NoteService — CRUD по заметкам.
type NoteService struct {
	repo   repo.NoteRepository
	logger *zap.SugaredLogger
}

// NewNoteService создаёт сервис заметок.
func NewNoteService(r repo.NoteRepository, logger *zap.SugaredLogger) *NoteService {
	return &NoteService{repo: r, logger: logger}
}

// sanitized возвращает копию входных данных с вычищенным HTML.
func (in NoteInput) sanitized() NoteInput {
	in.Title = sanitize.Clean(in.Title)
	in.Subtitle = sanitize.Clean(in.Subtitle)
	in.Content = sanitize.Clean(in.Content)
	in.Folders = sanitize.Clean(in.Folders)
	in.Tags = sanitize.Clean(in.Tags)
	return in
}

// Create вставляет новую заметку.
func (s *NoteService) Create(ctx context.Context, in NoteInput) (*model.Note, error) {
	in = in.sanitized()
	n := &model.Note{
		ID:       uuid.NewString(),
		Title:    in.Title,
		Subtitle: in.Subtitle,
		Content:  in.Content,
		Folders:  in.Folders,
		Tags:     in.Tags,
	}
	if err := s.repo.Create(ctx, n); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorage, err)
	}
	return n, nil
}

// GetByID возвращает заметку по идентификатору.
func (s *NoteService) GetByID(ctx context.Context, id string) (*model.Note, error) {
	n, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: %v", ErrStorage, err)
	}
	return n, nil
}

// List возвращает страницу заметок и метаданные пагинации.
func (s *NoteService) List(ctx context.Context, p model.ListParams) ([]model.Note, model.Pagination, error) {
	rows, total, err := s.repo.List(ctx, p)
	if err != nil {
		return nil, model.Pagination{}, fmt.Errorf("%w: %v", ErrStorage, err)
	}
	p = p.Normalize(repo.NoteOrderColumns)
	return rows, model.NewPagination(p, total), nil
}

// Update перезаписывает все поля заметки и обновляет updated_at.
func (s *NoteService) Update(ctx context.Context, id string, in NoteInput) error {
	in = in.sanitized()
	updates := map[string]any{
		"title":      in.Title,
		"subtitle":   in.Subtitle,
		"content":    in.Content,
		"folders":    in.Folders,
		"tags":       in.Tags,
		"updated_at": time.Now().UTC(),
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

// Delete удаляет заметку безвозвратно.
func (s *NoteService) Delete(ctx context.Context, id string) error {
	n, err := s.repo.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrStorage, err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
