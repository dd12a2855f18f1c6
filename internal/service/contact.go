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

// ContactInput — входные данные создания/обновления контакта.
type ContactInput struct {
	FullName    string
	Profession  string
	PhoneNumber string
	Email       string
	Address     string
	Company     string
	BirthDate   string
	Tags        string
	Notes       string
}

// ValidateContactInput проверяет форму входных данных контакта.
func ValidateContactInput(in ContactInput) error {
	v := newValidator()

	if v.required(in.FullName, "full_name") {
		v.minLength(in.FullName, "full_name", 2)
		v.maxLength(in.FullName, "full_name", 100)
	}
	if v.required(in.Email, "email") {
		v.email(in.Email, "email")
	}
	if in.PhoneNumber != "" {
		v.phone(in.PhoneNumber, "phone_number")
	}
	if in.BirthDate != "" {
		v.date(in.BirthDate, "birth_date")
	}
	if in.Profession != "" {
		v.maxLength(in.Profession, "profession", 100)
	}
	if in.Company != "" {
		v.maxLength(in.Company, "company", 100)
	}
	if in.Address != "" {
		v.maxLength(in.Address, "address", 255)
	}

	return v.Err()
}

// ContactService — CRUD по контактам.
type ContactService struct {
	repo   repo.ContactRepository
	logger *zap.SugaredLogger
}

// NewContactService создаёт сервис контактов.
func NewContactService(r repo.ContactRepository, logger *zap.SugaredLogger) *ContactService {
	return &ContactService{repo: r, logger: logger}
}

// sanitized возвращает копию входных данных с вычищенным HTML во всех полях.
func (in ContactInput) sanitized() ContactInput {
	in.FullName = sanitize.Clean(in.FullName)
	in.Profession = sanitize.Clean(in.Profession)
	in.PhoneNumber = sanitize.Clean(in.PhoneNumber)
	in.Email = sanitize.Clean(in.Email)
	in.Address = sanitize.Clean(in.Address)
	in.Company = sanitize.Clean(in.Company)
	in.BirthDate = sanitize.Clean(in.BirthDate)
	in.Tags = sanitize.Clean(in.Tags)
	in.Notes = sanitize.Clean(in.Notes)
	return in
}

// Create вставляет новый контакт.
func (s *ContactService) Create(ctx context.Context, in ContactInput) (*model.Contact, error) {
	in = in.sanitized()
	c := &model.Contact{
		ID:          uuid.NewString(),
		FullName:    in.FullName,
		Profession:  in.Profession,
		PhoneNumber: in.PhoneNumber,
		Email:       in.Email,
		Address:     in.Address,
		Company:     in.Company,
		BirthDate:   in.BirthDate,
		Tags:        in.Tags,
		Notes:       in.Notes,
	}
	if err := s.repo.Create(ctx, c); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorage, err)
	}
	return c, nil
}

// GetByID возвращает контакт по идентификатору.
func (s *ContactService) GetByID(ctx context.Context, id string) (*model.Contact, error) {
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: %v", ErrStorage, err)
	}
	return c, nil
}

// List возвращает страницу контактов и метаданные пагинации.
func (s *ContactService) List(ctx context.Context, p model.ListParams) ([]model.Contact, model.Pagination, error) {
	rows, total, err := s.repo.List(ctx, p)
	if err != nil {
		return nil, model.Pagination{}, fmt.Errorf("%w: %v", ErrStorage, err)
	}
	p = p.Normalize(repo.ContactOrderColumns)
	return rows, model.NewPagination(p, total), nil
}

// Update перезаписывает все поля контакта и обновляет updated_at.
func (s *ContactService) Update(ctx context.Context, id string, in ContactInput) error {
	in = in.sanitized()
	updates := map[string]any{
		"full_name":    in.FullName,
		"profession":   in.Profession,
		"phone_number": in.PhoneNumber,
		"email":        in.Email,
		"address":      in.Address,
		"company":      in.Company,
		"birth_date":   in.BirthDate,
		"tags":         in.Tags,
		"notes":        in.Notes,
		"updated_at":   time.Now().UTC(),
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

// Delete удаляет контакт безвозвратно.
func (s *ContactService) Delete(ctx context.Context, id string) error {
	n, err := s.repo.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrStorage, err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
