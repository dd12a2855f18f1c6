package service

import (
	"DataKeeper/internal/crypto"
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

// CredentialInput — входные данные создания/обновления учётной записи.
// Secret — пароль в открытом виде; пустая строка при обновлении означает
// «пароль не менять». AuxiliaryInfo всегда перезаписывается как есть.
type CredentialInput struct {
	SiteLabel         string
	AccountIdentifier string
	Secret            string
	AuxiliaryInfo     string
	Category          string
}

// CredentialDetail — результат чтения одной записи: расшифрованные
// дополнительные сведения и хранимый хеш пароля. Хеш наружу не отдаётся —
// HTTP-слой обязан его отбросить до сериализации ответа.
type CredentialDetail struct {
	ID                string
	SiteLabel         string
	AccountIdentifier string
	SecretHash        string
	AuxiliaryInfo     string
	Category          string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// ValidateCredentialInput проверяет форму входных данных до слоя хранилища.
// Пароль опционален, но непустой обязан проходить проверку стойкости.
func ValidateCredentialInput(in CredentialInput) error {
	v := newValidator()

	if v.required(in.SiteLabel, "site_label") {
		v.minLength(in.SiteLabel, "site_label", 2)
		v.maxLength(in.SiteLabel, "site_label", 100)
	}
	if v.required(in.AccountIdentifier, "account_identifier") {
		v.minLength(in.AccountIdentifier, "account_identifier", 2)
		v.maxLength(in.AccountIdentifier, "account_identifier", 255)
	}
	if in.Secret != "" {
		v.password(in.Secret, "secret")
	}
	if in.Category != "" {
		v.inList(in.Category, "category", model.AllowedCategories)
	}

	return v.Err()
}

// CredentialService — оркестратор защиты учётных данных: ни один секрет
// не попадает в хранилище и не возвращается, минуя хешер или шифр.
type CredentialService struct {
	repo   repo.CredentialRepository
	cipher *crypto.Cipher
	hasher *crypto.Hasher
	logger *zap.SugaredLogger
}

// NewCredentialService создаёт сервис учётных данных.
func NewCredentialService(r repo.CredentialRepository, c *crypto.Cipher, h *crypto.Hasher, logger *zap.SugaredLogger) *CredentialService {
	return &CredentialService{repo: r, cipher: c, hasher: h, logger: logger}
}

// Create хеширует пароль (безусловно, даже пустой), шифрует дополнительные
// сведения при их наличии и вставляет запись. Сбой любой криптооперации
// прерывает запись: строка с открытым секретом в БД не попадает.
func (s *CredentialService) Create(ctx context.Context, in CredentialInput) (*model.Credential, error) {
	hash, err := s.hasher.Hash(in.Secret)
	if err != nil {
		return nil, fmt.Errorf("hash secret: %w", err)
	}
	enc, err := s.cipher.Encrypt(in.AuxiliaryInfo)
	if err != nil {
		return nil, fmt.Errorf("encrypt auxiliary info: %w", err)
	}

	c := &model.Credential{
		ID:                 uuid.NewString(),
		SiteLabel:          sanitize.Clean(in.SiteLabel),
		AccountIdentifier:  sanitize.Clean(in.AccountIdentifier),
		SecretHash:         hash,
		AuxiliaryEncrypted: enc,
		Category:           sanitize.Clean(in.Category),
	}
	if err := s.repo.Create(ctx, c); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorage, err)
	}
	return c, nil
}

// GetByID возвращает запись с расшифрованными дополнительными сведениями.
// Сбой расшифровки одного поля не валит чтение целиком: поле деградирует
// до пустой строки, ошибка уходит в лог.
func (s *CredentialService) GetByID(ctx context.Context, id string) (*CredentialDetail, error) {
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: %v", ErrStorage, err)
	}

	plain, err := s.cipher.Decrypt(c.AuxiliaryEncrypted)
	if err != nil {
		s.logger.Errorw("failed to decrypt auxiliary info, degrading to empty",
			"credential_id", id, "error", err)
		plain = ""
	}

	return &CredentialDetail{
		ID:                c.ID,
		SiteLabel:         c.SiteLabel,
		AccountIdentifier: c.AccountIdentifier,
		SecretHash:        c.SecretHash,
		AuxiliaryInfo:     plain,
		Category:          c.Category,
		CreatedAt:         c.CreatedAt,
		UpdatedAt:         c.UpdatedAt,
	}, nil
}

// List возвращает страницу без секретных полей и метаданные пагинации.
// Расшифровка в списочных выборках не выполняется никогда.
func (s *CredentialService) List(ctx context.Context, p model.ListParams) ([]model.Credential, model.Pagination, error) {
	rows, total, err := s.repo.List(ctx, p)
	if err != nil {
		return nil, model.Pagination{}, fmt.Errorf("%w: %v", ErrStorage, err)
	}
	p = p.Normalize(repo.CredentialOrderColumns)
	return rows, model.NewPagination(p, total), nil
}

// Update всегда перезаписывает открытые поля и дополнительные сведения
// (повторное шифрование), хеш пароля — только при непустом новом секрете.
func (s *CredentialService) Update(ctx context.Context, id string, in CredentialInput) error {
	enc, err := s.cipher.Encrypt(in.AuxiliaryInfo)
	if err != nil {
		return fmt.Errorf("encrypt auxiliary info: %w", err)
	}

	updates := map[string]any{
		"site_label":          sanitize.Clean(in.SiteLabel),
		"account_identifier":  sanitize.Clean(in.AccountIdentifier),
		"auxiliary_encrypted": enc,
		"category":            sanitize.Clean(in.Category),
		"updated_at":          time.Now().UTC(),
	}
	if in.Secret != "" {
		hash, err := s.hasher.Hash(in.Secret)
		if err != nil {
			return fmt.Errorf("hash secret: %w", err)
		}
		updates["secret_hash"] = hash
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

// Delete удаляет запись безвозвратно; повторное удаление того же id — ErrNotFound.
func (s *CredentialService) Delete(ctx context.Context, id string) error {
	n, err := s.repo.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrStorage, err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// VerifySecret сверяет пароль-кандидат с хранимым хешем.
// Отсутствие записи неотличимо для вызывающего от неверного пароля.
func (s *CredentialService) VerifySecret(ctx context.Context, id, candidate string) (bool, error) {
	hash, err := s.repo.GetSecretHash(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("%w: %v", ErrStorage, err)
	}
	return s.hasher.Verify(candidate, hash), nil
}
