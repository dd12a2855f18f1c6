package handlers

import (
	"DataKeeper/internal/config"
	"DataKeeper/internal/service"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// CredentialHandler обрабатывает HTTP-операции над учётными данными.
type CredentialHandler struct {
	Service *service.CredentialService
	Logger  *zap.SugaredLogger
	Config  *config.Config
}

// NewCredentialHandler создаёт хендлер учётных данных.
func NewCredentialHandler(svc *service.CredentialService, logger *zap.SugaredLogger, cfg *config.Config) *CredentialHandler {
	return &CredentialHandler{Service: svc, Logger: logger, Config: cfg}
}

// credentialRequest — тело запроса create/update.
// secret при обновлении может быть пустым — тогда пароль не меняется.
type credentialRequest struct {
	SiteLabel         string `json:"site_label"`
	AccountIdentifier string `json:"account_identifier"`
	Secret            string `json:"secret"`
	AuxiliaryInfo     string `json:"auxiliary_info"`
	Category          string `json:"category"`
}

func (req credentialRequest) toInput() service.CredentialInput {
	return service.CredentialInput{
		SiteLabel:         req.SiteLabel,
		AccountIdentifier: req.AccountIdentifier,
		Secret:            req.Secret,
		AuxiliaryInfo:     req.AuxiliaryInfo,
		Category:          req.Category,
	}
}

// credentialDetailDTO — ответ одиночного чтения. Хеш пароля сюда не попадает:
// сервис его возвращает, но наружу он не сериализуется никогда.
type credentialDetailDTO struct {
	ID                string    `json:"id"`
	SiteLabel         string    `json:"site_label"`
	AccountIdentifier string    `json:"account_identifier"`
	AuxiliaryInfo     string    `json:"auxiliary_info"`
	Category          string    `json:"category"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// credentialListItemDTO — строка списка: без секретов в любом виде.
type credentialListItemDTO struct {
	ID                string    `json:"id"`
	SiteLabel         string    `json:"site_label"`
	AccountIdentifier string    `json:"account_identifier"`
	Category          string    `json:"category"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// Create — POST /api/credentials
func (h *CredentialHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req credentialRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.Logger.Warnw("credential create: invalid request body", "error", err)
		respondBadJSON(w)
		return
	}

	in := req.toInput()
	if err := service.ValidateCredentialInput(in); err != nil {
		respondError(w, h.Logger, h.Config.Debug, err)
		return
	}

	c, err := h.Service.Create(r.Context(), in)
	if err != nil {
		respondError(w, h.Logger, h.Config.Debug, err)
		return
	}

	writeJSON(w, http.StatusCreated, successResponse{
		Success: true,
		Message: "Credential created",
		Data: credentialListItemDTO{
			ID:                c.ID,
			SiteLabel:         c.SiteLabel,
			AccountIdentifier: c.AccountIdentifier,
			Category:          c.Category,
			CreatedAt:         c.CreatedAt,
			UpdatedAt:         c.UpdatedAt,
		},
	})
}

// GetOne — GET /api/credentials/{id}
func (h *CredentialHandler) GetOne(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	d, err := h.Service.GetByID(r.Context(), id)
	if err != nil {
		respondError(w, h.Logger, h.Config.Debug, err)
		return
	}

	writeJSON(w, http.StatusOK, successResponse{
		Success: true,
		Data: credentialDetailDTO{
			ID:                d.ID,
			SiteLabel:         d.SiteLabel,
			AccountIdentifier: d.AccountIdentifier,
			AuxiliaryInfo:     d.AuxiliaryInfo,
			Category:          d.Category,
			CreatedAt:         d.CreatedAt,
			UpdatedAt:         d.UpdatedAt,
		},
	})
}

// List — GET /api/credentials
func (h *CredentialHandler) List(w http.ResponseWriter, r *http.Request) {
	rows, pg, err := h.Service.List(r.Context(), listParamsFromQuery(r))
	if err != nil {
		respondError(w, h.Logger, h.Config.Debug, err)
		return
	}

	items := make([]credentialListItemDTO, 0, len(rows))
	for _, c := range rows {
		items = append(items, credentialListItemDTO{
			ID:                c.ID,
			SiteLabel:         c.SiteLabel,
			AccountIdentifier: c.AccountIdentifier,
			Category:          c.Category,
			CreatedAt:         c.CreatedAt,
			UpdatedAt:         c.UpdatedAt,
		})
	}

	writeJSON(w, http.StatusOK, successResponse{
		Success:    true,
		Data:       items,
		Pagination: &pg,
	})
}

// Update — PUT /api/credentials/{id}
func (h *CredentialHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req credentialRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.Logger.Warnw("credential update: invalid request body", "error", err)
		respondBadJSON(w)
		return
	}

	in := req.toInput()
	if err := service.ValidateCredentialInput(in); err != nil {
		respondError(w, h.Logger, h.Config.Debug, err)
		return
	}

	if err := h.Service.Update(r.Context(), id, in); err != nil {
		respondError(w, h.Logger, h.Config.Debug, err)
		return
	}

	writeJSON(w, http.StatusOK, successResponse{Success: true, Message: "Credential updated"})
}

// Delete — DELETE /api/credentials/{id}
func (h *CredentialHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.Service.Delete(r.Context(), id); err != nil {
		respondError(w, h.Logger, h.Config.Debug, err)
		return
	}

	writeJSON(w, http.StatusOK, successResponse{Success: true, Message: "Credential deleted"})
}

// verifyRequest — тело запроса проверки пароля.
type verifyRequest struct {
	Secret string `json:"secret"`
}

// Verify — POST /api/credentials/{id}/verify
// Отсутствие записи и неверный пароль неразличимы в ответе.
func (h *CredentialHandler) Verify(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req verifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.Logger.Warnw("credential verify: invalid request body", "error", err)
		respondBadJSON(w)
		return
	}

	ok, err := h.Service.VerifySecret(r.Context(), id, req.Secret)
	if err != nil {
		respondError(w, h.Logger, h.Config.Debug, err)
		return
	}

	writeJSON(w, http.StatusOK, successResponse{
		Success: true,
		Data:    map[string]bool{"valid": ok},
	})
}
