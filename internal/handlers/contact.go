package handlers

import (
	"DataKeeper/internal/config"
	"DataKeeper/internal/model"
	"DataKeeper/internal/service"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// ContactHandler обрабатывает HTTP-операции над контактами.
type ContactHandler struct {
	Service *service.ContactService
	Logger  *zap.SugaredLogger
	Config  *config.Config
}

// NewContactHandler создаёт хендлер контактов.
func NewContactHandler(svc *service.ContactService, logger *zap.SugaredLogger, cfg *config.Config) *ContactHandler {
	return &ContactHandler{Service: svc, Logger: logger, Config: cfg}
}

type contactRequest struct {
	FullName    string `json:"full_name"`
	Profession  string `json:"profession"`
	PhoneNumber string `json:"phone_number"`
	Email       string `json:"email"`
	Address     string `json:"address"`
	Company     string `json:"company"`
	BirthDate   string `json:"birth_date"`
	Tags        string `json:"tags"`
	Notes       string `json:"notes"`
}

func (req contactRequest) toInput() service.ContactInput {
	return service.ContactInput{
		FullName:    req.FullName,
		Profession:  req.Profession,
		PhoneNumber: req.PhoneNumber,
		Email:       req.Email,
		Address:     req.Address,
		Company:     req.Company,
		BirthDate:   req.BirthDate,
		Tags:        req.Tags,
		Notes:       req.Notes,
	}
}

func contactDTO(c *model.Contact) map[string]any {
	return map[string]any{
		"id":           c.ID,
		"full_name":    c.FullName,
		"profession":   c.Profession,
		"phone_number": c.PhoneNumber,
		"email":        c.Email,
		"address":      c.Address,
		"company":      c.Company,
		"birth_date":   c.BirthDate,
		"tags":         c.Tags,
		"notes":        c.Notes,
		"created_at":   c.CreatedAt,
		"updated_at":   c.UpdatedAt,
	}
}

// Create — POST /api/contacts
func (h *ContactHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req contactRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.Logger.Warnw("contact create: invalid request body", "error", err)
		respondBadJSON(w)
		return
	}

	in := req.toInput()
	if err := service.ValidateContactInput(in); err != nil {
		respondError(w, h.Logger, h.Config.Debug, err)
		return
	}

	c, err := h.Service.Create(r.Context(), in)
	if err != nil {
		respondError(w, h.Logger, h.Config.Debug, err)
		return
	}

	writeJSON(w, http.StatusCreated, successResponse{Success: true, Message: "Contact created", Data: contactDTO(c)})
}

// GetOne — GET /api/contacts/{id}
func (h *ContactHandler) GetOne(w http.ResponseWriter, r *http.Request) {
	c, err := h.Service.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, h.Logger, h.Config.Debug, err)
		return
	}
	writeJSON(w, http.StatusOK, successResponse{Success: true, Data: contactDTO(c)})
}

// List — GET /api/contacts
func (h *ContactHandler) List(w http.ResponseWriter, r *http.Request) {
	rows, pg, err := h.Service.List(r.Context(), listParamsFromQuery(r))
	if err != nil {
		respondError(w, h.Logger, h.Config.Debug, err)
		return
	}

	items := make([]map[string]any, 0, len(rows))
	for i := range rows {
		items = append(items, contactDTO(&rows[i]))
	}
	writeJSON(w, http.StatusOK, successResponse{Success: true, Data: items, Pagination: &pg})
}

// Update — PUT /api/contacts/{id}
func (h *ContactHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req contactRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.Logger.Warnw("contact update: invalid request body", "error", err)
		respondBadJSON(w)
		return
	}

	in := req.toInput()
	if err := service.ValidateContactInput(in); err != nil {
		respondError(w, h.Logger, h.Config.Debug, err)
		return
	}

	if err := h.Service.Update(r.Context(), chi.URLParam(r, "id"), in); err != nil {
		respondError(w, h.Logger, h.Config.Debug, err)
		return
	}
	writeJSON(w, http.StatusOK, successResponse{Success: true, Message: "Contact updated"})
}

// Delete — DELETE /api/contacts/{id}
func (h *ContactHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		respondError(w, h.Logger, h.Config.Debug, err)
		return
	}
	writeJSON(w, http.StatusOK, successResponse{Success: true, Message: "Contact deleted"})
}
