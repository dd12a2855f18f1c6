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

// NoteHandler обрабатывает HTTP-операции над заметками.
type NoteHandler struct {
	Service *service.NoteService
	Logger  *zap.SugaredLogger
	Config  *config.Config
}

// NewNoteHandler создаёт хендлер заметок.
func NewNoteHandler(svc *service.NoteService, logger *zap.SugaredLogger, cfg *config.Config) *NoteHandler {
	return &NoteHandler{Service: svc, Logger: logger, Config: cfg}
}

type noteRequest struct {
	Title    string `json:"title"`
	Subtitle string `json:"subtitle"`
	Content  string `json:"content"`
	Folders  string `json:"folders"`
	Tags     string `json:"tags"`
}

func (req noteRequest) toInput() service.NoteInput {
	return service.NoteInput{
		Title:    req.Title,
		Subtitle: req.Subtitle,
		Content:  req.Content,
		Folders:  req.Folders,
		Tags:     req.Tags,
	}
}

func noteDTO(n *model.Note) map[string]any {
	return map[string]any{
		"id":         n.ID,
		"title":      n.Title,
		"subtitle":   n.Subtitle,
		"content":    n.Content,
		"folders":    n.Folders,
		"tags":       n.Tags,
		"created_at": n.CreatedAt,
		"updated_at": n.UpdatedAt,
	}
}

// Create — POST /api/notes
func (h *NoteHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req noteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.Logger.Warnw("note create: invalid request body", "error", err)
		respondBadJSON(w)
		return
	}

	in := req.toInput()
	if err := service.ValidateNoteInput(in); err != nil {
		respondError(w, h.Logger, h.Config.Debug, err)
		return
	}

	n, err := h.Service.Create(r.Context(), in)
	if err != nil {
		respondError(w, h.Logger, h.Config.Debug, err)
		return
	}
	writeJSON(w, http.StatusCreated, successResponse{Success: true, Message: "Note created", Data: noteDTO(n)})
}

// GetOne — GET /api/notes/{id}
func (h *NoteHandler) GetOne(w http.ResponseWriter, r *http.Request) {
	n, err := h.Service.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, h.Logger, h.Config.Debug, err)
		return
	}
	writeJSON(w, http.StatusOK, successResponse{Success: true, Data: noteDTO(n)})
}

// List — GET /api/notes
func (h *NoteHandler) List(w http.ResponseWriter, r *http.Request) {
	rows, pg, err := h.Service.List(r.Context(), listParamsFromQuery(r))
	if err != nil {
		respondError(w, h.Logger, h.Config.Debug, err)
		return
	}

	items := make([]map[string]any, 0, len(rows))
	for i := range rows {
		items = append(items, noteDTO(&rows[i]))
	}
	writeJSON(w, http.StatusOK, successResponse{Success: true, Data: items, Pagination: &pg})
}

// Update — PUT /api/notes/{id}
func (h *NoteHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req noteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.Logger.Warnw("note update: invalid request body", "error", err)
		respondBadJSON(w)
		return
	}

	in := req.toInput()
	if err := service.ValidateNoteInput(in); err != nil {
		respondError(w, h.Logger, h.Config.Debug, err)
		return
	}

	if err := h.Service.Update(r.Context(), chi.URLParam(r, "id"), in); err != nil {
		respondError(w, h.Logger, h.Config.Debug, err)
		return
	}
	writeJSON(w, http.StatusOK, successResponse{Success: true, Message: "Note updated"})
}

// Delete — DELETE /api/notes/{id}
func (h *NoteHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		respondError(w, h.Logger, h.Config.Debug, err)
		return
	}
	writeJSON(w, http.StatusOK, successResponse{Success: true, Message: "Note deleted"})
}
