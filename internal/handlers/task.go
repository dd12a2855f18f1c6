package handlers

import (
	"DataKeeper/internal/config"
	"DataKeeper/internal/model"
	"DataKeeper/internal/service"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// TaskHandler обрабатывает HTTP-операции над задачами.
type TaskHandler struct {
	Service *service.TaskService
	Logger  *zap.SugaredLogger
	Config  *config.Config
}

// NewTaskHandler создаёт хендлер задач.
func NewTaskHandler(svc *service.TaskService, logger *zap.SugaredLogger, cfg *config.Config) *TaskHandler {
	return &TaskHandler{Service: svc, Logger: logger, Config: cfg}
}

type taskRequest struct {
	Title       string `json:"title"`
	StartAt     string `json:"start_at"`
	EndAt       string `json:"end_at"`
	Description string `json:"description"`
	Priority    string `json:"priority"`
	Status      string `json:"status"`
}

func (req taskRequest) toInput() service.TaskInput {
	return service.TaskInput{
		Title:       req.Title,
		StartAt:     req.StartAt,
		EndAt:       req.EndAt,
		Description: req.Description,
		Priority:    req.Priority,
		Status:      req.Status,
	}
}

func taskDTO(t *model.Task) map[string]any {
	var endAt any
	if t.EndAt != nil {
		endAt = t.EndAt.Format(time.RFC3339)
	}
	return map[string]any{
		"id":          t.ID,
		"title":       t.Title,
		"start_at":    t.StartAt.Format(time.RFC3339),
		"end_at":      endAt,
		"description": t.Description,
		"priority":    t.Priority,
		"status":      t.Status,
		"created_at":  t.CreatedAt,
		"updated_at":  t.UpdatedAt,
	}
}

// Create — POST /api/tasks
func (h *TaskHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req taskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.Logger.Warnw("task create: invalid request body", "error", err)
		respondBadJSON(w)
		return
	}

	in := req.toInput()
	if err := service.ValidateTaskInput(in); err != nil {
		respondError(w, h.Logger, h.Config.Debug, err)
		return
	}

	tk, err := h.Service.Create(r.Context(), in)
	if err != nil {
		respondError(w, h.Logger, h.Config.Debug, err)
		return
	}
	writeJSON(w, http.StatusCreated, successResponse{Success: true, Message: "Task created", Data: taskDTO(tk)})
}

// GetOne — GET /api/tasks/{id}
func (h *TaskHandler) GetOne(w http.ResponseWriter, r *http.Request) {
	tk, err := h.Service.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, h.Logger, h.Config.Debug, err)
		return
	}
	writeJSON(w, http.StatusOK, successResponse{Success: true, Data: taskDTO(tk)})
}

// List — GET /api/tasks
func (h *TaskHandler) List(w http.ResponseWriter, r *http.Request) {
	rows, pg, err := h.Service.List(r.Context(), listParamsFromQuery(r))
	if err != nil {
		respondError(w, h.Logger, h.Config.Debug, err)
		return
	}

	items := make([]map[string]any, 0, len(rows))
	for i := range rows {
		items = append(items, taskDTO(&rows[i]))
	}
	writeJSON(w, http.StatusOK, successResponse{Success: true, Data: items, Pagination: &pg})
}

// Update — PUT /api/tasks/{id}
func (h *TaskHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req taskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.Logger.Warnw("task update: invalid request body", "error", err)
		respondBadJSON(w)
		return
	}

	in := req.toInput()
	if err := service.ValidateTaskInput(in); err != nil {
		respondError(w, h.Logger, h.Config.Debug, err)
		return
	}

	if err := h.Service.Update(r.Context(), chi.URLParam(r, "id"), in); err != nil {
		respondError(w, h.Logger, h.Config.Debug, err)
		return
	}
	writeJSON(w, http.StatusOK, successResponse{Success: true, Message: "Task updated"})
}

// Delete — DELETE /api/tasks/{id}
func (h *TaskHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		respondError(w, h.Logger, h.Config.Debug, err)
		return
	}
	writeJSON(w, http.StatusOK, successResponse{Success: true, Message: "Task deleted"})
}
