package handlers

import (
	"DataKeeper/internal/model"
	"DataKeeper/internal/service"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"go.uber.org/zap"
)

// Единый конверт ошибок API.
type errorResponse struct {
	Error   bool                `json:"error"`
	Message string              `json:"message"`
	Code    string              `json:"code,omitempty"`
	Errors  map[string][]string `json:"errors,omitempty"`
}

// Единый конверт успешного ответа.
type successResponse struct {
	Success    bool              `json:"success"`
	Message    string            `json:"message,omitempty"`
	Data       any               `json:"data,omitempty"`
	Pagination *model.Pagination `json:"pagination,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// respondError маппит ошибку сервиса в HTTP-ответ.
// Сырой текст ошибок хранилища уходит клиенту только в режиме debug.
func respondError(w http.ResponseWriter, logger *zap.SugaredLogger, debug bool, err error) {
	var ve *service.ValidationError
	switch {
	case errors.As(err, &ve):
		writeJSON(w, http.StatusBadRequest, errorResponse{
			Error:   true,
			Message: "Validation failed",
			Code:    "VALIDATION_ERROR",
			Errors:  ve.Fields,
		})
	case errors.Is(err, service.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{
			Error:   true,
			Message: "Record not found",
			Code:    "NOT_FOUND",
		})
	default:
		logger.Errorw("request failed", "error", err)
		msg := "Internal server error"
		if debug {
			msg = err.Error()
		}
		writeJSON(w, http.StatusInternalServerError, errorResponse{
			Error:   true,
			Message: msg,
		})
	}
}

func respondBadJSON(w http.ResponseWriter) {
	writeJSON(w, http.StatusBadRequest, errorResponse{
		Error:   true,
		Message: "Invalid request body",
		Code:    "BAD_REQUEST",
	})
}

// listParamsFromQuery разбирает параметры списка из строки запроса.
// Нечисловые и внедиапазонные значения нормализует слой хранилища.
func listParamsFromQuery(r *http.Request) model.ListParams {
	q := r.URL.Query()
	page, _ := strconv.Atoi(q.Get("page"))
	pageSize, _ := strconv.Atoi(q.Get("page_size"))
	return model.ListParams{
		Page:     page,
		PageSize: pageSize,
		Search:   q.Get("search"),
		OrderBy:  q.Get("order_by"),
		OrderDir: q.Get("order_dir"),
	}
}
