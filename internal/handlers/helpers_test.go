package handlers_test

import (
	"DataKeeper/internal/config"
	"DataKeeper/internal/crypto"
	"DataKeeper/internal/handlers"
	"DataKeeper/internal/middleware"
	"DataKeeper/internal/repo"
	"DataKeeper/internal/service"
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"
)

const testKey = "0123456789abcdef0123456789abcdef"

// newTestRouter поднимает полный роутер над in-memory SQLite.
// Лимитер получает заведомо большой лимит, чтобы не мешать CRUD-тестам.
func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	name := strings.ReplaceAll(t.Name(), "/", "_")
	db, err := repo.InitDB("file:" + name + "?mode=memory&cache=shared")
	if err != nil {
		t.Fatalf("failed to init test db: %v", err)
	}

	cipher, err := crypto.NewCipher([]byte(testKey))
	if err != nil {
		t.Fatalf("failed to build cipher: %v", err)
	}

	cfg := &config.Config{BaseURL: "localhost:8080"}
	logger := zap.NewNop().Sugar()

	credentialSvc := service.NewCredentialService(repo.NewCredentialRepository(db), cipher, crypto.NewHasher(), logger)
	contactSvc := service.NewContactService(repo.NewContactRepository(db), logger)
	noteSvc := service.NewNoteService(repo.NewNoteRepository(db), logger)
	taskSvc := service.NewTaskService(repo.NewTaskRepository(db), logger)

	limiter := middleware.NewRateLimiter(repo.NewRateLimitRepository(db), 100000, time.Hour)

	h := handlers.NewHandler(credentialSvc, contactSvc, noteSvc, taskSvc, limiter, logger, cfg)
	return h.Router
}

// doJSON выполняет запрос с JSON-телом и разбирает JSON-ответ в out.
func doJSON(t *testing.T, router http.Handler, method, path string, body any, out any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("failed to encode request body: %v", err)
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if out != nil && rec.Body.Len() > 0 {
		if err := json.Unmarshal(rec.Body.Bytes(), out); err != nil {
			t.Fatalf("failed to decode response %q: %v", rec.Body.String(), err)
		}
	}
	return rec
}
