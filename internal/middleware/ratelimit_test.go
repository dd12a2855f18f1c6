package middleware

import (
	"DataKeeper/internal/model"
	"DataKeeper/internal/repo"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"
	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	_ "modernc.org/sqlite"
)

func newLimiterStore(t *testing.T) repo.RateLimitRepository {
	t.Helper()
	name := strings.ReplaceAll(t.Name(), "/", "_")
	dial := gormsqlite.Dialector{DriverName: "sqlite", DSN: "file:" + name + "?mode=memory&cache=shared"}
	db, err := gorm.Open(dial, &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&model.RateHit{}, &model.IPBlock{}); err != nil {
		t.Fatalf("failed to automigrate: %v", err)
	}
	return repo.NewRateLimitRepository(db)
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func doReq(h http.Handler, remoteAddr string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/api/notes", nil)
	req.RemoteAddr = remoteAddr
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func TestRateLimiter_AllowsWithinLimit(t *testing.T) {
	SetLogger(zap.NewNop().Sugar())
	rl := NewRateLimiter(newLimiterStore(t), 5, time.Hour)
	h := rl.Handler(okHandler())

	for i := 0; i < 5; i++ {
		rr := doReq(h, "10.1.1.1:9999")
		if rr.Code != http.StatusOK {
			t.Fatalf("request %d: want 200, got %d", i, rr.Code)
		}
	}
}

func TestRateLimiter_RejectsOverLimitThenBlocks(t *testing.T) {
	SetLogger(zap.NewNop().Sugar())
	rl := NewRateLimiter(newLimiterStore(t), 2, time.Hour)
	h := rl.Handler(okHandler())

	// первые два проходят: текущий запрос в счёт текущей проверки не входит
	for i := 0; i < 2; i++ {
		if rr := doReq(h, "10.2.2.2:9999"); rr.Code != http.StatusOK {
			t.Fatalf("warmup request %d: want 200, got %d", i, rr.Code)
		}
	}

	// два превышения подряд — 429 с Retry-After
	for i := 0; i < 2; i++ {
		rr := doReq(h, "10.2.2.2:9999")
		if rr.Code != http.StatusTooManyRequests {
			t.Fatalf("violation %d: want 429, got %d", i, rr.Code)
		}
		if rr.Header().Get("Retry-After") == "" {
			t.Fatal("expected Retry-After header")
		}
		if !strings.Contains(rr.Body.String(), "RATE_LIMIT_EXCEEDED") {
			t.Fatalf("unexpected body: %q", rr.Body.String())
		}
	}

	// третье превышение — блокировка IP
	rr := doReq(h, "10.2.2.2:9999")
	if rr.Code != http.StatusForbidden {
		t.Fatalf("third violation: want 403, got %d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "IP_BLOCKED") {
		t.Fatalf("unexpected body: %q", rr.Body.String())
	}

	// заблокированный IP получает 403 ещё до подсчёта запросов
	rr = doReq(h, "10.2.2.2:9999")
	if rr.Code != http.StatusForbidden {
		t.Fatalf("blocked ip: want 403, got %d", rr.Code)
	}

	// другой IP лимитом первого не затронут
	if rr := doReq(h, "10.3.3.3:9999"); rr.Code != http.StatusOK {
		t.Fatalf("other ip: want 200, got %d", rr.Code)
	}
}

// сломанное хранилище: лимитер обязан пропускать запросы, а не ронять API
type brokenStore struct{}

func (brokenStore) RecordHit(ctx context.Context, ip string, at time.Time) error { return errStore }
func (brokenStore) CountHits(ctx context.Context, ip string, since time.Time) (int64, error) {
	return 0, errStore
}
func (brokenStore) PurgeHits(ctx context.Context, before time.Time) error    { return errStore }
func (brokenStore) Block(ctx context.Context, ip string, until time.Time) error { return errStore }
func (brokenStore) IsBlocked(ctx context.Context, ip string, now time.Time) (bool, error) {
	return false, errStore
}

var errStore = errors.New("store is down")

func TestRateLimiter_FailsOpenOnStoreErrors(t *testing.T) {
	SetLogger(zap.NewNop().Sugar())
	rl := NewRateLimiter(brokenStore{}, 1, time.Hour)
	h := rl.Handler(okHandler())

	for i := 0; i < 5; i++ {
		if rr := doReq(h, "10.4.4.4:9999"); rr.Code != http.StatusOK {
			t.Fatalf("request %d: want 200, got %d", i, rr.Code)
		}
	}
}
