package middleware

import (
	"DataKeeper/internal/repo"
	"encoding/json"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"
)

// blockDuration — срок автоблокировки после повторных превышений лимита.
const blockDuration = 2 * time.Hour

// violationsToBlock — сколько превышений подряд приводит к блокировке IP.
const violationsToBlock = 3

// RateLimiter — скользящее окно запросов на IP поверх персистентного хранилища
// плюс временные блокировки. Сбой хранилища пропускает запрос дальше
// с записью в лог: защитный слой не должен ронять API.
type RateLimiter struct {
	store  repo.RateLimitRepository
	limit  int
	window time.Duration

	mu         sync.Mutex
	violations map[string]int
}

// NewRateLimiter создаёт лимитер с лимитом limit запросов за окно window.
func NewRateLimiter(store repo.RateLimitRepository, limit int, window time.Duration) *RateLimiter {
	return &RateLimiter{
		store:      store,
		limit:      limit,
		window:     window,
		violations: make(map[string]int),
	}
}

// Handler — middleware проверки лимита. Ожидает chi middleware.RealIP выше
// по цепочке: клиентский адрес берётся из r.RemoteAddr.
func (rl *RateLimiter) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		ip := clientIP(r)
		now := time.Now().UTC()

		blocked, err := rl.store.IsBlocked(ctx, ip, now)
		if err != nil {
			sugar.Errorw("rate limiter block check failed", "ip", ip, "error", err)
			next.ServeHTTP(w, r)
			return
		}
		if blocked {
			writeBlocked(w)
			return
		}

		since := now.Add(-rl.window)
		count, err := rl.store.CountHits(ctx, ip, since)
		if err != nil {
			sugar.Errorw("rate limiter count failed", "ip", ip, "error", err)
			next.ServeHTTP(w, r)
			return
		}

		// текущий запрос учитывается для следующих проверок, не для этой
		if err := rl.store.RecordHit(ctx, ip, now); err != nil {
			sugar.Errorw("rate limiter record failed", "ip", ip, "error", err)
		}
		// попутная чистка устаревших записей
		_ = rl.store.PurgeHits(ctx, since)

		if count >= int64(rl.limit) {
			if rl.registerViolation(ip) >= violationsToBlock {
				if err := rl.store.Block(ctx, ip, now.Add(blockDuration)); err != nil {
					sugar.Errorw("rate limiter block failed", "ip", ip, "error", err)
				}
				sugar.Warnw("ip blocked after repeated rate limit violations", "ip", ip)
				writeBlocked(w)
				return
			}
			sugar.Warnw("rate limit exceeded", "ip", ip, "requests_in_window", count, "limit", rl.limit)
			writeRateLimited(w, rl.window)
			return
		}

		rl.resetViolations(ip)
		next.ServeHTTP(w, r)
	})
}

func (rl *RateLimiter) registerViolation(ip string) int {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	rl.violations[ip]++
	return rl.violations[ip]
}

func (rl *RateLimiter) resetViolations(ip string) {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	delete(rl.violations, ip)
}

// clientIP возвращает адрес клиента без порта.
func clientIP(r *http.Request) string {
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}

func writeRateLimited(w http.ResponseWriter, retryAfter time.Duration) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Retry-After", strconv.Itoa(int(retryAfter.Seconds())))
	w.WriteHeader(http.StatusTooManyRequests)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"error":       true,
		"message":     "Too many requests. Please try again later.",
		"code":        "RATE_LIMIT_EXCEEDED",
		"retry_after": int(retryAfter.Seconds()),
	})
}

func writeBlocked(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusForbidden)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"error":   true,
		"message": "Access forbidden. Your IP has been temporarily blocked.",
		"code":    "IP_BLOCKED",
	})
}
