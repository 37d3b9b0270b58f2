package middlewarectx

import (
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/render"
	"golang.org/x/time/rate"

	"github.com/magabrotheeeer/consulting-platform/internal/http/response"
)

// Ведро, не получавшее запросов дольше limiterIdleTTL, заведомо заполнено
// до burst, поэтому его можно удалить без изменения поведения.
const (
	limiterIdleTTL = 2 * time.Hour
	pruneInterval  = 10 * time.Minute
)

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter ограничивает частоту запросов на маршрут отдельно по каждому клиенту.
// Ключ клиента — uid пользователя из контекста, для анонимных запросов — IP адрес.
type RateLimiter struct {
	mu        sync.Mutex
	limiters  map[string]*clientLimiter
	limit     rate.Limit
	burst     int
	lastPrune time.Time
	log       *slog.Logger
}

// NewRateLimiter создает лимитер, допускающий perHour запросов в час с burst запасом.
func NewRateLimiter(perHour int, log *slog.Logger) *RateLimiter {
	return &RateLimiter{
		limiters:  make(map[string]*clientLimiter),
		limit:     rate.Every(time.Hour / time.Duration(perHour)),
		burst:     perHour,
		lastPrune: time.Now(),
		log:       log,
	}
}

func (rl *RateLimiter) limiterFor(key string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	if now.Sub(rl.lastPrune) >= pruneInterval {
		rl.prune(now)
		rl.lastPrune = now
	}

	cl, ok := rl.limiters[key]
	if !ok {
		cl = &clientLimiter{limiter: rate.NewLimiter(rl.limit, rl.burst)}
		rl.limiters[key] = cl
	}
	cl.lastSeen = now
	return cl.limiter
}

// prune вызывается под мьютексом.
func (rl *RateLimiter) prune(now time.Time) {
	for key, cl := range rl.limiters {
		if now.Sub(cl.lastSeen) > limiterIdleTTL {
			delete(rl.limiters, key)
		}
	}
}

// Middleware возвращает HTTP middleware, отклоняющий запросы сверх лимита со статусом 429.
func (rl *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := clientKey(r)
		if !rl.limiterFor(key).Allow() {
			rl.log.Error("too many requests", slog.String("client", key), slog.String("path", r.URL.Path))
			w.WriteHeader(http.StatusTooManyRequests)
			render.JSON(w, r, response.Error("too many requests"))
			return
		}
		next.ServeHTTP(w, r)
	})
}

func clientKey(r *http.Request) string {
	if uid, ok := r.Context().Value(UserUID).(string); ok && uid != "" {
		return uid
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
