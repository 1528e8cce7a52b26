package middleware

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"simplifai-backend/internal/logger"
	"simplifai-backend/internal/metrics"
)

// Limiter decides whether one more request from key fits in the current window.
type Limiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}

type visitor struct {
	count       int
	windowStart time.Time
}

// RateLimiter is a fixed-window, per-process limiter.
type RateLimiter struct {
	mu       sync.Mutex
	visitors map[string]*visitor
	limit    int
	window   time.Duration
	now      func() time.Time
	stop     chan struct{}
}

func NewRateLimiter(limit int, window time.Duration) *RateLimiter {
	rl := &RateLimiter{
		visitors: make(map[string]*visitor),
		limit:    limit,
		window:   window,
		now:      time.Now,
		stop:     make(chan struct{}),
	}

	// Cleanup goroutine
	go func() {
		ticker := time.NewTicker(window)
		defer ticker.Stop()
		for {
			select {
			case <-rl.stop:
				return
			case <-ticker.C:
				rl.mu.Lock()
				for ip, v := range rl.visitors {
					if rl.now().Sub(v.windowStart) >= window {
						delete(rl.visitors, ip)
					}
				}
				rl.mu.Unlock()
			}
		}
	}()

	return rl
}

// Close stops the cleanup goroutine.
func (rl *RateLimiter) Close() {
	close(rl.stop)
}

func (rl *RateLimiter) Allow(_ context.Context, key string) (bool, error) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	v, exists := rl.visitors[key]
	if !exists || now.Sub(v.windowStart) >= rl.window {
		rl.visitors[key] = &visitor{count: 1, windowStart: now}
		return true, nil
	}

	// windowStart stays fixed so rejected hits do not extend the window.
	v.count++
	return v.count <= rl.limit, nil
}

// RedisRateLimiter shares fixed-window counters between instances.
type RedisRateLimiter struct {
	client *redis.Client
	limit  int
	window time.Duration
	prefix string
}

func NewRedisRateLimiter(client *redis.Client, limit int, window time.Duration) *RedisRateLimiter {
	return &RedisRateLimiter{
		client: client,
		limit:  limit,
		window: window,
		prefix: "simplifai:ratelimit",
	}
}

func (rl *RedisRateLimiter) key(key string, now time.Time) string {
	bucket := now.UnixNano() / int64(rl.window)
	return fmt.Sprintf("%s:%s:%d", rl.prefix, key, bucket)
}

func (rl *RedisRateLimiter) Allow(ctx context.Context, key string) (bool, error) {
	k := rl.key(key, time.Now())

	count, err := rl.client.Incr(ctx, k).Result()
	if err != nil {
		return true, fmt.Errorf("failed to increment rate counter: %w", err)
	}
	if count == 1 {
		if err := rl.client.Expire(ctx, k, rl.window).Err(); err != nil {
			return true, fmt.Errorf("failed to set rate counter expiry: %w", err)
		}
	}
	return count <= int64(rl.limit), nil
}

// RateLimit rejects requests over the limit with 429. Limiter errors let the
// request through.
func RateLimit(limiter Limiter, log *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			allowed, err := limiter.Allow(r.Context(), clientIP(r))
			if err != nil {
				log.WithContext(r.Context()).Warn("rate limiter unavailable", slog.String("error", err.Error()))
			}
			if !allowed {
				metrics.RateLimited.Inc()
				writeError(w, http.StatusTooManyRequests, "RATE_LIMITED", "Too many requests. Please try again later.", r)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// clientIP drops the port so every connection from one host shares a counter.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
