package middleware

import (
	"encoding/json"
	"net"
	"net/http"
	"time"

	"pubboard/global"

	"github.com/redis/go-redis/v9"
)

// LoginLimiter throttles login attempts per client IP with a fixed redis
// window. A nil client disables it.
type LoginLimiter struct {
	Rdb      *redis.Client
	Attempts int
	Window   time.Duration
}

func (l *LoginLimiter) Limit(next http.Handler) http.Handler {
	if l == nil || l.Rdb == nil {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip, _, err := net.SplitHostPort(r.RemoteAddr)
		if err != nil {
			ip = r.RemoteAddr
		}
		key := "login_attempts:" + ip

		count, err := l.Rdb.Incr(r.Context(), key).Result()
		if err != nil {
			// redis being down must not lock everyone out
			global.Logger.Warn().Err(err).Msg("login limiter unavailable")
			next.ServeHTTP(w, r)
			return
		}
		if count == 1 {
			l.Rdb.Expire(r.Context(), key, l.Window)
		}
		if count > int64(l.Attempts) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusTooManyRequests)
			_ = json.NewEncoder(w).Encode(map[string]string{"message": "Too many login attempts"})
			return
		}
		next.ServeHTTP(w, r)
	})
}
