package middleware

import (
	"net"
	"net/http"
	"time"

	"nexus-market/utils"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

const (
	authMaxAttempts = 10
	authWindow      = 15 * time.Minute
)

// AuthRateLimit limits authentication attempts per client IP using Redis.
// Redis being unreachable fails open so login keeps working.
func AuthRateLimit(rdb *redis.Client) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip, _, err := net.SplitHostPort(r.RemoteAddr)
			if err != nil {
				ip = r.RemoteAddr
			}
			key := "ratelimit:auth:" + ip

			count, err := rdb.Incr(r.Context(), key).Result()
			if err != nil {
				logrus.WithError(err).Warn("rate limit check failed")
				next.ServeHTTP(w, r)
				return
			}
			if count == 1 {
				rdb.Expire(r.Context(), key, authWindow)
			}
			if count > authMaxAttempts {
				utils.RespondError(w, http.StatusTooManyRequests,
					"Too many authentication attempts, please try again later.")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
