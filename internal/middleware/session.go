package middleware

import (
	"net/http"
	"time"

	"github.com/Fineboy94449/smoke/internal/apierror"
	"github.com/Fineboy94449/smoke/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// SessionActivity enforces the idle timeout on top of JWT validity: a
// token that is still cryptographically valid gets rejected once the
// subject has been inactive longer than idleMinutes. Every accepted
// request slides the window forward. Runs after JWTAuth.
func SessionActivity(rdb *redis.Client, idleMinutes int) gin.HandlerFunc {
	idle := time.Duration(idleMinutes) * time.Minute
	return func(c *gin.Context) {
		claims := GetClaims(c)
		if claims == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, apierror.New("authentication required"))
			return
		}

		key := service.SessionKey(claims.Subject)
		exists, err := rdb.Exists(c.Request.Context(), key).Result()
		if err != nil {
			// Redis outage should not lock everyone out.
			c.Next()
			return
		}
		if exists == 0 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, apierror.New("session expired, please log in again"))
			return
		}

		rdb.Expire(c.Request.Context(), key, idle)
		c.Next()
	}
}
