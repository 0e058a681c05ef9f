package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/coslynx/fitness-tracker/pkg/helpers"
	"github.com/coslynx/fitness-tracker/pkg/response"
)

// Auth validates the access token cookie against the active Redis session
// and puts the account id into the context as "userID". A token whose
// session id no longer matches (rotated or logged out) is rejected.
func Auth(jwtMgr *helpers.JWTManager, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie("access_token")
		if err != nil || token == "" {
			response.AbortUnauthorized(c, "authentication required")
			return
		}

		claims, err := jwtMgr.ParseAccessToken(token)
		if err != nil {
			response.AbortUnauthorized(c, "invalid or expired token")
			return
		}

		if rdb != nil {
			data, err := rdb.HGetAll(c.Request.Context(), "user:session:"+claims.UserID).Result()
			if err != nil || len(data) == 0 || data["sid"] != claims.SessionID {
				response.AbortUnauthorized(c, "session expired")
				return
			}
		}

		c.Set("userID", claims.UserID)
		c.Next()
	}
}
