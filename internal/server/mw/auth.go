package mw

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Abdulah-eng/driverApp/internal/security"
	"github.com/Abdulah-eng/driverApp/internal/server/resp"
)

const CtxUserID = "user_id"

// RequireUser validates the bearer access token and puts the user id on the
// request context. Everything behind it can assume an authenticated caller.
func RequireUser(jwtm *security.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := strings.TrimSpace(c.GetHeader("Authorization"))
		raw = strings.TrimPrefix(raw, "Bearer ")
		if raw == "" {
			resp.Error(c, http.StatusUnauthorized, "missing bearer token")
			c.Abort()
			return
		}
		id, err := jwtm.ParseAccess(raw)
		if err != nil || id == uuid.Nil {
			resp.Error(c, http.StatusUnauthorized, "invalid bearer token")
			c.Abort()
			return
		}
		c.Set(CtxUserID, id)
		c.Next()
	}
}
