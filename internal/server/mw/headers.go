package mw

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Abdulah-eng/driverApp/internal/config"
	"github.com/Abdulah-eng/driverApp/internal/server/resp"
)

const (
	HeaderDeviceType  = "X-Device-Type"
	HeaderClientToken = "X-Client-Token"
)

// RequireBaseHeaders gates the API to known app builds: every request must
// name its device type and carry the client token when one is configured.
func RequireBaseHeaders(cfg config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		device := strings.ToLower(strings.TrimSpace(c.GetHeader(HeaderDeviceType)))
		if device == "" {
			resp.Error(c, http.StatusBadRequest, "missing required header: X-Device-Type")
			c.Abort()
			return
		}
		switch device {
		case "ios", "android", "web":
		default:
			resp.Error(c, http.StatusBadRequest, "invalid X-Device-Type (allowed: ios, android, web)")
			c.Abort()
			return
		}

		if cfg.ClientTokenExpected != "" {
			token := strings.TrimSpace(c.GetHeader(HeaderClientToken))
			if token != cfg.ClientTokenExpected {
				resp.Error(c, http.StatusUnauthorized, "invalid X-Client-Token")
				c.Abort()
				return
			}
		}

		c.Next()
	}
}
