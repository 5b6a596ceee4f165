// Package cookie manages the HttpOnly access_token cookie set at login.
package cookie

import (
	"net/http"
	"time"

	"roadready/internal/pkg/config"

	"github.com/gin-gonic/gin"
)

const AccessTokenCookieName = "access_token"

var sameSiteModes = map[string]http.SameSite{
	"Strict": http.SameSiteStrictMode,
	"Lax":    http.SameSiteLaxMode,
	"None":   http.SameSiteNoneMode,
}

func SetAccessToken(c *gin.Context, cfg config.CookieConfig, token string, ttl time.Duration) {
	write(c, cfg, token, int(ttl.Seconds()))
}

// ClearAccessToken expires the cookie immediately.
func ClearAccessToken(c *gin.Context, cfg config.CookieConfig) {
	write(c, cfg, "", -1)
}

func GetAccessToken(c *gin.Context) string {
	token, err := c.Cookie(AccessTokenCookieName)
	if err != nil {
		return ""
	}
	return token
}

func write(c *gin.Context, cfg config.CookieConfig, value string, maxAge int) {
	mode, ok := sameSiteModes[cfg.SameSite]
	if !ok {
		mode = http.SameSiteLaxMode
	}
	c.SetSameSite(mode)
	c.SetCookie(AccessTokenCookieName, value, maxAge, "/", cfg.Domain, cfg.Secure, true)
}
