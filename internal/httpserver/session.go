package httpserver

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// sessionHeader identifies the shopper's cart session. The middleware issues
// an id when the client does not send one and always echoes it back so the
// storefront can persist it.
const sessionHeader = "X-Cart-Session"

const sessionKey = "cartSession"

func cartSessionMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		session := strings.TrimSpace(c.GetHeader(sessionHeader))
		if session == "" {
			session = uuid.NewString()
		}
		c.Set(sessionKey, session)
		c.Header(sessionHeader, session)
		c.Next()
	}
}

func sessionID(c *gin.Context) string {
	return c.GetString(sessionKey)
}
