package middleware

import (
	"crypto/hmac"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/orris-inc/leadrouter/internal/shared/logger"
	"github.com/orris-inc/leadrouter/internal/shared/utils"
)

// IngressSecretMiddleware authenticates the lead-ingestion webhook with a
// single shared secret header, compared in constant time. There is no
// end-user auth surface in this service, so a bearer-token or OAuth flow
// would be unused machinery; a header check is all the boundary needs.
type IngressSecretMiddleware struct {
	secret string
	logger logger.Interface
}

func NewIngressSecretMiddleware(secret string, log logger.Interface) *IngressSecretMiddleware {
	return &IngressSecretMiddleware{secret: secret, logger: log}
}

func (m *IngressSecretMiddleware) RequireSecret() gin.HandlerFunc {
	return func(c *gin.Context) {
		provided := c.GetHeader("X-Ingress-Secret")
		if provided == "" || !hmac.Equal([]byte(provided), []byte(m.secret)) {
			m.logger.Warnw("rejected lead ingestion request with invalid ingress secret", "ip", c.ClientIP())
			utils.ErrorResponse(c, http.StatusUnauthorized, "invalid or missing ingress secret")
			c.Abort()
			return
		}
		c.Next()
	}
}
