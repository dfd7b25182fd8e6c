package http

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/orris-inc/leadrouter/internal/interfaces/http/handlers/lead"
	"github.com/orris-inc/leadrouter/internal/interfaces/http/middleware"
	"github.com/orris-inc/leadrouter/internal/shared/logger"
)

// NewRouter assembles the gin engine for the lead-routing HTTP surface:
// ingestion and manual reassignment behind the ingress-secret middleware,
// plus unauthenticated health and metrics endpoints.
func NewRouter(leadHandler *lead.Handler, ingressSecret *middleware.IngressSecretMiddleware, log logger.Interface) *gin.Engine {
	engine := gin.New()
	engine.Use(middleware.Recovery(), middleware.Logger(log))

	engine.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := engine.Group("/v1")
	v1.Use(ingressSecret.RequireSecret())
	{
		v1.POST("/leads", leadHandler.CreateLead)
		v1.POST("/leads/:id/reassign", leadHandler.ReassignLead)
	}

	return engine
}
