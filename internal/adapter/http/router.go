package http

import (
	"log/slog"

	"github.com/aq2208/gorder-workflow/internal/adapter/http/middleware"
	"github.com/aq2208/gorder-workflow/internal/logging"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const PermPlaceOrder = "orders.place"

func NewRouter(l *slog.Logger, h *OrderHandler, th *TokenHandler, authz *middleware.Authz) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.MetricsMiddleware(), middleware.Logging(l))

	r.GET("/healthz", func(c *gin.Context) {
		logging.From(c).Debug("health check")
		c.JSON(200, gin.H{"ok": true})
	})
	// Prometheus endpoint (scraped by Prometheus)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := r.Group("/v1")
	{
		v1.POST("/token", th.IssueToken)
		v1.POST("/orders", authz.Require(PermPlaceOrder), h.PlaceOrder)
	}

	return r
}
