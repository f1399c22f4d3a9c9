// Package server assembles the HTTP router for the hunt ledger API.
package server

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"treasure-hunt-service/internal/auth"
	"treasure-hunt-service/internal/handler"
	"treasure-hunt-service/internal/middleware"
	"treasure-hunt-service/internal/pkg/metrics"
)

// Dependencies holds everything the router needs.
type Dependencies struct {
	Authenticator auth.Authenticator
	Hunts         *handler.HuntHandler
	Progress      *handler.ProgressHandler
	Leaderboard   *handler.LeaderboardHandler
	Health        *handler.HealthHandler
	Metrics       *metrics.Metrics
	Registry      *prometheus.Registry
}

// NewRouter builds the gin engine with all routes and middleware.
func NewRouter(deps *Dependencies) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.Metrics(deps.Metrics))

	router.GET("/healthz", deps.Health.Check)
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(deps.Registry, promhttp.HandlerOpts{})))

	api := router.Group("/api/v1")

	// Public reads.
	api.GET("/hunts", deps.Hunts.List)
	api.GET("/hunt-ids", deps.Hunts.ListIDs)
	api.GET("/hunts/:id", deps.Hunts.Get)
	api.GET("/players/:player/progress", deps.Progress.GetProgress)
	api.GET("/leaderboard", deps.Leaderboard.Get)

	// Mutations require a proven principal.
	authed := api.Group("")
	authed.Use(middleware.Auth(deps.Authenticator))
	authed.POST("/initialize", deps.Hunts.Initialize)
	authed.POST("/hunts", deps.Hunts.Create)
	authed.POST("/hunts/:id/submissions", deps.Progress.Submit)

	return router
}
