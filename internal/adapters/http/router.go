package http

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"

	"github.com/Masteraddy/teamsbot-test/internal/app/orch"
	"github.com/Masteraddy/teamsbot-test/internal/config"
)

func SetupRouter(cfg *config.Config, o *orch.Orchestrator) *gin.Engine {
	if cfg.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	if cfg.Mode == "debug" {
		r.Use(gin.Logger())
	}
	r.Use(gin.Recovery())

	api := &callsAPI{orch: o, port: cfg.BotExternalPort}

	r.POST("/calls", api.joinCall)
	r.DELETE("/calls", api.endCall)
	r.GET("/health", health)
	r.GET("/test", test)
	r.POST("/test", test)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	log.Info().Str("module", "adapters.http").Msg("router setup")
	return r
}
