package main

import (
	"carousel-builder/internal/api"
	"carousel-builder/internal/config"
	"carousel-builder/internal/database"
	"carousel-builder/internal/exports"
	"carousel-builder/internal/library"
	"carousel-builder/internal/logging"
	"carousel-builder/internal/ws"

	"github.com/gin-gonic/gin"
)

func main() {
	cfg := config.LoadConfig()
	logging.Init(cfg.LogLevel, cfg.LogPretty)
	log := logging.Component("server")

	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	}

	database.InitGorm(cfg)

	hub := ws.NewHub()
	go hub.Run()

	r := api.NewRouter(
		library.NewGormRepository(database.GormDB),
		exports.NewStore(database.GormDB),
		hub,
	)

	// Live library and export events
	r.GET("/ws", gin.WrapF(hub.ServeWs))

	log.Info().Str("port", cfg.Port).Msg("server starting")
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal().Err(err).Msg("failed to run server")
	}
}
