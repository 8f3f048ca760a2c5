package api

import (
	"time"

	"carousel-builder/internal/exports"
	"carousel-builder/internal/logging"

	"github.com/gin-gonic/gin"
)

// NewRouter wires every API route. events may be nil.
func NewRouter(lib Library, store *exports.Store, events Notifier) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), RequestLogger(), CORS())

	carouselHandler := NewCarouselHandler(store, events)
	libraryHandler := NewLibraryHandler(lib, events)
	exportHandler := NewExportHandler(store)

	apiGroup := r.Group("/api")
	{
		carouselGroup := apiGroup.Group("/carousel")
		{
			carouselGroup.POST("/variables", carouselHandler.Variables)
			carouselGroup.POST("/collect", carouselHandler.Collect)
			carouselGroup.POST("/twilio", carouselHandler.Twilio)
			carouselGroup.POST("/jaiminho", carouselHandler.Jaiminho)
			carouselGroup.POST("/import", carouselHandler.Import)
		}

		libraryGroup := apiGroup.Group("/library")
		{
			libraryGroup.GET("", libraryHandler.GetNames)
			libraryGroup.GET("/templates/:name", libraryHandler.GetTemplate)
			libraryGroup.PUT("/templates/:name", libraryHandler.SaveTemplate)
			libraryGroup.DELETE("/templates/:name", libraryHandler.DeleteTemplate)
			libraryGroup.GET("/blob", libraryHandler.ExportBlob)
			libraryGroup.POST("/blob", libraryHandler.ImportBlob)
		}

		apiGroup.GET("/exports", exportHandler.GetExports)
		apiGroup.GET("/exports/:id/download", exportHandler.Download)
	}

	return r
}

// CORS allows the editor to be served from any origin
func CORS() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE")
		c.Writer.Header().Set("Access-Control-Expose-Headers", "X-Export-ID, Content-Disposition")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}

// RequestLogger logs one line per request through zerolog
func RequestLogger() gin.HandlerFunc {
	log := logging.Component("http")
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		event := log.Info()
		if c.Writer.Status() >= 500 {
			event = log.Error()
		}
		event.
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Dur("latency", time.Since(start)).
			Msg("request")
	}
}
