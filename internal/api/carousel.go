package api

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strconv"

	"carousel-builder/internal/carousel"
	"carousel-builder/internal/logging"
	"carousel-builder/internal/models"
	"carousel-builder/internal/ws"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// ExportRecorder keeps generated documents for later download.
type ExportRecorder interface {
	Record(ctx context.Context, format string, tpl carousel.Template, document []byte) (*models.ExportRecord, error)
}

// Notifier pushes events to connected editors.
type Notifier interface {
	BroadcastEvent(eventType string, data interface{})
}

type CarouselHandler struct {
	Exports ExportRecorder
	Events  Notifier
	log     zerolog.Logger
}

func NewCarouselHandler(exports ExportRecorder, events Notifier) *CarouselHandler {
	return &CarouselHandler{Exports: exports, Events: events, log: logging.Component("api")}
}

// Variables lists the placeholders used by the posted form input
func (h *CarouselHandler) Variables(c *gin.Context) {
	var in carousel.TemplateInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	tpl := carousel.Collect(in)
	c.JSON(http.StatusOK, gin.H{"variables": tpl.Variables})
}

// Collect returns the template snapshot built from the posted form input
func (h *CarouselHandler) Collect(c *gin.Context) {
	var in carousel.TemplateInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, carousel.Collect(in))
}

// Twilio renders the Twilio Content API document, numbered on ?numbered=true
func (h *CarouselHandler) Twilio(c *gin.Context) {
	numbered, err := strconv.ParseBool(c.DefaultQuery("numbered", "false"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "numbered must be a boolean"})
		return
	}

	var in carousel.TemplateInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	tpl := carousel.Collect(in)
	format := models.FormatTwilio
	if numbered {
		format = models.FormatTwilioNumbered
	}
	h.respondDocument(c, format, tpl, carousel.Twilio(tpl, numbered))
}

// Jaiminho renders the Jaiminho locale-content document
func (h *CarouselHandler) Jaiminho(c *gin.Context) {
	var in carousel.TemplateInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	tpl := carousel.Collect(in)
	h.respondDocument(c, models.FormatJaiminho, tpl, carousel.Jaiminho(tpl))
}

// Import reads a pasted Twilio document back into form input
func (h *CarouselHandler) Import(c *gin.Context) {
	raw, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read body"})
		return
	}
	if len(raw) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "JSON body required"})
		return
	}

	in, err := carousel.ParseTwilioInput(raw)
	if err != nil {
		msg := err.Error()
		if errors.Is(err, carousel.ErrInvalidJSON) {
			msg = carousel.ErrInvalidJSON.Error()
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": msg})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"input":    in,
		"template": carousel.Collect(in),
	})
}

func (h *CarouselHandler) respondDocument(c *gin.Context, format string, tpl carousel.Template, doc interface{}) {
	body, err := carousel.Render(doc)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if h.Exports != nil {
		rec, err := h.Exports.Record(c.Request.Context(), format, tpl, body)
		if err != nil {
			h.log.Error().Err(err).Str("format", format).Msg("failed to record export")
		} else {
			c.Header("X-Export-ID", rec.ID)
			if h.Events != nil {
				h.Events.BroadcastEvent(ws.EventExportCreated, rec)
			}
		}
	}

	c.Data(http.StatusOK, "application/json; charset=utf-8", body)
}
