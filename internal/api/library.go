package api

import (
	"context"
	"errors"
	"io"
	"net/http"

	"carousel-builder/internal/carousel"
	"carousel-builder/internal/library"
	"carousel-builder/internal/ws"

	"github.com/gin-gonic/gin"
)

// Library is the named template store plus whole-library blob transfer.
type Library interface {
	library.Repository
	Export(ctx context.Context) (library.Blob, error)
	Import(ctx context.Context, blob library.Blob) (int, error)
}

type LibraryHandler struct {
	Library Library
	Events  Notifier
}

func NewLibraryHandler(lib Library, events Notifier) *LibraryHandler {
	return &LibraryHandler{Library: lib, Events: events}
}

// GetNames lists saved template names
func (h *LibraryHandler) GetNames(c *gin.Context) {
	names, err := h.Library.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, names)
}

func (h *LibraryHandler) GetTemplate(c *gin.Context) {
	tpl, err := h.Library.Get(c.Request.Context(), c.Param("name"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"template": tpl, "input": tpl.Input()})
}

// SaveTemplate collects the posted form input and stores it under :name
func (h *LibraryHandler) SaveTemplate(c *gin.Context) {
	name := c.Param("name")

	var in carousel.TemplateInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	tpl := carousel.Collect(in)
	if err := h.Library.Put(c.Request.Context(), name, tpl); err != nil {
		h.respondError(c, err)
		return
	}

	h.notify("saved", name)
	c.JSON(http.StatusOK, gin.H{"status": "Template saved", "template": tpl})
}

func (h *LibraryHandler) DeleteTemplate(c *gin.Context) {
	name := c.Param("name")
	if err := h.Library.Delete(c.Request.Context(), name); err != nil {
		h.respondError(c, err)
		return
	}

	h.notify("deleted", name)
	c.JSON(http.StatusOK, gin.H{"status": "Template deleted"})
}

// ExportBlob returns the whole library in the browser editor's storage shape
func (h *LibraryHandler) ExportBlob(c *gin.Context) {
	blob, err := h.Library.Export(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, blob)
}

// ImportBlob upserts every entry of a browser library blob
func (h *LibraryHandler) ImportBlob(c *gin.Context) {
	raw, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read body"})
		return
	}

	blob, err := library.ParseBlob(raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	count, err := h.Library.Import(c.Request.Context(), blob)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	h.notify("imported", "")
	c.JSON(http.StatusOK, gin.H{"status": "Library imported", "count": count})
}

func (h *LibraryHandler) notify(action, name string) {
	if h.Events == nil {
		return
	}
	h.Events.BroadcastEvent(ws.EventLibraryUpdated, gin.H{"action": action, "name": name})
}

func (h *LibraryHandler) respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, library.ErrEmptyName):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Template name required"})
	case errors.Is(err, library.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Template not found"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
