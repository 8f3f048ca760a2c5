package api

import (
	"errors"
	"net/http"
	"strconv"

	"carousel-builder/internal/carousel"
	"carousel-builder/internal/exports"

	"github.com/gin-gonic/gin"
)

type ExportHandler struct {
	Store *exports.Store
}

func NewExportHandler(store *exports.Store) *ExportHandler {
	return &ExportHandler{Store: store}
}

// GetExports returns the export history, newest first. A non-positive limit
// falls back to the default.
func (h *ExportHandler) GetExports(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(exports.DefaultLimit)))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be an integer"})
		return
	}

	records, err := h.Store.List(c.Request.Context(), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, records)
}

// Download serves a recorded document as a template.json attachment
func (h *ExportHandler) Download(c *gin.Context) {
	rec, err := h.Store.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, exports.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Export not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.Header("Content-Disposition", "attachment; filename="+carousel.DownloadName)
	c.Data(http.StatusOK, "application/json", []byte(rec.Document))
}
