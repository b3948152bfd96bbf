package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/scanlens/backend/internal/domain"
	"github.com/scanlens/backend/internal/usecase"
)

// Handler holds dependencies for HTTP handlers
type Handler struct {
	scanService *usecase.ScanService
	cache       domain.ProductCache
}

// NewHandler creates a new HTTP handler
func NewHandler(scanService *usecase.ScanService, cache domain.ProductCache) *Handler {
	return &Handler{
		scanService: scanService,
		cache:       cache,
	}
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "scanlens-backend",
		"version": "1.0.0",
	})
}

// scanRequest is the body of a raw scan event
type scanRequest struct {
	Barcode string `json:"barcode" binding:"required"`
}

// SubmitScan feeds a raw scan event into the debouncer and returns the
// resulting session snapshot. A debounced event is reported as accepted=false
// with 200, not as an error: dropping duplicates is expected behavior.
func (h *Handler) SubmitScan(c *gin.Context) {
	var req scanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "barcode is required"})
		return
	}

	err := h.scanService.HandleScan(req.Barcode)
	if err != nil && !errors.Is(err, domain.ErrScanRejected) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"accepted": err == nil,
		"session":  h.scanService.State(),
	})
}

// GetSession returns the current session state snapshot
func (h *Handler) GetSession(c *gin.Context) {
	c.JSON(http.StatusOK, h.scanService.State())
}

// StartSession resets session state and enables capture
func (h *Handler) StartSession(c *gin.Context) {
	h.scanService.StartScanning()
	c.JSON(http.StatusOK, h.scanService.State())
}

// StopSession disables capture, keeping the last result observable
func (h *Handler) StopSession(c *gin.Context) {
	h.scanService.StopScanning()
	c.JSON(http.StatusOK, h.scanService.State())
}

// GetProduct resolves a barcode imperatively: cache-first, then remote
func (h *Handler) GetProduct(c *gin.Context) {
	barcode := c.Param("barcode")

	record, err := h.scanService.LookupProduct(c.Request.Context(), barcode)
	if err != nil {
		status := statusForError(err)
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, record)
}

// ClearCache discards every cached product record
func (h *Handler) ClearCache(c *gin.Context) {
	if err := h.cache.Clear(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"cleared": true})
}

// statusForError maps the lookup error taxonomy to HTTP status codes
func statusForError(err error) int {
	switch {
	case errors.Is(err, domain.ErrProductNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrInvalidRequest), errors.Is(err, domain.ErrInvalidEndpoint):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrTransportFailure),
		errors.Is(err, domain.ErrEmptyResponse),
		errors.Is(err, domain.ErrDecodeFailure):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
