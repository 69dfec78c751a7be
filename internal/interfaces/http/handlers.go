package http

import (
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/garyjia/billed/internal/application/port"
	"github.com/garyjia/billed/internal/domain/apperr"
	"github.com/garyjia/billed/internal/domain/entity"
)

// Handlers contains the store API handlers
type Handlers struct {
	stores port.StoreProvider
	health HealthFunc
	logger Logger
}

// NewHandlers creates a new Handlers instance
func NewHandlers(stores port.StoreProvider, health HealthFunc, logger Logger) *Handlers {
	return &Handlers{
		stores: stores,
		health: health,
		logger: logger,
	}
}

// Response represents a standard JSON response
type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status     string      `json:"status"`
	Timestamp  string      `json:"timestamp"`
	Version    string      `json:"version"`
	Components interface{} `json:"components,omitempty"`
}

// HealthCheck handles GET /health
func (h *Handlers) HealthCheck(c *gin.Context) {
	response := HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Version:   "1.0.0",
	}

	status := http.StatusOK
	if h.health != nil {
		healthy, components := h.health()
		response.Components = components
		if !healthy {
			response.Status = "unhealthy"
			status = http.StatusServiceUnavailable
		}
	}

	c.JSON(status, Response{
		Success: status == http.StatusOK,
		Data:    response,
	})
}

// ListBills handles GET /api/bills
func (h *Handlers) ListBills(c *gin.Context) {
	user := currentUser(c)

	bills, err := h.stores.ForUser(user).List(c.Request.Context())
	if err != nil {
		h.respondError(c, "list", err)
		return
	}
	if bills == nil {
		bills = []entity.Bill{}
	}

	c.JSON(http.StatusOK, Response{
		Success: true,
		Data:    bills,
	})
}

// CreateBill handles POST /api/bills (multipart, field "file")
func (h *Handlers) CreateBill(c *gin.Context) {
	user := currentUser(c)

	header, err := c.FormFile("file")
	if err != nil {
		h.logger.Warn("Missing receipt file", "email", user.Email, "error", err)
		c.JSON(http.StatusBadRequest, Response{
			Success: false,
			Error:   "missing file",
		})
		return
	}

	file, err := header.Open()
	if err != nil {
		h.respondError(c, "create", err)
		return
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		h.respondError(c, "create", err)
		return
	}

	result, err := h.stores.ForUser(user).Create(c.Request.Context(), &port.UploadRequest{
		FileName:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Content:     content,
		Email:       user.Email,
	})
	if err != nil {
		h.respondError(c, "create", err)
		return
	}

	c.JSON(http.StatusCreated, Response{
		Success: true,
		Data:    result,
	})
}

// UpdateBill handles PATCH /api/bills/:key
func (h *Handlers) UpdateBill(c *gin.Context) {
	user := currentUser(c)
	key := c.Param("key")

	var bill entity.Bill
	if err := c.ShouldBindJSON(&bill); err != nil {
		h.logger.Warn("Invalid bill payload", "key", key, "error", err)
		c.JSON(http.StatusBadRequest, Response{
			Success: false,
			Error:   "invalid bill payload",
		})
		return
	}

	updated, err := h.stores.ForUser(user).Update(c.Request.Context(), key, &bill)
	if err != nil {
		h.respondError(c, "update", err)
		return
	}

	c.JSON(http.StatusOK, Response{
		Success: true,
		Data:    updated,
	})
}

// respondError writes err in the envelope with the status it carries
func (h *Handlers) respondError(c *gin.Context, op string, err error) {
	status := errorStatus(err)

	message := err.Error()
	var transportErr *apperr.TransportError
	if errors.As(err, &transportErr) && transportErr.Err != nil {
		message = transportErr.Err.Error()
	}

	h.logger.Error("Store API request failed", "op", op, "status", status, "error", err)
	c.JSON(status, Response{
		Success: false,
		Error:   message,
	})
}
