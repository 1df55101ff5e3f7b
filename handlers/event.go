package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"
	qrcode "github.com/skip2/go-qrcode"
	"go.uber.org/zap"

	"checkin-backend/models"
	"checkin-backend/store"
)

type EventHandler struct {
	store  store.Store
	logger *zap.Logger
}

func NewEventHandler(s store.Store, logger *zap.Logger) *EventHandler {
	return &EventHandler{
		store:  s,
		logger: logger.Named("events"),
	}
}

func (h *EventHandler) CreateEvent(c *gin.Context) {
	var req models.CreateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid event data", "errors": err.Error()})
		return
	}

	// The password is only meaningful on protected events; require it there
	// and drop it everywhere else.
	var adminPassword *string
	if req.PasswordProtected {
		if strings.TrimSpace(req.AdminPassword) == "" {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Admin password is required for password protected events"})
			return
		}
		adminPassword = &req.AdminPassword
	}

	event := &models.Event{
		Name:              strings.TrimSpace(req.Name),
		Date:              req.Date,
		PasswordProtected: req.PasswordProtected,
		AdminPassword:     adminPassword,
	}

	if err := h.store.CreateEvent(c.Request.Context(), event); err != nil {
		h.logger.Error("failed to create event", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to create event"})
		return
	}

	h.logger.Info("event created", zap.String("event_id", event.ID), zap.String("name", event.Name))
	c.JSON(http.StatusOK, event)
}

func (h *EventHandler) GetEvent(c *gin.Context) {
	event, err := h.store.GetEvent(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Event not found"})
			return
		}
		h.logger.Error("failed to get event", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to get event"})
		return
	}
	c.JSON(http.StatusOK, event)
}

func (h *EventHandler) GetEventByName(c *gin.Context) {
	name := c.Param("name")
	if decoded, err := url.PathUnescape(name); err == nil {
		name = decoded
	}

	event, err := h.store.GetEventByName(c.Request.Context(), name)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Event not found"})
			return
		}
		h.logger.Error("failed to get event by name", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to get event"})
		return
	}
	c.JSON(http.StatusOK, event)
}

func (h *EventHandler) GetEvents(c *gin.Context) {
	events, err := h.store.GetAllEvents(c.Request.Context())
	if err != nil {
		h.logger.Error("failed to list events", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to get events"})
		return
	}
	c.JSON(http.StatusOK, events)
}

func (h *EventHandler) UpdateEvent(c *gin.Context) {
	var req models.UpdateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid event data", "errors": err.Error()})
		return
	}

	if req.Name != nil {
		trimmed := strings.TrimSpace(*req.Name)
		req.Name = &trimmed
	}

	event, err := h.store.UpdateEvent(c.Request.Context(), c.Param("id"), req.Name, req.Date)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Event not found"})
			return
		}
		h.logger.Error("failed to update event", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to update event"})
		return
	}

	h.logger.Info("event updated", zap.String("event_id", event.ID))
	c.JSON(http.StatusOK, event)
}

func (h *EventHandler) UpdateArchiveStatus(c *gin.Context) {
	var req models.UpdateArchiveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "archived field must be a boolean"})
		return
	}

	event, err := h.store.UpdateEventArchiveStatus(c.Request.Context(), c.Param("id"), *req.Archived)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Event not found"})
			return
		}
		h.logger.Error("failed to update archive status", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to update archive status"})
		return
	}

	h.logger.Info("event archive status updated",
		zap.String("event_id", event.ID),
		zap.Bool("archived", event.Archived))
	c.JSON(http.StatusOK, event)
}

func (h *EventHandler) DeleteEvent(c *gin.Context) {
	id := c.Param("id")

	deleted, err := h.store.DeleteEvent(c.Request.Context(), id)
	if err != nil {
		h.logger.Error("failed to delete event", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to delete event"})
		return
	}
	if !deleted {
		c.JSON(http.StatusNotFound, gin.H{"message": "Event not found"})
		return
	}

	h.logger.Info("event deleted", zap.String("event_id", id))
	c.JSON(http.StatusOK, gin.H{"message": "Event deleted successfully"})
}

// VerifyAdmin checks a candidate dashboard password. Events without password
// protection always verify, whatever the candidate is.
func (h *EventHandler) VerifyAdmin(c *gin.Context) {
	var req models.VerifyAdminRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}

	event, err := h.store.GetEvent(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Event not found"})
			return
		}
		h.logger.Error("failed to get event", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to verify password"})
		return
	}

	valid := true
	if event.PasswordProtected {
		valid = event.AdminPassword != nil && *event.AdminPassword == req.Password
	}

	c.JSON(http.StatusOK, models.VerifyAdminResponse{Valid: valid})
}

// QRCode renders the event's check-in URL as a scannable PNG. The origin is
// taken from the request unless the caller overrides it with ?origin=.
func (h *EventHandler) QRCode(c *gin.Context) {
	event, err := h.store.GetEvent(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Event not found"})
			return
		}
		h.logger.Error("failed to get event", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to generate QR code"})
		return
	}

	origin := c.Query("origin")
	if origin == "" {
		scheme := "http"
		if c.Request.TLS != nil {
			scheme = "https"
		}
		origin = fmt.Sprintf("%s://%s", scheme, c.Request.Host)
	}

	checkinURL := fmt.Sprintf("%s/checkin/%s", strings.TrimRight(origin, "/"), event.ID)

	png, err := qrcode.Encode(checkinURL, qrcode.Medium, 256)
	if err != nil {
		h.logger.Error("failed to encode QR code", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to generate QR code"})
		return
	}

	c.Data(http.StatusOK, "image/png", png)
}
