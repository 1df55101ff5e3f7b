package handlers

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"checkin-backend/models"
	"checkin-backend/store"
)

type CheckinHandler struct {
	store  store.Store
	logger *zap.Logger
}

func NewCheckinHandler(s store.Store, logger *zap.Logger) *CheckinHandler {
	return &CheckinHandler{
		store:  s,
		logger: logger.Named("checkins"),
	}
}

// CreateCheckin admits a single attendee. The checks run in a fixed order:
// unknown event, then archived, then duplicate — so a repeat attendee at an
// archived event is told the event is closed, not that they already
// checked in.
func (h *CheckinHandler) CreateCheckin(c *gin.Context) {
	var req models.CreateCheckinRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid check-in data", "errors": err.Error()})
		return
	}

	ctx := c.Request.Context()

	event, err := h.store.GetEvent(ctx, req.EventID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Event not found"})
			return
		}
		h.logger.Error("failed to get event", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to create check-in"})
		return
	}

	if event.Archived {
		c.JSON(http.StatusForbidden, gin.H{"message": "Check-ins are closed for this event"})
		return
	}

	_, err = h.store.GetCheckinByEventAndEmployee(ctx, req.EventID, req.EmployeeID)
	if err == nil {
		c.JSON(http.StatusConflict, gin.H{"message": "You've already checked in for this event."})
		return
	}
	if !errors.Is(err, store.ErrNotFound) {
		h.logger.Error("failed to check for existing check-in", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to create check-in"})
		return
	}

	checkin := &models.Checkin{
		EventID:    req.EventID,
		EmployeeID: req.EmployeeID,
	}

	if err := h.store.CreateCheckin(ctx, checkin); err != nil {
		// Concurrent duplicate submissions can slip past the lookup above;
		// the store's uniqueness rule catches them here.
		if errors.Is(err, store.ErrDuplicateCheckin) {
			c.JSON(http.StatusConflict, gin.H{"message": "You've already checked in for this event."})
			return
		}
		h.logger.Error("failed to create check-in", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to create check-in"})
		return
	}

	h.logger.Info("check-in created",
		zap.String("event_id", checkin.EventID),
		zap.String("employee_id", checkin.EmployeeID))
	c.JSON(http.StatusOK, checkin)
}

func (h *CheckinHandler) GetCheckinsByEvent(c *gin.Context) {
	checkins, err := h.store.GetCheckinsWithEvent(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.logger.Error("failed to list check-ins", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to get check-ins"})
		return
	}
	c.JSON(http.StatusOK, checkins)
}

// ExportCheckins renders an event's check-ins as a CSV download with the
// event name and date embedded in the suggested filename.
func (h *CheckinHandler) ExportCheckins(c *gin.Context) {
	checkins, err := h.store.GetCheckinsWithEvent(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.logger.Error("failed to load check-ins for export", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to export check-ins"})
		return
	}

	if len(checkins) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"message": "No check-ins found"})
		return
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	w.Write([]string{"Employee ID", "Check-in Time", "Event Name"})
	for _, checkin := range checkins {
		w.Write([]string{
			checkin.EmployeeID,
			checkin.Timestamp.UTC().Format(time.RFC3339),
			checkin.Event.Name,
		})
	}
	w.Flush()
	if err := w.Error(); err != nil {
		h.logger.Error("failed to write CSV", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to export check-ins"})
		return
	}

	event := checkins[0].Event
	filename := fmt.Sprintf("%s_%s_checkins.csv", event.Name, event.Date)

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "text/csv", buf.Bytes())
}
