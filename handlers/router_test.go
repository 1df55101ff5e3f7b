package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"checkin-backend/models"
	"checkin-backend/store"
)

var registerOnce sync.Once

func testRouter(t *testing.T) (*gin.Engine, *store.MemoryStore) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			t.Fatal("unexpected binding validator engine")
		}
		if err := models.RegisterValidators(v); err != nil {
			t.Fatalf("register validators: %v", err)
		}
	})

	s := store.NewMemory()
	logger := zap.NewNop()
	eventHandler := NewEventHandler(s, logger)
	checkinHandler := NewCheckinHandler(s, logger)

	router := gin.New()
	api := router.Group("/api")
	api.POST("/events", eventHandler.CreateEvent)
	api.GET("/events", eventHandler.GetEvents)
	api.GET("/events/by-name/:name", eventHandler.GetEventByName)
	api.GET("/events/:id", eventHandler.GetEvent)
	api.PATCH("/events/:id", eventHandler.UpdateEvent)
	api.PATCH("/events/:id/archive", eventHandler.UpdateArchiveStatus)
	api.DELETE("/events/:id", eventHandler.DeleteEvent)
	api.POST("/events/:id/verify-admin", eventHandler.VerifyAdmin)
	api.GET("/events/:id/qr", eventHandler.QRCode)
	api.POST("/checkins", checkinHandler.CreateCheckin)
	api.GET("/events/:id/checkins", checkinHandler.GetCheckinsByEvent)
	api.GET("/events/:id/export", checkinHandler.ExportCheckins)

	return router, s
}

func doRequest(t *testing.T, router *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeEvent(t *testing.T, w *httptest.ResponseRecorder) models.Event {
	t.Helper()
	var event models.Event
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &event))
	return event
}

// createTestEvent provisions an event through the API and fails the test on
// anything but success.
func createTestEvent(t *testing.T, router *gin.Engine, body map[string]any) models.Event {
	t.Helper()
	w := doRequest(t, router, http.MethodPost, "/api/events", body)
	require.Equal(t, http.StatusOK, w.Code, "create event failed: %s", w.Body.String())
	return decodeEvent(t, w)
}
