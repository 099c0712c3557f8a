package handlers

import (
	"net/http"

	"laundry-backend/internal/timeutil"
)

type HealthHandler struct{}

func NewHealthHandler() *HealthHandler {
	return &HealthHandler{}
}

func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status": "ok",
		"time":   timeutil.Now().Format("2006-01-02 15:04:05"),
	})
}
