package controllers

import (
	"fmt"
	"net/http"
	"swiperank/internal/catalog"
	"swiperank/internal/services"
	"time"
)

type HealthController struct {
	swipes    services.SwipeServiceInterface
	catalog   catalog.CatalogServiceInterface
	startTime time.Time
}

type healthResponse struct {
	Status          string  `json:"status"`
	Uptime          string  `json:"uptime"`
	UptimeSeconds   float64 `json:"uptime_seconds"`
	CatalogProducts int     `json:"catalog_products"`
	UsersInMemory   int     `json:"users_in_memory"`
	PendingWrites   int     `json:"pending_writes"`
}

func (hc *HealthController) Health(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}

	uptime := time.Since(hc.startTime)
	writeJSON(w, http.StatusOK, healthResponse{
		Status:          "ok",
		Uptime:          formatDuration(uptime),
		UptimeSeconds:   uptime.Seconds(),
		CatalogProducts: hc.catalog.Len(),
		UsersInMemory:   hc.swipes.UsersInMemory(),
		PendingWrites:   hc.swipes.DirtyUsers(),
	})
}

func formatDuration(d time.Duration) string {
	hours := int(d.Hours())
	minutes := int(d.Minutes()) % 60
	seconds := int(d.Seconds()) % 60
	return fmt.Sprintf("%dh%dm%ds", hours, minutes, seconds)
}

func NewHealthController(swipes services.SwipeServiceInterface, catalogService catalog.CatalogServiceInterface) *HealthController {
	return &HealthController{
		swipes:    swipes,
		catalog:   catalogService,
		startTime: time.Now(),
	}
}
