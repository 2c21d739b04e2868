package controllers

import (
	"net/http"
	"strings"

	json "github.com/goccy/go-json"
	"github.com/spf13/cast"
)

const (
	maxRequestBodySize = 1 << 20 // 1 MB
	defaultUser        = "default"
)

func getUser(r *http.Request) string {
	u := strings.TrimSpace(r.URL.Query().Get("u"))
	if u == "" {
		return defaultUser
	}
	return u
}

func bodyUser(u string) string {
	u = strings.TrimSpace(u)
	if u == "" {
		return defaultUser
	}
	return u
}

// getLimit reads ?limit=. Missing, invalid or non-positive means no limit.
func getLimit(r *http.Request) int {
	limit, err := cast.ToIntE(r.URL.Query().Get("limit"))
	if err != nil || limit < 0 {
		return 0
	}
	return limit
}

func applyLimit[T any](items []T, limit int) []T {
	if limit > 0 && len(items) > limit {
		return items[:limit]
	}
	return items
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	gson, err := json.Marshal(v)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(gson)
}
