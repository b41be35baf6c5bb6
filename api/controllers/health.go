package controllers

import (
	"context"
	"net/http"

	"github.com/gamestore/admin-backend/api/responses"
)

type pinger interface {
	Ping(ctx context.Context) error
}

// HealthLive always answers ok while the process is serving.
func HealthLive() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}

// HealthReady checks the datasources and reports per-dependency status.
func HealthReady(db, cache pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		status := http.StatusOK
		checks := map[string]string{}

		checks["database"] = "ok"
		if db == nil {
			checks["database"] = "not configured"
			status = http.StatusServiceUnavailable
		} else if err := db.Ping(ctx); err != nil {
			checks["database"] = "unreachable"
			status = http.StatusServiceUnavailable
		}

		checks["redis"] = "ok"
		if cache == nil {
			checks["redis"] = "not configured"
			status = http.StatusServiceUnavailable
		} else if err := cache.Ping(ctx); err != nil {
			checks["redis"] = "unreachable"
			status = http.StatusServiceUnavailable
		}

		overall := "ok"
		if status != http.StatusOK {
			overall = "degraded"
		}
		responses.WriteJSON(w, status, map[string]any{
			"status": overall,
			"checks": checks,
		})
	}
}
