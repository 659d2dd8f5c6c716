package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/benvon/day-planner/internal/queue"
	"github.com/benvon/day-planner/internal/store"
	"github.com/redis/go-redis/v9"
)

// HealthChecker handles health check requests. Optional dependencies may be
// nil; their checks are skipped.
type HealthChecker struct {
	plans       store.PlanStore
	jobQueue    queue.JobQueue
	redisClient *redis.Client
}

// NewHealthChecker creates a new health checker
func NewHealthChecker(plans store.PlanStore, jobQueue queue.JobQueue, redisClient *redis.Client) *HealthChecker {
	return &HealthChecker{plans: plans, jobQueue: jobQueue, redisClient: redisClient}
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status    string            `json:"status"`
	Timestamp string            `json:"timestamp"`
	Checks    map[string]string `json:"checks,omitempty"`
}

// HealthCheck handles the /healthz endpoint
func (h *HealthChecker) HealthCheck(w http.ResponseWriter, r *http.Request) {
	mode := r.URL.Query().Get("mode")

	response := HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}

	if mode == "extended" {
		checks := make(map[string]string)

		if h.plans != nil {
			if err := h.checkPlanStore(r.Context()); err != nil {
				response.Status = "unhealthy"
				checks["plan_store"] = "unhealthy: " + err.Error()
			} else {
				checks["plan_store"] = "healthy"
			}
		}
		if h.jobQueue != nil {
			if err := h.jobQueue.HealthCheck(r.Context()); err != nil {
				response.Status = "unhealthy"
				checks["queue"] = "unhealthy: " + err.Error()
			} else {
				checks["queue"] = "healthy"
			}
		}
		if h.redisClient != nil {
			if err := h.checkRedis(r.Context()); err != nil {
				response.Status = "unhealthy"
				checks["redis"] = "unhealthy: " + err.Error()
			} else {
				checks["redis"] = "healthy"
			}
		}

		response.Checks = checks

		statusCode := http.StatusOK
		if response.Status == "unhealthy" {
			statusCode = http.StatusServiceUnavailable
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(statusCode)
		_ = json.NewEncoder(w).Encode(response)
		return
	}

	// Basic mode just reports the server is running
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(response)
}

func (h *HealthChecker) checkPlanStore(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	return h.plans.HealthCheck(ctx)
}

func (h *HealthChecker) checkRedis(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	return h.redisClient.Ping(ctx).Err()
}
