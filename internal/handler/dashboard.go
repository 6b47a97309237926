package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/clasnet-dev/field-service/backend/internal/domain"
	"github.com/redis/go-redis/v9"
)

const statsCacheKey = "dashboard:stats"

func (h *Handler) GetDashboardStats(w http.ResponseWriter, r *http.Request) {
	if stats, ok := h.cachedStats(r.Context()); ok {
		h.successResponse(w, r, "berhasil mengambil statistik", stats)
		return
	}

	stats, err := h.repository.GetDashboardStats(h.now())
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	if h.redisClient != nil {
		if data, err := json.Marshal(stats); err == nil {
			ctx, cancel := context.WithTimeout(r.Context(), time.Duration(h.config.Redis.OperationExpiration)*time.Second)
			defer cancel()
			ttl := time.Duration(h.config.Redis.StatsExpiration) * time.Second
			if err := h.redisClient.Set(ctx, statsCacheKey, data, ttl).Err(); err != nil {
				slog.Warn("failed to cache dashboard stats", "error", err)
			}
		}
	}

	h.successResponse(w, r, "berhasil mengambil statistik", stats)
}

func (h *Handler) cachedStats(ctx context.Context) (*domain.DashboardStats, bool) {
	if h.redisClient == nil {
		return nil, false
	}

	ctx, cancel := context.WithTimeout(ctx, time.Duration(h.config.Redis.OperationExpiration)*time.Second)
	defer cancel()

	data, err := h.redisClient.Get(ctx, statsCacheKey).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			slog.Warn("failed to read cached dashboard stats", "error", err)
		}
		return nil, false
	}

	stats := &domain.DashboardStats{}
	if err := json.Unmarshal(data, stats); err != nil {
		return nil, false
	}
	return stats, true
}

// invalidateStats drops the cached dashboard numbers after a write.
func (h *Handler) invalidateStats(ctx context.Context) {
	if h.redisClient == nil {
		return
	}

	ctx, cancel := context.WithTimeout(ctx, time.Duration(h.config.Redis.OperationExpiration)*time.Second)
	defer cancel()

	if err := h.redisClient.Del(ctx, statsCacheKey).Err(); err != nil {
		slog.Warn("failed to invalidate dashboard stats", "error", err)
	}
}
