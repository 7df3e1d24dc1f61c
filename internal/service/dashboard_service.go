package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"photobooth/internal/domain"
	"photobooth/internal/repository"
)

const (
	statsCacheKey = "admin:stats"
	statsCacheTTL = 60 * time.Second
)

type DashboardService interface {
	GetStats(ctx context.Context) (*domain.PhotoStats, error)
}

type dashboardService struct {
	photoRepo repository.PhotoRepository
	redis     *redis.Client
}

func NewDashboardService(photoRepo repository.PhotoRepository, redis *redis.Client) DashboardService {
	return &dashboardService{
		photoRepo: photoRepo,
		redis:     redis,
	}
}

// GetStats aggregates photo counts for the admin dashboard. Results are
// cached in Redis for a minute; the cache is fail-open and the service works
// without a Redis client at all.
func (s *dashboardService) GetStats(ctx context.Context) (*domain.PhotoStats, error) {
	if s.redis != nil {
		if cached, err := s.redis.Get(ctx, statsCacheKey).Result(); err == nil {
			var stats domain.PhotoStats
			if json.Unmarshal([]byte(cached), &stats) == nil {
				return &stats, nil
			}
		}
	}

	stats, err := s.photoRepo.Stats(ctx)
	if err != nil {
		return nil, err
	}

	if s.redis != nil {
		if payload, err := json.Marshal(stats); err == nil {
			s.redis.Set(ctx, statsCacheKey, payload, statsCacheTTL)
		}
	}

	return stats, nil
}
