package service

import (
	"github.com/redis/go-redis/v9"

	"photobooth/internal/config"
	"photobooth/internal/repository"
	"photobooth/internal/storage"
)

type Services struct {
	Photo     PhotoService
	Dashboard DashboardService
}

func NewServices(repos *repository.Repositories, redisClient *redis.Client, blobs storage.BlobStore, cfg *config.Config) *Services {
	return &Services{
		Photo:     NewPhotoService(repos.Photo, blobs, cfg),
		Dashboard: NewDashboardService(repos.Photo, redisClient),
	}
}
