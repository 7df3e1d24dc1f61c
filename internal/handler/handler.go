package handler

import (
	"github.com/jmoiron/sqlx"

	"photobooth/internal/config"
	"photobooth/internal/service"
)

type Handlers struct {
	Photo  *PhotoHandler
	Admin  *AdminHandler
	Health *HealthHandler
}

func NewHandlers(services *service.Services, db *sqlx.DB, cfg *config.Config) *Handlers {
	return &Handlers{
		Photo:  NewPhotoHandler(services.Photo, cfg),
		Admin:  NewAdminHandler(services.Photo, services.Dashboard),
		Health: NewHealthHandler(db),
	}
}
