package repository

import (
	"github.com/jmoiron/sqlx"
)

type Repositories struct {
	Photo PhotoRepository
}

func NewRepositories(db *sqlx.DB) *Repositories {
	return &Repositories{
		Photo: NewPhotoRepository(db),
	}
}
