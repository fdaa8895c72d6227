package postgre

import (
	"database/sql"

	"ticket-srv/internal/bulk/repository"
	"ticket-srv/pkg/log"
)

// implRepository implements repository.Repository
type implRepository struct {
	db *sql.DB
	l  log.Logger
}

// New creates a new PostgreSQL repository for the bulk domain
func New(db *sql.DB, l log.Logger) repository.Repository {
	return &implRepository{
		db: db,
		l:  l,
	}
}
