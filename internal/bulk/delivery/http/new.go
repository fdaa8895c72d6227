package http

import (
	"github.com/gin-gonic/gin"

	"ticket-srv/internal/bulk"
	"ticket-srv/pkg/log"
)

// Handler defines the HTTP handler interface
type Handler interface {
	RegisterRoutes(r *gin.RouterGroup)
}

// handler - HTTP handler implementation
type handler struct {
	l  log.Logger
	uc bulk.UseCase
}

// New creates a new HTTP handler
func New(l log.Logger, uc bulk.UseCase) Handler {
	return &handler{
		l:  l,
		uc: uc,
	}
}
