package http

import (
	"meal-planning-assistant/internal/plan/repository"
	"meal-planning-assistant/pkg/log"
)

type handler struct {
	l    log.Logger
	repo repository.Repository
}

// New creates the read-only HTTP handler for saved plans and lists.
func New(l log.Logger, repo repository.Repository) *handler {
	return &handler{
		l:    l,
		repo: repo,
	}
}
