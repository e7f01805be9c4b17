package api

import (
	"keycontrol-backend/internal/auth"
	"keycontrol-backend/internal/mw"
	"keycontrol-backend/internal/store"
)

// Handler holds shared dependencies for API handlers.
type Handler struct {
	store store.Store
	auth  *auth.Service
	guard *mw.LoginGuard
}

// NewHandler creates a new API handler.
func NewHandler(s store.Store, a *auth.Service, g *mw.LoginGuard) *Handler {
	return &Handler{
		store: s,
		auth:  a,
		guard: g,
	}
}
