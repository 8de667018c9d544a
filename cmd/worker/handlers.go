package main

import (
	"github.com/hibiken/asynq"

	profileJob "drivo-backend/internal/domains/profile/job"
	userJob "drivo-backend/internal/domains/user/job"
	"drivo-backend/internal/shared"
	"drivo-backend/pkg/container"
)

// HandlerRegistry holds all job handlers.
type HandlerRegistry struct {
	purgeOTPs           *userJob.PurgeExpiredOTPsHandler
	clearStaleLocations *profileJob.ClearStaleLocationsHandler
}

// initializeHandlers wires job handlers to the container's repositories.
func initializeHandlers(c *container.Container) *HandlerRegistry {
	return &HandlerRegistry{
		purgeOTPs:           userJob.NewPurgeExpiredOTPsHandler(c.UserRepo),
		clearStaleLocations: profileJob.NewClearStaleLocationsHandler(c.ProfileRepo),
	}
}

// RegisterHandlers registers all handlers with the mux.
func (h *HandlerRegistry) RegisterHandlers(mux *asynq.ServeMux) {
	mux.HandleFunc(shared.TypePurgeExpiredOTPs, h.purgeOTPs.ProcessTask)
	mux.HandleFunc(shared.TypeClearStaleLocations, h.clearStaleLocations.ProcessTask)
}
