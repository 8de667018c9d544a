package job

import (
	"context"
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"

	"drivo-backend/internal/domains/profile"
	"drivo-backend/internal/shared"
	"drivo-backend/pkg/logger"
)

// ClearStaleLocationsHandler nulls out driver coordinates that have not
// been refreshed within the staleness window, so dispatch never routes
// to a phantom position.
type ClearStaleLocationsHandler struct {
	profileRepo profile.Repository
}

func NewClearStaleLocationsHandler(profileRepo profile.Repository) *ClearStaleLocationsHandler {
	return &ClearStaleLocationsHandler{profileRepo: profileRepo}
}

func (h *ClearStaleLocationsHandler) ProcessTask(ctx context.Context, task *asynq.Task) error {
	var payload shared.ClearStaleLocationsPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Error("unmarshal clear stale locations payload", err)
		return err
	}

	staleness := payload.StalenessHours
	if staleness <= 0 {
		staleness = 24
	}
	cutoff := time.Now().Add(-time.Duration(staleness) * time.Hour)

	cleared, err := h.profileRepo.ClearStaleDriverLocations(ctx, cutoff)
	if err != nil {
		logger.Error("clear stale driver locations failed", err)
		return err
	}

	log.Info().
		Int64("cleared", cleared).
		Time("cutoff", cutoff).
		Msg("cleared stale driver locations")

	return nil
}
