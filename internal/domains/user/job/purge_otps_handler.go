package job

import (
	"context"
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"

	"drivo-backend/internal/domains/user"
	"drivo-backend/internal/shared"
	"drivo-backend/pkg/logger"
)

// PurgeExpiredOTPsHandler deletes used and long-expired email codes.
// OTPs are invalid 5 minutes after creation; the retention window only
// decides how long the dead rows stick around for support lookups.
type PurgeExpiredOTPsHandler struct {
	userRepo user.Repository
}

func NewPurgeExpiredOTPsHandler(userRepo user.Repository) *PurgeExpiredOTPsHandler {
	return &PurgeExpiredOTPsHandler{userRepo: userRepo}
}

func (h *PurgeExpiredOTPsHandler) ProcessTask(ctx context.Context, task *asynq.Task) error {
	var payload shared.PurgeExpiredOTPsPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Error("unmarshal purge otps payload", err)
		return err
	}

	retention := payload.OlderThanHours
	if retention <= 0 {
		retention = 24
	}
	cutoff := time.Now().Add(-time.Duration(retention) * time.Hour)

	deleted, err := h.userRepo.PurgeExpiredOTPs(ctx, cutoff)
	if err != nil {
		logger.Error("purge expired otps failed", err)
		return err
	}

	log.Info().
		Int64("deleted", deleted).
		Time("cutoff", cutoff).
		Msg("purged expired email otps")

	return nil
}
