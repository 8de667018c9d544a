package shared

// Asynq task types and queues.
const (
	TypePurgeExpiredOTPs    = "auth:purge_expired_otps"
	TypeClearStaleLocations = "driver:clear_stale_locations"

	QueueDefault = "default"
	QueueLow     = "low"
)

// PurgeExpiredOTPsPayload parameterizes the OTP cleanup job.
type PurgeExpiredOTPsPayload struct {
	OlderThanHours int `json:"older_than_hours"`
}

// ClearStaleLocationsPayload parameterizes the stale driver location job.
type ClearStaleLocationsPayload struct {
	StalenessHours int `json:"staleness_hours"`
}
