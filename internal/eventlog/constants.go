package eventlog

import "github.com/osse101/SpiritForge_Go/internal/event"

// LoggedEventTypes are the domain events persisted to the audit log
var LoggedEventTypes = []event.Type{
	event.RecipeLearned,
	event.RecipeUnlearned,
	event.RecipeTypeSet,
	event.ItemCrafted,
	event.CraftRejected,
	event.SpiritBound,
}

// JSON payload field keys
const (
	PayloadKeyActorID = "actor_id"
)

// Log messages - service events
const (
	LogMsgEventPayloadInvalid = "Event payload could not be decoded, skipping log"
	LogMsgFailedToLogEvent    = "Failed to log event to database"
	LogMsgEventLogged         = "Event logged to database"
)

// Log messages - cleanup job
const (
	LogMsgCleanupJobStarting  = "Starting event log cleanup job"
	LogMsgCleanupJobFailed    = "Event log cleanup failed"
	LogMsgCleanupJobCompleted = "Event log cleanup completed"
)

// Log field keys - structured logging fields
const (
	LogFieldType          = "type"
	LogFieldActorID       = "actor_id"
	LogFieldError         = "error"
	LogFieldRetentionDays = "retention_days"
	LogFieldDuration      = "duration"
	LogFieldDeletedCount  = "deleted_count"
)
