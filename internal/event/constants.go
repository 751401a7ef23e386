package event

import "time"

// EventSchemaVersion is the current event schema version
const EventSchemaVersion = "1.0"

// Retry configuration defaults
const (
	DefaultMaxRetries = 5
	DefaultRetryDelay = 2 * time.Second
)

// DeadLetterFilePermissions is the file mode for dead-letter files
const DeadLetterFilePermissions = 0o644

// Log message constants
const (
	LogMsgEventPublishFailed   = "Event publish failed, retrying in background"
	LogMsgEventRetryFailed     = "Event retry failed"
	LogMsgEventRetrySucceeded  = "Event published after retry"
	LogMsgEventDeadLettered    = "Event retries exhausted, written to dead-letter"
	LogMsgDeadLetterFailed     = "Failed to write to dead-letter"
	LogMsgEventDroppedShutdown = "Event retry abandoned during shutdown"

	LogMsgHandlerErrorFormat = "encountered %d errors while handling event %s: %v"
)

// CalculateRetryDelay returns the exponential backoff delay for an attempt:
// base, 2*base, 4*base, ...
func CalculateRetryDelay(baseDelay time.Duration, attempt int) time.Duration {
	if attempt < 1 {
		attempt = 1
	}
	return baseDelay * time.Duration(1<<(attempt-1))
}
