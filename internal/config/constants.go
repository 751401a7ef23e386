package config

import "time"

const (
	// Configuration file paths
	ConfigPathCatalog        = "configs/recipes/catalog.json"
	ConfigPathCatalogSchema  = "configs/schemas/catalog.schema.json"
	ConfigPathResourceSchema = "configs/resources.yaml"
)

// Defaults applied when a variable is unset or malformed
const (
	DefaultEnvironment = "dev"
	DefaultLogLevel    = "info"
	DefaultLogFormat   = "text"
	DefaultLogDir      = "logs"
	DefaultDBName      = "spiritforge"

	DefaultDBMaxConns        = 20
	DefaultDBMaxConnIdleTime = 5 * time.Minute
	DefaultDBMaxConnLifetime = 30 * time.Minute

	DefaultSessionTTL       = 30 * time.Minute
	DefaultSessionCacheSize = 1024

	DefaultEventMaxRetries     = 5
	DefaultEventRetryDelay     = 2 * time.Second
	DefaultEventDeadLetterPath = "logs/event_deadletter.jsonl"

	DefaultEventLogRetentionDays   = 90
	DefaultEventLogCleanupInterval = 24 * time.Hour
	DefaultWorkerCount             = 2
	DefaultWorkerQueueSize         = 16
)
