package postgres

// PostgreSQL Error Codes
const (
	// PgErrorCodeUniqueViolation is the PostgreSQL error code for unique constraint violations
	PgErrorCodeUniqueViolation = "23505"
	// PgErrorCodeForeignKeyViolation is raised when a referenced actor or recipe is missing
	PgErrorCodeForeignKeyViolation = "23503"
)

// Error Messages - Transaction Operations
const (
	ErrMsgFailedToBeginTransaction  = "failed to begin transaction"
	ErrMsgFailedToCommitTransaction = "failed to commit transaction"
)

// Error Messages - Actor Operations
const (
	ErrMsgFailedToGetActor    = "failed to get actor"
	ErrMsgFailedToUpsertActor = "failed to upsert actor"
	ErrMsgFailedToLockActor   = "failed to lock actor"
)

// Error Messages - Inventory Operations
const (
	ErrMsgFailedToGetInventory          = "failed to get inventory"
	ErrMsgFailedToGetInventoryForUpdate = "failed to get inventory for update"
	ErrMsgFailedToScanItem              = "failed to scan item"
	ErrMsgFailedToInsertItem            = "failed to insert item"
	ErrMsgFailedToUpdateItemQuantity    = "failed to update item quantity"
	ErrMsgFailedToDeleteItem            = "failed to delete item"
	ErrMsgFailedToMarshalItem           = "failed to marshal item field"
	ErrMsgFailedToUnmarshalItem         = "failed to unmarshal item field"
)

// Error Messages - Catalog Operations
const (
	ErrMsgFailedToGetTemplate         = "failed to get item template"
	ErrMsgFailedToUpsertTemplate      = "failed to upsert item template"
	ErrMsgFailedToGetRecipe           = "failed to get recipe"
	ErrMsgFailedToQueryRecipes        = "failed to query recipes"
	ErrMsgFailedToUpsertRecipe        = "failed to upsert recipe"
	ErrMsgFailedToMarshalComponents   = "failed to marshal recipe components"
	ErrMsgFailedToUnmarshalComponents = "failed to unmarshal recipe components"
	ErrMsgFailedToMarshalStats        = "failed to marshal stats"
	ErrMsgFailedToUnmarshalStats      = "failed to unmarshal stats"
	ErrMsgFailedToGetSyncMetadata     = "failed to get sync metadata"
	ErrMsgFailedToUpsertSyncMetadata  = "failed to upsert sync metadata"
)

// Error Messages - Knowledge Operations
const (
	ErrMsgFailedToQueryLearnedRecipes = "failed to query learned recipes"
	ErrMsgFailedToQueryRecipeSettings = "failed to query recipe settings"
	ErrMsgFailedToLearnRecipe         = "failed to learn recipe"
	ErrMsgFailedToUnlearnRecipe       = "failed to unlearn recipe"
	ErrMsgFailedToSetRecipeType       = "failed to set recipe type"
)

// Error Messages - Row Affected Checks
const (
	ErrMsgItemNotFound = "item not found"
)

// Error Messages - Event Log Operations
const (
	ErrMsgFailedToLogEvent       = "failed to log event"
	ErrMsgFailedToQueryEvents    = "failed to query events"
	ErrMsgFailedToCleanupEvents  = "failed to cleanup events"
	ErrMsgFailedToMarshalEvent   = "failed to marshal event payload"
	ErrMsgFailedToUnmarshalEvent = "failed to unmarshal event payload"
)

// Event log query limits
const (
	DefaultEventQueryLimit = 50
	MaxEventQueryLimit     = 500
)
