package crafting

import "time"

// ==================== Session Defaults ====================

const (
	DefaultSessionTTL       = 30 * time.Minute
	DefaultSessionCacheSize = 1024
)

// ==================== Spirit Synthesis ====================

const (
	spiritNameFormat        = "Spirit of %s"
	spiritDescriptionFormat = "<p><strong>Grade %d spirit.</strong> Bind it to gain a permanent, grade-scaled copy of the item below.</p>%s"
	spiritUses              = 1
)

// ==================== Lock Keys ====================

const (
	lockKeyActorPrefix   = "actor:"
	lockKeySessionPrefix = "session:"
)

// ==================== Configuration File Names ====================

const (
	ConfigFileCatalog   = "catalog.json"
	MetadataNameCatalog = "recipes_catalog.json"
)

// ==================== Rejection Reasons ====================

// Reasons reported on craft rejection events
const (
	ReasonIncompleteAssignment  = "incomplete_assignment"
	ReasonInsufficientResources = "insufficient_resources"
	ReasonInvalidTarget         = "invalid_target"
	ReasonNoEligibleGrade       = "no_eligible_grade"
	ReasonRecipeLocked          = "recipe_locked"
	ReasonResourceMismatch      = "resource_mismatch"
	ReasonStorage               = "storage"
)

// ==================== Log Messages ====================

const (
	LogMsgInvalidComponentSkipped = "Skipping invalid recipe component"
	LogMsgInvalidItemResource     = "Ignoring invalid item resource"
	LogMsgRecipeSkipped           = "Skipping unusable recipe"
	LogMsgPublishFailed           = "Failed to publish crafting event"
	LogMsgCraftRejected           = "Craft execution rejected"
	LogMsgCraftCompleted          = "Craft executed"
	LogMsgSpiritBound             = "Spirit bound"
)

// ==================== Error Messages ====================

const (
	ErrMsgGetActorFailed       = "failed to get actor"
	ErrMsgGetRecipeFailed      = "failed to get recipe"
	ErrMsgGetRecipesFailed     = "failed to get recipes"
	ErrMsgGetKnowledgeFailed   = "failed to get recipe knowledge"
	ErrMsgGetInventoryFailed   = "failed to get inventory"
	ErrMsgGetTemplateFailed    = "failed to get item template"
	ErrMsgBeginTxFailed        = "failed to begin transaction"
	ErrMsgCommitFailed         = "failed to commit transaction"
	ErrMsgAcquireLockFailed    = "failed to acquire actor lock"
	ErrMsgApplyConsumptionFmt  = "failed to apply consumption for item %s: %w"
	ErrMsgApplyCreationFmt     = "failed to apply creation of %s: %w"
	ErrMsgMissingComponentsFmt = "%w: missing %s"
)
