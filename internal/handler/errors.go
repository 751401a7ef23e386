package handler

// Generic HTTP error messages for client responses.
// These messages intentionally do not expose internal error details.
// Both handlers and tests should reference these constants to maintain consistency.
const (
	ErrMsgInvalidRequest        = "Invalid request body"
	ErrMsgInvalidRequestSummary = "Invalid request"

	// Query parameter error messages
	ErrMsgMissingQueryParam = "Missing %s query parameter"
	ErrMsgInvalidQueryParam = "Invalid %s query parameter"
	ErrMsgInvalidRecipeType = "Invalid recipe type '%s'. Valid options: rune, spirit, monster, cooking"
)

// Success messages for API responses
const (
	MsgRecipeLearnedSuccess     = "Recipe learned"
	MsgRecipeUnlearnedSuccess   = "Recipe forgotten"
	MsgRecipeTypeEnabledSuccess = "Recipe type enabled"
	MsgRecipeTypeDisabledSuccess = "Recipe type disabled"
	MsgSessionCancelledSuccess  = "Crafting session cancelled"
	MsgCraftSuccessFormat       = "Crafted %dx %s"
	MsgSpiritBoundFormat        = "Bound spirit into %s"
)

// Log messages
const (
	LogMsgListRecipesFailed   = "Failed to list recipes"
	LogMsgCanCraftFailed      = "Failed to check craftability"
	LogMsgLearnFailed         = "Failed to learn recipe"
	LogMsgUnlearnFailed       = "Failed to unlearn recipe"
	LogMsgSetRecipeTypeFailed = "Failed to set recipe type"
	LogMsgBindFailed          = "Failed to bind spirit"
	LogMsgStartFailed         = "Failed to start crafting"
	LogMsgGetSessionFailed    = "Failed to get crafting session"
	LogMsgAssignFailed        = "Failed to assign component"
	LogMsgUnassignFailed      = "Failed to unassign component"
	LogMsgCancelFailed        = "Failed to cancel crafting"
	LogMsgExecuteFailed       = "Failed to execute craft"
	LogMsgGetEventsFailed     = "Failed to get actor events"
)
