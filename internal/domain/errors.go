package domain

import "errors"

// Error message string constants - single source of truth for error messages
// Use these in assert.Contains() checks when testing error messages
const (
	// Identifier errors
	ErrMsgInvalidIdentifier = "invalid resource identifier"

	// Actor errors
	ErrMsgActorNotFound   = "actor not found"
	ErrMsgActorIneligible = "actor cannot hold recipes"

	// Item errors
	ErrMsgItemNotFound = "item not found"

	// Recipe errors
	ErrMsgRecipeNotFound = "recipe not found"
	ErrMsgRecipeLocked   = "recipe is not known"

	// Crafting execution errors
	ErrMsgIncompleteAssignment  = "incomplete assignment"
	ErrMsgInsufficientResources = "insufficient resources"
	ErrMsgInvalidTarget         = "invalid target"
	ErrMsgNoEligibleGrade       = "no eligible spirit grade"
	ErrMsgSessionNotFound       = "crafting session not found"
	ErrMsgUnknownComponent      = "component is not part of the recipe"
	ErrMsgResourceMismatch      = "item does not match component"
	ErrMsgNotSpiritItem         = "item is not a spirit"

	// Input errors
	ErrMsgInvalidInput = "invalid input"

	// Database errors
	ErrMsgTxClosed = "tx is closed"
)

// Common domain errors
// Wrap these errors with fmt.Errorf("%w: %s", domain.ErrXxx, details) for additional context.
var (
	// ErrInvalidIdentifier is handled locally by filtering and never aborts a listing.
	ErrInvalidIdentifier = errors.New(ErrMsgInvalidIdentifier)

	ErrActorNotFound   = errors.New(ErrMsgActorNotFound)
	ErrActorIneligible = errors.New(ErrMsgActorIneligible)

	ErrItemNotFound = errors.New(ErrMsgItemNotFound)

	ErrRecipeNotFound = errors.New(ErrMsgRecipeNotFound)
	ErrRecipeLocked   = errors.New(ErrMsgRecipeLocked)

	ErrIncompleteAssignment  = errors.New(ErrMsgIncompleteAssignment)
	ErrInsufficientResources = errors.New(ErrMsgInsufficientResources)
	ErrInvalidTarget         = errors.New(ErrMsgInvalidTarget)
	ErrNoEligibleGrade       = errors.New(ErrMsgNoEligibleGrade)
	ErrSessionNotFound       = errors.New(ErrMsgSessionNotFound)
	ErrUnknownComponent      = errors.New(ErrMsgUnknownComponent)
	ErrResourceMismatch      = errors.New(ErrMsgResourceMismatch)
	ErrNotSpiritItem         = errors.New(ErrMsgNotSpiritItem)

	ErrInvalidInput = errors.New(ErrMsgInvalidInput)
)
