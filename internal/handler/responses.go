package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/osse101/SpiritForge_Go/internal/domain"
)

// Standard response types for consistent API responses

// SuccessResponse represents a simple successful operation message
type SuccessResponse struct {
	Message string `json:"message"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// DataResponse represents a response with data payload
type DataResponse struct {
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data"`
}

// respondJSON sends a JSON response with the given status code and payload
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	// Get a buffer from the pool to reduce allocations
	buf := getBuffer()
	defer putBuffer(buf)

	if err := json.NewEncoder(buf).Encode(payload); err != nil {
		// Headers are already sent, so the failure can only be logged
		slog.Error("Failed to encode JSON response", "error", err)
		return
	}

	if _, err := buf.WriteTo(w); err != nil {
		slog.Error("Failed to write response buffer", "error", err)
	}
}

// respondError sends a JSON error response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, ErrorResponse{Error: message})
}

// respondServiceError maps err to a status and user message and writes it
func respondServiceError(w http.ResponseWriter, err error) {
	status, msg := mapServiceErrorToUserMessage(err)
	respondError(w, status, msg)
}

// User-facing error messages for service errors
const (
	ErrMsgGenericServerError = "Something went wrong"
	ErrMsgUnknownError       = "Unknown error"

	ErrMsgActorNotFoundError      = "Actor not found"
	ErrMsgActorIneligibleError    = "This actor cannot hold recipes"
	ErrMsgItemNotFoundError       = "Item not found"
	ErrMsgRecipeNotFoundError     = "Recipe not found"
	ErrMsgRecipeLockedError       = "Recipe is not known. Learn it and enable its type first"
	ErrMsgSessionNotFoundError    = "Crafting session not found or expired"
	ErrMsgInvalidIdentifierError  = "Invalid resource identifier"
	ErrMsgInvalidInputError       = "Invalid request. Please check your inputs."
	ErrMsgUnknownComponentError   = "That component is not part of the recipe"
	ErrMsgResourceMismatchError   = "That item does not fit the component"
	ErrMsgNotSpiritItemError      = "That item is not a spirit"
	ErrMsgIncompleteAssignmentErr = "Not every component has an item assigned"
	ErrMsgInsufficientResourceErr = "Not enough resources"
	ErrMsgInvalidTargetError      = "The recipe's result item is unavailable"
	ErrMsgNoEligibleGradeError    = "No creature essence to grade the spirit"
)

// mapServiceErrorToUserMessage converts service errors to HTTP status codes
// and messages users can act upon. Unrecognized errors never leak their text.
func mapServiceErrorToUserMessage(err error) (int, string) {
	if err == nil {
		return http.StatusInternalServerError, ErrMsgUnknownError
	}

	switch {
	case errors.Is(err, domain.ErrActorNotFound):
		return http.StatusNotFound, ErrMsgActorNotFoundError
	case errors.Is(err, domain.ErrRecipeNotFound):
		return http.StatusNotFound, ErrMsgRecipeNotFoundError
	case errors.Is(err, domain.ErrSessionNotFound):
		return http.StatusNotFound, ErrMsgSessionNotFoundError
	case errors.Is(err, domain.ErrItemNotFound):
		return http.StatusNotFound, ErrMsgItemNotFoundError
	case errors.Is(err, domain.ErrActorIneligible):
		return http.StatusForbidden, ErrMsgActorIneligibleError
	case errors.Is(err, domain.ErrRecipeLocked):
		return http.StatusForbidden, ErrMsgRecipeLockedError
	case errors.Is(err, domain.ErrInvalidIdentifier):
		return http.StatusBadRequest, ErrMsgInvalidIdentifierError
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest, ErrMsgInvalidInputError
	case errors.Is(err, domain.ErrUnknownComponent):
		return http.StatusBadRequest, ErrMsgUnknownComponentError
	case errors.Is(err, domain.ErrResourceMismatch):
		return http.StatusBadRequest, ErrMsgResourceMismatchError
	case errors.Is(err, domain.ErrNotSpiritItem):
		return http.StatusBadRequest, ErrMsgNotSpiritItemError
	case errors.Is(err, domain.ErrIncompleteAssignment):
		return http.StatusUnprocessableEntity, ErrMsgIncompleteAssignmentErr
	case errors.Is(err, domain.ErrInsufficientResources):
		return http.StatusUnprocessableEntity, ErrMsgInsufficientResourceErr
	case errors.Is(err, domain.ErrInvalidTarget):
		return http.StatusUnprocessableEntity, ErrMsgInvalidTargetError
	case errors.Is(err, domain.ErrNoEligibleGrade):
		return http.StatusUnprocessableEntity, ErrMsgNoEligibleGradeError
	}

	return http.StatusInternalServerError, ErrMsgGenericServerError
}
