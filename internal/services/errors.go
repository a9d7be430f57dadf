package services

import (
	"errors"

	"github.com/ieltslab/practice-service/internal/catalog"
	apperrors "github.com/ieltslab/practice-service/internal/errors"
	"github.com/ieltslab/practice-service/internal/identity"
	"github.com/ieltslab/practice-service/internal/repositories"
	"github.com/ieltslab/practice-service/internal/session"
)

// ===== COMMON SERVICE ERRORS =====

var (
	ErrNotFound         = errors.New("resource not found")
	ErrUnauthorized     = errors.New("unauthorized access")
	ErrValidationFailed = errors.New("validation failed")
	ErrInternalError    = errors.New("internal server error")
	ErrBadRequest       = errors.New("bad request")
	ErrConflict         = errors.New("resource conflict")

	// Session specific errors
	ErrSessionAccessDenied = errors.New("access denied to session")
)

// ===== CUSTOM ERROR TYPES =====

// Use shared validation errors from errors package
type ValidationError = apperrors.ValidationError
type ValidationErrors = apperrors.ValidationErrors

// ===== ERROR HELPERS =====

// IsNotFound checks if error represents a "not found" condition
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound) ||
		errors.Is(err, catalog.ErrCatalogNotFound) ||
		errors.Is(err, session.ErrSessionNotFound) ||
		errors.Is(err, session.ErrQuestionNotFound) ||
		errors.Is(err, session.ErrTokenNotFound) ||
		errors.Is(err, repositories.ErrNotFound)
}

// IsUnauthorized checks if error represents an "unauthorized" condition
func IsUnauthorized(err error) bool {
	return errors.Is(err, ErrUnauthorized) ||
		errors.Is(err, ErrSessionAccessDenied) ||
		errors.Is(err, identity.ErrInvalidCredentials) ||
		errors.Is(err, identity.ErrInvalidToken)
}

// IsConflict checks if error represents a resource conflict
func IsConflict(err error) bool {
	return errors.Is(err, ErrConflict) ||
		errors.Is(err, session.ErrAlreadyStarted) ||
		errors.Is(err, session.ErrAlreadySubmitted) ||
		errors.Is(err, identity.ErrEmailTaken)
}

// IsValidation checks if error represents a validation failure
func IsValidation(err error) bool {
	if errors.Is(err, ErrValidationFailed) {
		return true
	}
	var ve apperrors.ValidationErrors
	return errors.As(err, &ve)
}

// IsBadRequest checks if error represents a rejected state transition or
// malformed operation
func IsBadRequest(err error) bool {
	return errors.Is(err, ErrBadRequest) ||
		errors.Is(err, session.ErrNotStarted) ||
		errors.Is(err, session.ErrNotSubmitted) ||
		errors.Is(err, session.ErrDragSlot) ||
		errors.Is(err, session.ErrSlotNotDraggable) ||
		errors.Is(err, session.ErrTokenNotAssigned)
}
