package errors

import (
	"errors"
	"net/http"
	"strings"

	"gorm.io/gorm"
)

// ErrorInfo describes a parsed storage/service error
type ErrorInfo struct {
	Status  int    // HTTP status implied by the error class; 0 when the caller decides
	Code    string // error code (see codes.go)
	Message string // human-readable message
}

// ParseError converts raw storage errors into a code, message and status.
// Uniqueness violations are the authoritative conflict signal: a pre-insert
// existence check may race, the constraint never does. They map to 400 to
// match the public contract.
// Constraint names from Postgres and the column lists from SQLite (used by
// the test harness) are both recognized.
func ParseError(err error, context string) ErrorInfo {
	if err == nil {
		return ErrorInfo{
			Code:    InternalServerError,
			Message: "An unexpected error occurred.",
		}
	}

	errStr := err.Error()
	errLower := strings.ToLower(errStr)

	// 1. GORM sentinel errors
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrorInfo{
			Status:  http.StatusNotFound,
			Code:    ResourceNotFound,
			Message: getNotFoundMessage(context),
		}
	}

	// 2. Unique constraint violation (Postgres 23505 / SQLite UNIQUE)
	if strings.Contains(errLower, "duplicate key") || strings.Contains(errLower, "unique constraint") {
		return parseDuplicateKeyError(errLower)
	}

	// 3. Foreign key constraint violation (Postgres 23503 / SQLite FOREIGN KEY)
	if strings.Contains(errLower, "foreign key constraint") {
		return parseForeignKeyError(errLower)
	}

	// 4. Not null constraint violation (Postgres 23502)
	if strings.Contains(errLower, "null value") && strings.Contains(errLower, "violates not-null constraint") {
		return ErrorInfo{
			Status:  http.StatusBadRequest,
			Code:    ValidationInvalidInput,
			Message: "A required field is missing.",
		}
	}

	// 5. Connectivity problems
	if strings.Contains(errLower, "connection refused") ||
		strings.Contains(errLower, "no such host") ||
		strings.Contains(errLower, "timeout") {
		return ErrorInfo{
			Code:    InternalDatabaseError,
			Message: "The data store is unreachable. Please try again later.",
		}
	}

	// 6. Fallback: generic server error
	return ErrorInfo{
		Code:    InternalServerError,
		Message: getDefaultErrorMessage(context),
	}
}

// parseDuplicateKeyError maps a unique violation to the affected contract
func parseDuplicateKeyError(errLower string) ErrorInfo {
	switch {
	case strings.Contains(errLower, "idx_users_username") || strings.Contains(errLower, "users.username"):
		return ErrorInfo{
			Status:  http.StatusBadRequest,
			Code:    AuthUsernameExists,
			Message: "A user with that username already exists.",
		}

	case strings.Contains(errLower, "idx_reviews_business_reviewer") || strings.Contains(errLower, "reviews.business_user_id"):
		return ErrorInfo{
			Status:  http.StatusBadRequest,
			Code:    ReviewAlreadyExists,
			Message: "You have already reviewed this business user.",
		}

	case strings.Contains(errLower, "idx_offer_details_offer_type") || strings.Contains(errLower, "offer_details.offer_id"):
		return ErrorInfo{
			Status:  http.StatusBadRequest,
			Code:    ResourceConflict,
			Message: "This offer already has a tier of that type.",
		}

	case strings.Contains(errLower, "idx_profiles_user_id") || strings.Contains(errLower, "profiles.user_id"):
		return ErrorInfo{
			Status:  http.StatusBadRequest,
			Code:    ResourceConflict,
			Message: "A profile already exists for this user.",
		}

	case strings.Contains(errLower, "pkey") || strings.Contains(errLower, "primary key"):
		return ErrorInfo{
			Status:  http.StatusBadRequest,
			Code:    ResourceConflict,
			Message: "This record already exists. Please try again.",
		}
	}

	return ErrorInfo{
		Status:  http.StatusBadRequest,
		Code:    ResourceConflict,
		Message: "This record already exists.",
	}
}

// parseForeignKeyError maps referential integrity failures
func parseForeignKeyError(errLower string) ErrorInfo {
	// deleting a row other rows still point at
	if strings.Contains(errLower, "still referenced") {
		return ErrorInfo{
			Status:  http.StatusBadRequest,
			Code:    ResourceConflict,
			Message: "Other records still reference this one.",
		}
	}

	// inserting a reference to a missing row
	switch {
	case strings.Contains(errLower, "offer_detail"):
		return ErrorInfo{
			Status:  http.StatusBadRequest,
			Code:    OfferDetailNotFound,
			Message: "The referenced offer detail does not exist.",
		}
	case strings.Contains(errLower, "offer"):
		return ErrorInfo{
			Status:  http.StatusBadRequest,
			Code:    OfferNotFound,
			Message: "The referenced offer does not exist.",
		}
	case strings.Contains(errLower, "user"):
		return ErrorInfo{
			Status:  http.StatusBadRequest,
			Code:    ValidationInvalidID,
			Message: "The referenced user does not exist.",
		}
	}

	return ErrorInfo{
		Status:  http.StatusBadRequest,
		Code:    ValidationInvalidID,
		Message: "The referenced record does not exist.",
	}
}

// getNotFoundMessage picks a message matching the operation context
func getNotFoundMessage(context string) string {
	contextLower := strings.ToLower(context)

	switch {
	case strings.Contains(contextLower, "profile"):
		return "UserProfile not found"
	case strings.Contains(contextLower, "offer detail"), strings.Contains(contextLower, "offerdetail"), strings.Contains(contextLower, "tier"):
		return "OfferDetail not found."
	case strings.Contains(contextLower, "offer"):
		return "Offer not found."
	case strings.Contains(contextLower, "order"):
		return "Order not found."
	case strings.Contains(contextLower, "review"):
		return "Review not found."
	case strings.Contains(contextLower, "user"):
		return "User not found"
	}

	return "The requested resource was not found."
}

// getDefaultErrorMessage picks a generic message matching the operation context
func getDefaultErrorMessage(context string) string {
	contextLower := strings.ToLower(context)

	switch {
	case strings.Contains(contextLower, "create"), strings.Contains(contextLower, "register"):
		return "Something went wrong while saving. Please try again later."
	case strings.Contains(contextLower, "update"):
		return "Something went wrong while updating. Please try again later."
	case strings.Contains(contextLower, "delete"):
		return "Something went wrong while deleting. Please try again later."
	}

	return "An unexpected error occurred. Please try again later."
}

// ParseAndRespond parses err and writes the error response.
// statusCode is the fallback used when the parsed error does not imply one.
func ParseAndRespond(c interface{ JSON(int, interface{}) }, statusCode int, err error, context string) {
	info := ParseError(err, context)
	if info.Status != 0 {
		statusCode = info.Status
	}
	c.JSON(statusCode, ErrorResponse{
		Error:   info.Code,
		Message: info.Message,
	})
}
