package errors

import "net/http"

// Common error codes used across domains
const (
	CodeNotFound       Code = "not_found"
	CodeAlreadyExists  Code = "already_exists"
	CodeInvalidRequest Code = "invalid_request"
	CodeUnauthorized   Code = "unauthorized"
	CodeConflict       Code = "conflict"
	CodeEmptyResult    Code = "empty_result"
	CodeInternal       Code = "internal_error"
	CodeUnavailable    Code = "unavailable"
)

// ============================================================================
// Authentication Errors
// ============================================================================

var (
	// ErrInvalidCredentials is returned when authentication fails due to invalid credentials
	ErrInvalidCredentials = New(DomainAuth, "invalid_credentials", http.StatusUnauthorized,
		"Invalid credentials")

	// ErrTokenExpired is returned when a JWT token has expired
	ErrTokenExpired = New(DomainAuth, "token_expired", http.StatusUnauthorized,
		"Token has expired")

	// ErrTokenInvalid is returned when a JWT token is malformed or invalid
	ErrTokenInvalid = New(DomainAuth, "token_invalid", http.StatusUnauthorized,
		"Invalid token")

	// ErrTokenRevoked is returned when a JWT token has been revoked
	ErrTokenRevoked = New(DomainAuth, "token_revoked", http.StatusUnauthorized,
		"Token has been revoked")

	// ErrNoToken is returned when no authentication token is provided
	ErrNoToken = New(DomainAuth, "no_token", http.StatusUnauthorized,
		"No authentication token provided")
)

// ============================================================================
// User Errors
// ============================================================================

// Not-found and empty-result conditions deliberately map to 400, not 404.
// The legacy contract treats an unresolved id and an empty collection as
// client errors, and that behavior is preserved here.
var (
	// ErrUserNotFound is returned when a user id does not resolve
	ErrUserNotFound = New(DomainUser, CodeNotFound, http.StatusBadRequest,
		"User not found")

	// ErrNoUsersFound is returned when the users collection is empty
	ErrNoUsersFound = New(DomainUser, CodeEmptyResult, http.StatusBadRequest,
		"No users found")

	// ErrEmailInUse is returned when the email is already registered,
	// compared case- and accent-insensitively
	ErrEmailInUse = New(DomainUser, CodeConflict, http.StatusConflict,
		"Email is already in use")

	// ErrUserIDRequired is returned when a delete request omits the user id
	ErrUserIDRequired = New(DomainUser, CodeInvalidRequest, http.StatusBadRequest,
		"User ID Required")

	// ErrInvalidUserData is returned when user data fails validation
	ErrInvalidUserData = New(DomainUser, CodeInvalidRequest, http.StatusBadRequest,
		"Invalid user data received")
)

// ============================================================================
// Interview Errors
// ============================================================================

var (
	// ErrInterviewNotFound is returned when an interview id does not resolve
	ErrInterviewNotFound = New(DomainInterview, CodeNotFound, http.StatusBadRequest,
		"Interview not found")

	// ErrNoInterviewsFound is returned when the interviews collection is empty
	ErrNoInterviewsFound = New(DomainInterview, CodeEmptyResult, http.StatusBadRequest,
		"No interviews found")

	// ErrDuplicateTitle is returned when an interview title already exists.
	// Titles are unique across all interviews, not per user.
	ErrDuplicateTitle = New(DomainInterview, CodeConflict, http.StatusConflict,
		"Duplicate interview title")

	// ErrInterviewIDRequired is returned when a delete request omits the interview id
	ErrInterviewIDRequired = New(DomainInterview, CodeInvalidRequest, http.StatusBadRequest,
		"Interview ID required")

	// ErrInvalidInterviewData is returned when interview data fails validation
	ErrInvalidInterviewData = New(DomainInterview, CodeInvalidRequest, http.StatusBadRequest,
		"Invalid interview data received")
)

// ============================================================================
// Question Errors
// ============================================================================

var (
	// ErrQuestionNotFound is returned when a question id does not resolve
	ErrQuestionNotFound = New(DomainQuestion, CodeNotFound, http.StatusBadRequest,
		"Question not found")

	// ErrNoQuestionsFound is returned when the questions collection is empty
	ErrNoQuestionsFound = New(DomainQuestion, CodeEmptyResult, http.StatusBadRequest,
		"No questions found")

	// ErrQuestionIDRequired is returned when a delete request omits the question id
	ErrQuestionIDRequired = New(DomainQuestion, CodeInvalidRequest, http.StatusBadRequest,
		"Question ID required")

	// ErrInvalidQuestionData is returned when question data fails validation
	ErrInvalidQuestionData = New(DomainQuestion, CodeInvalidRequest, http.StatusBadRequest,
		"Invalid question data received")
)

// ============================================================================
// Validation Errors
// ============================================================================

var (
	// ErrAllFieldsRequired is returned when a create or update request omits a required field
	ErrAllFieldsRequired = New(DomainValidation, "missing_field", http.StatusBadRequest,
		"All fields are required")

	// ErrInvalidJSON is returned when JSON parsing fails
	ErrInvalidJSON = New(DomainValidation, "invalid_json", http.StatusBadRequest,
		"Invalid JSON")
)

// ============================================================================
// Database Errors
// ============================================================================

var (
	// ErrDatabaseConnection is returned when database connection fails
	ErrDatabaseConnection = New(DomainDatabase, "connection_failed", http.StatusServiceUnavailable,
		"Database connection failed")

	// ErrDatabaseQuery is returned when a database query fails
	ErrDatabaseQuery = New(DomainDatabase, "query_failed", http.StatusInternalServerError,
		"Database query failed")

	// ErrDatabaseTransaction is returned when a database transaction fails
	ErrDatabaseTransaction = New(DomainDatabase, "transaction_failed", http.StatusInternalServerError,
		"Database transaction failed")
)

// ============================================================================
// Storage Errors
// ============================================================================

var (
	// ErrSnapshotFailed is returned when a database snapshot upload fails
	ErrSnapshotFailed = New(DomainStorage, "snapshot_failed", http.StatusInternalServerError,
		"Failed to store database snapshot")

	// ErrStorageUnavailable is returned when the snapshot backend is unavailable
	ErrStorageUnavailable = New(DomainStorage, CodeUnavailable, http.StatusServiceUnavailable,
		"Snapshot storage backend unavailable")
)

// ============================================================================
// Internal Errors
// ============================================================================

var (
	// ErrInternal is a generic internal server error
	ErrInternal = New(DomainInternal, CodeInternal, http.StatusInternalServerError,
		"Internal server error")
)
