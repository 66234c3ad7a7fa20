package errors

import "net/http"

var (
	ErrInvalidRequest = New(
		"INVALID_REQUEST",
		"Invalid request parameters",
		http.StatusBadRequest,
	)

	ErrInvalidDate = New(
		"INVALID_DATE",
		"Invalid date, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)

	ErrInvalidMetric = New(
		"INVALID_METRIC",
		"Invalid metric, expected one of total_cases, new_cases, total_deaths, new_deaths",
		http.StatusBadRequest,
	)

	ErrInvalidLocation = New(
		"INVALID_LOCATION",
		"Invalid location code",
		http.StatusBadRequest,
	)

	ErrSessionNotFound = New(
		"SESSION_NOT_FOUND",
		"Dashboard session not found",
		http.StatusNotFound,
	)

	ErrUnknownProperty = New(
		"UNKNOWN_PROPERTY",
		"Property is not an input of any binding",
		http.StatusBadRequest,
	)

	ErrCallbackFailed = New(
		"CALLBACK_FAILED",
		"Failed to recompute dashboard outputs",
		http.StatusInternalServerError,
	)

	ErrCacheError = New(
		"CACHE_ERROR",
		"Cache operation failed",
		http.StatusInternalServerError,
	)

	ErrInternalServer = New(
		"INTERNAL_SERVER_ERROR",
		"Internal server error",
		http.StatusInternalServerError,
	)
)
