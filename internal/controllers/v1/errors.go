package v1

import (
	"errors"
	"net/http"

	"github.com/staffalloc/backend/internal/models"
)

type httpError struct {
	Error string `json:"error" example:"the specified resource ID is not a valid UUID"`
}

// status returns the appropriate status for a database error
func status(err error) int {
	if errors.Is(err, models.ErrGeneral) {
		return http.StatusInternalServerError
	}

	if errors.Is(err, models.ErrResourceNotFound) {
		return http.StatusNotFound
	}

	return http.StatusBadRequest
}

var (
	errMonthNotSetInQuery   = errors.New("the month query parameter must be set")
	errManagerNotSetInQuery = errors.New("the manager query parameter must be set")
	errRangeNotSetInQuery   = errors.New("the from and until query parameters must be set")
)

// Auth errors
var (
	errCredentialsInvalid = errors.New("the email or password is incorrect")
	errPasswordEmpty      = errors.New("the password must not be empty")
	errSystemRoleInvalid  = errors.New("the specified system role is invalid")
)

// Project errors
var errProjectStatusInvalid = errors.New("the specified project status is invalid")

// Recommendation errors
var errRecommendationStatusInvalid = errors.New("the specified recommendation status is invalid")

// Import errors
var (
	errNoFilePost      = errors.New("you must send a file to this endpoint")
	errWrongFileSuffix = errors.New("this endpoint only supports .xlsx files")
)

// Chat errors
var errQuestionEmpty = errors.New("the question must not be empty")
