package apierr

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/miikama/game-lobby-REST-backend/internal/model"
)

// APIError represents an API error response
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse wraps an APIError
type ErrorResponse struct {
	Error APIError `json:"error"`
}

// Common error codes
const (
	CodeInvalidRequest     = "INVALID_REQUEST"
	CodePlayerNotFound     = "PLAYER_NOT_FOUND"
	CodeGameNotFound       = "GAME_NOT_FOUND"
	CodeTeamNotFound       = "TEAM_NOT_FOUND"
	CodeAlreadyInGame      = "ALREADY_IN_GAME"
	CodeNotInGame          = "NOT_IN_GAME"
	CodeAlreadyInTeam      = "ALREADY_IN_TEAM"
	CodeNotInTeam          = "NOT_IN_TEAM"
	CodeTeamNotInGame      = "TEAM_NOT_IN_GAME"
	CodePreconditionFailed = "PRECONDITION_FAILED"
	CodeUnauthorized       = "UNAUTHORIZED"
	CodeNotGameOwner       = "NOT_GAME_OWNER"
	CodeNotTeamOwner       = "NOT_TEAM_OWNER"
	CodeInternalError      = "INTERNAL_ERROR"
)

// httpError combines an HTTP status code with an APIError
type httpError struct {
	status   int
	apiError APIError
}

// Error implements error interface
func (e *httpError) Error() string {
	return e.apiError.Message
}

// WriteError writes an error response to the response writer.
// Unclassified errors are logged before being answered with a bare 500.
func WriteError(w http.ResponseWriter, err error) {
	he := toHTTPError(err)
	if he.status == http.StatusInternalServerError && !errors.As(err, new(*httpError)) {
		slog.Default().Error("request failed", slog.Any("error", err))
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(he.status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Error: he.apiError})
}

// PanicHandler answers a recovered handler panic with an internal error.
// The recovery middleware has already logged the panic.
func PanicHandler(w http.ResponseWriter, _ *http.Request, _ error) {
	WriteError(w, NewInternalError())
}

// toHTTPError converts an error to an httpError.
// Unresolvable ids are 422, failed membership preconditions 412 (except a
// repeated game join, which is 422), ownership failures 401.
func toHTTPError(err error) *httpError {
	var he *httpError
	if errors.As(err, &he) {
		return he
	}

	var pe *model.PreconditionError
	if errors.As(err, &pe) {
		return &httpError{http.StatusPreconditionFailed, APIError{CodePreconditionFailed, pe.Error()}}
	}

	switch {
	// Lookup errors
	case errors.Is(err, model.ErrPlayerNotFound):
		return &httpError{http.StatusUnprocessableEntity, APIError{CodePlayerNotFound, "Player not found"}}
	case errors.Is(err, model.ErrGameNotFound):
		return &httpError{http.StatusUnprocessableEntity, APIError{CodeGameNotFound, "Game not found"}}
	case errors.Is(err, model.ErrTeamNotFound):
		return &httpError{http.StatusUnprocessableEntity, APIError{CodeTeamNotFound, "Team not found"}}

	// Membership errors
	case errors.Is(err, model.ErrAlreadyInGame):
		return &httpError{http.StatusUnprocessableEntity, APIError{CodeAlreadyInGame, "Player is already in this game"}}
	case errors.Is(err, model.ErrNotInGame):
		return &httpError{http.StatusPreconditionFailed, APIError{CodeNotInGame, "Player is not in this game"}}
	case errors.Is(err, model.ErrAlreadyInTeam):
		return &httpError{http.StatusPreconditionFailed, APIError{CodeAlreadyInTeam, "Player is already in this team"}}
	case errors.Is(err, model.ErrNotInTeam):
		return &httpError{http.StatusPreconditionFailed, APIError{CodeNotInTeam, "Player is not in this team"}}
	case errors.Is(err, model.ErrTeamNotInGame):
		return &httpError{http.StatusPreconditionFailed, APIError{CodeTeamNotInGame, "Team does not belong to this game"}}

	// Ownership errors
	case errors.Is(err, model.ErrNotGameOwner):
		return &httpError{http.StatusUnauthorized, APIError{CodeNotGameOwner, "Only the game owner can perform this action"}}
	case errors.Is(err, model.ErrNotTeamOwner):
		return &httpError{http.StatusUnauthorized, APIError{CodeNotTeamOwner, "Only the team owner can perform this action"}}

	// Remaining errors by kind
	case errors.Is(err, model.ErrNotFound):
		return &httpError{http.StatusUnprocessableEntity, APIError{CodeInvalidRequest, err.Error()}}
	case errors.Is(err, model.ErrPreconditionFailed):
		return &httpError{http.StatusPreconditionFailed, APIError{CodePreconditionFailed, err.Error()}}
	case errors.Is(err, model.ErrUnauthorized):
		return &httpError{http.StatusUnauthorized, APIError{CodeUnauthorized, err.Error()}}
	case errors.Is(err, model.ErrValidation):
		return &httpError{http.StatusUnprocessableEntity, APIError{CodeInvalidRequest, err.Error()}}

	default:
		return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
	}
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return &httpError{http.StatusUnprocessableEntity, APIError{CodeInvalidRequest, message}}
}

// NewInternalError creates an internal server error
func NewInternalError() error {
	return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
}
