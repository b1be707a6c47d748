package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"jobdesk/internal/middlewares"
	"jobdesk/internal/services"
	"jobdesk/internal/utils"
)

// statusForError maps the service error taxonomy to HTTP statuses. Anything
// outside the taxonomy is an internal error; its message is passed through
// for diagnostics.
func statusForError(err error) int {
	var ve *services.ValidationError
	if errors.As(err, &ve) {
		return http.StatusBadRequest
	}

	switch {
	case errors.Is(err, services.ErrAlreadyRegistered),
		errors.Is(err, services.ErrOTPNotFound),
		errors.Is(err, services.ErrOTPAlreadyUsed),
		errors.Is(err, services.ErrOTPExpired),
		errors.Is(err, services.ErrOTPMismatch),
		errors.Is(err, services.ErrAlreadyApplied),
		errors.Is(err, services.ErrJobClosed):
		return http.StatusBadRequest
	case errors.Is(err, services.ErrInvalidCredentials),
		errors.Is(err, services.ErrNotVerified),
		errors.Is(err, services.ErrInvalidToken):
		return http.StatusUnauthorized
	case errors.Is(err, services.ErrNotJobOwner):
		return http.StatusForbidden
	case errors.Is(err, services.ErrActorNotFound),
		errors.Is(err, services.ErrJobNotFound),
		errors.Is(err, services.ErrApplicationNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// actorIDFromRequest extracts the authenticated actor id set by the auth
// middleware. It writes the error response itself on failure.
func actorIDFromRequest(w http.ResponseWriter, r *http.Request) (primitive.ObjectID, bool) {
	idStr, ok := middlewares.ActorIDFromContext(r.Context())
	if !ok {
		utils.SendJSONError(w, "Unauthorized", http.StatusUnauthorized)
		return primitive.NilObjectID, false
	}

	id, err := primitive.ObjectIDFromHex(idStr)
	if err != nil {
		utils.SendJSONError(w, "Invalid actor ID in token", http.StatusUnauthorized)
		return primitive.NilObjectID, false
	}
	return id, true
}

func paginationQuery(r *http.Request) (page, limit int) {
	page, _ = strconv.Atoi(r.URL.Query().Get("page"))
	limit, _ = strconv.Atoi(r.URL.Query().Get("limit"))
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	return page, limit
}

// parseDateQuery accepts RFC3339 or plain yyyy-mm-dd values.
func parseDateQuery(value string) *time.Time {
	if value == "" {
		return nil
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return &t
	}
	if t, err := time.Parse("2006-01-02", value); err == nil {
		return &t
	}
	return nil
}
