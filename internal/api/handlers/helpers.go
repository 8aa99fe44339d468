package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"splitledger/internal/ledger"
	"splitledger/internal/models"
	"splitledger/internal/services"
	"splitledger/pkg/utils"
)

// SubjectFromContext returns the authenticated user id set by the JWT
// middleware, or "" when there is none.
func SubjectFromContext(ctx context.Context) models.UserID {
	id, ok := ctx.Value(utils.ContextKey("userId")).(string)
	if !ok {
		return ""
	}
	return models.UserID(id)
}

// WriteServiceError maps service errors onto HTTP status codes.
func WriteServiceError(w http.ResponseWriter, err error, message string) {
	switch {
	case errors.Is(err, ledger.ErrNotAuthenticated):
		utils.WriteError(w, "unauthorized", http.StatusUnauthorized)
	case errors.Is(err, services.ErrNotGroupMember):
		utils.WriteError(w, "you are not a member of this group", http.StatusForbidden)
	case errors.Is(err, models.ErrRecordNotFound):
		utils.WriteError(w, "not found", http.StatusNotFound)
	case errors.Is(err, context.DeadlineExceeded):
		utils.Logger.WithError(err).Error(message)
		utils.WriteError(w, "request timed out", http.StatusGatewayTimeout)
	default:
		utils.Logger.WithError(err).Error(message)
		utils.WriteError(w, message, http.StatusInternalServerError)
	}
}

// ParseDate reads an optional YYYY-MM-DD query value in loc.
func ParseDate(r *http.Request, key string, loc *time.Location) (time.Time, bool, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return time.Time{}, false, nil
	}
	t, err := time.ParseInLocation("2006-01-02", raw, loc)
	if err != nil {
		return time.Time{}, false, fmt.Errorf("invalid %s: expected YYYY-MM-DD", key)
	}
	return t, true, nil
}

func Success(data any) map[string]interface{} {
	return map[string]interface{}{
		"status": "success",
		"data":   data,
	}
}
