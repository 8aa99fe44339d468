package insights

import (
	"context"
	"net/http"
	"time"

	"splitledger/internal/api/handlers"
	"splitledger/internal/services"
	"splitledger/pkg/utils"
)

type Handler struct {
	Service  *services.InsightService
	Window   time.Duration
	Location *time.Location
	Now      func() time.Time
}

func New(svc *services.InsightService, window time.Duration, loc *time.Location) *Handler {
	return &Handler{Service: svc, Window: window, Location: loc, Now: time.Now}
}

// FUNC TO GET MY SPENDING DETAIL FOR THE INSIGHT WINDOW
// An optional ?since=YYYY-MM-DD overrides the default window.
func (h *Handler) GetMonthlyInsightHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		utils.WriteError(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	loc := h.Location
	if loc == nil {
		loc = time.UTC
	}

	since, ok, err := handlers.ParseDate(r, "since", loc)
	if err != nil {
		utils.WriteError(w, err.Error(), http.StatusBadRequest)
		return
	}
	if !ok {
		since = h.Now().In(loc).Add(-h.Window)
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	insight, err := h.Service.MonthlyDetail(ctx, handlers.SubjectFromContext(r.Context()), since)
	if err != nil {
		handlers.WriteServiceError(w, err, "failed to load spending insight")
		return
	}

	utils.WriteJSON(w, handlers.Success(insight))
}
