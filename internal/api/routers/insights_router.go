package routers

import (
	"net/http"

	"splitledger/internal/api/handlers/insights"
)

func insightsRouter(h *insights.Handler) *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("/insights/monthly", h.GetMonthlyInsightHandler)

	return mux
}
