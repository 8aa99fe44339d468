package routers

import (
	"net/http"

	"splitledger/internal/api/handlers/dashboard"
)

func dashboardRouter(h *dashboard.Handler) *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("/dashboard/balances", h.GetBalancesHandler)

	mux.HandleFunc("/dashboard/spending/total", h.GetTotalSpentHandler)

	mux.HandleFunc("/dashboard/spending/monthly", h.GetMonthlySpendingHandler)

	mux.HandleFunc("/dashboard/pair/{userId}", h.GetPairBalanceHandler)

	return mux
}
