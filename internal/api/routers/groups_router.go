package routers

import (
	"net/http"

	"splitledger/internal/api/handlers/dashboard"
)

func groupsRouter(h *dashboard.Handler) *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("/dashboard/groups", h.GetGroupsHandler)

	mux.HandleFunc("/dashboard/groups/{id}/balance", h.GetGroupBalanceHandler)

	return mux
}
