package routers

import (
	"net/http"

	"splitledger/internal/api/handlers/dashboard"
	"splitledger/internal/api/handlers/insights"
	"splitledger/pkg/utils"
)

func MainRouter(dh *dashboard.Handler, ih *insights.Handler) *http.ServeMux {

	mux := http.NewServeMux()

	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		utils.WriteJSON(w, map[string]string{"status": "ok"})
	})

	dRouter := dashboardRouter(dh)
	mux.Handle("/dashboard/", dRouter)

	gRouter := groupsRouter(dh)
	mux.Handle("/dashboard/groups", gRouter)
	mux.Handle("/dashboard/groups/", gRouter)

	iRouter := insightsRouter(ih)
	mux.Handle("/insights/", iRouter)

	return mux
}
