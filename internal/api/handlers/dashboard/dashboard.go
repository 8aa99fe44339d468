package dashboard

import (
	"context"
	"net/http"
	"time"

	"splitledger/internal/api/handlers"
	"splitledger/internal/models"
	"splitledger/internal/services"
	"splitledger/pkg/utils"
)

const requestTimeout = 5 * time.Second

type Handler struct {
	Service *services.DashboardService
}

func New(svc *services.DashboardService) *Handler {
	return &Handler{Service: svc}
}

// FUNC TO GET THE 1-TO-1 BALANCE SUMMARY
func (h *Handler) GetBalancesHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		utils.WriteError(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	summary, err := h.Service.Balances(ctx, handlers.SubjectFromContext(r.Context()))
	if err != nil {
		handlers.WriteServiceError(w, err, "failed to compute balances")
		return
	}

	utils.WriteJSON(w, handlers.Success(summary))
}

// FUNC TO GET TOTAL SPENT THIS YEAR
func (h *Handler) GetTotalSpentHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		utils.WriteError(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	total, err := h.Service.TotalSpent(ctx, handlers.SubjectFromContext(r.Context()))
	if err != nil {
		handlers.WriteServiceError(w, err, "failed to compute total spent")
		return
	}

	utils.WriteJSON(w, handlers.Success(map[string]interface{}{
		"total_spent": total,
	}))
}

// FUNC TO GET MONTHLY SPENDING THIS YEAR
func (h *Handler) GetMonthlySpendingHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		utils.WriteError(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	series, err := h.Service.MonthlySpending(ctx, handlers.SubjectFromContext(r.Context()))
	if err != nil {
		handlers.WriteServiceError(w, err, "failed to compute monthly spending")
		return
	}

	utils.WriteJSON(w, handlers.Success(series))
}

// FUNC TO GET MY GROUPS WITH BALANCES
func (h *Handler) GetGroupsHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		utils.WriteError(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	groups, err := h.Service.Groups(ctx, handlers.SubjectFromContext(r.Context()))
	if err != nil {
		handlers.WriteServiceError(w, err, "failed to compute group balances")
		return
	}

	utils.WriteJSON(w, handlers.Success(groups))
}

// FUNC TO GET ONE GROUP BALANCE SHEET
func (h *Handler) GetGroupBalanceHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		utils.WriteError(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	groupID := r.PathValue("id")
	if groupID == "" {
		utils.WriteError(w, "invalid group ID", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	sheet, err := h.Service.GroupBalance(ctx, handlers.SubjectFromContext(r.Context()), models.GroupID(groupID))
	if err != nil {
		handlers.WriteServiceError(w, err, "failed to compute group balance")
		return
	}

	utils.WriteJSON(w, handlers.Success(sheet))
}

// FUNC TO GET THE BALANCE WITH ONE OTHER USER
func (h *Handler) GetPairBalanceHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		utils.WriteError(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	subject := handlers.SubjectFromContext(r.Context())
	other := models.UserID(r.PathValue("userId"))
	if other == "" {
		utils.WriteError(w, "invalid user ID", http.StatusBadRequest)
		return
	}
	if subject != "" && other == subject {
		utils.WriteError(w, "cannot compute a balance with yourself", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	pair, err := h.Service.PairBalance(ctx, subject, other)
	if err != nil {
		handlers.WriteServiceError(w, err, "failed to compute balance")
		return
	}

	utils.WriteJSON(w, handlers.Success(pair))
}
