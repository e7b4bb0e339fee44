package handlers

import (
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/ZainJ5/tipuburger-server/internal/order"
	"github.com/ZainJ5/tipuburger-server/internal/stats"
	"github.com/ZainJ5/tipuburger-server/internal/utils"
	"github.com/ZainJ5/tipuburger-server/pkg/response"
)

// AdminOrderStats aggregates the period's orders into the dashboard
// summary. Passing status=Cancel scopes the financials to cancelled orders
// so operators can size what was lost.
func (h *Handler) AdminOrderStats(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	q := r.URL.Query()

	dateFilter := strings.TrimSpace(q.Get("dateFilter"))
	if dateFilter == "" {
		dateFilter = "today"
	}
	from, to, ok := utils.DateFilterRange(dateFilter, strings.TrimSpace(q.Get("customDate")), time.Now())
	if !ok {
		response.Error(w, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid date filter")
		return
	}

	scopedToCancelled := false
	if statusParam := strings.TrimSpace(q.Get("status")); statusParam != "" {
		status, valid := order.ParseStatus(statusParam)
		if !valid {
			response.Error(w, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid status filter")
			return
		}
		scopedToCancelled = status == order.StatusCancel
	}

	orders, err := h.Orders.FetchRange(ctx, from, to)
	if err != nil {
		h.Logger.Error("fetch orders for stats", zap.Error(err))
		response.Error(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to compute statistics")
		return
	}

	if branchID := formBranchID(strings.TrimSpace(q.Get("branch"))); branchID > 0 {
		scoped := orders[:0]
		for _, o := range orders {
			if o.BranchID == branchID {
				scoped = append(scoped, o)
			}
		}
		orders = scoped
	}

	summary := stats.Aggregate(orders, stats.Options{ScopedToCancelled: scopedToCancelled})
	response.Success(w, map[string]any{
		"from":    from,
		"to":      to,
		"summary": summary,
	})
}
