package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/ZainJ5/tipuburger-server/internal/cache"
	"github.com/ZainJ5/tipuburger-server/internal/order"
	"github.com/ZainJ5/tipuburger-server/pkg/response"
)

const defaultPageSize = 20

// AdminOrdersList serves the back-office order list. Results are cached per
// filter combination; the cache version is captured before the query so a
// response raced by an invalidation is never stored.
func (h *Handler) AdminOrdersList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	q := r.URL.Query()

	statusParam := strings.TrimSpace(q.Get("status"))
	statuses, ok := parseStatusFilter(statusParam)
	if !ok {
		response.Error(w, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid status filter")
		return
	}

	page := queryInt(r, "page", 1)
	if page < 1 {
		page = 1
	}
	pageSize := queryInt(r, "limit", defaultPageSize)
	if pageSize < 1 || pageSize > 100 {
		pageSize = defaultPageSize
	}

	key := cache.Key{
		DateFilter:    strings.TrimSpace(q.Get("dateFilter")),
		CustomDate:    strings.TrimSpace(q.Get("customDate")),
		TypeFilter:    strings.ToLower(strings.TrimSpace(q.Get("type"))),
		StatusFilter:  statusFilterKey(statuses),
		PaymentFilter: strings.ToLower(strings.TrimSpace(q.Get("payment"))),
		BranchFilter:  strings.TrimSpace(q.Get("branch")),
		Page:          page,
	}

	if cached, hit := h.Cache.Get(key); hit {
		writeOrdersPage(w, cached, page, pageSize)
		return
	}

	version := h.Cache.Version()

	listed, total, err := h.Orders.List(ctx, order.ListFilter{
		DateFilter:    key.DateFilter,
		CustomDate:    key.CustomDate,
		TypeFilter:    key.TypeFilter,
		Statuses:      statuses,
		PaymentFilter: key.PaymentFilter,
		BranchID:      formBranchID(key.BranchFilter),
		Page:          page,
		PageSize:      pageSize,
	})
	if err != nil {
		h.Logger.Error("list orders", zap.Error(err))
		response.Error(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to fetch orders")
		return
	}

	result := cache.Page{
		Orders:     listed,
		TotalCount: total,
		TotalPages: (total + pageSize - 1) / pageSize,
	}
	h.Cache.Put(key, version, result)
	writeOrdersPage(w, result, page, pageSize)
}

func writeOrdersPage(w http.ResponseWriter, page cache.Page, pageNum, pageSize int) {
	response.JSON(w, http.StatusOK, map[string]any{
		"success": true,
		"data": map[string]any{
			"orders":     page.Orders,
			"totalCount": page.TotalCount,
			"totalPages": page.TotalPages,
			"page":       pageNum,
			"limit":      pageSize,
		},
	})
}

// parseStatusFilter maps the status query param onto concrete statuses.
// Empty means the working set an operator acts on; "all" lifts the filter.
func parseStatusFilter(param string) ([]order.Status, bool) {
	if param == "" {
		return []order.Status{order.StatusPending, order.StatusInProcess, order.StatusDispatched}, true
	}
	if strings.EqualFold(param, "all") {
		return nil, true
	}

	parts := strings.Split(param, ",")
	statuses := make([]order.Status, 0, len(parts))
	for _, part := range parts {
		status, ok := order.ParseStatus(part)
		if !ok {
			return nil, false
		}
		statuses = append(statuses, status)
	}
	return statuses, true
}

// statusFilterKey renders the parsed statuses back into canonical form so
// equivalent filters ("pending" vs "Pending") share one cache entry.
func statusFilterKey(statuses []order.Status) string {
	if statuses == nil {
		return "all"
	}
	parts := make([]string, len(statuses))
	for i, status := range statuses {
		parts[i] = string(status)
	}
	return strings.Join(parts, ",")
}

func formBranchID(branchFilter string) int64 {
	if branchFilter == "" || strings.EqualFold(branchFilter, "all") {
		return 0
	}
	id, err := strconv.ParseInt(branchFilter, 10, 64)
	if err != nil || id < 0 {
		return 0
	}
	return id
}
