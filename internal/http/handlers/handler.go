package handlers

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/ZainJ5/tipuburger-server/internal/area"
	"github.com/ZainJ5/tipuburger-server/internal/cache"
	"github.com/ZainJ5/tipuburger-server/internal/config"
	"github.com/ZainJ5/tipuburger-server/internal/order"
	"github.com/ZainJ5/tipuburger-server/internal/promo"
	"github.com/ZainJ5/tipuburger-server/internal/queue"
	"github.com/ZainJ5/tipuburger-server/internal/storage"
)

type Handler struct {
	DB     *pgxpool.Pool
	Logger *zap.Logger
	Config config.Config
	Queue  *queue.Client
	Cache  *cache.PageCache
	Store  *storage.ObjectStore

	// Sink receives order events directly when no message queue is
	// configured; with a queue the daemon worker feeds it instead.
	Sink queue.OrderEventSink

	Orders *order.Repo
	Areas  *area.Repo
	Promos *promo.Repo
}

func (h *Handler) publishOrderEvent(ctx context.Context, eventType string, o *order.Order) {
	event := queue.NewOrderEvent(eventType, o)
	if h.Queue != nil {
		err := h.Queue.PublishOrderEvent(ctx, event)
		if err == nil {
			return
		}
		h.Logger.Warn("publish order event failed, falling back to direct dispatch",
			zap.String("event", eventType), zap.Error(err))
	}
	if h.Sink != nil {
		queue.DeliverOrderEvent(h.Sink, event)
	}
}
