package httpapi

import (
	"bufio"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/ZainJ5/tipuburger-server/internal/area"
	"github.com/ZainJ5/tipuburger-server/internal/cache"
	"github.com/ZainJ5/tipuburger-server/internal/config"
	"github.com/ZainJ5/tipuburger-server/internal/http/handlers"
	"github.com/ZainJ5/tipuburger-server/internal/middleware"
	"github.com/ZainJ5/tipuburger-server/internal/order"
	"github.com/ZainJ5/tipuburger-server/internal/promo"
	"github.com/ZainJ5/tipuburger-server/internal/queue"
	"github.com/ZainJ5/tipuburger-server/internal/storage"
	"github.com/ZainJ5/tipuburger-server/internal/ws"
)

func NewRouter(
	db *pgxpool.Pool,
	logger *zap.Logger,
	cfg config.Config,
	queueClient *queue.Client,
	store *storage.ObjectStore,
	pageCache *cache.PageCache,
	wsServer *ws.Server,
) http.Handler {
	r := chi.NewRouter()
	r.Use(requestLogger(logger))
	r.Use(middleware.RequestID())

	if cfg.Env == "development" || len(cfg.CorsAllowedOrigins) > 0 {
		options := cors.Options{
			AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowedHeaders: []string{
				"Accept",
				"Authorization",
				"Content-Type",
				"X-Requested-With",
				"Cache-Control",
				"Pragma",
			},
			AllowCredentials: true,
			MaxAge:           300,
		}
		if cfg.Env == "development" {
			options.AllowOriginFunc = func(_ *http.Request, origin string) bool {
				return true
			}
		} else {
			options.AllowedOrigins = cfg.CorsAllowedOrigins
		}
		r.Use(cors.Handler(options))
	}

	h := &handlers.Handler{
		DB:     db,
		Logger: logger,
		Config: cfg,
		Queue:  queueClient,
		Cache:  pageCache,
		Store:  store,
		Sink:   wsServer,
		Orders: &order.Repo{DB: db},
		Areas:  &area.Repo{DB: db},
		Promos: &promo.Repo{DB: db},
	}

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Route("/api/public", func(r chi.Router) {
		r.Post("/orders", h.PublicOrderCreate)
		r.Get("/orders/{orderNumber}", h.PublicOrderTrack)
		r.Get("/delivery-areas", h.PublicDeliveryAreas)
		r.Get("/branches", h.PublicBranchesList)
	})

	r.Post("/api/admin/login", h.AdminLogin)

	r.Route("/api/admin", func(r chi.Router) {
		r.Use(middleware.AdminAuth(cfg.JWTSecret))

		r.Get("/orders", h.AdminOrdersList)
		r.Get("/statistics", h.AdminOrderStats)
		r.Get("/orders/{orderId}", h.AdminOrderDetail)
		r.Patch("/orders/{orderId}", h.AdminOrderUpdateStatus)
		r.Delete("/orders/{orderId}", h.AdminOrderDelete)
		r.Get("/orders/{orderId}/kitchen-slip", h.AdminOrderKitchenSlip)
		r.Get("/orders/{orderId}/pre-bill", h.AdminOrderPreBill)
		r.Get("/orders/{orderId}/receipt", h.AdminOrderReceipt)

		r.Get("/areas", h.AdminAreasList)
		r.Post("/areas", h.AdminAreaCreate)
		r.Put("/areas/{areaId}", h.AdminAreaUpdate)
		r.Delete("/areas/{areaId}", h.AdminAreaDelete)

		r.Get("/promos", h.AdminPromosList)
		r.Post("/promos", h.AdminPromoCreate)
		r.Delete("/promos/{promoId}", h.AdminPromoDelete)

		r.Get("/global-discount", h.AdminGlobalDiscountGet)
		r.Put("/global-discount", h.AdminGlobalDiscountSet)

		r.Post("/branches", h.AdminBranchCreate)
		r.Put("/branches/{branchId}", h.AdminBranchUpdate)
	})

	if wsServer != nil {
		r.Get("/ws/orders", wsServer.Handle)
	}

	return r
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

// Hijack passthrough keeps the websocket upgrade working behind the
// logging wrapper.
func (r *statusRecorder) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	hj, ok := r.ResponseWriter.(http.Hijacker)
	if !ok {
		return nil, nil, fmt.Errorf("response writer does not support hijacking")
	}
	return hj.Hijack()
}

func (r *statusRecorder) Flush() {
	if f, ok := r.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func requestLogger(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(rec, r)
			logger.Info("",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", rec.status),
				zap.Duration("duration", time.Since(start)),
			)
		})
	}
}
