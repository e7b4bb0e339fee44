package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/ZainJ5/tipuburger-server/internal/cache"
	"github.com/ZainJ5/tipuburger-server/internal/config"
	"github.com/ZainJ5/tipuburger-server/internal/db"
	httpapi "github.com/ZainJ5/tipuburger-server/internal/http"
	"github.com/ZainJ5/tipuburger-server/internal/logger"
	"github.com/ZainJ5/tipuburger-server/internal/queue"
	"github.com/ZainJ5/tipuburger-server/internal/storage"
	"github.com/ZainJ5/tipuburger-server/internal/ws"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	log, err := logger.New(cfg.Env)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	ctx := context.Background()
	pool, err := db.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatal("database connection failed", zap.Error(err))
	}
	defer pool.Close()

	var store *storage.ObjectStore
	if cfg.ObjectStoreEndpoint != "" {
		store, err = storage.NewObjectStore(ctx, storage.Config{
			Endpoint:        cfg.ObjectStoreEndpoint,
			Region:          cfg.ObjectStoreRegion,
			AccessKeyID:     cfg.ObjectStoreAccessKeyID,
			SecretAccessKey: cfg.ObjectStoreSecretAccessKey,
			Bucket:          cfg.ObjectStoreBucket,
			PublicBaseURL:   cfg.ObjectStorePublicBaseURL,
		})
		if err != nil {
			if cfg.Env == "production" {
				log.Fatal("object store init failed", zap.Error(err))
			}
			log.Warn("object store init failed; receipt uploads disabled", zap.Error(err))
			store = nil
		}
	} else {
		log.Info("object store disabled (OBJECT_STORE_ENDPOINT is empty)")
	}

	pageCache := cache.New()
	wsServer := ws.New(log, cfg, pageCache)

	var queueClient *queue.Client
	if cfg.RabbitMQURL != "" {
		qc, err := queue.New(cfg.RabbitMQURL)
		if err != nil {
			if cfg.Env == "production" {
				log.Fatal("rabbitmq connection failed", zap.Error(err))
			}
			log.Warn("rabbitmq connection failed; events fall back to in-process dispatch", zap.Error(err))
			qc = nil
		}
		if qc != nil {
			if err := queue.SetupTopology(qc); err != nil {
				if cfg.Env == "production" {
					log.Fatal("rabbitmq topology failed", zap.Error(err))
				}
				log.Warn("rabbitmq topology failed; events fall back to in-process dispatch", zap.Error(err))
				_ = qc.Close()
				qc = nil
			}
		}

		queueClient = qc
		if qc != nil {
			defer qc.Close()

			if cfg.RabbitMQWorkerMode == "daemon" {
				log.Info("order event worker enabled", zap.String("queue", queue.QueueNotifications))
				go func() {
					err := queueClient.ConsumeWithRetry(queue.QueueNotifications, func(ctx context.Context, body []byte) error {
						return queue.DispatchOrderEvent(wsServer, body)
					}, 5, 5*time.Second)
					if err != nil {
						log.Error("consumer stopped", zap.Error(err))
					}
				}()
			} else {
				log.Info("order event worker disabled", zap.String("mode", cfg.RabbitMQWorkerMode))
			}
		}
	} else {
		log.Info("order event worker disabled (RABBITMQ_URL is empty)")
	}

	apiServer := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      httpapi.NewRouter(pool, log, cfg, queueClient, store, pageCache, wsServer),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info("order service listening", zap.String("addr", cfg.HTTPAddr))
		if err := apiServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("http server failed", zap.Error(err))
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := apiServer.Shutdown(ctxShutdown); err != nil {
		log.Error("http server shutdown failed", zap.Error(err))
	}
}
