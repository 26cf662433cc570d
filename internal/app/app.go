package app

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/orders/internal/health"
	"github.com/vladislavdragonenkov/orders/internal/metrics"
	"github.com/vladislavdragonenkov/orders/internal/notify"
	"github.com/vladislavdragonenkov/orders/internal/service/orders"
	websvc "github.com/vladislavdragonenkov/orders/internal/service/web"
	"github.com/vladislavdragonenkov/orders/internal/version"
)

const shutdownTimeout = 5 * time.Second

// Run собирает и запускает магазин: веб-сервер заказов и сервисный
// сервер с метриками и health checks. Блокируется до отмены ctx
// или падения веб-сервера.
func Run(ctx context.Context, cfg Config) error {
	logger := log.WithField("component", "app")

	deps, err := NewDependencies(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer deps.Close()

	kafkaProducer, err := initKafkaProducer(cfg.KafkaBrokers, logger)
	if err != nil {
		// Магазин работает и без шины событий.
		kafkaProducer = nil
	}
	defer closeKafka(kafkaProducer, logger)

	orderMetrics := metrics.NewOrderMetrics()
	composer := notify.NewComposer(cfg.MailFrom)

	opts := []orders.Option{orders.WithMetrics(orderMetrics)}
	if kafkaProducer != nil {
		opts = append(opts, orders.WithEventPublisher(kafkaProducer))
	}
	workflow := orders.NewWorkflow(
		deps.Repo,
		deps.Carts,
		deps.Sender,
		composer,
		logger.WithField("layer", "orders"),
		opts...,
	)

	healthHandler := health.NewHandler(version.GetVersion())
	deps.RegisterHealthChecks(healthHandler)

	opsSrv := startOpsServer(ctx, cfg.OpsAddr, logger, healthHandler)

	webHandler := websvc.NewHandler(workflow, logger.WithField("layer", "web"))
	webSrv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           websvc.NewRouter(webHandler),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Infof("веб-сервер заказов слушает %s", cfg.HTTPAddr)
		errCh <- webSrv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		logger.Info("получен сигнал остановки, останавливаем веб-сервер")
		shutdownHTTP(webSrv, logger)
		shutdownHTTP(opsSrv, logger)
		return ctx.Err()
	case err := <-errCh:
		shutdownHTTP(opsSrv, logger)
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

// startOpsServer запускает сервисный HTTP-сервер: метрики Prometheus
// и health checks для оркестратора.
func startOpsServer(ctx context.Context, addr string, logger *log.Entry, healthHandler *health.Handler) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.Handle("/healthz", healthHandler)
	mux.HandleFunc("/livez", health.LivenessHandler)
	mux.HandleFunc("/readyz", healthHandler.ReadinessHandler)

	srv := &http.Server{Addr: addr, Handler: mux}
	go func() {
		logger.Infof("метрики доступны по адресу %s/metrics", addr)
		logger.Infof("health checks: %s/healthz, %s/livez, %s/readyz", addr, addr, addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithError(err).Warn("ops server failed")
		}
	}()

	go func() {
		<-ctx.Done()
		shutdownHTTP(srv, logger)
	}()

	return srv
}

// shutdownHTTP аккуратно останавливает HTTP-сервер.
func shutdownHTTP(srv *http.Server, logger *log.Entry) {
	if srv == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.WithError(err).Warn("http server shutdown with error")
	}
}
