package metrics

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

const namespace = "scheduler"

var (
	// Operations число операций по названию и результату (ok или категория ошибки)
	Operations = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "operations_total",
		Help:      "Scheduling operations by name and result.",
	}, []string{"operation", "result"})

	// TxRetries число повторов транзакций после конфликта сериализации
	TxRetries = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "tx_retries_total",
		Help:      "Transactions retried after a serialization failure.",
	})

	// GeneratedSlots число слотов, созданных по регулярным шаблонам
	GeneratedSlots = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "generated_slots_total",
		Help:      "Availabilities generated from recurring templates.",
	})
)

// Observe учитывает результат операции
func Observe(operation, result string) {
	Operations.WithLabelValues(operation, result).Inc()
}

// Router служебные маршруты: /metrics и /healthz
func Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Handle("/metrics", promhttp.Handler())
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	return r
}

// Serve отдаёт служебные маршруты на addr до отмены ctx
func Serve(ctx context.Context, addr string, logger *zap.Logger) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Warn("Failed to shutdown metrics server", zap.Error(err))
		}
	}()

	logger.Info("Metrics server started", zap.String("addr", addr))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}
