package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/juanitaaa04/ethere-backend/internal/circuitbreaker"
	"github.com/juanitaaa04/ethere-backend/internal/config"
	httpapi "github.com/juanitaaa04/ethere-backend/internal/http"
	"github.com/juanitaaa04/ethere-backend/internal/logger"
	"github.com/juanitaaa04/ethere-backend/internal/metrics"
	"github.com/juanitaaa04/ethere-backend/internal/notify"
	"github.com/juanitaaa04/ethere-backend/internal/paypal"
	"github.com/juanitaaa04/ethere-backend/internal/pricing"
	"github.com/juanitaaa04/ethere-backend/internal/service"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
)

func runServe(envFile string) error {
	cfg, err := config.Load(envFile)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log := logger.New(os.Stdout, cfg.LogLevel)
	slog.SetDefault(log)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(propagation.TraceContext{}, propagation.Baggage{}))

	for _, w := range cfg.Warnings() {
		log.Warn(w)
	}

	m := metrics.New()
	httpClient := &http.Client{Transport: upstreamTransport(cfg, m, log)}

	paypalClient := paypal.NewClient(cfg.PayPal, httpClient, log)
	converter := pricing.NewConverter(cfg.Pricing.ConversionRate)
	orders := service.NewOrderService(paypalClient, converter, cfg.Pricing.SettlementCurrency, log)
	provider := service.NewConfigProvider(cfg.PayPal, cfg.Pricing.SettlementCurrency)

	sinks, closeSinks := notificationSinks(cfg, log)
	defer closeSinks()
	notifier := notify.NewNotifier(log, cfg.Notifier.Timeout, sinks...)

	router := httpapi.NewRouter(httpapi.RouterConfig{
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		RequestTimeout: cfg.RequestTimeout,
		Logger:         log,
	}, httpapi.Handlers{
		Config:  httpapi.NewConfigHandler(provider, log),
		Orders:  httpapi.NewOrdersHandler(orders, cfg.MaxRequestBodySize, log),
		Notify:  httpapi.NewNotifyHandler(notifier, cfg.MaxRequestBodySize),
		Metrics: m,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: cfg.RequestTimeout + 5*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("checkout proxy starting",
			slog.String("addr", srv.Addr),
			slog.String("paypal_env", cfg.PayPal.Env),
			slog.String("paypal_base_url", cfg.PayPal.BaseURL))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case <-quit:
	}

	log.Info("shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	log.Info("server exited")
	return nil
}

// upstreamTransport builds the PayPal transport: tracing outermost, then metrics,
// then the optional breaker in front of the pooled default transport.
func upstreamTransport(cfg *config.Config, m *metrics.Metrics, log *slog.Logger) http.RoundTripper {
	var rt http.RoundTripper = http.DefaultTransport.(*http.Transport).Clone()
	if cfg.Breaker.Enabled {
		rt = circuitbreaker.NewTransport(rt, circuitbreaker.Settings{
			Name:             "paypal",
			FailureThreshold: cfg.Breaker.FailureThreshold,
			OpenTimeout:      cfg.Breaker.OpenTimeout,
			Logger:           log,
		})
	}
	rt = m.InstrumentTransport(rt)
	return otelhttp.NewTransport(rt)
}

func notificationSinks(cfg *config.Config, log *slog.Logger) ([]notify.Sink, func()) {
	sinks := []notify.Sink{notify.NewLogSink(log, cfg.Pricing.LocalCurrency)}
	var closers []func() error

	if len(cfg.Notifier.KafkaBrokers) > 0 {
		k := notify.NewKafkaSink(notify.NewKafkaWriter(cfg.Notifier.KafkaBrokers, cfg.Notifier.KafkaTopic))
		sinks = append(sinks, k)
		closers = append(closers, k.Close)
		log.Info("forwarding owner notifications to kafka", slog.String("topic", cfg.Notifier.KafkaTopic))
	}
	if cfg.Notifier.RedisAddr != "" {
		r := notify.NewRedisSink(redis.NewClient(&redis.Options{Addr: cfg.Notifier.RedisAddr}), cfg.Notifier.RedisChannel)
		sinks = append(sinks, r)
		closers = append(closers, r.Close)
		log.Info("forwarding owner notifications to redis", slog.String("channel", cfg.Notifier.RedisChannel))
	}

	return sinks, func() {
		for _, c := range closers {
			if err := c(); err != nil {
				log.Warn("failed to close notification sink", slog.Any("error", err))
			}
		}
	}
}
