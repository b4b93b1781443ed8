package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/couchcryptid/phone-temp-checker/internal/adapter/battery"
	"github.com/couchcryptid/phone-temp-checker/internal/adapter/httpadapter"
	kafkaadapter "github.com/couchcryptid/phone-temp-checker/internal/adapter/kafka"
	"github.com/couchcryptid/phone-temp-checker/internal/checker"
	"github.com/couchcryptid/phone-temp-checker/internal/config"
	"github.com/couchcryptid/phone-temp-checker/internal/domain"
	"github.com/couchcryptid/phone-temp-checker/internal/observability"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	prober := newProber(cfg, logger)

	// Notices always go to the log; Kafka is feature-flagged via KAFKA_BROKERS / KAFKA_ENABLED.
	notifiers := checker.MultiNotifier{checker.NewLogNotifier(logger)}
	var noticeWriter *kafkaadapter.NoticeWriter
	if cfg.KafkaEnabled {
		noticeWriter = kafkaadapter.NewNoticeWriter(cfg, logger)
		notifiers = append(notifiers, noticeWriter)
		logger.Info("kafka notice publishing enabled", "brokers", cfg.KafkaBrokers, "topic", cfg.KafkaNoticeTopic)
	}

	c := checker.New(prober, notifiers, logger, metrics, cfg.ProbeTimeout)
	srv := httpadapter.NewServer(cfg.HTTPAddr, c, c, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go c.ProbeCapability(ctx)

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	if noticeWriter != nil {
		if err := noticeWriter.Close(); err != nil {
			logger.Error("kafka writer close error", "error", err)
		}
	}

	logger.Info("shutdown complete")
}

// newProber selects the battery capability from PROBE_SOURCE.
func newProber(cfg *config.Config, logger *slog.Logger) domain.BatteryProber {
	switch cfg.ProbeSource {
	case config.ProbeSysfs:
		logger.Info("battery probing via sysfs", "path", cfg.SysfsPath, "timeout", cfg.ProbeTimeout)
		return battery.NewSysfsProber(cfg.SysfsPath)
	default:
		logger.Info("battery probing disabled")
		return battery.Unsupported{}
	}
}
