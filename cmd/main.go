package main

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/freightlink/portal/internal/db"
	"github.com/freightlink/portal/internal/logger"
	"github.com/freightlink/portal/internal/notify"
	"github.com/freightlink/portal/internal/repository/postgresql"
	"github.com/freightlink/portal/internal/server"
	"github.com/freightlink/portal/internal/storage"
)

const (
	defaultPort       = "9000"
	notificationTopic = "portal_notifications"
	sessionSweepEvery = time.Hour
)

func main() {
	log := logger.New()
	defer func() { _ = log.Sync() }()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	dbPool, err := db.NewDb(ctx)
	if err != nil {
		log.Fatal("database init failed", zap.Error(err))
	}
	defer dbPool.GetPool().Close()

	requestRepo := postgresql.NewQuoteRequestRepo(dbPool)
	quoteRepo := postgresql.NewQuoteRepo(dbPool)
	shipmentRepo := postgresql.NewShipmentRepo(dbPool)
	trackingRepo := postgresql.NewTrackingRepo(dbPool)
	sequenceRepo := postgresql.NewSequenceRepo(dbPool)
	userRepo := postgresql.NewUserRepo(dbPool)
	sessionRepo := postgresql.NewSessionRepo(dbPool)

	producer := notify.NewConsoleProducer()
	if brokers := os.Getenv("KAFKA_BROKERS"); brokers != "" {
		producer = notify.NewKafkaProducer(strings.Split(brokers, ","))
	}
	dispatcher := notify.NewDispatcher(producer, notificationTopic, 2, 64, log)
	dispatcher.Start(ctx)

	stg := storage.NewStorage(dbPool, requestRepo, quoteRepo, shipmentRepo, trackingRepo, sequenceRepo, dispatcher, log)

	srv := server.New(stg, userRepo, sessionRepo, log)

	port := os.Getenv("PORT")
	if port == "" {
		port = defaultPort
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return srv.Run(port)
	})

	// Expired sessions accumulate otherwise; sweep them on a timer.
	g.Go(func() error {
		ticker := time.NewTicker(sessionSweepEvery)
		defer ticker.Stop()
		for {
			select {
			case <-gctx.Done():
				return nil
			case <-ticker.C:
				deleted, err := sessionRepo.DeleteExpired(gctx)
				if err != nil {
					log.Warn("session sweep failed", zap.Error(err))
					continue
				}
				if deleted > 0 {
					log.Info("expired sessions removed", zap.Int64("count", deleted))
				}
			}
		}
	})

	g.Go(func() error {
		<-gctx.Done()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error("server shutdown failed", zap.Error(err))
		}
		dispatcher.Shutdown(shutdownCtx)
		return nil
	})

	if err := g.Wait(); err != nil {
		log.Fatal("server exited", zap.Error(err))
	}
	log.Info("server stopped")
}
