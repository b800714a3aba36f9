package main

import (
	"context"
	"encoding/json"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/freightlink/portal/internal/logger"
	"github.com/freightlink/portal/internal/notify"
)

const (
	defaultBrokers = "localhost:9092"
	topic          = "portal_notifications"
	groupID        = "portal-notification-consumer"
)

// Development stand-in for the delivery gateway: reads notification messages
// and prints them instead of sending mail.
func main() {
	log := logger.New()
	defer func() { _ = log.Sync() }()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	brokers := os.Getenv("KAFKA_BROKERS")
	if brokers == "" {
		brokers = defaultBrokers
	}

	r := kafka.NewReader(kafka.ReaderConfig{
		Brokers:        strings.Split(brokers, ","),
		GroupID:        groupID,
		Topic:          topic,
		MinBytes:       10e3,
		MaxBytes:       10e6,
		CommitInterval: time.Second,
		MaxWait:        3 * time.Second,
	})
	defer func() {
		if err := r.Close(); err != nil {
			log.Error("failed to close kafka reader", zap.Error(err))
		}
	}()

	log.Info("notification consumer started",
		zap.String("topic", topic), zap.String("brokers", brokers))

	for {
		m, err := r.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("shutdown signal received, stopping consumer")
				return
			}
			log.Error("failed to read message", zap.Error(err))
			time.Sleep(5 * time.Second)
			continue
		}

		var msg notify.Message
		if err := json.Unmarshal(m.Value, &msg); err != nil {
			log.Warn("skipping malformed notification",
				zap.String("key", string(m.Key)), zap.Error(err))
			continue
		}

		log.Info("notification",
			zap.String("key", string(m.Key)),
			zap.String("recipient", msg.Recipient),
			zap.String("template", msg.TemplateID),
			zap.Any("variables", msg.Variables),
			zap.Time("enqueued_at", msg.EnqueuedAt),
		)
	}
}
