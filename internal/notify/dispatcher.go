package notify

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/freightlink/portal/internal/metrics"
)

// Message is one templated notification for the external dispatch
// subsystem: who to reach, which template, and its variables.
type Message struct {
	Recipient  string            `json:"recipient"`
	TemplateID string            `json:"template_id"`
	Variables  map[string]string `json:"variables"`
	EnqueuedAt time.Time         `json:"enqueued_at"`
}

// Notifier is what the stores see. Delivery is best-effort: Enqueue never
// blocks and never reports failure to the caller.
type Notifier interface {
	Enqueue(ctx context.Context, msg Message)
}

// Dispatcher fans messages out to a worker pool that publishes them to the
// notification topic. A full buffer or a shutdown drops the message with a
// warning; nothing upstream is ever rolled back over a lost notification.
type Dispatcher struct {
	topic       string
	workerCount int
	producer    Producer

	input      chan Message
	shutdownCh chan struct{}
	once       sync.Once
	wg         sync.WaitGroup
	logger     *zap.Logger
}

func NewDispatcher(producer Producer, topic string, workerCount, bufferSize int, logger *zap.Logger) *Dispatcher {
	return &Dispatcher{
		topic:       topic,
		workerCount: workerCount,
		producer:    producer,
		input:       make(chan Message, bufferSize),
		shutdownCh:  make(chan struct{}),
		logger:      logger,
	}
}

func (d *Dispatcher) Start(ctx context.Context) {
	d.logger.Info("Starting notification dispatcher", zap.Int("workers", d.workerCount))
	for i := 0; i < d.workerCount; i++ {
		d.wg.Add(1)
		go d.runWorker(ctx, i)
	}
}

func (d *Dispatcher) Enqueue(ctx context.Context, msg Message) {
	if msg.EnqueuedAt.IsZero() {
		msg.EnqueuedAt = time.Now().UTC()
	}

	select {
	case d.input <- msg:
	default:
		metrics.NotificationsDroppedTotal.Inc()
		d.logger.Warn("Notification dropped: dispatcher buffer full",
			zap.String("recipient", msg.Recipient),
			zap.String("template_id", msg.TemplateID),
		)
	}
}

func (d *Dispatcher) runWorker(ctx context.Context, id int) {
	defer d.wg.Done()

	for {
		select {
		case msg := <-d.input:
			d.send(msg)
		case <-d.shutdownCh:
			// Drain whatever is already buffered before exiting.
			for {
				select {
				case msg := <-d.input:
					d.send(msg)
				default:
					d.logger.Debug("Notification worker stopped", zap.Int("worker", id))
					return
				}
			}
		case <-ctx.Done():
			d.logger.Debug("Notification worker context cancelled", zap.Int("worker", id))
			return
		}
	}
}

func (d *Dispatcher) send(msg Message) {
	payload, err := json.Marshal(msg)
	if err != nil {
		d.logger.Error("Failed to encode notification", zap.Error(err))
		return
	}

	sendCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	key := []byte(uuid.NewString())
	if err := d.producer.SendMessage(sendCtx, d.topic, key, payload); err != nil {
		metrics.NotificationsDroppedTotal.Inc()
		d.logger.Warn("Failed to publish notification",
			zap.String("recipient", msg.Recipient),
			zap.String("template_id", msg.TemplateID),
			zap.Error(err),
		)
	}
}

func (d *Dispatcher) Shutdown(ctx context.Context) {
	d.once.Do(func() {
		d.logger.Info("Shutting down notification dispatcher")
		close(d.shutdownCh)

		done := make(chan struct{})
		go func() {
			d.wg.Wait()
			close(done)
		}()

		select {
		case <-done:
			d.logger.Info("Notification dispatcher shutdown completed")
		case <-ctx.Done():
			d.logger.Warn("Notification dispatcher shutdown timed out")
		}

		if err := d.producer.Close(); err != nil {
			d.logger.Error("Failed to close notification producer", zap.Error(err))
		}
	})
}
