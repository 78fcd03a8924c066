package notification

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	backoff "github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
	"go.uber.org/zap"

	"github.com/mealmeet-team/mealmeet/internal/domain/entities"
	"github.com/mealmeet-team/mealmeet/pkg/config"
)

// Publisher abstracts the transport so tests can run without a broker
type Publisher interface {
	Publish(subject string, data []byte) error
}

// Dispatcher delivers notifications over NATS subjects
// (<prefix>.user.<id>). Delivery is fire-and-forget: a slow or failing
// send never blocks its siblings or the calling operation beyond the
// per-send timeout.
type Dispatcher struct {
	publisher     Publisher
	subjectPrefix string
	sendTimeout   time.Duration
	sem           chan struct{} // worker pool: limit concurrent sends
	logger        *zap.Logger
}

// NewNATSConn connects to NATS, retrying with exponential backoff
// while the broker comes up
func NewNATSConn(cfg *config.NATSConfig) (*nats.Conn, error) {
	var nc *nats.Conn
	connect := func() error {
		var err error
		nc, err = nats.Connect(cfg.URL, nats.MaxReconnects(-1))
		return err
	}

	bo := backoff.NewExponentialBackOff()
	bo.MaxElapsedTime = cfg.ConnectWait
	if err := backoff.Retry(connect, bo); err != nil {
		return nil, fmt.Errorf("failed to connect to NATS at %s: %w", cfg.URL, err)
	}
	return nc, nil
}

// NewDispatcher creates a dispatcher backed by the given transport
func NewDispatcher(publisher Publisher, cfg *config.Config, logger *zap.Logger) *Dispatcher {
	return &Dispatcher{
		publisher:     publisher,
		subjectPrefix: cfg.NATS.SubjectPrefix,
		sendTimeout:   cfg.Notification.SendTimeout,
		sem:           make(chan struct{}, cfg.Notification.Workers),
		logger:        logger,
	}
}

type envelope struct {
	UserID       string                `json:"user_id"`
	Notification entities.Notification `json:"notification"`
	SentAt       time.Time             `json:"sent_at"`
}

// Send delivers one notification, bounded by the per-send timeout
func (d *Dispatcher) Send(ctx context.Context, userID uuid.UUID, n entities.Notification) error {
	data, err := json.Marshal(envelope{
		UserID:       userID.String(),
		Notification: n,
		SentAt:       time.Now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("failed to encode notification: %w", err)
	}

	subject := fmt.Sprintf("%s.user.%s", d.subjectPrefix, userID)

	sendCtx, cancel := context.WithTimeout(ctx, d.sendTimeout)
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- d.publisher.Publish(subject, data)
	}()

	select {
	case err := <-done:
		return err
	case <-sendCtx.Done():
		return fmt.Errorf("notification send timed out: %w", sendCtx.Err())
	}
}

// Fanout delivers the notification to every recipient as independent
// bounded tasks and returns how many sends succeeded. Failures are
// logged and collected, never propagated to the caller.
func (d *Dispatcher) Fanout(ctx context.Context, userIDs []uuid.UUID, n entities.Notification) int {
	var delivered int64
	var wg sync.WaitGroup

	for _, userID := range userIDs {
		wg.Add(1)
		d.sem <- struct{}{}
		go func(id uuid.UUID) {
			defer wg.Done()
			defer func() { <-d.sem }()

			if err := d.Send(ctx, id, n); err != nil {
				d.logger.Warn("fanout send failed",
					zap.String("user_id", id.String()),
					zap.String("type", string(n.Type)),
					zap.Error(err),
				)
				return
			}
			atomic.AddInt64(&delivered, 1)
		}(userID)
	}

	wg.Wait()
	return int(delivered)
}

// natsPublisher adapts a nats.Conn to the Publisher interface
type natsPublisher struct {
	nc *nats.Conn
}

// NewNATSPublisher wraps a NATS connection as a Publisher
func NewNATSPublisher(nc *nats.Conn) Publisher {
	return &natsPublisher{nc: nc}
}

// Publish sends the payload to the subject
func (p *natsPublisher) Publish(subject string, data []byte) error {
	return p.nc.Publish(subject, data)
}
