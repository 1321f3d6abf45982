// Package messaging distributes simulator output over NATS: one subject per
// symbol for per-second quotes and another for completed minute bars.
package messaging

import (
	"fmt"
	"sync"

	"github.com/nats-io/nats.go"
	"github.com/sirupsen/logrus"

	"github.com/synthfeed/pkg/config"
	"github.com/synthfeed/pkg/models"
)

const (
	quoteSubjectPrefix = "quotes."
	barSubjectPrefix   = "bars."
)

// NATSClient handles NATS messaging operations.
type NATSClient struct {
	conn    *nats.Conn
	encoder *nats.EncodedConn
	logger  *logrus.Entry

	subs   map[string]*nats.Subscription
	subsMu sync.RWMutex
}

// NewNATSClient creates a new NATS client.
func NewNATSClient(cfg *config.NATSConfig, logger *logrus.Logger) (*NATSClient, error) {
	opts := []nats.Option{
		nats.MaxReconnects(cfg.MaxReconnect),
		nats.ReconnectWait(cfg.ReconnectWait),
		nats.DisconnectErrHandler(func(nc *nats.Conn, err error) {
			logger.WithError(err).Warn("NATS disconnected")
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			logger.Info("NATS reconnected")
		}),
		nats.ClosedHandler(func(nc *nats.Conn) {
			logger.Info("NATS connection closed")
		}),
	}

	conn, err := nats.Connect(cfg.URL, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	encoder, err := nats.NewEncodedConn(conn, nats.JSON_ENCODER)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to create encoded connection: %w", err)
	}

	return &NATSClient{
		conn:    conn,
		encoder: encoder,
		logger:  logger.WithField("component", "nats"),
		subs:    make(map[string]*nats.Subscription),
	}, nil
}

// Close drains subscriptions and closes the NATS connection.
func (nc *NATSClient) Close() error {
	nc.subsMu.Lock()
	for _, sub := range nc.subs {
		sub.Unsubscribe()
	}
	nc.subs = make(map[string]*nats.Subscription)
	nc.subsMu.Unlock()

	nc.encoder.Close()
	return nil
}

// Health reports whether the connection is up.
func (nc *NATSClient) Health() error {
	if !nc.conn.IsConnected() {
		return fmt.Errorf("NATS not connected")
	}
	return nil
}

// PublishQuote publishes a quote on quotes.<symbol>.
func (nc *NATSClient) PublishQuote(quote *models.Quote) error {
	return nc.encoder.Publish(quoteSubjectPrefix+quote.Symbol, quote)
}

// PublishBar publishes a completed minute bar on bars.<symbol>.
func (nc *NATSClient) PublishBar(bar *models.Bar) error {
	return nc.encoder.Publish(barSubjectPrefix+bar.Symbol, bar)
}

// SubscribeQuotes subscribes to quote updates for all symbols.
func (nc *NATSClient) SubscribeQuotes(handler func(quote *models.Quote)) error {
	return nc.subscribe(quoteSubjectPrefix+">", func(quote *models.Quote) {
		handler(quote)
	})
}

// SubscribeBars subscribes to completed minute bars for all symbols.
func (nc *NATSClient) SubscribeBars(handler func(bar *models.Bar)) error {
	return nc.subscribe(barSubjectPrefix+">", func(bar *models.Bar) {
		handler(bar)
	})
}

func (nc *NATSClient) subscribe(subject string, handler interface{}) error {
	sub, err := nc.encoder.Subscribe(subject, handler)
	if err != nil {
		return fmt.Errorf("failed to subscribe to %s: %w", subject, err)
	}

	nc.subsMu.Lock()
	nc.subs[subject] = sub
	nc.subsMu.Unlock()

	nc.logger.WithField("subject", subject).Debug("Subscribed")
	return nil
}
