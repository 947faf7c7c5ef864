package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/toshihome/homestay-bookings/pkg/logger"
)

type Publisher interface {
	Publish(ctx context.Context, subject string, data interface{}) error
	Close() error
}

type NATSEventBus struct {
	conn *nats.Conn
}

func NewNATSEventBus(url string) (*NATSEventBus, error) {
	conn, err := nats.Connect(url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	return &NATSEventBus{conn: conn}, nil
}

func (n *NATSEventBus) Publish(ctx context.Context, subject string, data interface{}) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to marshal event data: %w", err)
	}

	logger.DebugContext(ctx, "Publishing event", "subject", subject, "data", string(payload))

	return n.conn.Publish(subject, payload)
}

func (n *NATSEventBus) Close() error {
	n.conn.Close()
	return nil
}

// NoopBus is used when no NATS URL is configured; publishes are dropped.
type NoopBus struct{}

func (NoopBus) Publish(ctx context.Context, subject string, data interface{}) error {
	logger.DebugContext(ctx, "Event bus disabled, dropping event", "subject", subject)
	return nil
}

func (NoopBus) Close() error { return nil }

// Event subjects
const (
	HomestayCreated = "homestay.created"
	BookingCreated  = "booking.created"
)

// Event payloads
type HomestayCreatedEvent struct {
	HomestayID    string    `json:"homestay_id"`
	Title         string    `json:"title"`
	Country       string    `json:"country"`
	PricePerNight float64   `json:"price_per_night"`
	CreatedAt     time.Time `json:"created_at"`
}

type BookingCreatedEvent struct {
	BookingID  string    `json:"booking_id"`
	HomestayID string    `json:"homestay_id"`
	GuestEmail string    `json:"guest_email"`
	GuestName  string    `json:"guest_name"`
	Guests     int       `json:"guests"`
	CheckIn    string    `json:"check_in"`
	CheckOut   string    `json:"check_out"`
	CreatedAt  time.Time `json:"created_at"`
}
