package bookingclient

import (
	"context"
	"errors"
	"math/rand"
	"time"

	"go.uber.org/zap"
)

// ErrUnavailable is the simulated backend's failure outcome. It is a
// business outcome rather than a system fault: callers surface it as a
// retryable notice, never as an unrecoverable error.
var ErrUnavailable = errors.New("network error: could not reach server")

// Client simulates an unreliable scheduling backend. Each call completes
// after a fixed latency window and succeeds or fails with uniform 50/50
// probability drawn from an injectable random source, so tests can force
// either branch deterministically.
type Client struct {
	latency time.Duration
	draw    func() float64
	logger  *zap.Logger
}

// NewClient creates a booking client backed by math/rand
func NewClient(latency time.Duration, logger *zap.Logger) *Client {
	return &Client{
		latency: latency,
		draw:    rand.Float64,
		logger:  logger,
	}
}

// NewClientWithSource creates a booking client with an injected outcome
// source; draws >= 0.5 fail
func NewClientWithSource(latency time.Duration, draw func() float64, logger *zap.Logger) *Client {
	return &Client{
		latency: latency,
		draw:    draw,
		logger:  logger,
	}
}

// BookAppointment submits a scheduling attempt for the given donor. It
// blocks for the configured latency (honoring ctx cancellation) and then
// resolves to success or ErrUnavailable.
func (c *Client) BookAppointment(ctx context.Context, donorID string, when time.Time) error {
	c.logger.Debug("Submitting appointment to backend",
		zap.String("donor_id", donorID),
		zap.Time("when", when))

	if c.latency > 0 {
		select {
		case <-time.After(c.latency):
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	if c.draw() >= 0.5 {
		c.logger.Debug("Backend rejected appointment", zap.String("donor_id", donorID))
		return ErrUnavailable
	}

	c.logger.Debug("Backend accepted appointment", zap.String("donor_id", donorID))
	return nil
}
