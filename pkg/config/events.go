package config

import (
	"fmt"
	"strings"
	"time"
)

// EventsConfig controls publishing of product lifecycle events.
// NATS and CircuitBreaker are only validated when publishing is enabled.
type EventsConfig struct {
	Enabled        bool                 `koanf:"enabled"`
	PublishTimeout time.Duration        `koanf:"publishtimeout"`
	NATS           NATSConfig           `koanf:"nats"`
	CircuitBreaker CircuitBreakerConfig `koanf:"circuitbreaker"`
}

// String returns a string representation of the EventsConfig.
func (c *EventsConfig) String() string {
	var b strings.Builder
	b.WriteString("\n--- Events ---\n")
	b.WriteString(fmt.Sprintf("  enabled: %t\n", c.Enabled))
	b.WriteString(fmt.Sprintf("  publishtimeout: %s\n", c.PublishTimeout))
	if c.Enabled {
		b.WriteString(c.NATS.String())
		b.WriteString(c.CircuitBreaker.String())
	}
	return b.String()
}

func (c *EventsConfig) Validate() error {
	if !c.Enabled {
		return nil
	}
	if c.PublishTimeout <= 0 {
		return fmt.Errorf("events.publishtimeout must be greater than 0")
	}
	if err := c.NATS.Validate(); err != nil {
		return err
	}
	return c.CircuitBreaker.Validate()
}
