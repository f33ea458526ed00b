// Package config holds the product service configuration.
package config

import (
	"fmt"
	"strings"

	"github.com/abgdnv/productcatalog/pkg/config"
	"github.com/abgdnv/productcatalog/pkg/config/configloader"
)

var _ configloader.Validator = (*Config)(nil)

// ServiceName prefixes the environment variables, e.g. PRODUCT_SERVER_PORT.
const ServiceName = "product"

type Config struct {
	HTTPServer config.HTTPConfig       `koanf:"server"`
	Log        config.LogConfig        `koanf:"log"`
	PProf      config.PProfConfig      `koanf:"pprof"`
	GRPC       config.GrpcServerConfig `koanf:"grpc"`
	Shutdown   config.ShutdownConfig   `koanf:"shutdown"`
	Catalog    CatalogConfig           `koanf:"catalog"`
	Events     config.EventsConfig     `koanf:"events"`
	Telemetry  config.TelemetryConfig  `koanf:"telemetry"`
	Metrics    config.MetricsConfig    `koanf:"metrics"`
}

// CatalogConfig controls the initial content of the in-memory catalog.
type CatalogConfig struct {
	Seed bool `koanf:"seed"`
}

// Defaults returns the built-in values, overridden by config.yaml, .env and the environment.
func Defaults() map[string]any {
	return map[string]any{
		"server.port":               8080,
		"server.maxheaderbytes":     1 << 20,
		"server.timeout.read":       "5s",
		"server.timeout.write":      "10s",
		"server.timeout.idle":       "60s",
		"server.timeout.readheader": "2s",

		"log.level": "info",

		"pprof.enabled": false,
		"pprof.addr":    "localhost:6060",

		"grpc.enabled":    false,
		"grpc.port":       "9090",
		"grpc.reflection": false,

		"shutdown.timeout": "10s",

		"catalog.seed": true,

		"events.enabled":                            false,
		"events.publishtimeout":                     "2s",
		"events.nats.url":                           "nats://localhost:4222",
		"events.nats.timeout":                       "5s",
		"events.nats.stream":                        "PRODUCTS",
		"events.circuitbreaker.consecutivefailures": 5,
		"events.circuitbreaker.errorratepercent":    50,
		"events.circuitbreaker.opentimeout":         "30s",
		"events.circuitbreaker.halfopenrequests":    1,

		"telemetry.enabled":                  false,
		"telemetry.traces.otlphttp.endpoint": "localhost:4318",
		"telemetry.traces.otlphttp.insecure": true,
		"telemetry.traces.otlphttp.timeout":  "5s",

		"metrics.enabled": true,
		"metrics.path":    "/metrics",
	}
}

// Load reads the configuration for the product service.
func Load() (*Config, error) {
	return configloader.Load[*Config](ServiceName, Defaults())
}

func (c *Config) String() string {
	var b strings.Builder

	b.WriteString(c.HTTPServer.String())
	b.WriteString(c.GRPC.String())
	b.WriteString(c.Log.String())
	b.WriteString(c.PProf.String())
	b.WriteString(c.Shutdown.String())

	b.WriteString("\n--- Catalog ---\n")
	b.WriteString(fmt.Sprintf("  seed: %t\n", c.Catalog.Seed))

	b.WriteString(c.Events.String())
	b.WriteString(c.Telemetry.String())
	b.WriteString(c.Metrics.String())

	return b.String()
}

// Validate checks if the configuration values are valid
func (c *Config) Validate() error {
	validators := []interface{ Validate() error }{
		&c.HTTPServer,
		&c.Log,
		&c.PProf,
		&c.GRPC,
		&c.Shutdown,
		&c.Events,
		&c.Telemetry,
		&c.Metrics,
	}
	for _, v := range validators {
		if err := v.Validate(); err != nil {
			return err
		}
	}
	return nil
}
