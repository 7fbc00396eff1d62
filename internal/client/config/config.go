// Package config loads settings for the itemkeeper command-line client.
//
// Sources are applied in order, later ones winning:
//
//	defaults -> JSON file (-c / -config) -> command-line flags
package config

import "time"

// Config holds runtime settings for the client.
type Config struct {
	// ServerEndpointAddr is host:port of the itemkeeper gRPC endpoint.
	ServerEndpointAddr string
	// RequestTimeout bounds every single call to the server.
	RequestTimeout time.Duration
	// PageSize is the number of items the list command asks for.
	PageSize int
}

func (c *Config) LoadDefaults() {
	c.ServerEndpointAddr = "127.0.0.1:50051"
	c.RequestTimeout = 5 * time.Second
	c.PageSize = 10
}

func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
