package config

import (
	"fmt"
	"net"
)

// ServerConfig holds settings for the HTTP front-end.
type ServerConfig struct {
	// ListenAddr is the host:port the server binds to.
	ListenAddr string

	// MaxGames caps the number of games served at once (0 = no limit).
	MaxGames int
}

// NewServerConfig creates a ServerConfig with default values.
func NewServerConfig() *ServerConfig {
	return &ServerConfig{ListenAddr: ":8080"}
}

// Validate checks that the server configuration is valid.
func (s *ServerConfig) Validate() error {
	if _, _, err := net.SplitHostPort(s.ListenAddr); err != nil {
		return fmt.Errorf("listen address %q: %v", s.ListenAddr, err)
	}
	if s.MaxGames < 0 {
		return fmt.Errorf("max games (%d) < 0", s.MaxGames)
	}
	return nil
}
