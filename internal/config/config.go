// Package config provides configuration for the chess console, the self-play
// runner and the HTTP server.
package config

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/hashicorp/go-multierror"

	"github.com/lgbarn/chess-rules-go/internal/errors"
)

// Verbosity levels.
const (
	Silent  = 0 // nothing but errors
	Summary = 1 // one line per game
	PerMove = 2 // running commentary
)

// Config holds all program configuration.
// The sub-configs are embedded so their fields can be used directly,
// e.g. cfg.WhiteCPU or cfg.MaxPlies.
type Config struct {
	*PlayerConfig
	*SelfPlayConfig
	*ServerConfig
	*OutputConfig

	Verbosity int // 0=nothing, 1=game summary, 2=running commentary

	// Output streams
	OutputFile io.Writer
	LogFile    io.Writer
}

// NewConfig creates a new Config with default values.
func NewConfig() *Config {
	return &Config{
		PlayerConfig:   NewPlayerConfig(),
		SelfPlayConfig: NewSelfPlayConfig(),
		ServerConfig:   NewServerConfig(),
		OutputConfig:   NewOutputConfig(),
		Verbosity:      Summary,
		OutputFile:     os.Stdout,
		LogFile:        os.Stderr,
	}
}

// SetOutput sets the writer boards and results are printed to.
func (c *Config) SetOutput(w io.Writer) {
	c.OutputFile = w
}

// SetLog sets the writer diagnostics are logged to.
func (c *Config) SetLog(w io.Writer) {
	c.LogFile = w
}

// Logger returns a logger writing to LogFile. It discards everything when
// Verbosity is Silent.
func (c *Config) Logger() *log.Logger {
	w := c.LogFile
	if w == nil || c.Verbosity <= Silent {
		w = io.Discard
	}
	return log.New(w, "chess: ", log.LstdFlags)
}

// Verbose reports whether messages at the given level should be logged.
func (c *Config) Verbose(level int) bool {
	return c.Verbosity >= level
}

// Validate checks every sub-config and reports all problems at once.
func (c *Config) Validate() error {
	var errs error
	if c.Verbosity < Silent || c.Verbosity > PerMove {
		errs = multierror.Append(errs, fmt.Errorf("verbosity %d out of range 0-2", c.Verbosity))
	}
	for _, v := range []interface{ Validate() error }{
		c.PlayerConfig, c.SelfPlayConfig, c.ServerConfig, c.OutputConfig,
	} {
		if err := v.Validate(); err != nil {
			errs = multierror.Append(errs, err)
		}
	}
	if errs != nil {
		return fmt.Errorf("%w: %w", errors.ErrInvalidConfig, errs)
	}
	return nil
}
