package config

import (
	"fmt"
	"runtime"
)

// SelfPlayConfig holds settings for batches of computer-only games.
type SelfPlayConfig struct {
	// Games is the number of self-play games to run (0 = none).
	Games int

	// Workers is the number of games played concurrently.
	Workers int

	// MaxPlies ends a game without a winner after this many plies
	// (0 = no limit).
	MaxPlies int
}

// NewSelfPlayConfig creates a SelfPlayConfig with default values.
func NewSelfPlayConfig() *SelfPlayConfig {
	return &SelfPlayConfig{
		Workers:  runtime.NumCPU(),
		MaxPlies: 500,
	}
}

// Validate checks that the self-play configuration is valid.
func (s *SelfPlayConfig) Validate() error {
	switch {
	case s.Games < 0:
		return fmt.Errorf("self-play games (%d) < 0", s.Games)
	case s.Workers < 1:
		return fmt.Errorf("workers (%d) < 1", s.Workers)
	case s.MaxPlies < 0:
		return fmt.Errorf("max plies (%d) < 0", s.MaxPlies)
	case s.Games > 0 && s.MaxPlies == 0:
		// Two random movers can shuffle forever.
		return fmt.Errorf("self-play needs a max plies limit")
	}
	return nil
}
