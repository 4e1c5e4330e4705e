package config

import (
	"fmt"

	"github.com/lgbarn/chess-rules-go/internal/chess"
)

// PlayerConfig holds settings for who plays each side.
type PlayerConfig struct {
	WhiteCPU bool // White moves are chosen by the computer
	BlackCPU bool // Black moves are chosen by the computer

	// Promotion is the kind a computer player, or a request with no
	// explicit choice, promotes to.
	Promotion chess.Kind

	// Seed feeds the computer players' random source.
	Seed int64
}

// NewPlayerConfig creates a PlayerConfig with default values: two humans,
// promotion to Queen.
func NewPlayerConfig() *PlayerConfig {
	return &PlayerConfig{Promotion: chess.Queen, Seed: 1}
}

// IsCPU reports whether the computer plays the given colour.
func (p *PlayerConfig) IsCPU(colour chess.Colour) bool {
	if colour == chess.White {
		return p.WhiteCPU
	}
	return p.BlackCPU
}

// Validate checks that the player configuration is valid.
func (p *PlayerConfig) Validate() error {
	if !p.Promotion.IsPromotionTarget() {
		return fmt.Errorf("promotion kind %v is not a promotion target", p.Promotion)
	}
	return nil
}
