package config

import (
	"fmt"
	"strings"
)

// OutputConfig holds settings related to board output and saved games.
type OutputConfig struct {
	// Unicode draws pieces with chess glyphs instead of FEN letters
	Unicode bool

	// ShowCaptured prints each side's captured pieces under the board
	ShowCaptured bool

	// JSONFormat prints JSON views instead of text boards
	JSONFormat bool

	// SaveDir is where --save writes and --load reads .save files
	SaveDir string
}

// NewOutputConfig creates an OutputConfig with default values.
func NewOutputConfig() *OutputConfig {
	return &OutputConfig{
		Unicode:      true,
		ShowCaptured: true,
		SaveDir:      ".",
	}
}

// Validate checks that the output configuration is valid.
func (o *OutputConfig) Validate() error {
	if strings.TrimSpace(o.SaveDir) == "" {
		return fmt.Errorf("save directory is empty")
	}
	return nil
}
