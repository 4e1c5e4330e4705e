package config

import (
	"io"

	"github.com/lgbarn/chess-rules-go/internal/chess"
)

// ConfigBuilder provides a fluent API for building Config instances.
type ConfigBuilder struct {
	cfg *Config
}

// NewConfigBuilder creates a new ConfigBuilder with default values.
func NewConfigBuilder() *ConfigBuilder {
	return &ConfigBuilder{
		cfg: NewConfig(),
	}
}

// Build returns the built Config.
func (b *ConfigBuilder) Build() *Config {
	return b.cfg
}

// WithCPU sets which colours the computer plays.
func (b *ConfigBuilder) WithCPU(white, black bool) *ConfigBuilder {
	b.cfg.WhiteCPU = white
	b.cfg.BlackCPU = black
	return b
}

// WithPromotion sets the default promotion kind.
func (b *ConfigBuilder) WithPromotion(kind chess.Kind) *ConfigBuilder {
	b.cfg.Promotion = kind
	return b
}

// WithSeed sets the computer players' random seed.
func (b *ConfigBuilder) WithSeed(seed int64) *ConfigBuilder {
	b.cfg.Seed = seed
	return b
}

// WithMaxPlies sets the ply limit for a game.
func (b *ConfigBuilder) WithMaxPlies(plies int) *ConfigBuilder {
	b.cfg.MaxPlies = plies
	return b
}

// WithSelfPlay sets the number of self-play games and concurrent workers.
func (b *ConfigBuilder) WithSelfPlay(games, workers int) *ConfigBuilder {
	b.cfg.Games = games
	b.cfg.Workers = workers
	return b
}

// WithListenAddr sets the HTTP listen address.
func (b *ConfigBuilder) WithListenAddr(addr string) *ConfigBuilder {
	b.cfg.ListenAddr = addr
	return b
}

// WithMaxGames caps the number of games the server holds.
func (b *ConfigBuilder) WithMaxGames(n int) *ConfigBuilder {
	b.cfg.MaxGames = n
	return b
}

// WithSaveDir sets the directory for saved games.
func (b *ConfigBuilder) WithSaveDir(dir string) *ConfigBuilder {
	b.cfg.SaveDir = dir
	return b
}

// WithUnicode chooses glyphs or letters for board output.
func (b *ConfigBuilder) WithUnicode(enabled bool) *ConfigBuilder {
	b.cfg.Unicode = enabled
	return b
}

// WithJSONOutput enables JSON output.
func (b *ConfigBuilder) WithJSONOutput(enabled bool) *ConfigBuilder {
	b.cfg.JSONFormat = enabled
	return b
}

// WithOutput sets the output writer.
func (b *ConfigBuilder) WithOutput(w io.Writer) *ConfigBuilder {
	b.cfg.OutputFile = w
	return b
}

// WithLog sets the log writer.
func (b *ConfigBuilder) WithLog(w io.Writer) *ConfigBuilder {
	b.cfg.LogFile = w
	return b
}

// WithVerbosity sets the verbosity level.
func (b *ConfigBuilder) WithVerbosity(level int) *ConfigBuilder {
	b.cfg.Verbosity = level
	return b
}
