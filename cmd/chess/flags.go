// flags.go - Command-line flag definitions and configuration
package main

import (
	"flag"
	"fmt"
	"runtime"
	"strings"

	"github.com/lgbarn/chess-rules-go/internal/chess"
	"github.com/lgbarn/chess-rules-go/internal/config"
)

var (
	// Players
	whiteCPU  = flag.Bool("white-cpu", false, "White is played by the computer")
	blackCPU  = flag.Bool("black-cpu", false, "Black is played by the computer")
	promotion = flag.String("promotion", "Q", "Promotion piece for computer players and unanswered prompts (Q, R, B, N)")
	seed      = flag.Int64("seed", 1, "Seed for the computer players")
	maxPlies  = flag.Int("max-plies", 500, "Stop a game without a winner after N plies (0 = no limit)")

	// Starting position
	startFEN = flag.String("fen", "", "Start from this FEN position")
	loadName = flag.String("load", "", "Resume the saved game with this name")
	saveDir  = flag.String("save-dir", ".", "Directory for saved games")

	// Self-play
	selfPlay = flag.Int("selfplay", 0, "Play N computer-only games and print a summary")
	workers  = flag.Int("workers", runtime.NumCPU(), "Number of self-play games run at once")

	// Output options
	outputFile = flag.String("o", "", "Output file (default: stdout)")
	jsonOutput = flag.Bool("json", false, "Print boards as JSON")
	asciiBoard = flag.Bool("ascii", false, "Draw the board with ASCII characters")
	noCaptured = flag.Bool("nocaptured", false, "Don't list captured pieces under the board")
	pgnOutput  = flag.Bool("pgn", false, "Print the finished game as PGN")

	// Logging
	logFile   = flag.String("l", "", "Write diagnostics to file (default: stderr)")
	verbosity = flag.Int("v", config.Summary, "Verbosity: 0 silent, 1 summary, 2 every move")

	// Help
	help    = flag.Bool("h", false, "Show help")
	version = flag.Bool("version", false, "Show version")
)

// applyFlags copies the parsed flags into cfg.
func applyFlags(cfg *config.Config) error {
	applyPlayerFlags(cfg)
	if err := applyPromotionFlag(cfg); err != nil {
		return err
	}
	applySelfPlayFlags(cfg)
	applyOutputFlags(cfg)
	cfg.Verbosity = *verbosity
	return nil
}

// applyPlayerFlags configures who plays each side.
func applyPlayerFlags(cfg *config.Config) {
	cfg.WhiteCPU = *whiteCPU
	cfg.BlackCPU = *blackCPU
	cfg.Seed = *seed
	cfg.MaxPlies = *maxPlies
}

// applyPromotionFlag sets the default promotion piece.
func applyPromotionFlag(cfg *config.Config) error {
	kind, err := parsePromotion(*promotion)
	if err != nil {
		return err
	}
	cfg.Promotion = kind
	return nil
}

// applySelfPlayFlags configures batch self-play. Self-play games are
// computer-only whatever the player flags say.
func applySelfPlayFlags(cfg *config.Config) {
	cfg.Games = *selfPlay
	cfg.Workers = *workers
}

// applyOutputFlags configures board rendering and saving.
func applyOutputFlags(cfg *config.Config) {
	cfg.Unicode = !*asciiBoard
	cfg.ShowCaptured = !*noCaptured
	cfg.JSONFormat = *jsonOutput
	cfg.SaveDir = *saveDir
}

// parsePromotion accepts a piece letter or name, in any case.
func parsePromotion(text string) (chess.Kind, error) {
	text = strings.TrimSpace(text)
	kind := chess.NoKind
	if len(text) == 1 {
		kind = chess.KindFromLetter(text[0])
	} else {
		for _, k := range chess.PromotionKinds {
			if strings.EqualFold(k.String(), text) {
				kind = k
			}
		}
	}
	if !kind.IsPromotionTarget() {
		return chess.NoKind, fmt.Errorf("invalid promotion piece %q (want Q, R, B or N)", text)
	}
	return kind, nil
}
