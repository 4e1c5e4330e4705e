// chess is a console chess game for humans and computer players. It can
// also run batches of computer-only games.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/lgbarn/chess-rules-go/internal/chess"
	"github.com/lgbarn/chess-rules-go/internal/config"
	"github.com/lgbarn/chess-rules-go/internal/game"
	"github.com/lgbarn/chess-rules-go/internal/output"
	"github.com/lgbarn/chess-rules-go/internal/worker"
)

const programVersion = "0.1.0"

func main() {
	flag.Usage = usage
	flag.Parse()

	if *help {
		usage()
		os.Exit(0)
	}

	if *version {
		fmt.Printf("chess version %s\n", programVersion)
		os.Exit(0)
	}

	cfg := config.NewConfig()
	if err := applyFlags(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}

	setupLogFile(cfg)
	setupOutputFile(cfg)

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if cfg.Games > 0 {
		os.Exit(runSelfPlay(ctx, cfg))
	}
	os.Exit(runGame(ctx, cfg, os.Stdin))
}

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: chess [options]\n\n")
	fmt.Fprintf(os.Stderr, "Play chess on the console. Enter moves as 'e2 e4', or the origin\n")
	fmt.Fprintf(os.Stderr, "and destination on separate lines.\n\n")
	fmt.Fprintf(os.Stderr, "Options:\n")
	flag.PrintDefaults()
}

// setupLogFile configures the log file based on command-line flags.
func setupLogFile(cfg *config.Config) {
	if *logFile == "" {
		return
	}
	file, err := os.OpenFile(*logFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644) //nolint:gosec // G302: 0644 is appropriate for user-created log files
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening log file %s: %v\n", *logFile, err)
		os.Exit(1)
	}
	cfg.SetLog(file)
}

// setupOutputFile configures the output file based on command-line flags.
func setupOutputFile(cfg *config.Config) {
	if *outputFile == "" {
		return
	}
	file, err := os.Create(*outputFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating output file %s: %v\n", *outputFile, err)
		os.Exit(1)
	}
	cfg.SetOutput(file)
}

// newGame starts the game named by the flags: a saved game, a FEN
// position or the standard opening position.
func newGame(cfg *config.Config) (*game.Game, error) {
	switch {
	case *loadName != "":
		return game.LoadFile(cfg.SaveDir, *loadName, cfg)
	case *startFEN != "":
		return game.NewFromFEN(cfg, *startFEN)
	}
	return game.New(cfg), nil
}

// sources builds the move sources for both sides. Human players share one
// reader so buffered input is not lost between turns.
func sources(cfg *config.Config, in io.Reader) (white, black game.MoveSource) {
	human := game.NewHumanSource(in, cfg.OutputFile)
	pick := func(colour chess.Colour, seed int64) game.MoveSource {
		if cfg.IsCPU(colour) {
			return game.NewCPUSource(seed)
		}
		return human
	}
	return pick(chess.White, cfg.Seed), pick(chess.Black, cfg.Seed+1)
}

// runGame plays one game and returns the process exit code.
func runGame(ctx context.Context, cfg *config.Config, in io.Reader) int {
	g, err := newGame(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	g.UseSources(sources(cfg, in))

	if _, err := g.Play(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	if *pgnOutput {
		pgn, err := game.ExportPGN(g)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error exporting PGN: %v\n", err)
			return 1
		}
		fmt.Fprintln(cfg.OutputFile, pgn)
	}
	return 0
}

// runSelfPlay plays the configured batch and prints its summary.
func runSelfPlay(ctx context.Context, cfg *config.Config) int {
	results, summary := worker.RunSelfPlay(ctx, cfg)
	if cfg.Verbose(config.PerMove) {
		if err := writeFinalPositions(cfg, results); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
	}
	if cfg.Verbose(config.Summary) {
		fmt.Fprintln(cfg.OutputFile, summary)
	}
	if summary.Errors > 0 || ctx.Err() != nil {
		return 1
	}
	return 0
}

// writeFinalPositions prints the last position of every finished game.
func writeFinalPositions(cfg *config.Config, results []worker.ProcessResult) error {
	w := output.NewViewWriter(cfg.OutputFile, cfg.OutputConfig)
	for _, r := range results {
		if r.View == nil {
			continue
		}
		if !cfg.JSONFormat {
			fmt.Fprintf(cfg.OutputFile, "Game %d (seed %d): %s\n", r.Index+1, r.Seed, r.Result)
		}
		if err := w.WriteView(r.View); err != nil {
			return err
		}
	}
	return w.Close()
}
