// chess-server serves chess games over HTTP with websocket move updates.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lgbarn/chess-rules-go/internal/chess"
	"github.com/lgbarn/chess-rules-go/internal/config"
	"github.com/lgbarn/chess-rules-go/internal/httpx"
)

var (
	listenAddr = flag.String("addr", ":8080", "Address to listen on")
	maxGames   = flag.Int("max-games", 0, "Maximum number of games served at once (0 = no limit)")
	maxPlies   = flag.Int("max-plies", 0, "End games without a winner after N plies (0 = no limit)")
	promotion  = flag.String("promotion", "Q", "Promotion piece when a move names none (Q, R, B, N)")
	verbosity  = flag.Int("v", config.Summary, "Verbosity: 0 silent, 1 access log, 2 every move")
)

func main() {
	flag.Parse()

	kind := chess.NoKind
	if len(*promotion) == 1 {
		kind = chess.KindFromLetter((*promotion)[0])
	}
	cfg := config.NewConfigBuilder().
		WithListenAddr(*listenAddr).
		WithMaxGames(*maxGames).
		WithMaxPlies(*maxPlies).
		WithPromotion(kind).
		WithVerbosity(*verbosity).
		Build()
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := serve(ctx, httpx.NewServer(cfg), cfg.ListenAddr)
	stop()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// serve runs srv until it fails or ctx is cancelled, then shuts it down.
func serve(ctx context.Context, srv *httpx.Server, addr string) error {
	errc := make(chan error, 1)
	go func() { errc <- srv.Listen(addr) }()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Close(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return <-errc
}
