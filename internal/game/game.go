// Package game runs a turn-taking chess game on top of the rule engine:
// move sources for humans and the computer, save/load and PGN export.
package game

import (
	"fmt"
	"log"

	"github.com/lgbarn/chess-rules-go/internal/chess"
	"github.com/lgbarn/chess-rules-go/internal/config"
	"github.com/lgbarn/chess-rules-go/internal/engine"
	"github.com/lgbarn/chess-rules-go/internal/errors"
)

// Outcome says how a game ended.
type Outcome int

const (
	InProgress Outcome = iota
	KingCaptured
	Forfeited
	PlyLimit
)

func (o Outcome) String() string {
	switch o {
	case KingCaptured:
		return "king captured"
	case Forfeited:
		return "forfeit"
	case PlyLimit:
		return "ply limit"
	}
	return "in progress"
}

// MarshalText encodes the outcome by name.
func (o Outcome) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

// Result summarises a finished (or interrupted) game.
type Result struct {
	Outcome Outcome      `json:"outcome"`
	Winner  chess.Colour `json:"winner"`
	Plies   int          `json:"plies"`
	FEN     string       `json:"fen"`
}

// HasWinner reports whether Winner is meaningful.
func (r Result) HasWinner() bool {
	return r.Outcome == KingCaptured || r.Outcome == Forfeited
}

func (r Result) String() string {
	if r.HasWinner() {
		return fmt.Sprintf("%s wins by %s after %d plies", r.Winner, r.Outcome, r.Plies)
	}
	return fmt.Sprintf("no winner (%s) after %d plies", r.Outcome, r.Plies)
}

// Game is a board plus the bookkeeping of a game in progress.
type Game struct {
	cfg *config.Config
	log *log.Logger

	board    *engine.Board
	startFEN string
	turn     chess.Colour
	history  []engine.MoveRecord
	halfmove int
	fullmove int
	forfeit  bool

	sources [2]MoveSource
}

// New starts a game from the standard position.
func New(cfg *config.Config) *Game {
	return &Game{
		cfg:      cfg,
		log:      cfg.Logger(),
		board:    engine.NewBoard(),
		startFEN: engine.InitialFEN,
		turn:     chess.White,
		fullmove: 1,
	}
}

// NewFromFEN starts a game from a FEN position.
func NewFromFEN(cfg *config.Config, fen string) (*Game, error) {
	board, turn, err := engine.NewBoardFromFEN(fen)
	if err != nil {
		return nil, err
	}
	half, full, err := engine.ParseClocks(fen)
	if err != nil {
		return nil, err
	}
	return &Game{
		cfg:      cfg,
		log:      cfg.Logger(),
		board:    board,
		startFEN: engine.ToFEN(board, turn, half, full),
		turn:     turn,
		halfmove: half,
		fullmove: full,
	}, nil
}

// Config returns the configuration the game was created with.
func (g *Game) Config() *config.Config { return g.cfg }

// Board returns the live board. Callers must not move pieces on it
// directly; use Apply.
func (g *Game) Board() *engine.Board { return g.board }

// Turn returns the colour to move.
func (g *Game) Turn() chess.Colour { return g.turn }

// Plies returns the number of moves played.
func (g *Game) Plies() int { return len(g.history) }

// History returns a copy of the moves played so far.
func (g *Game) History() []engine.MoveRecord {
	return append([]engine.MoveRecord(nil), g.history...)
}

// FEN returns the current position.
func (g *Game) FEN() string {
	return engine.ToFEN(g.board, g.turn, g.halfmove, g.fullmove)
}

// StartFEN returns the position the game started from.
func (g *Game) StartFEN() string { return g.startFEN }

// IsCPU reports whether the computer plays colour.
func (g *Game) IsCPU(colour chess.Colour) bool {
	_, ok := g.sources[colour].(*CPUSource)
	return ok
}

// UseSources sets where each side's commands come from.
func (g *Game) UseSources(white, black MoveSource) {
	g.sources = [2]MoveSource{white, black}
}

// Forfeit ends the game in favour of the side not to move.
func (g *Game) Forfeit() {
	g.forfeit = true
}

// Over reports whether the game has finished.
func (g *Game) Over() bool {
	return g.Result().Outcome != InProgress
}

// Result reports the game's state.
func (g *Game) Result() Result {
	r := Result{Plies: len(g.history), FEN: g.FEN(), Winner: g.turn.Opposite()}
	switch {
	case g.forfeit:
		r.Outcome = Forfeited
	case g.board.KingIsDead(g.turn):
		r.Outcome = KingCaptured
	case g.board.KingIsDead(g.turn.Opposite()):
		r.Outcome, r.Winner = KingCaptured, g.turn
	case g.cfg.MaxPlies > 0 && len(g.history) >= g.cfg.MaxPlies:
		r.Outcome = PlyLimit
	}
	return r
}

// Apply moves the piece on origin to destination, promoting to the
// configured default kind when a pawn reaches the far rank.
func (g *Game) Apply(origin, destination chess.Coordinate) (engine.MoveRecord, error) {
	return g.ApplyPromoting(origin, destination, g.cfg.Promotion)
}

// ApplyPromoting is Apply with an explicit promotion choice. The move must
// start from a piece of the side to move. Rejected moves leave the game
// unchanged and return a MoveError wrapping ErrIllegalMove or ErrGameOver.
func (g *Game) ApplyPromoting(origin, destination chess.Coordinate, promotion chess.Kind) (engine.MoveRecord, error) {
	moveErr := func(err error) error {
		return &errors.MoveError{
			Err:         err,
			Origin:      origin.Algebraic(),
			Destination: destination.Algebraic(),
			Ply:         len(g.history) + 1,
		}
	}

	if g.Over() {
		return engine.MoveRecord{}, moveErr(errors.ErrGameOver)
	}
	p := g.board.PieceAt(origin)
	if p == nil || p.Colour != g.turn {
		return engine.MoveRecord{}, moveErr(errors.Wrapf(errors.ErrIllegalMove, "no %s piece on %s", g.turn, origin))
	}

	g.board.SetPromoter(engine.PromoteTo(promotion))
	defer g.board.SetPromoter(nil)
	if !g.board.MovePiece(origin, destination) {
		return engine.MoveRecord{}, moveErr(errors.ErrIllegalMove)
	}

	rec, _ := g.board.LastMove()
	g.history = append(g.history, rec)
	if rec.Piece == chess.Pawn || rec.Promotion != chess.NoKind || rec.Captured != chess.NoKind {
		g.halfmove = 0
	} else {
		g.halfmove++
	}
	if g.turn == chess.Black {
		g.fullmove++
	}
	g.turn = g.turn.Opposite()

	if g.cfg.Verbose(config.PerMove) {
		g.log.Printf("ply %d: %s %s", len(g.history), rec.Colour, rec)
	}
	return rec, nil
}
