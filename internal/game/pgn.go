package game

import (
	"fmt"

	nchess "github.com/notnil/chess"

	"github.com/lgbarn/chess-rules-go/internal/chess"
	"github.com/lgbarn/chess-rules-go/internal/engine"
	"github.com/lgbarn/chess-rules-go/internal/errors"
)

// ExportPGN replays the game's history through an independent rules
// implementation and returns the PGN text. Moves that implementation
// rejects, such as a move leaving the mover's king attacked, produce a
// MoveError wrapping ErrIllegalMove.
func ExportPGN(g *Game) (string, error) {
	fen, err := nchess.FEN(g.startFEN)
	if err != nil {
		return "", fmt.Errorf("%w: %v", errors.ErrInvalidFEN, err)
	}
	pg := nchess.NewGame(fen)
	pg.AddTagPair("Event", "Casual game")
	pg.AddTagPair("White", playerName(g, chess.White))
	pg.AddTagPair("Black", playerName(g, chess.Black))
	if g.startFEN != engine.InitialFEN {
		pg.AddTagPair("SetUp", "1")
		pg.AddTagPair("FEN", g.startFEN)
	}

	for i, rec := range g.history {
		m, err := nchess.UCINotation{}.Decode(pg.Position(), rec.UCI())
		if err == nil {
			err = pg.Move(m)
		}
		if err != nil {
			return "", &errors.MoveError{
				Err:         errors.Wrap(errors.ErrIllegalMove, err.Error()),
				Origin:      rec.Origin.Algebraic(),
				Destination: rec.Destination.Algebraic(),
				Ply:         i + 1,
			}
		}
	}

	if res := g.Result(); res.Outcome == Forfeited && pg.Outcome() == nchess.NoOutcome {
		loser := nchess.White
		if res.Winner == chess.White {
			loser = nchess.Black
		}
		pg.Resign(loser)
	}
	return pg.String(), nil
}

func playerName(g *Game, colour chess.Colour) string {
	if g.IsCPU(colour) {
		return "CPU"
	}
	return "Human"
}
