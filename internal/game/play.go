package game

import (
	"context"
	"fmt"

	"github.com/lgbarn/chess-rules-go/internal/chess"
	"github.com/lgbarn/chess-rules-go/internal/config"
	"github.com/lgbarn/chess-rules-go/internal/errors"
	"github.com/lgbarn/chess-rules-go/internal/output"
)

// Play runs rounds until a king is captured, a side forfeits or the ply
// limit is reached. Boards and messages go to the configured output when
// Verbosity is at least Summary.
func (g *Game) Play(ctx context.Context) (Result, error) {
	for _, src := range g.sources {
		if src == nil {
			return g.Result(), fmt.Errorf("%w: both sides need a move source", errors.ErrInvalidConfig)
		}
	}

	for !g.Over() {
		if err := g.playRound(ctx); err != nil {
			return g.Result(), err
		}
	}

	res := g.Result()
	g.show()
	switch {
	case res.HasWinner():
		g.say("%s wins!", output.TeamName(res.Winner, g.IsCPU(res.Winner)))
	default:
		g.say("Game stopped after %d plies.", res.Plies)
	}
	if g.cfg.Verbose(config.Summary) {
		g.log.Printf("game over: %s", res)
	}
	return res, nil
}

// playRound asks the side to move for commands until one move succeeds or
// the side forfeits.
func (g *Game) playRound(ctx context.Context) error {
	src := g.sources[g.turn]
	g.show()
	for {
		cmd, err := src.NextMove(ctx, g)
		if err != nil {
			return err
		}
		switch cmd.Kind {
		case Forfeit:
			g.Forfeit()
			return nil
		case Save:
			path, err := SaveFile(g.cfg.SaveDir, cmd.Name, g)
			if err != nil {
				g.say("Could not save: %v", err)
				continue
			}
			g.say("Saved game to %s.", path)
			continue
		}

		promotion := cmd.Promotion
		if promotion == chess.NoKind {
			promotion = g.cfg.Promotion
		}
		if _, err := g.ApplyPromoting(cmd.Origin, cmd.Destination, promotion); err != nil {
			if !errors.Is(err, errors.ErrIllegalMove) {
				return err
			}
			if !g.IsCPU(g.turn) {
				g.say("Invalid move!")
			}
			continue
		}
		return nil
	}
}

func (g *Game) show() {
	if !g.cfg.Verbose(config.Summary) || g.cfg.OutputFile == nil {
		return
	}
	if g.cfg.JSONFormat {
		output.EncodeView(g.cfg.OutputFile, g.View()) //nolint:errcheck // console output
		return
	}
	output.WriteBoard(g.cfg.OutputFile, g.board, g.turn, g.IsCPU(g.turn), g.cfg.OutputConfig) //nolint:errcheck // console output
}

// View returns the JSON view of the current position and game status.
func (g *Game) View() *output.BoardView {
	v := output.NewBoardView(g.board, g.turn, g.halfmove, g.fullmove, g.cfg.OutputConfig)
	v.Plies = len(g.history)
	v.Forfeit = g.forfeit
	if res := g.Result(); res.HasWinner() {
		v.Winner = res.Winner.String()
	}
	return v
}

func (g *Game) say(format string, args ...interface{}) {
	if !g.cfg.Verbose(config.Summary) || g.cfg.OutputFile == nil {
		return
	}
	fmt.Fprintf(g.cfg.OutputFile, format+"\n", args...)
}
