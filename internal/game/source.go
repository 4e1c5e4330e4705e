package game

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"math/rand"
	"os"
	"strings"

	"github.com/lgbarn/chess-rules-go/internal/chess"
)

// CommandKind identifies what a player asked for.
type CommandKind int

const (
	Move CommandKind = iota
	Save
	Forfeit
)

// Command is one instruction from a player.
type Command struct {
	Kind        CommandKind
	Origin      chess.Coordinate
	Destination chess.Coordinate
	Promotion   chess.Kind // NoKind uses the configured default
	Name        string     // save name
}

// MoveSource supplies the commands of one side.
type MoveSource interface {
	NextMove(ctx context.Context, g *Game) (Command, error)
}

// CPUSource plays a uniformly random move from the candidate moves.
type CPUSource struct {
	rng *rand.Rand
}

// NewCPUSource creates a computer player with its own seeded random source.
func NewCPUSource(seed int64) *CPUSource {
	return &CPUSource{rng: rand.New(rand.NewSource(seed))}
}

// NextMove picks a move. A side with no candidate moves forfeits.
func (c *CPUSource) NextMove(ctx context.Context, g *Game) (Command, error) {
	if err := ctx.Err(); err != nil {
		return Command{}, err
	}
	moves := g.Board().CandidateMoves(g.Turn())
	if len(moves) == 0 {
		return Command{Kind: Forfeit}, nil
	}
	m := moves[c.rng.Intn(len(moves))]
	return Command{Kind: Move, Origin: m.Origin, Destination: m.Destination}, nil
}

// Console prompts.
const (
	originPrompt      = "Enter piece location (or '--save filename' to save the game, '--forfeit' to forfeit):"
	destinationPrompt = "Enter destination (or '--save filename' to save the game):"
	promotionPrompt   = "Promote to (Q/R/B/N):"
)

// HumanSource reads commands typed at a console. A move is either one line
// "e2 e4" or an origin line followed by a destination line.
type HumanSource struct {
	in  *bufio.Scanner
	out io.Writer

	pending *chess.Coordinate // origin chosen before a --save interrupted the move
}

// NewHumanSource reads from in and prompts on out.
func NewHumanSource(in io.Reader, out io.Writer) *HumanSource {
	return &HumanSource{in: bufio.NewScanner(in), out: out}
}

func (h *HumanSource) say(format string, args ...interface{}) {
	fmt.Fprintf(h.out, format+"\n", args...)
}

func (h *HumanSource) readLine(ctx context.Context, prompt string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	h.say("%s", prompt)
	if !h.in.Scan() {
		if err := h.in.Err(); err != nil {
			return "", err
		}
		return "", io.ErrUnexpectedEOF
	}
	return strings.TrimSpace(h.in.Text()), nil
}

// NextMove prompts until the player enters a move, a save or a forfeit.
func (h *HumanSource) NextMove(ctx context.Context, g *Game) (Command, error) {
	for {
		if h.pending == nil {
			line, err := h.readLine(ctx, originPrompt)
			if err != nil {
				return Command{}, err
			}
			if cmd, ok := h.control(g, line); ok {
				return cmd, nil
			} else if strings.HasPrefix(line, "--") {
				continue
			}

			fields := strings.Fields(line)
			if len(fields) == 0 {
				continue
			}
			origin, ok := h.square(fields[0])
			if !ok {
				continue
			}
			p := g.Board().PieceAt(origin)
			if p == nil || p.Colour != g.Turn() {
				h.say("Invalid piece location selected!")
				continue
			}
			h.say("%s selected.", p)
			if len(fields) > 1 {
				dest, ok := h.square(fields[1])
				if !ok {
					continue
				}
				return h.move(ctx, g, origin, dest)
			}
			h.pending = &origin
		}

		line, err := h.readLine(ctx, destinationPrompt)
		if err != nil {
			return Command{}, err
		}
		if cmd, ok := h.control(g, line); ok {
			if cmd.Kind == Forfeit {
				h.pending = nil
			}
			return cmd, nil
		} else if strings.HasPrefix(line, "--") {
			continue
		}
		dest, ok := h.square(line)
		if !ok {
			continue
		}
		origin := *h.pending
		h.pending = nil
		return h.move(ctx, g, origin, dest)
	}
}

// control recognises --save and --forfeit.
func (h *HumanSource) control(g *Game, line string) (Command, bool) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return Command{}, false
	}
	switch fields[0] {
	case "--forfeit":
		return Command{Kind: Forfeit}, true
	case "--save":
		if len(fields) != 2 {
			h.say("Usage: --save filename")
			return Command{}, false
		}
		name := fields[1]
		if path, err := SavePath(g.Config().SaveDir, name); err == nil {
			if _, statErr := os.Stat(path); statErr == nil && !h.confirm(fmt.Sprintf("Overwrite %s?", path)) {
				return Command{}, false
			}
		}
		return Command{Kind: Save, Name: name}, true
	}
	return Command{}, false
}

func (h *HumanSource) confirm(question string) bool {
	line, err := h.readLine(context.Background(), question+" (y/n)")
	if err != nil {
		return false
	}
	switch strings.ToLower(line) {
	case "y", "yes":
		return true
	}
	return false
}

func (h *HumanSource) square(text string) (chess.Coordinate, bool) {
	c, err := chess.FromAlgebraic(strings.ToLower(text))
	if err != nil {
		h.say("Invalid square %q!", text)
		return chess.Coordinate{}, false
	}
	return c, true
}

// move asks for a promotion piece when the move would promote.
func (h *HumanSource) move(ctx context.Context, g *Game, origin, dest chess.Coordinate) (Command, error) {
	cmd := Command{Kind: Move, Origin: origin, Destination: dest}
	p := g.Board().PieceAt(origin)
	if p == nil || p.Kind != chess.Pawn || dest.Row != p.Colour.FarRow() || !g.Board().CanMove(origin, dest) {
		return cmd, nil
	}
	for {
		line, err := h.readLine(ctx, promotionPrompt)
		if err != nil {
			return Command{}, err
		}
		if len(line) == 1 {
			if k := chess.KindFromLetter(line[0]); k.IsPromotionTarget() {
				cmd.Promotion = k
				return cmd, nil
			}
		}
		h.say("Choose one of Q, R, B or N.")
	}
}
