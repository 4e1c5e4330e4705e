// Package output renders boards as text and JSON views.
package output

import (
	"io"
	"strings"

	"github.com/lgbarn/chess-rules-go/internal/chess"
	"github.com/lgbarn/chess-rules-go/internal/config"
	"github.com/lgbarn/chess-rules-go/internal/engine"
)

// Empty square glyphs.
const (
	LightEmpty = "☐"
	DarkEmpty  = "☒"

	lightEmptyASCII = "."
	darkEmptyASCII  = ":"
)

// TeamIcons are the king glyphs used to label each side.
var TeamIcons = map[chess.Colour]string{
	chess.White: "♔",
	chess.Black: "♚",
}

// RenderBoard draws the board with rank labels down the left side and file
// letters underneath, rank 8 at the top.
func RenderBoard(b *engine.Board, opts *config.OutputConfig) string {
	var sb strings.Builder
	for row := 0; row < chess.BoardSize; row++ {
		sb.WriteByte(byte(chess.RankBase + chess.BoardSize - 1 - row))
		for col := 0; col < chess.BoardSize; col++ {
			sb.WriteByte(' ')
			sb.WriteString(squareText(b.SquareAt(row, col), opts.Unicode))
		}
		sb.WriteByte('\n')
	}
	sb.WriteString(" ")
	for col := 0; col < chess.BoardSize; col++ {
		sb.WriteByte(' ')
		sb.WriteByte(byte(chess.FileBase + col))
	}
	sb.WriteByte('\n')

	if opts.ShowCaptured {
		for _, colour := range chess.Colours {
			dead := b.Captured(colour)
			if len(dead) == 0 {
				continue
			}
			sb.WriteString(colour.String())
			sb.WriteString(" lost:")
			for _, p := range dead {
				sb.WriteByte(' ')
				sb.WriteString(pieceText(p, opts.Unicode))
			}
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

func squareText(sq *engine.Square, unicode bool) string {
	if p := sq.Piece(); p != nil {
		return pieceText(p, unicode)
	}
	switch {
	case unicode && sq.Light():
		return LightEmpty
	case unicode:
		return DarkEmpty
	case sq.Light():
		return lightEmptyASCII
	}
	return darkEmptyASCII
}

func pieceText(p *chess.Piece, unicode bool) string {
	if unicode {
		return p.Symbol()
	}
	return string(p.Letter())
}

// TeamName labels a side, e.g. "♔ White (CPU)".
func TeamName(colour chess.Colour, cpu bool) string {
	name := TeamIcons[colour] + " " + colour.String()
	if cpu {
		name += " (CPU)"
	}
	return name
}

// TurnBanner is the header printed above the board each turn.
func TurnBanner(colour chess.Colour, cpu bool) string {
	return "------ " + TeamName(colour, cpu) + " turn ------"
}

// WriteBoard writes the turn banner followed by the rendered board.
func WriteBoard(w io.Writer, b *engine.Board, turn chess.Colour, cpu bool, opts *config.OutputConfig) error {
	_, err := io.WriteString(w, TurnBanner(turn, cpu)+"\n"+RenderBoard(b, opts))
	return err
}
