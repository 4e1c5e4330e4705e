package output

import (
	"encoding/json"
	"io"

	"github.com/lgbarn/chess-rules-go/internal/chess"
	"github.com/lgbarn/chess-rules-go/internal/config"
	"github.com/lgbarn/chess-rules-go/internal/engine"
)

// BoardView is the JSON form of a position together with its game status.
type BoardView struct {
	ID       string              `json:"id,omitempty"`
	FEN      string              `json:"fen"`
	Turn     chess.Colour        `json:"turn"`
	Check    bool                `json:"check"`
	Board    string              `json:"board"`
	LastMove *MoveView           `json:"lastMove,omitempty"`
	Captured map[string][]string `json:"captured,omitempty"`
	Plies    int                 `json:"plies"`
	Winner   string              `json:"winner,omitempty"`
	Forfeit  bool                `json:"forfeit,omitempty"`
}

// MoveView is the JSON form of a completed move.
type MoveView struct {
	From      string `json:"from"`
	To        string `json:"to"`
	UCI       string `json:"uci"`
	Text      string `json:"text"`
	Colour    string `json:"colour"`
	Piece     string `json:"piece"`
	Captured  string `json:"captured,omitempty"`
	Promotion string `json:"promotion,omitempty"`
	Castle    bool   `json:"castle,omitempty"`
	EnPassant bool   `json:"enPassant,omitempty"`
}

// ViewsOutput holds multiple views for array output.
type ViewsOutput struct {
	Boards []*BoardView `json:"boards"`
}

// NewBoardView builds the JSON view of a position. Winner and game
// bookkeeping fields are left for the caller.
func NewBoardView(b *engine.Board, turn chess.Colour, halfmove, fullmove int, opts *config.OutputConfig) *BoardView {
	v := &BoardView{
		FEN:   engine.ToFEN(b, turn, halfmove, fullmove),
		Turn:  turn,
		Check: b.IsInCheck(turn),
		Board: RenderBoard(b, opts),
	}
	if last, ok := b.LastMove(); ok {
		v.LastMove = NewMoveView(last)
	}
	for _, colour := range chess.Colours {
		dead := b.Captured(colour)
		if len(dead) == 0 {
			continue
		}
		if v.Captured == nil {
			v.Captured = make(map[string][]string)
		}
		for _, p := range dead {
			v.Captured[colour.String()] = append(v.Captured[colour.String()], p.Kind.String())
		}
	}
	return v
}

// NewMoveView converts a move record.
func NewMoveView(m engine.MoveRecord) *MoveView {
	mv := &MoveView{
		From:      m.Origin.Algebraic(),
		To:        m.Destination.Algebraic(),
		UCI:       m.UCI(),
		Text:      m.String(),
		Colour:    m.Colour.String(),
		Piece:     m.Piece.String(),
		Castle:    m.Castle != nil,
		EnPassant: m.EnPassant,
	}
	if m.Captured != chess.NoKind {
		mv.Captured = m.Captured.String()
	}
	if m.Promotion != chess.NoKind {
		mv.Promotion = m.Promotion.String()
	}
	return mv
}

// EncodeView writes a single view as indented JSON.
func EncodeView(w io.Writer, v *BoardView) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
