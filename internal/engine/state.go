package engine

import (
	"fmt"

	"github.com/hashicorp/go-multierror"

	"github.com/lgbarn/chess-rules-go/internal/chess"
	"github.com/lgbarn/chess-rules-go/internal/errors"
)

// PieceState is the serialisable form of a piece. Square is nil for
// captured pieces.
type PieceState struct {
	Kind   chess.Kind        `json:"kind"`
	Colour chess.Colour      `json:"colour"`
	Moved  bool              `json:"moved"`
	Square *chess.Coordinate `json:"square,omitempty"`
}

// BoardState is a complete snapshot of a board: every piece on it, both
// graveyards and the last move.
type BoardState struct {
	Pieces    []PieceState                  `json:"pieces"`
	Graveyard map[chess.Colour][]PieceState `json:"graveyard"`
	LastMove  *MoveRecord                   `json:"last_move,omitempty"`
}

// State returns a snapshot of the board. The snapshot shares nothing with
// the board.
func (b *Board) State() BoardState {
	st := BoardState{Graveyard: make(map[chess.Colour][]PieceState, len(chess.Colours))}
	for _, colour := range chess.Colours {
		for _, c := range b.PiecesOf(colour) {
			sq := c
			st.Pieces = append(st.Pieces, pieceState(b.PieceAt(c), &sq))
		}
		for _, p := range b.graveyard[colour] {
			st.Graveyard[colour] = append(st.Graveyard[colour], pieceState(p, nil))
		}
	}
	if b.last != nil {
		last := *b.last
		if last.Castle != nil {
			rm := *last.Castle
			last.Castle = &rm
		}
		st.LastMove = &last
	}
	return st
}

func pieceState(p *chess.Piece, sq *chess.Coordinate) PieceState {
	return PieceState{Kind: p.Kind, Colour: p.Colour, Moved: p.Moved(), Square: sq}
}

// Validate checks the invariants a restored board relies on and reports
// every violation at once.
func (s BoardState) Validate() error {
	var errs error
	occupied := make(map[chess.Coordinate]bool)
	var kings [2]int

	for i, ps := range s.Pieces {
		if err := validPieceState(ps); err != nil {
			errs = multierror.Append(errs, fmt.Errorf("piece %d: %w", i, err))
			continue
		}
		if ps.Square == nil || !ps.Square.OnBoard() {
			errs = multierror.Append(errs, fmt.Errorf("piece %d (%s %s) is not on a board square", i, ps.Colour, ps.Kind))
			continue
		}
		if occupied[*ps.Square] {
			errs = multierror.Append(errs, fmt.Errorf("square %s holds more than one piece", ps.Square))
		}
		occupied[*ps.Square] = true
		if ps.Kind == chess.Pawn && (ps.Square.Row == 0 || ps.Square.Row == chess.BoardSize-1) {
			errs = multierror.Append(errs, fmt.Errorf("%s pawn on back rank square %s", ps.Colour, ps.Square))
		}
		if ps.Kind == chess.King {
			kings[ps.Colour]++
		}
	}

	var dead [2]int
	for colour, captured := range s.Graveyard {
		if colour != chess.White && colour != chess.Black {
			errs = multierror.Append(errs, fmt.Errorf("graveyard for unknown colour %d", int(colour)))
			continue
		}
		for i, ps := range captured {
			if err := validPieceState(ps); err != nil {
				errs = multierror.Append(errs, fmt.Errorf("%s graveyard entry %d: %w", colour, i, err))
				continue
			}
			if ps.Colour != colour {
				errs = multierror.Append(errs, fmt.Errorf("%s piece in %s graveyard", ps.Colour, colour))
			}
			if ps.Square != nil {
				errs = multierror.Append(errs, fmt.Errorf("captured %s %s still has square %s", ps.Colour, ps.Kind, ps.Square))
			}
			if ps.Kind == chess.King {
				dead[colour]++
			}
		}
	}

	for _, colour := range chess.Colours {
		if kings[colour]+dead[colour] != 1 {
			errs = multierror.Append(errs, fmt.Errorf("%s has %d kings on the board and %d captured, want exactly one", colour, kings[colour], dead[colour]))
		}
	}

	if m := s.LastMove; m != nil {
		if !m.Origin.OnBoard() || !m.Destination.OnBoard() {
			errs = multierror.Append(errs, fmt.Errorf("last move %v-%v leaves the board", m.Origin, m.Destination))
		}
		if m.Castle != nil && (!m.Castle.Origin.OnBoard() || !m.Castle.Destination.OnBoard()) {
			errs = multierror.Append(errs, fmt.Errorf("last move castles a rook off the board"))
		}
	}

	if errs != nil {
		return fmt.Errorf("%w: %w", errors.ErrInvalidState, errs)
	}
	return nil
}

func validPieceState(ps PieceState) error {
	valid := false
	for _, k := range chess.Kinds {
		if ps.Kind == k {
			valid = true
		}
	}
	if !valid {
		return fmt.Errorf("unknown piece kind %d", int(ps.Kind))
	}
	if ps.Colour != chess.White && ps.Colour != chess.Black {
		return fmt.Errorf("unknown colour %d", int(ps.Colour))
	}
	return nil
}

// NewBoardFromState rebuilds a board from a snapshot. Graveyard order and
// moved flags are preserved. An invalid snapshot is rejected with an error
// wrapping ErrInvalidState that lists every problem found.
func NewBoardFromState(s BoardState) (*Board, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}

	b := NewEmptyBoard()
	for _, ps := range s.Pieces {
		p := chess.NewPiece(ps.Kind, ps.Colour)
		p.Restore(ps.Moved, false)
		b.Place(*ps.Square, p)
	}
	for _, colour := range chess.Colours {
		for _, ps := range s.Graveyard[colour] {
			p := chess.NewPiece(ps.Kind, ps.Colour)
			p.Restore(ps.Moved, true)
			b.graveyard[colour] = append(b.graveyard[colour], p)
		}
	}
	if s.LastMove != nil {
		last := *s.LastMove
		b.last = &last
	}
	return b, nil
}
