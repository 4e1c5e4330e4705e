package engine

import (
	"fmt"
	"strings"

	"github.com/lgbarn/chess-rules-go/internal/chess"
)

// MoveRecord describes a completed move, including the side effects of
// castling, en passant and promotion.
type MoveRecord struct {
	Origin      chess.Coordinate `json:"origin"`
	Destination chess.Coordinate `json:"destination"`
	Piece       chess.Kind       `json:"piece"` // the promoted kind after a promotion
	Colour      chess.Colour     `json:"colour"`

	// Captured is NoKind when nothing was taken. CaptureSquare differs from
	// Destination only for en passant.
	Captured      chess.Kind       `json:"captured,omitempty"`
	CaptureSquare chess.Coordinate `json:"capture_square"`

	Castle    *RookMove  `json:"castle,omitempty"`
	EnPassant bool       `json:"en_passant,omitempty"`
	Promotion chess.Kind `json:"promotion,omitempty"`
}

// DoubleStep reports whether the move was a pawn's two-square advance.
func (m MoveRecord) DoubleStep() bool {
	return m.Piece == chess.Pawn && abs(m.Destination.Row-m.Origin.Row) == 2
}

// UCI returns the move in long algebraic form, e.g. "e2e4" or "e7e8q".
func (m MoveRecord) UCI() string {
	s := m.Origin.Algebraic() + m.Destination.Algebraic()
	if m.Promotion != chess.NoKind {
		s += strings.ToLower(string(m.Promotion.Letter()))
	}
	return s
}

// String returns a display form of the move: "O-O" and "O-O-O" for
// castling, otherwise origin and destination joined by "-" or "x" with
// promotion and en passant annotations.
func (m MoveRecord) String() string {
	if m.Castle != nil {
		if m.Destination.Col > m.Origin.Col {
			return "O-O"
		}
		return "O-O-O"
	}
	sep := "-"
	if m.Captured != chess.NoKind {
		sep = "x"
	}
	s := fmt.Sprintf("%s%s%s", m.Origin, sep, m.Destination)
	if m.Promotion != chess.NoKind {
		s += "=" + string(m.Promotion.Letter())
	}
	if m.EnPassant {
		s += " e.p."
	}
	return s
}

// plan is a validated move waiting to be executed.
type plan struct {
	piece       *chess.Piece
	origin      chess.Coordinate
	destination chess.Coordinate
	castle      *RookMove
	victim      *chess.Coordinate
	promote     bool
}

// planMove validates a move without touching the board.
func (b *Board) planMove(origin, dest chess.Coordinate) (plan, bool) {
	p := b.PieceAt(origin)
	if p == nil || !dest.OnBoard() || origin == dest {
		return plan{}, false
	}
	if !b.validPath(p, origin, dest) {
		return plan{}, false
	}

	m := plan{piece: p, origin: origin, destination: dest, promote: promotes(p, dest)}

	if isCastle(p, dest.Sub(origin)) {
		rm, ok := b.planCastle(p, origin, dest)
		if !ok {
			return plan{}, false
		}
		m.castle = &rm
	}

	if p.Kind == chess.Pawn && origin.Col != dest.Col && !b.occupied(dest) {
		victim, ok := b.enPassantVictim(p, origin, dest)
		if !ok {
			return plan{}, false
		}
		m.victim = &victim
	}

	return m, true
}

// CanMove reports whether MovePiece would accept the move. It never
// consults the promoter and never changes the board.
func (b *Board) CanMove(origin, dest chess.Coordinate) bool {
	_, ok := b.planMove(origin, dest)
	return ok
}

// MovePiece moves the piece on origin to dest if the move is legal and
// reports whether it did. A rejected move leaves the board exactly as it
// was. Moves that leave the mover's own king attacked are not rejected.
func (b *Board) MovePiece(origin, dest chess.Coordinate) bool {
	m, ok := b.planMove(origin, dest)
	if !ok {
		return false
	}

	promotion := chess.NoKind
	if m.promote {
		promotion = b.promoter.Promote(m.piece.Colour, dest)
		if !promotion.IsPromotionTarget() {
			return false
		}
	}

	b.execute(m, promotion)
	return true
}

// execute applies a validated plan.
func (b *Board) execute(m plan, promotion chess.Kind) {
	piece := b.Square(m.origin).pop()
	piece.OnMoved()

	rec := MoveRecord{
		Origin:      m.origin,
		Destination: m.destination,
		Piece:       piece.Kind,
		Colour:      piece.Colour,
	}

	if m.victim != nil {
		b.bury(b.Square(*m.victim).pop())
		rec.Captured = chess.Pawn
		rec.CaptureSquare = *m.victim
		rec.EnPassant = true
	}

	if m.castle != nil {
		rook := b.Square(m.castle.Origin).pop()
		rook.OnMoved()
		b.Square(m.castle.Destination).put(rook)
		rec.Castle = m.castle
	}

	if promotion != chess.NoKind {
		piece = chess.NewPiece(promotion, piece.Colour)
		piece.OnMoved()
		rec.Piece = promotion
		rec.Promotion = promotion
	}

	if taken := b.Square(m.destination).put(piece); taken != nil {
		b.bury(taken)
		rec.Captured = taken.Kind
		rec.CaptureSquare = m.destination
	}

	b.last = &rec
}
