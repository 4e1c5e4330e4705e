package engine

import "github.com/lgbarn/chess-rules-go/internal/chess"

// validPawnPath applies the pawn's asymmetric rules. A straight advance
// needs an empty destination, the double step additionally needs an unmoved
// pawn and an empty intermediate square, and a diagonal step is only legal
// as a capture, either ordinary or en passant.
func (b *Board) validPawnPath(p *chess.Piece, origin, dest chess.Coordinate) bool {
	f := p.Colour.Forward()
	d := dest.Sub(origin)
	target := b.PieceAt(dest)

	switch {
	case d == chess.Coord(f, 0):
		return target == nil
	case d == chess.Coord(2*f, 0):
		return !p.Moved() && target == nil && !b.occupied(origin.Add(chess.Coord(f, 0)))
	case d.Row == f && abs(d.Col) == 1:
		if target != nil {
			return target.Colour != p.Colour
		}
		_, ok := b.enPassantVictim(p, origin, dest)
		return ok
	}
	return false
}

// enPassantVictim returns the square of the pawn captured en passant when p
// moves diagonally from origin onto the empty square dest. The immediately
// preceding move must have been an enemy pawn's double step landing beside
// origin in dest's column.
func (b *Board) enPassantVictim(p *chess.Piece, origin, dest chess.Coordinate) (chess.Coordinate, bool) {
	if p.Kind != chess.Pawn || b.last == nil {
		return chess.Coordinate{}, false
	}
	last := b.last
	victim := chess.Coord(origin.Row, dest.Col)
	if last.Piece != chess.Pawn || last.Colour == p.Colour || !last.DoubleStep() || last.Destination != victim {
		return chess.Coordinate{}, false
	}
	if v := b.PieceAt(victim); v == nil || v.Kind != chess.Pawn || v.Colour == p.Colour {
		return chess.Coordinate{}, false
	}
	return victim, true
}

// pawnAttacks reports whether a pawn standing on from threatens target.
// Pawns threaten only their forward diagonals, whether or not they could
// move there.
func pawnAttacks(p *chess.Piece, from, target chess.Coordinate) bool {
	d := target.Sub(from)
	return d.Row == p.Colour.Forward() && abs(d.Col) == 1
}
