package engine

import "github.com/lgbarn/chess-rules-go/internal/chess"

// RookMove is the rook's half of a castling move.
type RookMove struct {
	Origin      chess.Coordinate `json:"origin"`
	Destination chess.Coordinate `json:"destination"`
}

// isCastle reports whether moving p by d is a castling attempt.
func isCastle(p *chess.Piece, d chess.Coordinate) bool {
	return p.Kind == chess.King && d.Row == 0 && abs(d.Col) == 2
}

// planCastle checks every castling precondition for the king on origin
// moving two squares to dest, and returns the matching rook move.
//
// Both king and rook must be unmoved, every square strictly between them
// must be empty, and no square the king occupies or crosses, destination
// included, may be attacked.
func (b *Board) planCastle(king *chess.Piece, origin, dest chess.Coordinate) (RookMove, bool) {
	if king.Moved() {
		return RookMove{}, false
	}

	step := dest.Sub(origin).Unit()
	rookCol := chess.BoardSize - 1
	if step.Col < 0 {
		rookCol = 0
	}
	rookSquare := chess.Coord(origin.Row, rookCol)

	rook := b.PieceAt(rookSquare)
	if rook == nil || rook.Kind != chess.Rook || rook.Colour != king.Colour || rook.Moved() {
		return RookMove{}, false
	}

	if !b.pathClear(origin, rookSquare) {
		return RookMove{}, false
	}

	for _, c := range span(origin, dest) {
		if len(b.EnemiesAttacking(c, king)) > 0 {
			return RookMove{}, false
		}
	}

	return RookMove{Origin: rookSquare, Destination: dest.Sub(step)}, true
}
