package engine

import "github.com/lgbarn/chess-rules-go/internal/chess"

// validPath reports whether the piece on origin may travel to dest by its
// movement rules alone. Special-move preconditions for castling are checked
// separately by planCastle.
func (b *Board) validPath(p *chess.Piece, origin, dest chess.Coordinate) bool {
	if !enterable(p, b.PieceAt(dest)) {
		return false
	}

	switch p.Kind {
	case chess.Knight:
		return p.IsLegalDisplacement(dest.Sub(origin))
	case chess.Pawn:
		return b.validPawnPath(p, origin, dest)
	case chess.King, chess.Queen, chess.Rook, chess.Bishop:
		return b.validSliderPath(p, origin, dest)
	}
	return false
}

// validSliderPath checks a King, Queen, Rook or Bishop move: the
// displacement must be in the moveset and nothing may stand between origin
// and destination.
func (b *Board) validSliderPath(p *chess.Piece, origin, dest chess.Coordinate) bool {
	if !p.IsLegalDisplacement(dest.Sub(origin)) {
		return false
	}
	return b.pathClear(origin, dest)
}

// pathClear reports whether every square strictly between origin and dest
// is empty. The displacement must be straight or diagonal.
func (b *Board) pathClear(origin, dest chess.Coordinate) bool {
	for _, c := range between(origin, dest) {
		if b.occupied(c) {
			return false
		}
	}
	return true
}

// enterable reports whether a piece may finish its move on a square holding
// target: the square must be empty or hold an enemy.
func enterable(p, target *chess.Piece) bool {
	return target == nil || target.Colour != p.Colour
}
