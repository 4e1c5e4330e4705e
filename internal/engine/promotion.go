package engine

import "github.com/lgbarn/chess-rules-go/internal/chess"

// Promoter chooses the kind a pawn becomes when it reaches the far rank.
// The board consults it only when a promotion actually happens; a result
// other than Queen, Rook, Bishop or Knight rejects the move.
type Promoter interface {
	Promote(colour chess.Colour, at chess.Coordinate) chess.Kind
}

// PromoterFunc adapts an ordinary function to the Promoter interface.
type PromoterFunc func(colour chess.Colour, at chess.Coordinate) chess.Kind

// Promote calls f(colour, at).
func (f PromoterFunc) Promote(colour chess.Colour, at chess.Coordinate) chess.Kind {
	return f(colour, at)
}

// PromoteTo returns a Promoter that always picks kind.
func PromoteTo(kind chess.Kind) Promoter {
	return PromoterFunc(func(chess.Colour, chess.Coordinate) chess.Kind {
		return kind
	})
}

// DefaultPromoter promotes to a Queen.
var DefaultPromoter = PromoteTo(chess.Queen)

// promotes reports whether p arriving on dest must be promoted.
func promotes(p *chess.Piece, dest chess.Coordinate) bool {
	return p.Kind == chess.Pawn && dest.Row == p.Colour.FarRow()
}
