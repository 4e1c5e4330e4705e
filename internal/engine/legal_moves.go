package engine

import "github.com/lgbarn/chess-rules-go/internal/chess"

// MovePair is an origin and destination accepted by the board.
type MovePair struct {
	Origin      chess.Coordinate
	Destination chess.Coordinate
}

// String returns the pair in long algebraic form, e.g. "e2e4".
func (m MovePair) String() string {
	return m.Origin.Algebraic() + m.Destination.Algebraic()
}

// Destinations returns every square the piece on origin may move to, in
// row-major order. An empty origin has none.
func (b *Board) Destinations(origin chess.Coordinate) []chess.Coordinate {
	p := b.PieceAt(origin)
	if p == nil {
		return nil
	}

	var dests []chess.Coordinate
	for row := 0; row < chess.BoardSize; row++ {
		for col := 0; col < chess.BoardSize; col++ {
			dest := chess.Coord(row, col)
			if b.CanMove(origin, dest) {
				dests = append(dests, dest)
			}
		}
	}
	return dests
}

// CandidateMoves returns every move colour's pieces may make. Moves that
// leave colour's own king attacked are included.
func (b *Board) CandidateMoves(colour chess.Colour) []MovePair {
	var moves []MovePair
	for _, origin := range b.PiecesOf(colour) {
		for _, dest := range b.Destinations(origin) {
			moves = append(moves, MovePair{Origin: origin, Destination: dest})
		}
	}
	return moves
}
