package engine

import "github.com/lgbarn/chess-rules-go/internal/chess"

// IsInCheck reports whether colour's king stands on an attacked square.
// A side without a king on the board is not in check.
func (b *Board) IsInCheck(colour chess.Colour) bool {
	king, ok := b.findKing(colour)
	if !ok {
		return false
	}
	return len(b.EnemiesAttacking(king, b.PieceAt(king))) > 0
}

// findKing finds the king of the given colour on the board.
func (b *Board) findKing(colour chess.Colour) (chess.Coordinate, bool) {
	for _, c := range b.PiecesOf(colour) {
		if b.PieceAt(c).Kind == chess.King {
			return c, true
		}
	}
	return chess.Coordinate{}, false
}

// KingIsDead reports whether colour's king has been captured.
func (b *Board) KingIsDead(colour chess.Colour) bool {
	for _, p := range b.graveyard[colour] {
		if p.Kind == chess.King {
			return true
		}
	}
	return false
}
