package engine

import "github.com/lgbarn/chess-rules-go/internal/chess"

// ray is one direction of the outward attack search and the next square
// it will examine.
type ray struct {
	dir  chess.Coordinate
	next chess.Coordinate
}

// EnemiesAttacking returns the squares of every enemy of occupant that
// threatens square, as if it were that enemy's turn. occupant need not stand
// on square; castling asks about squares the king is about to cross.
//
// Knights are found by probing the eight jump offsets. Everything else is
// found by a breadth search outward along the eight compass directions,
// one ring at a time; each direction ends at the first occupied square or
// the board edge.
func (b *Board) EnemiesAttacking(square chess.Coordinate, occupant *chess.Piece) []chess.Coordinate {
	enemy := occupant.Colour.Opposite()
	var attackers []chess.Coordinate

	for _, jump := range chess.KnightJumps() {
		c := square.Add(jump)
		if p := b.PieceAt(c); p != nil && p.Colour == enemy && p.Kind == chess.Knight {
			attackers = append(attackers, c)
		}
	}

	frontier := make([]ray, 0, len(chess.CompassDirections))
	for _, dir := range chess.CompassDirections {
		frontier = append(frontier, ray{dir: dir, next: square.Add(dir)})
	}

	for len(frontier) > 0 {
		ring := frontier
		frontier = nil
		for _, r := range ring {
			if !r.next.OnBoard() {
				continue
			}
			p := b.PieceAt(r.next)
			if p == nil {
				frontier = append(frontier, ray{dir: r.dir, next: r.next.Add(r.dir)})
				continue
			}
			if p.Colour == enemy && b.attacks(p, r.next, square) {
				attackers = append(attackers, r.next)
			}
		}
	}

	return attackers
}

// attacks reports whether p standing on from threatens target. Pawns use
// their diagonal capture rule and kings only their single steps; other
// pieces use their ordinary path check.
func (b *Board) attacks(p *chess.Piece, from, target chess.Coordinate) bool {
	d := target.Sub(from)
	switch p.Kind {
	case chess.Pawn:
		return pawnAttacks(p, from, target)
	case chess.King:
		return !d.IsZero() && abs(d.Row) <= 1 && abs(d.Col) <= 1
	case chess.Knight:
		return p.IsLegalDisplacement(d)
	}
	return p.Kind.IsSlider() && b.validSliderPath(p, from, target)
}

// IsAttacked reports whether any enemy of colour threatens square.
func (b *Board) IsAttacked(square chess.Coordinate, colour chess.Colour) bool {
	return len(b.EnemiesAttacking(square, chess.NewPiece(chess.King, colour))) > 0
}
