package chess

import "fmt"

// Piece is a single chess piece. A piece is owned by exactly one board
// square at a time, or by its colour's graveyard once captured.
type Piece struct {
	Kind   Kind
	Colour Colour

	moved    bool
	captured bool
}

// NewPiece creates an unmoved, active piece.
func NewPiece(kind Kind, colour Colour) *Piece {
	return &Piece{Kind: kind, Colour: colour}
}

// Moved reports whether the piece has ever moved. Once true it stays true.
func (p *Piece) Moved() bool {
	return p.moved
}

// Active reports whether the piece is still in play.
func (p *Piece) Active() bool {
	return !p.captured
}

// OnMoved marks the piece as moved. The King's castling displacements and
// the Pawn's double step drop out of its moveset from then on. Calling it
// again has no further effect.
func (p *Piece) OnMoved() {
	p.moved = true
}

// Capture takes the piece out of play.
func (p *Piece) Capture() {
	p.captured = true
}

// Restore sets the flags of a piece rebuilt from a saved board.
func (p *Piece) Restore(moved, captured bool) {
	p.moved = moved
	p.captured = captured
}

// Moveset returns the displacements the piece may attempt before occupancy
// and path checks. The result is freshly allocated on every call and is
// derived from the piece's kind, colour and moved flag.
func (p *Piece) Moveset() []Coordinate {
	switch p.Kind {
	case Queen, Rook, Bishop:
		return append([]Coordinate(nil), sliderMovesets[p.Kind]...)
	case Knight:
		return append([]Coordinate(nil), knightJumps[:]...)
	case King:
		set := append([]Coordinate(nil), kingSteps[:]...)
		if !p.moved {
			set = append(set, castleSteps[:]...)
		}
		return set
	case Pawn:
		f := p.Colour.Forward()
		set := []Coordinate{{f, 0}, {f, -1}, {f, 1}}
		if !p.moved {
			set = append(set, Coordinate{2 * f, 0})
		}
		return set
	}
	return nil
}

// IsLegalDisplacement reports whether delta belongs to the piece's moveset.
// An empty moveset accepts any displacement.
func (p *Piece) IsLegalDisplacement(delta Coordinate) bool {
	switch p.Kind {
	case Queen, Rook, Bishop:
		return sliderAllows(p.Kind, delta)
	case Knight:
		return contains(knightJumps[:], delta)
	case King:
		if contains(kingSteps[:], delta) {
			return true
		}
		return !p.moved && contains(castleSteps[:], delta)
	case Pawn:
		f := p.Colour.Forward()
		switch delta {
		case Coordinate{f, 0}, Coordinate{f, -1}, Coordinate{f, 1}:
			return true
		case Coordinate{2 * f, 0}:
			return !p.moved
		}
		return false
	}
	return len(p.Moveset()) == 0
}

// Symbol returns the Unicode chess glyph for the piece.
func (p *Piece) Symbol() string {
	base := whiteGlyphs
	if p.Colour == Black {
		base = blackGlyphs
	}
	if g, ok := base[p.Kind]; ok {
		return string(g)
	}
	return "?"
}

// Letter returns the FEN letter: uppercase for White, lowercase for Black.
func (p *Piece) Letter() byte {
	l := p.Kind.Letter()
	if p.Colour == Black && l >= 'A' && l <= 'Z' {
		l += 'a' - 'A'
	}
	return l
}

// String returns a short description such as "White Knight".
func (p *Piece) String() string {
	return fmt.Sprintf("%s %s", p.Colour, p.Kind)
}

var whiteGlyphs = map[Kind]rune{
	King: '♔', Queen: '♕', Rook: '♖', Bishop: '♗', Knight: '♘', Pawn: '♙',
}

var blackGlyphs = map[Kind]rune{
	King: '♚', Queen: '♛', Rook: '♜', Bishop: '♝', Knight: '♞', Pawn: '♟',
}

// Direction vectors.
var (
	StraightDirections = [4]Coordinate{{-1, 0}, {1, 0}, {0, -1}, {0, 1}}
	DiagonalDirections = [4]Coordinate{{-1, -1}, {-1, 1}, {1, -1}, {1, 1}}
	CompassDirections  = [8]Coordinate{{-1, 0}, {-1, 1}, {0, 1}, {1, 1}, {1, 0}, {1, -1}, {0, -1}, {-1, -1}}
)

var (
	kingSteps   = CompassDirections
	castleSteps = [2]Coordinate{{0, 2}, {0, -2}}
	knightJumps = [8]Coordinate{{-2, -1}, {-2, 1}, {-1, -2}, {-1, 2}, {1, -2}, {1, 2}, {2, -1}, {2, 1}}
)

// KnightJumps returns the eight knight displacements.
func KnightJumps() [8]Coordinate {
	return knightJumps
}

// sliderMovesets holds every multiple from -7 to 7 (excluding 0) of each
// slider's direction vectors, expanded once.
var sliderMovesets = map[Kind][]Coordinate{
	Queen:  expand(CompassDirections[:]),
	Rook:   expand(StraightDirections[:]),
	Bishop: expand(DiagonalDirections[:]),
}

func expand(directions []Coordinate) []Coordinate {
	seen := make(map[Coordinate]bool)
	var set []Coordinate
	for _, d := range directions {
		for k := -(BoardSize - 1); k <= BoardSize-1; k++ {
			if k == 0 {
				continue
			}
			m := d.Scale(k)
			if !seen[m] {
				seen[m] = true
				set = append(set, m)
			}
		}
	}
	return set
}

func sliderAllows(kind Kind, delta Coordinate) bool {
	if delta.IsZero() || abs(delta.Row) >= BoardSize || abs(delta.Col) >= BoardSize {
		return false
	}
	straight := delta.Row == 0 || delta.Col == 0
	diagonal := abs(delta.Row) == abs(delta.Col)
	switch kind {
	case Queen:
		return straight || diagonal
	case Rook:
		return straight
	case Bishop:
		return diagonal
	}
	return false
}

func contains(set []Coordinate, c Coordinate) bool {
	for _, s := range set {
		if s == c {
			return true
		}
	}
	return false
}
