// Package engine provides the chess board model and the rules that decide
// whether a move is legal, execute it, and report derived facts such as
// check and king capture.
package engine

import (
	"fmt"

	"github.com/lgbarn/chess-rules-go/internal/chess"
)

// Square is one board square. It holds at most one piece.
type Square struct {
	piece *chess.Piece
	light bool
}

// Piece returns the occupying piece, or nil.
func (s *Square) Piece() *chess.Piece {
	return s.piece
}

// Occupied reports whether a piece stands on the square.
func (s *Square) Occupied() bool {
	return s.piece != nil
}

// Light reports the display shade of the square.
func (s *Square) Light() bool {
	return s.light
}

// pop removes and returns the occupying piece.
func (s *Square) pop() *chess.Piece {
	p := s.piece
	s.piece = nil
	return p
}

// put places p on the square, returning whatever stood there.
func (s *Square) put(p *chess.Piece) *chess.Piece {
	old := s.piece
	s.piece = p
	return old
}

// Board is an 8x8 grid of squares together with each colour's graveyard
// and a record of the most recent move. A Board is not safe for concurrent
// use; callers submit one move at a time.
type Board struct {
	grid      [chess.BoardSize][chess.BoardSize]Square
	graveyard [2][]*chess.Piece
	last      *MoveRecord
	promoter  Promoter
}

// NewEmptyBoard creates a board with no pieces.
func NewEmptyBoard() *Board {
	b := &Board{promoter: DefaultPromoter}
	for row := 0; row < chess.BoardSize; row++ {
		for col := 0; col < chess.BoardSize; col++ {
			b.grid[row][col].light = (row+col)%2 == 0
		}
	}
	return b
}

// backRank is the order of pieces on each side's home row, file a to h.
var backRank = [chess.BoardSize]chess.Kind{
	chess.Rook, chess.Knight, chess.Bishop, chess.Queen,
	chess.King, chess.Bishop, chess.Knight, chess.Rook,
}

// NewBoard creates a board in the standard starting position, with White
// on rows 6-7 and Black on rows 0-1.
func NewBoard() *Board {
	b := NewEmptyBoard()
	for _, colour := range chess.Colours {
		for col := 0; col < chess.BoardSize; col++ {
			b.grid[colour.HomeRow()][col].put(chess.NewPiece(backRank[col], colour))
			b.grid[colour.PawnRow()][col].put(chess.NewPiece(chess.Pawn, colour))
		}
	}
	return b
}

// ValidPosition reports whether c names a square of the board.
func ValidPosition(c chess.Coordinate) bool {
	return c.OnBoard()
}

// Square returns the square at c. Indexing off the board is a programming
// error and panics.
func (b *Board) Square(c chess.Coordinate) *Square {
	if !c.OnBoard() {
		panic(fmt.Sprintf("engine: square %v is off the board", c))
	}
	return &b.grid[c.Row][c.Col]
}

// SquareAt returns the square at row, col. It panics outside [0, 7].
func (b *Board) SquareAt(row, col int) *Square {
	return b.Square(chess.Coord(row, col))
}

// SquareNamed returns the square with the given algebraic name.
func (b *Board) SquareNamed(name string) (*Square, error) {
	c, err := chess.FromAlgebraic(name)
	if err != nil {
		return nil, err
	}
	return b.Square(c), nil
}

// PieceAt returns the piece at c, or nil when the square is empty or c is
// off the board.
func (b *Board) PieceAt(c chess.Coordinate) *chess.Piece {
	if !c.OnBoard() {
		return nil
	}
	return b.grid[c.Row][c.Col].piece
}

// occupied reports whether c is on the board and holds a piece.
func (b *Board) occupied(c chess.Coordinate) bool {
	return b.PieceAt(c) != nil
}

// Place puts p on c for position setup, discarding any piece already there.
func (b *Board) Place(c chess.Coordinate, p *chess.Piece) {
	b.Square(c).put(p)
}

// Remove takes the piece off c for position setup and returns it.
func (b *Board) Remove(c chess.Coordinate) *chess.Piece {
	return b.Square(c).pop()
}

// PiecesOf returns the locations of colour's pieces in row-major order.
func (b *Board) PiecesOf(colour chess.Colour) []chess.Coordinate {
	var locs []chess.Coordinate
	for row := 0; row < chess.BoardSize; row++ {
		for col := 0; col < chess.BoardSize; col++ {
			if p := b.grid[row][col].piece; p != nil && p.Colour == colour {
				locs = append(locs, chess.Coord(row, col))
			}
		}
	}
	return locs
}

// Captured returns a copy of colour's graveyard in capture order.
func (b *Board) Captured(colour chess.Colour) []*chess.Piece {
	return append([]*chess.Piece(nil), b.graveyard[colour]...)
}

// bury moves a captured piece into its colour's graveyard.
func (b *Board) bury(p *chess.Piece) {
	p.Capture()
	b.graveyard[p.Colour] = append(b.graveyard[p.Colour], p)
}

// LastMove returns the most recently completed move, if any.
func (b *Board) LastMove() (MoveRecord, bool) {
	if b.last == nil {
		return MoveRecord{}, false
	}
	return *b.last, true
}

// SetPromoter installs the callback consulted when a pawn promotes.
// A nil promoter restores the default, which always picks a Queen.
func (b *Board) SetPromoter(p Promoter) {
	if p == nil {
		p = DefaultPromoter
	}
	b.promoter = p
}

// Clone returns a deep copy of the board. Pieces, graveyards and the last
// move are copied; the promoter is shared.
func (b *Board) Clone() *Board {
	c := &Board{grid: b.grid, promoter: b.promoter}
	for row := range c.grid {
		for col := range c.grid[row] {
			if p := c.grid[row][col].piece; p != nil {
				cp := *p
				c.grid[row][col].piece = &cp
			}
		}
	}
	for colour, dead := range b.graveyard {
		for _, p := range dead {
			cp := *p
			c.graveyard[colour] = append(c.graveyard[colour], &cp)
		}
	}
	if b.last != nil {
		last := *b.last
		if last.Castle != nil {
			rm := *last.Castle
			last.Castle = &rm
		}
		c.last = &last
	}
	return c
}
