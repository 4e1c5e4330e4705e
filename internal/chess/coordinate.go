package chess

import (
	"fmt"

	"github.com/lgbarn/chess-rules-go/internal/errors"
)

// Coordinate is an integer (row, column) pair. It addresses a square when
// both components are in [0, BoardSize) and describes a displacement when
// used as the difference of two squares. Off-board values are representable
// so that arithmetic never fails; use OnBoard before indexing a board.
//
// Row 0 is rank 8 (Black's back rank) and column 0 is file a.
type Coordinate struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// Coord is shorthand for Coordinate{Row: row, Col: col}.
func Coord(row, col int) Coordinate {
	return Coordinate{Row: row, Col: col}
}

// FromSlice builds a coordinate from raw vector components.
// It fails with ErrDimensionMismatch unless exactly two are given.
func FromSlice(v []int) (Coordinate, error) {
	if len(v) != 2 {
		return Coordinate{}, fmt.Errorf("coordinate needs 2 components, got %d: %w", len(v), errors.ErrDimensionMismatch)
	}
	return Coordinate{Row: v[0], Col: v[1]}, nil
}

// Add returns the component-wise sum.
func (c Coordinate) Add(o Coordinate) Coordinate {
	return Coordinate{Row: c.Row + o.Row, Col: c.Col + o.Col}
}

// Sub returns the component-wise difference.
func (c Coordinate) Sub(o Coordinate) Coordinate {
	return Coordinate{Row: c.Row - o.Row, Col: c.Col - o.Col}
}

// Scale multiplies both components by k.
func (c Coordinate) Scale(k int) Coordinate {
	return Coordinate{Row: c.Row * k, Col: c.Col * k}
}

// Divide integer-divides both components by k. Like integer division it
// panics when k is zero.
func (c Coordinate) Divide(k int) Coordinate {
	if k == 0 {
		panic("chess: coordinate divided by zero")
	}
	return Coordinate{Row: c.Row / k, Col: c.Col / k}
}

// Pair returns the row and column.
func (c Coordinate) Pair() (int, int) {
	return c.Row, c.Col
}

// Slice returns the components as a two-element slice.
func (c Coordinate) Slice() []int {
	return []int{c.Row, c.Col}
}

// IsZero reports whether both components are zero.
func (c Coordinate) IsZero() bool {
	return c.Row == 0 && c.Col == 0
}

// OnBoard reports whether the coordinate names one of the 64 squares.
func (c Coordinate) OnBoard() bool {
	return c.Row >= 0 && c.Row < BoardSize && c.Col >= 0 && c.Col < BoardSize
}

// Unit reduces a straight or diagonal displacement to its one-square step.
// Other displacements are returned with each component reduced to its sign.
func (c Coordinate) Unit() Coordinate {
	n := max(abs(c.Row), abs(c.Col))
	if n == 0 {
		return c
	}
	if c.Row == 0 || c.Col == 0 || abs(c.Row) == abs(c.Col) {
		return c.Divide(n)
	}
	return Coordinate{Row: sign(c.Row), Col: sign(c.Col)}
}

// FromAlgebraic parses a square name such as "e4". The file letter maps
// a-h to columns 0-7 and the rank digit maps 1-8 to rows 7-0.
func FromAlgebraic(text string) (Coordinate, error) {
	if len(text) != 2 {
		return Coordinate{}, &errors.ParseError{
			Err:      errors.ErrInvalidCoordinate,
			Input:    text,
			Expected: "file letter and rank digit",
		}
	}
	file, rank := text[0], text[1]
	if file < FirstFile || file > LastFile {
		return Coordinate{}, &errors.ParseError{
			Err:      errors.ErrInvalidCoordinate,
			Input:    text,
			Position: 1,
			Expected: "file a-h",
			Got:      string(file),
		}
	}
	if rank < FirstRank || rank > LastRank {
		return Coordinate{}, &errors.ParseError{
			Err:      errors.ErrInvalidCoordinate,
			Input:    text,
			Position: 2,
			Expected: "rank 1-8",
			Got:      string(rank),
		}
	}
	return Coordinate{
		Row: BoardSize - 1 - int(rank-RankBase),
		Col: int(file - FileBase),
	}, nil
}

// MustAlgebraic is like FromAlgebraic but panics on malformed text.
// It is meant for fixed setups and tests.
func MustAlgebraic(text string) Coordinate {
	c, err := FromAlgebraic(text)
	if err != nil {
		panic(err)
	}
	return c
}

// Algebraic returns the square name, or "" for an off-board coordinate.
func (c Coordinate) Algebraic() string {
	if !c.OnBoard() {
		return ""
	}
	return string([]byte{
		byte(FileBase + c.Col),
		byte(RankBase + BoardSize - 1 - c.Row),
	})
}

// String returns the square name for on-board coordinates and the raw
// pair otherwise.
func (c Coordinate) String() string {
	if s := c.Algebraic(); s != "" {
		return s
	}
	return fmt.Sprintf("(%d,%d)", c.Row, c.Col)
}

// abs returns the absolute value of x.
func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// sign returns the sign of x: -1, 0, or 1.
func sign(x int) int {
	if x > 0 {
		return 1
	}
	if x < 0 {
		return -1
	}
	return 0
}
