// Package chess provides the value types of the rule engine: colours, piece
// kinds, board coordinates and pieces with their movesets.
package chess

import (
	"fmt"
	"strings"
)

// Colour represents the colour of a piece or player.
type Colour int

const (
	White Colour = iota
	Black
)

// Colours lists both colours, White first.
var Colours = [2]Colour{White, Black}

// String returns the string representation of a colour.
func (c Colour) String() string {
	if c == White {
		return "White"
	}
	return "Black"
}

// Opposite returns the opposite colour.
func (c Colour) Opposite() Colour {
	if c == White {
		return Black
	}
	return White
}

// Forward returns the row step a pawn of this colour advances by.
// White starts on the high rows and advances toward row 0.
func (c Colour) Forward() int {
	if c == White {
		return -1
	}
	return 1
}

// HomeRow returns the row holding this colour's king and rooks at the start.
func (c Colour) HomeRow() int {
	if c == White {
		return BoardSize - 1
	}
	return 0
}

// PawnRow returns the row holding this colour's pawns at the start.
func (c Colour) PawnRow() int {
	return c.HomeRow() + c.Forward()
}

// FarRow returns the row on which this colour's pawns promote.
func (c Colour) FarRow() int {
	return c.Opposite().HomeRow()
}

// Kind represents a chess piece type.
type Kind int

const (
	NoKind Kind = iota
	King
	Queen
	Rook
	Bishop
	Knight
	Pawn
)

// Kinds lists the six piece kinds.
var Kinds = [6]Kind{King, Queen, Rook, Bishop, Knight, Pawn}

// PromotionKinds lists the kinds a pawn may be promoted to.
var PromotionKinds = [4]Kind{Queen, Rook, Bishop, Knight}

// String returns the string representation of a kind.
func (k Kind) String() string {
	names := []string{"None", "King", "Queen", "Rook", "Bishop", "Knight", "Pawn"}
	if k >= 0 && int(k) < len(names) {
		return names[k]
	}
	return "Unknown"
}

// Letter returns the single uppercase letter used for the kind in FEN.
func (k Kind) Letter() byte {
	letters := []byte{' ', 'K', 'Q', 'R', 'B', 'N', 'P'}
	if k >= 0 && int(k) < len(letters) {
		return letters[k]
	}
	return '?'
}

// IsSlider reports whether the kind moves along repeated directions.
func (k Kind) IsSlider() bool {
	return k == Queen || k == Rook || k == Bishop
}

// IsPromotionTarget reports whether a pawn may be promoted to this kind.
func (k Kind) IsPromotionTarget() bool {
	for _, p := range PromotionKinds {
		if k == p {
			return true
		}
	}
	return false
}

// KindFromLetter converts a FEN letter (either case) to a kind.
// It returns NoKind for anything else.
func KindFromLetter(c byte) Kind {
	switch c {
	case 'K', 'k':
		return King
	case 'Q', 'q':
		return Queen
	case 'R', 'r':
		return Rook
	case 'B', 'b':
		return Bishop
	case 'N', 'n':
		return Knight
	case 'P', 'p':
		return Pawn
	}
	return NoKind
}

// Board dimensions and notation bases.
const (
	BoardSize = 8

	FileBase  = 'a'
	RankBase  = '1'
	FirstFile = FileBase
	LastFile  = FileBase + BoardSize - 1
	FirstRank = RankBase
	LastRank  = RankBase + BoardSize - 1
)

// MarshalText encodes the colour as "White" or "Black".
func (c Colour) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText decodes "White" or "Black" (any case, or "w"/"b").
func (c *Colour) UnmarshalText(text []byte) error {
	switch strings.ToLower(string(text)) {
	case "white", "w":
		*c = White
	case "black", "b":
		*c = Black
	default:
		return fmt.Errorf("unknown colour %q", text)
	}
	return nil
}

// MarshalText encodes the kind by name.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText decodes a kind name such as "Queen". "None" and the empty
// string decode to NoKind.
func (k *Kind) UnmarshalText(text []byte) error {
	s := string(text)
	if s == "" || s == NoKind.String() {
		*k = NoKind
		return nil
	}
	for _, kind := range Kinds {
		if strings.EqualFold(s, kind.String()) {
			*k = kind
			return nil
		}
	}
	return fmt.Errorf("unknown piece kind %q", text)
}
