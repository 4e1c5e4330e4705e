package testutil

import (
	"testing"

	"github.com/lgbarn/chess-rules-go/internal/chess"
	"github.com/lgbarn/chess-rules-go/internal/engine"
)

// Sq is shorthand for chess.MustAlgebraic.
func Sq(name string) chess.Coordinate {
	return chess.MustAlgebraic(name)
}

// SetupBoard builds a board from piece specs such as "Ke1" or "pd7": a FEN
// letter (uppercase White, lowercase Black) followed by a square. Every
// piece is unmoved.
func SetupBoard(t testing.TB, specs ...string) *engine.Board {
	t.Helper()
	b := engine.NewEmptyBoard()
	for _, spec := range specs {
		if len(spec) != 3 {
			t.Fatalf("bad piece spec %q", spec)
		}
		kind := chess.KindFromLetter(spec[0])
		if kind == chess.NoKind {
			t.Fatalf("bad piece letter in %q", spec)
		}
		colour := chess.White
		if spec[0] >= 'a' && spec[0] <= 'z' {
			colour = chess.Black
		}
		at, err := chess.FromAlgebraic(spec[1:])
		if err != nil {
			t.Fatalf("bad square in %q: %v", spec, err)
		}
		b.Place(at, chess.NewPiece(kind, colour))
	}
	return b
}

// MustFEN loads a FEN position or fails the test.
func MustFEN(t testing.TB, fen string) (*engine.Board, chess.Colour) {
	t.Helper()
	b, toMove, err := engine.NewBoardFromFEN(fen)
	if err != nil {
		t.Fatalf("NewBoardFromFEN(%q): %v", fen, err)
	}
	return b, toMove
}

// MustMove plays moves given as square-name pairs, e.g. "e2", "e4", and
// fails the test on the first one the board rejects.
func MustMove(t testing.TB, b *engine.Board, squares ...string) {
	t.Helper()
	if len(squares)%2 != 0 {
		t.Fatalf("MustMove needs origin/destination pairs, got %d squares", len(squares))
	}
	for i := 0; i < len(squares); i += 2 {
		if !b.MovePiece(Sq(squares[i]), Sq(squares[i+1])) {
			t.Fatalf("MovePiece(%s, %s) = false, want true\n%s", squares[i], squares[i+1], engine.Placement(b))
		}
	}
}

// AssertPiece checks the piece on square by FEN letter; "" expects an
// empty square.
func AssertPiece(t testing.TB, b *engine.Board, square, want string) {
	t.Helper()
	got := ""
	if p := b.PieceAt(Sq(square)); p != nil {
		got = string(p.Letter())
	}
	if got != want {
		t.Errorf("piece on %s = %q, want %q", square, got, want)
	}
}
