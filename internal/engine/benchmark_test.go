package engine

import (
	"testing"

	"github.com/lgbarn/chess-rules-go/internal/chess"
)

var benchFENs = map[string]string{
	"Initial":   InitialFEN,
	"Midgame":   "r1bqkb1r/pppp1ppp/2n2n2/4p3/2B1P3/5N2/PPPP1PPP/RNBQK2R w KQkq - 4 4",
	"Endgame":   "8/5k2/8/8/8/8/5K2/4R3 w - - 0 1",
	"Complex":   "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
	"EnPassant": "rnbqkbnr/pppp1ppp/8/4pP2/8/8/PPPPP1PP/RNBQKBNR w KQkq e6 0 3",
	"Castling":  "r3k2r/pppppppp/8/8/8/8/PPPPPPPP/R3K2R w KQkq - 0 1",
}

func BenchmarkNewBoardFromFEN(b *testing.B) {
	for name, fen := range benchFENs {
		b.Run(name, func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				NewBoardFromFEN(fen)
			}
		})
	}
}

func BenchmarkToFEN(b *testing.B) {
	for name, fen := range benchFENs {
		b.Run(name, func(b *testing.B) {
			board, toMove, _ := NewBoardFromFEN(fen)
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				ToFEN(board, toMove, 0, 1)
			}
		})
	}
}

func BenchmarkCanMove(b *testing.B) {
	board, _, _ := NewBoardFromFEN(benchFENs["Complex"])
	origin, dest := chess.MustAlgebraic("f3"), chess.MustAlgebraic("f6")
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		board.CanMove(origin, dest)
	}
}

func BenchmarkCanMove_Castle(b *testing.B) {
	board, _, _ := NewBoardFromFEN(benchFENs["Castling"])
	origin, dest := chess.MustAlgebraic("e1"), chess.MustAlgebraic("g1")
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		board.CanMove(origin, dest)
	}
}

func BenchmarkEnemiesAttacking(b *testing.B) {
	for name, fen := range benchFENs {
		b.Run(name, func(b *testing.B) {
			board, toMove, _ := NewBoardFromFEN(fen)
			king, _ := board.findKing(toMove)
			occupant := board.PieceAt(king)
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				board.EnemiesAttacking(king, occupant)
			}
		})
	}
}

func BenchmarkCandidateMoves(b *testing.B) {
	for name, fen := range benchFENs {
		b.Run(name, func(b *testing.B) {
			board, toMove, _ := NewBoardFromFEN(fen)
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				board.CandidateMoves(toMove)
			}
		})
	}
}

func BenchmarkGameReplay_ItalianOpening(b *testing.B) {
	moves := [][2]string{
		{"e2", "e4"}, {"e7", "e5"}, {"g1", "f3"}, {"b8", "c6"},
		{"f1", "c4"}, {"f8", "c5"}, {"c2", "c3"}, {"g8", "f6"},
		{"d2", "d4"}, {"e5", "d4"}, {"c3", "d4"}, {"c5", "b4"},
		{"e1", "g1"},
	}
	for i := 0; i < b.N; i++ {
		board := NewBoard()
		for _, m := range moves {
			if !board.MovePiece(chess.MustAlgebraic(m[0]), chess.MustAlgebraic(m[1])) {
				b.Fatalf("MovePiece(%s, %s) rejected", m[0], m[1])
			}
		}
	}
}

func BenchmarkClone(b *testing.B) {
	board, _, _ := NewBoardFromFEN(benchFENs["Complex"])
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		board.Clone()
	}
}
