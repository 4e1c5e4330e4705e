package engine

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/hashicorp/go-multierror"

	"github.com/lgbarn/chess-rules-go/internal/chess"
	cerrors "github.com/lgbarn/chess-rules-go/internal/errors"
)

func TestState_JSONRoundTrip(t *testing.T) {
	b := NewBoard()
	mustMove(t, b,
		mv(6, 4, 4, 4), mv(1, 3, 3, 3), mv(4, 4, 3, 3), // exd5
		mv(7, 6, 5, 5), mv(7, 5, 4, 2), mv(7, 4, 7, 6), // Nf3, Bc4, O-O
	)

	data, err := json.Marshal(b.State())
	if err != nil {
		t.Fatalf("json.Marshal: %v", err)
	}
	var st BoardState
	if err := json.Unmarshal(data, &st); err != nil {
		t.Fatalf("json.Unmarshal: %v", err)
	}
	restored, err := NewBoardFromState(st)
	if err != nil {
		t.Fatalf("NewBoardFromState: %v", err)
	}

	if diff := cmp.Diff(b.State(), restored.State()); diff != "" {
		t.Errorf("restored board differs (-orig +restored):\n%s", diff)
	}

	if got := restored.Captured(chess.Black); len(got) != 1 || got[0].Active() {
		t.Errorf("restored Captured(Black) = %v, want one inactive pawn", got)
	}
	last, ok := restored.LastMove()
	if !ok || last.Castle == nil {
		t.Errorf("restored last move = %v, want the castle", last)
	}
	if !restored.PieceAt(chess.MustAlgebraic("g1")).Moved() {
		t.Error("restored king lost its moved flag")
	}
	if restored.PieceAt(chess.MustAlgebraic("a1")).Moved() {
		t.Error("restored a1 rook gained a moved flag")
	}
}

func TestState_RestoredBoardKeepsEnPassant(t *testing.T) {
	b := NewBoard()
	mustMove(t, b, mv(6, 4, 4, 4), mv(4, 4, 3, 4), mv(1, 3, 3, 3))

	restored, err := NewBoardFromState(b.State())
	if err != nil {
		t.Fatalf("NewBoardFromState: %v", err)
	}
	if !restored.MovePiece(chess.Coord(3, 4), chess.Coord(2, 3)) {
		t.Error("en passant rejected after restoring the board")
	}
}

func TestState_Validate(t *testing.T) {
	sq := func(name string) *chess.Coordinate {
		c := chess.MustAlgebraic(name)
		return &c
	}
	king := func(colour chess.Colour, at string) PieceState {
		return PieceState{Kind: chess.King, Colour: colour, Square: sq(at)}
	}

	tests := []struct {
		name    string
		state   BoardState
		wantErr int
	}{
		{
			name:  "two kings",
			state: BoardState{Pieces: []PieceState{king(chess.White, "e1"), king(chess.Black, "e8")}},
		},
		{
			name: "captured king counts",
			state: BoardState{
				Pieces:    []PieceState{king(chess.White, "e1")},
				Graveyard: map[chess.Colour][]PieceState{chess.Black: {{Kind: chess.King, Colour: chess.Black}}},
			},
		},
		{
			name:    "missing king",
			state:   BoardState{Pieces: []PieceState{king(chess.White, "e1")}},
			wantErr: 1,
		},
		{
			name: "several problems",
			state: BoardState{
				Pieces: []PieceState{
					king(chess.White, "e1"), king(chess.White, "e2"), king(chess.Black, "e8"),
					{Kind: chess.Pawn, Colour: chess.Black, Square: sq("a1")},
					{Kind: chess.Rook, Colour: chess.Black, Square: sq("e8")},
				},
			},
			wantErr: 3,
		},
		{
			name: "wrong graveyard",
			state: BoardState{
				Pieces:    []PieceState{king(chess.White, "e1"), king(chess.Black, "e8")},
				Graveyard: map[chess.Colour][]PieceState{chess.White: {{Kind: chess.Pawn, Colour: chess.Black}}},
			},
			wantErr: 1,
		},
		{
			name: "piece off the board",
			state: BoardState{
				Pieces: []PieceState{
					king(chess.White, "e1"), king(chess.Black, "e8"),
					{Kind: chess.Queen, Colour: chess.White, Square: &chess.Coordinate{Row: 9, Col: 0}},
				},
			},
			wantErr: 1,
		},
		{
			name: "unknown kind",
			state: BoardState{
				Pieces: []PieceState{
					king(chess.White, "e1"), king(chess.Black, "e8"),
					{Kind: chess.Kind(42), Colour: chess.White, Square: sq("d4")},
				},
			},
			wantErr: 1,
		},
		{
			name: "last move off the board",
			state: BoardState{
				Pieces:   []PieceState{king(chess.White, "e1"), king(chess.Black, "e8")},
				LastMove: &MoveRecord{Origin: chess.Coord(-1, 0), Destination: chess.Coord(0, 0)},
			},
			wantErr: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.state.Validate()
			if tt.wantErr == 0 {
				if err != nil {
					t.Errorf("Validate() error = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, cerrors.ErrInvalidState) {
				t.Fatalf("Validate() error = %v, want ErrInvalidState", err)
			}
			var merr *multierror.Error
			if !errors.As(err, &merr) {
				t.Fatalf("Validate() error %T does not carry a multierror", err)
			}
			if len(merr.Errors) != tt.wantErr {
				t.Errorf("Validate() reported %d problems, want %d: %v", len(merr.Errors), tt.wantErr, merr)
			}
			if _, err := NewBoardFromState(tt.state); err == nil {
				t.Error("NewBoardFromState() accepted an invalid state")
			}
		})
	}
}
