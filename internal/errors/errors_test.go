package errors

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

// TestSentinelErrors verifies that sentinel errors are properly defined
// and can be checked with errors.Is()
func TestSentinelErrors_Are(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		sentinel error
	}{
		{"ErrInvalidCoordinate", ErrInvalidCoordinate, ErrInvalidCoordinate},
		{"ErrDimensionMismatch", ErrDimensionMismatch, ErrDimensionMismatch},
		{"ErrInvalidFEN", ErrInvalidFEN, ErrInvalidFEN},
		{"ErrIllegalMove", ErrIllegalMove, ErrIllegalMove},
		{"ErrInvalidState", ErrInvalidState, ErrInvalidState},
		{"ErrInvalidSave", ErrInvalidSave, ErrInvalidSave},
		{"ErrUnknownGame", ErrUnknownGame, ErrUnknownGame},
		{"ErrGameOver", ErrGameOver, ErrGameOver},
		{"ErrInvalidConfig", ErrInvalidConfig, ErrInvalidConfig},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !errors.Is(tt.err, tt.sentinel) {
				t.Errorf("errors.Is(%v, %v) = false, want true", tt.err, tt.sentinel)
			}
		})
	}
}

// TestSentinelErrors_Distinct guards against two sentinels sharing identity.
func TestSentinelErrors_Distinct(t *testing.T) {
	if errors.Is(ErrInvalidCoordinate, ErrIllegalMove) {
		t.Error("ErrInvalidCoordinate must not match ErrIllegalMove")
	}
}

// TestSentinelErrors_Wrapping verifies wrapped sentinel errors can still be detected
func TestSentinelErrors_Wrapping(t *testing.T) {
	wrapped := fmt.Errorf("failed to read square: %w", ErrInvalidCoordinate)

	if !errors.Is(wrapped, ErrInvalidCoordinate) {
		t.Errorf("errors.Is(wrapped, ErrInvalidCoordinate) = false, want true")
	}
}

// TestMoveError_Error verifies the error message format
func TestMoveError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *MoveError
		contains []string
	}{
		{
			name: "full context",
			err: &MoveError{
				Err:         ErrIllegalMove,
				Origin:      "e2",
				Destination: "e5",
				Ply:         7,
			},
			contains: []string{"ply 7", "e2-e5", "illegal move"},
		},
		{
			name:     "minimal context",
			err:      &MoveError{Err: ErrIllegalMove},
			contains: []string{"illegal move"},
		},
		{
			name:     "no cause",
			err:      &MoveError{Origin: "a1", Destination: "a8"},
			contains: []string{"a1-a8"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := tt.err.Error()
			for _, s := range tt.contains {
				if !containsIgnoreCase(msg, s) {
					t.Errorf("MoveError.Error() = %q, should contain %q", msg, s)
				}
			}
		})
	}
}

// TestMoveError_As verifies that errors.As works with MoveError
func TestMoveError_As(t *testing.T) {
	moveErr := &MoveError{
		Err:         ErrIllegalMove,
		Origin:      "e1",
		Destination: "g1",
		Ply:         9,
	}

	wrapped := fmt.Errorf("playing round: %w", moveErr)

	var extracted *MoveError
	if !errors.As(wrapped, &extracted) {
		t.Fatal("errors.As() could not extract MoveError")
	}
	if extracted.Ply != 9 {
		t.Errorf("extracted.Ply = %d, want 9", extracted.Ply)
	}
	if !errors.Is(wrapped, ErrIllegalMove) {
		t.Error("errors.Is(wrapped, ErrIllegalMove) = false, want true")
	}
}

// TestParseError_Error verifies ParseError formatting
func TestParseError_Error(t *testing.T) {
	err := &ParseError{
		Err:      ErrInvalidCoordinate,
		Input:    "z9",
		Position: 1,
		Expected: "file a-h",
		Got:      "z",
	}

	msg := err.Error()

	if !containsIgnoreCase(msg, `"z9"`) {
		t.Errorf("ParseError.Error() should contain the input, got %q", msg)
	}
	if !containsIgnoreCase(msg, "expected file a-h, got z") {
		t.Errorf("ParseError.Error() should contain expected/got, got %q", msg)
	}
	if !containsIgnoreCase(msg, "invalid coordinate") {
		t.Errorf("ParseError.Error() should contain the cause, got %q", msg)
	}
}

// TestParseError_Unwrap verifies ParseError implements Unwrap
func TestParseError_Unwrap(t *testing.T) {
	parseErr := &ParseError{
		Err:   ErrInvalidFEN,
		Input: "8/8/8",
	}

	if !errors.Is(parseErr, ErrInvalidFEN) {
		t.Error("errors.Is(parseErr, ErrInvalidFEN) = false, want true")
	}
}

// TestWrap verifies the Wrap helper function
func TestWrap(t *testing.T) {
	wrapped := Wrap(ErrInvalidSave, "loading game.save")

	if !errors.Is(wrapped, ErrInvalidSave) {
		t.Error("Wrap should preserve the underlying error")
	}

	msg := wrapped.Error()
	if !containsIgnoreCase(msg, "loading game.save") {
		t.Errorf("Wrap should include context, got %q", msg)
	}

	if Wrap(nil, "anything") != nil {
		t.Error("Wrap(nil) should return nil")
	}
}

// TestWrapf verifies the Wrapf helper function
func TestWrapf(t *testing.T) {
	wrapped := Wrapf(ErrIllegalMove, "ply %d of game %d", 15, 3)

	if !errors.Is(wrapped, ErrIllegalMove) {
		t.Error("Wrapf should preserve the underlying error")
	}

	msg := wrapped.Error()
	if !containsIgnoreCase(msg, "ply 15") {
		t.Errorf("Wrapf should include formatted context, got %q", msg)
	}
}

// containsIgnoreCase checks if s contains substr (case-insensitive).
func containsIgnoreCase(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
