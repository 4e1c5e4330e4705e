// Package errors provides sentinel errors and error types for the chess rule engine
// and the layers built on top of it. It defines common error conditions and
// structured error types that preserve context while allowing error inspection
// with errors.Is() and errors.As().
package errors

import (
	"errors"
	"fmt"
	"strings"

	pkgerrors "github.com/pkg/errors"
)

// Sentinel errors for common failure conditions.
// Use these with errors.Is() to check for specific error types.
var (
	// ErrInvalidCoordinate indicates text that does not name a board square.
	ErrInvalidCoordinate = errors.New("invalid coordinate")

	// ErrDimensionMismatch indicates vector data that is not two-dimensional.
	ErrDimensionMismatch = errors.New("dimension mismatch")

	// ErrInvalidFEN indicates a malformed FEN string.
	ErrInvalidFEN = errors.New("invalid FEN string")

	// ErrIllegalMove indicates a move that violates chess rules.
	ErrIllegalMove = errors.New("illegal move")

	// ErrInvalidState indicates a board snapshot that breaks a board invariant.
	ErrInvalidState = errors.New("invalid board state")

	// ErrInvalidSave indicates an unreadable saved game.
	ErrInvalidSave = errors.New("invalid saved game")

	// ErrUnknownGame indicates a game id that is not being served.
	ErrUnknownGame = errors.New("unknown game")

	// ErrGameOver indicates a move submitted to a finished game.
	ErrGameOver = errors.New("game is over")

	// ErrInvalidConfig indicates invalid configuration values.
	ErrInvalidConfig = errors.New("invalid configuration")
)

// MoveError wraps a rejected move with the squares involved and the ply
// at which it was attempted. It supports unwrapping via errors.Is() and
// errors.As().
type MoveError struct {
	Err         error  // The underlying error
	Origin      string // Origin square in algebraic notation
	Destination string // Destination square in algebraic notation
	Ply         int    // 1-based ply number (0 if not applicable)
}

// Error returns a formatted error message including all available context.
func (e *MoveError) Error() string {
	var parts []string

	if e.Ply > 0 {
		parts = append(parts, fmt.Sprintf("ply %d", e.Ply))
	}
	if e.Origin != "" || e.Destination != "" {
		parts = append(parts, fmt.Sprintf("move %s-%s", e.Origin, e.Destination))
	}

	context := strings.Join(parts, ", ")
	switch {
	case e.Err != nil && context != "":
		return fmt.Sprintf("%s: %v", context, e.Err)
	case e.Err != nil:
		return e.Err.Error()
	case context != "":
		return context
	}
	return "move error"
}

// Unwrap returns the underlying error.
func (e *MoveError) Unwrap() error {
	return e.Err
}

// ParseError represents a failure to parse textual input such as a
// coordinate, a FEN string or a console command.
type ParseError struct {
	Err      error  // The underlying error
	Input    string // The text being parsed
	Position int    // 1-based position of the offending character (0 if unknown)
	Expected string // What was expected
	Got      string // What was found instead
}

// Error returns a formatted error message with location and context.
func (e *ParseError) Error() string {
	var parts []string

	if e.Input != "" {
		loc := fmt.Sprintf("%q", e.Input)
		if e.Position > 0 {
			loc += fmt.Sprintf(" at %d", e.Position)
		}
		parts = append(parts, loc)
	}

	if e.Expected != "" && e.Got != "" {
		parts = append(parts, fmt.Sprintf("expected %s, got %s", e.Expected, e.Got))
	} else if e.Expected != "" {
		parts = append(parts, fmt.Sprintf("expected %s", e.Expected))
	} else if e.Got != "" {
		parts = append(parts, fmt.Sprintf("unexpected %s", e.Got))
	}

	if e.Err != nil {
		if len(parts) > 0 {
			return fmt.Sprintf("%s: %v", strings.Join(parts, ": "), e.Err)
		}
		return e.Err.Error()
	}

	if len(parts) > 0 {
		return strings.Join(parts, ": ")
	}
	return "parse error"
}

// Unwrap returns the underlying error.
func (e *ParseError) Unwrap() error {
	return e.Err
}

// Wrap adds context and a stack trace to an error while preserving the
// underlying error for inspection with errors.Is() and errors.As().
func Wrap(err error, context string) error {
	if err == nil {
		return nil
	}
	return pkgerrors.Wrap(err, context)
}

// Wrapf adds formatted context to an error while preserving the underlying
// error for inspection with errors.Is() and errors.As().
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return pkgerrors.Wrapf(err, format, args...)
}

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}
