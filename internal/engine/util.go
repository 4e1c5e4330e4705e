package engine

import "github.com/lgbarn/chess-rules-go/internal/chess"

// abs returns the absolute value of x.
func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// between returns the squares strictly between a and b, walking the unit
// step from a. Adjacent or identical squares yield nothing.
func between(a, b chess.Coordinate) []chess.Coordinate {
	step := b.Sub(a).Unit()
	if step.IsZero() {
		return nil
	}
	var squares []chess.Coordinate
	for c := a.Add(step); c != b && c.OnBoard(); c = c.Add(step) {
		squares = append(squares, c)
	}
	return squares
}

// span returns the squares from a to b inclusive along a row.
func span(a, b chess.Coordinate) []chess.Coordinate {
	return append(append([]chess.Coordinate{a}, between(a, b)...), b)
}
