package engine

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/lgbarn/chess-rules-go/internal/chess"
	"github.com/lgbarn/chess-rules-go/internal/errors"
)

// InitialFEN is the FEN string for the standard starting position.
const InitialFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// castleRight pairs a FEN castling letter with the rook square it refers to.
type castleRight struct {
	letter byte
	colour chess.Colour
	rook   chess.Coordinate
}

var castleRights = [4]castleRight{
	{'K', chess.White, chess.Coord(chess.White.HomeRow(), chess.BoardSize-1)},
	{'Q', chess.White, chess.Coord(chess.White.HomeRow(), 0)},
	{'k', chess.Black, chess.Coord(chess.Black.HomeRow(), chess.BoardSize-1)},
	{'q', chess.Black, chess.Coord(chess.Black.HomeRow(), 0)},
}

// kingHome returns the square colour's king starts on.
func kingHome(colour chess.Colour) chess.Coordinate {
	return chess.Coord(colour.HomeRow(), 4)
}

// NewBoardFromFEN creates a board from a FEN string and returns it with the
// side to move. Fields after the placement are optional.
//
// The board has no move history, so FEN state is mapped onto piece flags:
// kings and corner rooks are unmoved only where a castling right says so,
// pawns off their starting row are marked moved, and an en passant square
// becomes a synthetic last move by the pawn that just advanced.
func NewBoardFromFEN(fen string) (*Board, chess.Colour, error) {
	parts := strings.Fields(fen)
	if len(parts) < 1 {
		return nil, chess.White, fmt.Errorf("empty FEN string: %w", errors.ErrInvalidFEN)
	}

	board := NewEmptyBoard()
	if err := parsePiecePositions(board, parts[0]); err != nil {
		return nil, chess.White, err
	}

	toMove, err := parseSideToMove(parts)
	if err != nil {
		return nil, chess.White, err
	}

	if err := parseCastlingRights(board, parts); err != nil {
		return nil, chess.White, err
	}
	markPawns(board)

	if err := parseEnPassant(board, parts, toMove); err != nil {
		return nil, chess.White, err
	}

	if _, _, err := ParseClocks(fen); err != nil {
		return nil, chess.White, err
	}

	// One king per side and no pawn on a back rank, as for a restored game.
	if err := board.State().Validate(); err != nil {
		return nil, chess.White, fmt.Errorf("%w: %w", errors.ErrInvalidFEN, err)
	}
	return board, toMove, nil
}

// parsePiecePositions parses the piece placement field of a FEN string.
// Every piece starts out moved; castling rights and pawn rows unmark them.
func parsePiecePositions(board *Board, positions string) error {
	ranks := strings.Split(positions, "/")
	if len(ranks) != chess.BoardSize {
		return fmt.Errorf("placement has %d ranks: %w", len(ranks), errors.ErrInvalidFEN)
	}

	for row, rank := range ranks {
		col := 0
		for _, c := range rank {
			switch {
			case c >= '1' && c <= '8':
				col += int(c - '0')
			case c > unicode.MaxASCII:
				return fmt.Errorf("invalid piece character: %c: %w", c, errors.ErrInvalidFEN)
			default:
				kind := chess.KindFromLetter(byte(c))
				if kind == chess.NoKind {
					return fmt.Errorf("invalid piece character: %c: %w", c, errors.ErrInvalidFEN)
				}
				if col >= chess.BoardSize {
					return fmt.Errorf("rank %d overflows: %w", chess.BoardSize-row, errors.ErrInvalidFEN)
				}
				colour := chess.White
				if unicode.IsLower(c) {
					colour = chess.Black
				}
				p := chess.NewPiece(kind, colour)
				if kind == chess.King || kind == chess.Rook {
					p.OnMoved()
				}
				board.Place(chess.Coord(row, col), p)
				col++
			}
		}
		if col != chess.BoardSize {
			return fmt.Errorf("rank %d has %d files: %w", chess.BoardSize-row, col, errors.ErrInvalidFEN)
		}
	}
	return nil
}

// parseSideToMove parses the side to move field. It defaults to White.
func parseSideToMove(parts []string) (chess.Colour, error) {
	if len(parts) < 2 {
		return chess.White, nil
	}
	switch parts[1] {
	case "w":
		return chess.White, nil
	case "b":
		return chess.Black, nil
	}
	return chess.White, fmt.Errorf("invalid side to move: %s: %w", parts[1], errors.ErrInvalidFEN)
}

// parseCastlingRights restores the moved flags of kings and rooks named by
// the castling availability field.
func parseCastlingRights(board *Board, parts []string) error {
	if len(parts) < 3 || parts[2] == "-" {
		return nil
	}
	for i := 0; i < len(parts[2]); i++ {
		right, ok := findCastleRight(parts[2][i])
		if !ok {
			return fmt.Errorf("invalid castling right: %c: %w", parts[2][i], errors.ErrInvalidFEN)
		}
		king := board.PieceAt(kingHome(right.colour))
		rook := board.PieceAt(right.rook)
		if !isPiece(king, chess.King, right.colour) || !isPiece(rook, chess.Rook, right.colour) {
			return fmt.Errorf("castling right %c without king and rook at home: %w", right.letter, errors.ErrInvalidFEN)
		}
		king.Restore(false, false)
		rook.Restore(false, false)
	}
	return nil
}

func findCastleRight(letter byte) (castleRight, bool) {
	for _, r := range castleRights {
		if r.letter == letter {
			return r, true
		}
	}
	return castleRight{}, false
}

func isPiece(p *chess.Piece, kind chess.Kind, colour chess.Colour) bool {
	return p != nil && p.Kind == kind && p.Colour == colour
}

// markPawns marks every pawn off its starting row as moved.
func markPawns(board *Board) {
	for _, colour := range chess.Colours {
		for _, c := range board.PiecesOf(colour) {
			if p := board.PieceAt(c); p.Kind == chess.Pawn && c.Row != colour.PawnRow() {
				p.OnMoved()
			}
		}
	}
}

// parseEnPassant turns the en passant target square into the double step
// that created it.
func parseEnPassant(board *Board, parts []string, toMove chess.Colour) error {
	if len(parts) < 4 || parts[3] == "-" {
		return nil
	}
	target, err := chess.FromAlgebraic(parts[3])
	if err != nil {
		return fmt.Errorf("invalid en passant square %q: %w", parts[3], errors.ErrInvalidFEN)
	}

	mover := toMove.Opposite()
	step := chess.Coord(mover.Forward(), 0)
	origin, landing := target.Sub(step), target.Add(step)
	if origin.Row != mover.PawnRow() || !isPiece(board.PieceAt(landing), chess.Pawn, mover) {
		return fmt.Errorf("en passant square %s does not follow a double step: %w", parts[3], errors.ErrInvalidFEN)
	}

	board.last = &MoveRecord{
		Origin:      origin,
		Destination: landing,
		Piece:       chess.Pawn,
		Colour:      mover,
	}
	return nil
}

// ToFEN converts a board to a FEN string. The board does not track the
// side to move or the clocks, so the caller supplies them.
func ToFEN(board *Board, toMove chess.Colour, halfmove, fullmove int) string {
	var sb strings.Builder

	sb.WriteString(Placement(board))
	sb.WriteByte(' ')
	if toMove == chess.White {
		sb.WriteByte('w')
	} else {
		sb.WriteByte('b')
	}
	sb.WriteByte(' ')
	writeCastlingRights(&sb, board)
	sb.WriteByte(' ')
	writeEnPassant(&sb, board)
	sb.WriteByte(' ')
	sb.WriteString(strconv.Itoa(halfmove))
	sb.WriteByte(' ')
	sb.WriteString(strconv.Itoa(fullmove))

	return sb.String()
}

// Placement returns the piece placement field of the board's FEN.
func Placement(board *Board) string {
	var sb strings.Builder
	for row := 0; row < chess.BoardSize; row++ {
		empty := 0
		for col := 0; col < chess.BoardSize; col++ {
			p := board.PieceAt(chess.Coord(row, col))
			if p == nil {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteByte(byte('0' + empty))
				empty = 0
			}
			sb.WriteByte(p.Letter())
		}
		if empty > 0 {
			sb.WriteByte(byte('0' + empty))
		}
		if row < chess.BoardSize-1 {
			sb.WriteByte('/')
		}
	}
	return sb.String()
}

// writeCastlingRights writes the castling availability to the builder.
func writeCastlingRights(sb *strings.Builder, board *Board) {
	wrote := false
	for _, r := range castleRights {
		king := board.PieceAt(kingHome(r.colour))
		rook := board.PieceAt(r.rook)
		if isPiece(king, chess.King, r.colour) && !king.Moved() &&
			isPiece(rook, chess.Rook, r.colour) && !rook.Moved() {
			sb.WriteByte(r.letter)
			wrote = true
		}
	}
	if !wrote {
		sb.WriteByte('-')
	}
}

// writeEnPassant writes the square behind a pawn that just double stepped.
func writeEnPassant(sb *strings.Builder, board *Board) {
	if board.last == nil || !board.last.DoubleStep() {
		sb.WriteByte('-')
		return
	}
	sb.WriteString(board.last.Origin.Add(board.last.Destination).Divide(2).Algebraic())
}

// ParseClocks reads the halfmove clock and fullmove number fields of a FEN
// string, defaulting to 0 and 1.
func ParseClocks(fen string) (halfmove, fullmove int, err error) {
	parts := strings.Fields(fen)
	halfmove, fullmove = 0, 1
	if len(parts) >= 5 {
		if halfmove, err = strconv.Atoi(parts[4]); err != nil || halfmove < 0 {
			return 0, 0, fmt.Errorf("invalid halfmove clock %q: %w", parts[4], errors.ErrInvalidFEN)
		}
	}
	if len(parts) >= 6 {
		if fullmove, err = strconv.Atoi(parts[5]); err != nil || fullmove < 1 {
			return 0, 0, fmt.Errorf("invalid fullmove number %q: %w", parts[5], errors.ErrInvalidFEN)
		}
	}
	return halfmove, fullmove, nil
}
