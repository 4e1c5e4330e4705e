package game

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/lgbarn/chess-rules-go/internal/chess"
	"github.com/lgbarn/chess-rules-go/internal/config"
	"github.com/lgbarn/chess-rules-go/internal/engine"
	"github.com/lgbarn/chess-rules-go/internal/errors"
)

// SaveSuffix is appended to save names.
const SaveSuffix = ".save"

const saveVersion = 1

// SavedGame is the on-disk form of a game.
type SavedGame struct {
	Version  int                 `json:"version"`
	StartFEN string              `json:"start_fen"`
	Board    engine.BoardState   `json:"board"`
	Turn     chess.Colour        `json:"turn"`
	WhiteCPU bool                `json:"white_cpu"`
	BlackCPU bool                `json:"black_cpu"`
	History  []engine.MoveRecord `json:"history"`
	Halfmove int                 `json:"halfmove"`
	Fullmove int                 `json:"fullmove"`
	Forfeit  bool                `json:"forfeit,omitempty"`
}

// SaveGame writes g as indented JSON.
func SaveGame(w io.Writer, g *Game) error {
	sg := SavedGame{
		Version:  saveVersion,
		StartFEN: g.startFEN,
		Board:    g.board.State(),
		Turn:     g.turn,
		WhiteCPU: g.IsCPU(chess.White),
		BlackCPU: g.IsCPU(chess.Black),
		History:  g.History(),
		Halfmove: g.halfmove,
		Fullmove: g.fullmove,
		Forfeit:  g.forfeit,
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(&sg)
}

// LoadGame reads a game written by SaveGame. The players recorded in the
// save are copied into cfg so the caller can rebuild the move sources.
func LoadGame(r io.Reader, cfg *config.Config) (*Game, error) {
	var sg SavedGame
	if err := json.NewDecoder(r).Decode(&sg); err != nil {
		return nil, fmt.Errorf("%w: %v", errors.ErrInvalidSave, err)
	}
	if sg.Version != saveVersion {
		return nil, fmt.Errorf("%w: unsupported version %d", errors.ErrInvalidSave, sg.Version)
	}
	if sg.Turn != chess.White && sg.Turn != chess.Black {
		return nil, fmt.Errorf("%w: bad turn %d", errors.ErrInvalidSave, int(sg.Turn))
	}
	if sg.Halfmove < 0 || sg.Fullmove < 1 {
		return nil, fmt.Errorf("%w: bad clocks %d %d", errors.ErrInvalidSave, sg.Halfmove, sg.Fullmove)
	}
	board, err := engine.NewBoardFromState(sg.Board)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errors.ErrInvalidSave, err)
	}
	if sg.StartFEN == "" {
		sg.StartFEN = engine.InitialFEN
	}

	cfg.WhiteCPU, cfg.BlackCPU = sg.WhiteCPU, sg.BlackCPU
	return &Game{
		cfg:      cfg,
		log:      cfg.Logger(),
		board:    board,
		startFEN: sg.StartFEN,
		turn:     sg.Turn,
		history:  sg.History,
		halfmove: sg.Halfmove,
		fullmove: sg.Fullmove,
		forfeit:  sg.Forfeit,
	}, nil
}

// SavePath returns dir/name.save. The name must be a plain file name.
func SavePath(dir, name string) (string, error) {
	name = strings.TrimSuffix(name, SaveSuffix)
	if name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return "", fmt.Errorf("%w: bad save name %q", errors.ErrInvalidSave, name)
	}
	return filepath.Join(dir, name+SaveSuffix), nil
}

// SaveFile writes g to dir/name.save, replacing any existing file, and
// returns the path written.
func SaveFile(dir, name string, g *Game) (string, error) {
	path, err := SavePath(dir, name)
	if err != nil {
		return "", err
	}
	f, err := os.Create(path)
	if err != nil {
		return "", errors.Wrap(err, "create save file")
	}
	if err := SaveGame(f, g); err != nil {
		f.Close()
		return "", errors.Wrap(err, "write save file")
	}
	return path, errors.Wrap(f.Close(), "close save file")
}

// LoadFile reads dir/name.save.
func LoadFile(dir, name string, cfg *config.Config) (*Game, error) {
	path, err := SavePath(dir, name)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "open save file")
	}
	defer f.Close()
	return LoadGame(f, cfg)
}
