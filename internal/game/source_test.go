package game

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lgbarn/chess-rules-go/internal/chess"
	"github.com/lgbarn/chess-rules-go/internal/testutil"
)

func humanGame(t *testing.T, fen string) *Game {
	t.Helper()
	cfg := quietConfig()
	cfg.SaveDir = t.TempDir()
	if fen == "" {
		return New(cfg)
	}
	g, err := NewFromFEN(cfg, fen)
	require.NoError(t, err)
	return g
}

func TestHumanSource_OneLineMove(t *testing.T) {
	var out bytes.Buffer
	h := NewHumanSource(strings.NewReader("e2 e4\n"), &out)

	cmd, err := h.NextMove(context.Background(), humanGame(t, ""))
	require.NoError(t, err)
	assert.Equal(t, mv("e2", "e4"), cmd)
	assert.Contains(t, out.String(), "White Pawn selected.")
}

func TestHumanSource_TwoLineMove(t *testing.T) {
	var out bytes.Buffer
	h := NewHumanSource(strings.NewReader("e5\nE7\nz9\ng1\nf3\n"), &out)

	cmd, err := h.NextMove(context.Background(), humanGame(t, ""))
	require.NoError(t, err)
	assert.Equal(t, mv("g1", "f3"), cmd)

	text := out.String()
	assert.Equal(t, 2, strings.Count(text, "Invalid piece location selected!"), text)
	assert.Contains(t, text, `Invalid square "z9"!`)
	assert.Contains(t, text, "White Knight selected.")
	assert.Contains(t, text, destinationPrompt)
}

func TestHumanSource_Forfeit(t *testing.T) {
	for _, input := range []string{"--forfeit\n", "e2\n--forfeit\n"} {
		h := NewHumanSource(strings.NewReader(input), io.Discard)
		cmd, err := h.NextMove(context.Background(), humanGame(t, ""))
		require.NoError(t, err)
		assert.Equal(t, Forfeit, cmd.Kind, "input %q", input)
	}
}

func TestHumanSource_SaveKeepsSelection(t *testing.T) {
	g := humanGame(t, "")
	h := NewHumanSource(strings.NewReader("e2\n--save mygame\ne4\n"), io.Discard)

	cmd, err := h.NextMove(context.Background(), g)
	require.NoError(t, err)
	assert.Equal(t, Command{Kind: Save, Name: "mygame"}, cmd)

	cmd, err = h.NextMove(context.Background(), g)
	require.NoError(t, err)
	assert.Equal(t, mv("e2", "e4"), cmd)
}

func TestHumanSource_SaveOverwritePrompt(t *testing.T) {
	g := humanGame(t, "")
	path := filepath.Join(g.Config().SaveDir, "old.save")
	require.NoError(t, os.WriteFile(path, []byte("{}"), 0o644))

	var out bytes.Buffer
	h := NewHumanSource(strings.NewReader("--save old\nn\n--save\n--save old\nyes\n"), &out)

	cmd, err := h.NextMove(context.Background(), g)
	require.NoError(t, err)
	assert.Equal(t, Command{Kind: Save, Name: "old"}, cmd)
	assert.Equal(t, 2, strings.Count(out.String(), "Overwrite "))
	assert.Contains(t, out.String(), "Usage: --save filename")
}

func TestHumanSource_Promotion(t *testing.T) {
	var out bytes.Buffer
	h := NewHumanSource(strings.NewReader("a7 a8\nK\nqq\nn\n"), &out)

	cmd, err := h.NextMove(context.Background(), humanGame(t, "4k3/P7/8/8/8/8/8/4K3 w - - 0 1"))
	require.NoError(t, err)
	assert.Equal(t, chess.Knight, cmd.Promotion)
	assert.Equal(t, testutil.Sq("a8"), cmd.Destination)
	assert.Equal(t, 2, strings.Count(out.String(), "Choose one of Q, R, B or N."))
}

func TestHumanSource_NoPromptForIllegalPromotion(t *testing.T) {
	// The a8 square is blocked, so the move will be rejected anyway.
	h := NewHumanSource(strings.NewReader("a7 a8\n"), io.Discard)

	cmd, err := h.NextMove(context.Background(), humanGame(t, "n3k3/P7/8/8/8/8/8/4K3 w - - 0 1"))
	require.NoError(t, err)
	assert.Equal(t, chess.NoKind, cmd.Promotion)
}

func TestHumanSource_EOF(t *testing.T) {
	h := NewHumanSource(strings.NewReader("e2\n"), io.Discard)
	_, err := h.NextMove(context.Background(), humanGame(t, ""))
	assert.Equal(t, io.ErrUnexpectedEOF, err)
}

func TestHumanSource_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	h := NewHumanSource(strings.NewReader("e2 e4\n"), io.Discard)
	_, err := h.NextMove(ctx, humanGame(t, ""))
	assert.Equal(t, context.Canceled, err)
}

func TestPlay_HumanSavesMidGame(t *testing.T) {
	g := humanGame(t, "")
	g.cfg.MaxPlies = 2
	h := NewHumanSource(strings.NewReader("e2 e4\n--save half\ne7 e5\n"), io.Discard)
	g.UseSources(h, h)

	res, err := g.Play(context.Background())
	require.NoError(t, err)
	assert.Equal(t, PlyLimit, res.Outcome)

	loaded, err := LoadFile(g.Config().SaveDir, "half", quietConfig())
	require.NoError(t, err)
	assert.Equal(t, 1, loaded.Plies())
	assert.Equal(t, chess.Black, loaded.Turn())
}
