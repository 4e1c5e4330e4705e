package game

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lgbarn/chess-rules-go/internal/chess"
	"github.com/lgbarn/chess-rules-go/internal/config"
	cerrors "github.com/lgbarn/chess-rules-go/internal/errors"
	"github.com/lgbarn/chess-rules-go/internal/testutil"
)

// script replays fixed commands and then fails.
type script struct {
	cmds []Command
}

func (s *script) NextMove(ctx context.Context, g *Game) (Command, error) {
	if len(s.cmds) == 0 {
		return Command{}, io.EOF
	}
	cmd := s.cmds[0]
	s.cmds = s.cmds[1:]
	return cmd, nil
}

func mv(from, to string) Command {
	return Command{Kind: Move, Origin: testutil.Sq(from), Destination: testutil.Sq(to)}
}

func quietConfig() *config.Config {
	return config.NewConfigBuilder().
		WithVerbosity(config.Silent).
		WithOutput(io.Discard).
		WithLog(io.Discard).
		Build()
}

func TestApply(t *testing.T) {
	g := New(quietConfig())

	rec, err := g.Apply(testutil.Sq("e2"), testutil.Sq("e4"))
	require.NoError(t, err)
	assert.Equal(t, "e2e4", rec.UCI())
	assert.Equal(t, chess.Black, g.Turn())
	assert.Equal(t, 1, g.Plies())
	assert.Equal(t, "rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq e3 0 1", g.FEN())

	_, err = g.Apply(testutil.Sq("g8"), testutil.Sq("f6"))
	require.NoError(t, err)
	_, err = g.Apply(testutil.Sq("g1"), testutil.Sq("f3"))
	require.NoError(t, err)
	assert.Equal(t, "rnbqkb1r/pppppppp/5n2/8/4P3/5N2/PPPP1PPP/RNBQKB1R b KQkq - 2 2", g.FEN())
}

func TestApply_Rejected(t *testing.T) {
	tests := []struct {
		name     string
		from, to string
	}{
		{"empty origin", "e4", "e5"},
		{"opponent's piece", "e7", "e5"},
		{"illegal path", "e2", "e5"},
		{"own piece on destination", "a1", "a2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := New(quietConfig())
			before := g.FEN()

			_, err := g.Apply(testutil.Sq(tt.from), testutil.Sq(tt.to))
			require.Error(t, err)
			assert.True(t, errors.Is(err, cerrors.ErrIllegalMove), "error %v is not ErrIllegalMove", err)

			var moveErr *cerrors.MoveError
			require.True(t, errors.As(err, &moveErr))
			assert.Equal(t, 1, moveErr.Ply)
			assert.Equal(t, tt.from, moveErr.Origin)

			assert.Equal(t, before, g.FEN())
			assert.Equal(t, chess.White, g.Turn())
		})
	}
}

func TestApplyPromoting(t *testing.T) {
	g, err := NewFromFEN(quietConfig(), "4k3/P7/8/8/8/8/8/4K3 w - - 5 1")
	require.NoError(t, err)

	_, err = g.ApplyPromoting(testutil.Sq("a7"), testutil.Sq("a8"), chess.King)
	require.True(t, errors.Is(err, cerrors.ErrIllegalMove), "error %v is not ErrIllegalMove", err)

	rec, err := g.ApplyPromoting(testutil.Sq("a7"), testutil.Sq("a8"), chess.Rook)
	require.NoError(t, err)
	assert.Equal(t, chess.Rook, rec.Promotion)
	assert.Equal(t, chess.Rook, rec.Piece)
	assert.Equal(t, "R3k3/8/8/8/8/8/8/4K3 b - - 0 1", g.FEN())
	testutil.AssertPiece(t, g.Board(), "a8", "R")
}

func TestPlay_KingCapture(t *testing.T) {
	g := New(quietConfig())
	g.UseSources(
		&script{cmds: []Command{mv("e2", "e4"), mv("d1", "h5"), mv("h5", "e8")}},
		&script{cmds: []Command{mv("f7", "f6"), mv("a7", "a6")}},
	)

	res, err := g.Play(context.Background())
	require.NoError(t, err)
	assert.Equal(t, KingCaptured, res.Outcome)
	assert.True(t, res.HasWinner())
	assert.Equal(t, chess.White, res.Winner)
	assert.Equal(t, 5, res.Plies)
	assert.True(t, g.Over())

	_, err = g.Apply(testutil.Sq("a6"), testutil.Sq("a5"))
	assert.True(t, errors.Is(err, cerrors.ErrGameOver), "error %v is not ErrGameOver", err)
}

func TestPlay_IllegalMoveRetried(t *testing.T) {
	var out bytes.Buffer
	cfg := quietConfig()
	cfg.Verbosity = config.Summary
	cfg.SetOutput(&out)
	cfg.MaxPlies = 2

	g := New(cfg)
	g.UseSources(
		&script{cmds: []Command{mv("e2", "e5"), mv("e2", "e4")}},
		&script{cmds: []Command{mv("e7", "e5")}},
	)

	res, err := g.Play(context.Background())
	require.NoError(t, err)
	assert.Equal(t, PlyLimit, res.Outcome)
	assert.False(t, res.HasWinner())
	assert.Contains(t, out.String(), "Invalid move!")
	assert.Contains(t, out.String(), "------ ♔ White turn ------")
	assert.Contains(t, out.String(), "Game stopped after 2 plies.")
}

func TestPlay_Forfeit(t *testing.T) {
	g := New(quietConfig())
	g.UseSources(
		&script{cmds: []Command{mv("e2", "e4")}},
		&script{cmds: []Command{{Kind: Forfeit}}},
	)

	res, err := g.Play(context.Background())
	require.NoError(t, err)
	assert.Equal(t, Forfeited, res.Outcome)
	assert.Equal(t, chess.White, res.Winner)
	assert.Equal(t, "White wins by forfeit after 1 plies", res.String())
}

func TestPlay_SourceError(t *testing.T) {
	g := New(quietConfig())
	g.UseSources(&script{}, &script{})

	res, err := g.Play(context.Background())
	assert.Equal(t, io.EOF, err)
	assert.Equal(t, InProgress, res.Outcome)
}

func TestPlay_MissingSource(t *testing.T) {
	g := New(quietConfig())
	_, err := g.Play(context.Background())
	assert.True(t, errors.Is(err, cerrors.ErrInvalidConfig), "error %v is not ErrInvalidConfig", err)
}

func TestPlay_CPUSelfPlay(t *testing.T) {
	cfg := quietConfig()
	cfg.MaxPlies = 60

	g := New(cfg)
	g.UseSources(NewCPUSource(1), NewCPUSource(2))
	assert.True(t, g.IsCPU(chess.White))

	res, err := g.Play(context.Background())
	require.NoError(t, err)
	assert.True(t, g.Over())
	assert.LessOrEqual(t, res.Plies, 60)
	assert.Contains(t, []Outcome{KingCaptured, PlyLimit, Forfeited}, res.Outcome)
}

func TestCPUSource_Deterministic(t *testing.T) {
	play := func() string {
		cfg := quietConfig()
		cfg.MaxPlies = 30
		g := New(cfg)
		g.UseSources(NewCPUSource(5), NewCPUSource(6))
		res, err := g.Play(context.Background())
		require.NoError(t, err)
		return res.FEN
	}
	assert.Equal(t, play(), play())
}

func TestCPUSource_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewCPUSource(1).NextMove(ctx, New(quietConfig()))
	assert.Equal(t, context.Canceled, err)
}
