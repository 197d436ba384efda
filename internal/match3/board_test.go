package match3

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// noRunNoMove is a 5x5 board with no runs and no legal swap.
const noRunNoMove = "RGBYP GBYPR BYPRG YPRGB PRGBY"

func TestParseBoard(t *testing.T) {
	b, err := ParseBoard("RGB bgr GRB")
	require.NoError(t, err)
	assert.Equal(t, 3, b.Size())
	assert.Equal(t, Red, b.Get(Pos(0, 0)))
	assert.Equal(t, Blue, b.Get(Pos(1, 0)))
	assert.Equal(t, Green, b.Get(Pos(2, 0)))
	assert.Equal(t, "RGB BGR GRB", b.String())
}

func TestParseBoardErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"not square", "RGB BGR"},
		{"ragged", "RGB BG GRB"},
		{"unknown token", "RGX BGR GRB"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseBoard(tt.input)
			assert.ErrorIs(t, err, ErrInvalidRules)
		})
	}
}

func TestBoardOutOfBoundsPanics(t *testing.T) {
	b := MustParseBoard(noRunNoMove)

	defer func() {
		r := recover()
		require.NotNil(t, r)
		err, ok := r.(error)
		require.True(t, ok)
		var pe *PreconditionError
		assert.True(t, errors.As(err, &pe))
		assert.ErrorIs(t, err, ErrOutOfBounds)
	}()
	b.Get(Pos(5, 0))
}

func TestBoardSwapAndClone(t *testing.T) {
	b := MustParseBoard(noRunNoMove)
	c := b.Clone()

	b.Swap(Pos(0, 0), Pos(0, 1))
	assert.Equal(t, Green, b.Get(Pos(0, 0)))
	assert.Equal(t, Red, b.Get(Pos(0, 1)))

	assert.Equal(t, Red, c.Get(Pos(0, 0)), "clone must not share cells")
	assert.False(t, b.Equal(c))

	b.Swap(Pos(0, 0), Pos(0, 1))
	assert.True(t, b.Equal(c))
}

func TestBoardTokens(t *testing.T) {
	b := MustParseBoard("RGB BGR GRB")
	rows := b.Tokens()
	require.Len(t, rows, 3)
	assert.Equal(t, []Token{Red, Green, Blue}, rows[0])

	rows[0][0] = Purple
	assert.Equal(t, Red, b.Get(Pos(0, 0)))
}

func TestAdjacent(t *testing.T) {
	tests := []struct {
		a, b Position
		want bool
	}{
		{Pos(0, 0), Pos(0, 1), true},
		{Pos(0, 0), Pos(1, 0), true},
		{Pos(2, 2), Pos(1, 2), true},
		{Pos(0, 0), Pos(1, 1), false},
		{Pos(0, 0), Pos(0, 0), false},
		{Pos(0, 0), Pos(0, 2), false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Adjacent(tt.a, tt.b), "%v %v", tt.a, tt.b)
	}
}

func TestDifficultyParameters(t *testing.T) {
	tests := []struct {
		d     Difficulty
		size  int
		limit int
	}{
		{Easy, 5, 120},
		{Medium, 7, 180},
		{Hard, 9, 240},
	}

	for _, tt := range tests {
		t.Run(tt.d.String(), func(t *testing.T) {
			assert.Equal(t, tt.size, tt.d.GridSize())
			assert.Equal(t, tt.limit, tt.d.TimeLimit())

			parsed, err := ParseDifficulty(tt.d.String())
			require.NoError(t, err)
			assert.Equal(t, tt.d, parsed)
		})
	}

	_, err := ParseDifficulty("extreme")
	assert.Error(t, err)
}
