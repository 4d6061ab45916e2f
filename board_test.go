package bgrules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBoard(t *testing.T) {
	b := NewBoard()
	require.NoError(t, b.Verify())

	assert.Equal(t, Stack{PlayerA, 2}, b.Point(0))
	assert.Equal(t, Stack{PlayerA, 5}, b.Point(11))
	assert.Equal(t, Stack{PlayerA, 3}, b.Point(16))
	assert.Equal(t, Stack{PlayerA, 5}, b.Point(18))
	assert.Equal(t, Stack{PlayerB, 2}, b.Point(23))
	assert.Equal(t, Stack{PlayerB, 5}, b.Point(12))
	assert.Equal(t, Stack{PlayerB, 3}, b.Point(7))
	assert.Equal(t, Stack{PlayerB, 5}, b.Point(5))
	assert.Equal(t, Stack{}, b.Point(1))

	for _, p := range []Player{PlayerA, PlayerB} {
		assert.Zero(t, b.OnBar(p))
		assert.Zero(t, b.Off(p))
		assert.False(t, b.CanBearOff(p))
	}
	assert.Equal(t, b.Points()[18], b.Point(18))
}

func TestNewBoardFromCounts(t *testing.T) {
	var points [NumPoints]int
	points[20] = 3
	points[2] = -10
	b := NewBoardFromCounts(points, 1, 2)
	require.NoError(t, b.Verify())

	assert.Equal(t, Stack{PlayerA, 3}, b.Point(20))
	assert.Equal(t, Stack{PlayerB, 10}, b.Point(2))
	assert.Equal(t, 1, b.OnBar(PlayerA))
	assert.Equal(t, 2, b.OnBar(PlayerB))
	assert.Equal(t, 11, b.Off(PlayerA))
	assert.Equal(t, 3, b.Off(PlayerB))

	id, ok := b.NextFromBar(PlayerB)
	require.True(t, ok)
	assert.Equal(t, b.Bar[1][1], id)
}

func TestBoardVerify(t *testing.T) {
	t.Run("mixed point", func(t *testing.T) {
		b := NewBoard()
		id, ok := b.TopChecker(PlayerB, 23)
		require.True(t, ok)
		b.Checkers[b.indexOf(id)].Location = 0
		assert.ErrorIs(t, b.Verify(), ErrInvariant)
	})

	t.Run("missing checker", func(t *testing.T) {
		b := NewBoard()
		b.Checkers = b.Checkers[1:]
		assert.ErrorIs(t, b.Verify(), ErrInvariant)
	})

	t.Run("bar order", func(t *testing.T) {
		b := NewBoard()
		b.Bar[0] = []int{1}
		assert.ErrorIs(t, b.Verify(), ErrInvariant)
	})

	t.Run("borne off count", func(t *testing.T) {
		b := NewBoard()
		b.BorneOff[1] = 1
		assert.ErrorIs(t, b.Verify(), ErrInvariant)
	})
}

func TestBoardClone(t *testing.T) {
	var points [NumPoints]int
	points[3] = 2
	points[10] = -15
	b := NewBoardFromCounts(points, 1, 0)

	c := b.Clone()
	require.Equal(t, b, c)

	c.Checkers[0].Location = 4
	c.Bar[0] = nil
	assert.Equal(t, Location(3), b.Checkers[0].Location)
	assert.Equal(t, 1, b.OnBar(PlayerA))
}

func TestCanBearOff(t *testing.T) {
	var points [NumPoints]int
	points[18] = 5
	points[23] = 10
	points[0] = -5
	points[5] = -10
	b := NewBoardFromCounts(points, 0, 0)
	assert.True(t, b.CanBearOff(PlayerA))
	assert.True(t, b.CanBearOff(PlayerB))

	points[23] = 9
	assert.False(t, NewBoardFromCounts(points, 1, 0).CanBearOff(PlayerA))

	points[17] = 1
	assert.False(t, NewBoardFromCounts(points, 0, 0).CanBearOff(PlayerA))
}

func TestPipCount(t *testing.T) {
	b := NewBoard()
	assert.Equal(t, 167, PipCount(b, PlayerA))
	assert.Equal(t, 167, PipCount(b, PlayerB))

	var points [NumPoints]int
	points[23] = 14
	points[0] = -2
	b = NewBoardFromCounts(points, 1, 0)
	assert.Equal(t, 14+25, PipCount(b, PlayerA))
	assert.Equal(t, 2, PipCount(b, PlayerB))

	b = NewBoardFromCounts([NumPoints]int{}, 0, 0)
	assert.Zero(t, PipCount(b, PlayerA))
}

func TestDice(t *testing.T) {
	d := NewDice(5, 5)
	assert.True(t, d.Doubles())
	assert.Equal(t, []int{5, 5, 5, 5}, d.Allowed())
	assert.Equal(t, []int{0}, d.distinctUnused())

	d = NewDice(6, 1)
	assert.False(t, d.Doubles())
	assert.Equal(t, []int{6, 1}, d.Allowed())
	d.Used[0] = true
	assert.Equal(t, []int{1}, d.Unused())
	assert.Equal(t, []int{0}, d.UsedIndices())
	assert.False(t, d.AllUsed())
	assert.Equal(t, "(6) 1", d.String())

	assert.False(t, Dice{}.AllUsed())
	assert.Zero(t, Dice{}.Len())
}

func TestRollers(t *testing.T) {
	r := NewSequenceRoller(3, 4)
	assert.Equal(t, []int{3, 4, 3}, []int{r.Roll(), r.Roll(), r.Roll()})

	a, b := NewSeededRoller(7), NewSeededRoller(7)
	for i := 0; i < 100; i++ {
		v := a.Roll()
		require.Equal(t, v, b.Roll())
		require.True(t, v >= 1 && v <= 6)
	}

	for i := 0; i < 100; i++ {
		v := CryptoRoller{}.Roll()
		require.True(t, v >= 1 && v <= 6)
	}
}
