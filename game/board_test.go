package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGeneratorMapsDraws(t *testing.T) {
	g := NewGeneratorFrom(&seqSource{vals: []int{0, 1, 2, 0, 1, 2}})
	assert.Equal(t, column(Blank, PlusOne, MinusOne, Blank, PlusOne, MinusOne), g.Column(false))
	assert.Equal(t, column(Blank, PlusTwo, MinusOne, Blank, PlusTwo, MinusOne), g.Column(true))
}

func TestGeneratorSeedIsReproducible(t *testing.T) {
	a := NewGenerator(42).Board(false)
	b := NewGenerator(42).Board(false)
	assert.Equal(t, a, b)
	for r := 0; r < BoardSize; r++ {
		for c := 0; c < BoardSize; c++ {
			assert.NotEqual(t, PlusTwo, a[r][c])
		}
	}
}

func TestUpgradeBoardCountsConversions(t *testing.T) {
	var b Board
	b.SetColumn(0, column(PlusOne, MinusOne, PlusOne))
	b.SetColumn(4, column(PlusTwo, PlusOne))
	assert.Equal(t, 3, UpgradeBoard(&b))
	assert.Equal(t, 0, UpgradeBoard(&b))
	assert.Equal(t, column(PlusTwo, MinusOne, PlusTwo), b.Column(0))
}

func TestColumnDelta(t *testing.T) {
	m, o := ColumnDelta(column(PlusOne, PlusTwo, MinusOne, Blank, MinusOne, PlusOne))
	assert.Equal(t, 4, m)
	assert.Equal(t, -2, o)
	assert.Equal(t, 2, ColumnValue(column(PlusOne, PlusTwo, MinusOne, Blank, MinusOne, PlusOne)))
}

func TestBoardString(t *testing.T) {
	var b Board
	b[0][0], b[0][1], b[0][2] = PlusOne, MinusOne, PlusTwo
	assert.Equal(t, "+1 -1 +2 . . .\n", b.String()[:len("+1 -1 +2 . . .\n")])
}

func TestBoardReadableFromStateCopy(t *testing.T) {
	e, _ := newTestEngine(ModeMulti)
	assert.Equal(t, column(PlusOne, PlusOne, PlusOne, PlusOne, PlusOne, PlusOne), e.State().Board.Column(0))
	assert.NotEmpty(t, e.State().Board.String())
}
