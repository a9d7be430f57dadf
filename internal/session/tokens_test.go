package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ieltslab/practice-service/internal/catalog"
)

func testBoard() *TokenBoard {
	return NewTokenBoard([]catalog.TokenDef{
		{ID: "t1", Value: "museum"},
		{ID: "t2", Value: "library"},
		{ID: "t3", Value: "garden"},
	})
}

func TestAssignUnknownToken(t *testing.T) {
	b := testBoard()
	_, err := b.Assign("nope", 16)
	assert.ErrorIs(t, err, ErrTokenNotFound)
}

func TestAssignMovesTokenBetweenSlots(t *testing.T) {
	b := testBoard()

	res, err := b.Assign("t1", 16)
	require.NoError(t, err)
	assert.Equal(t, "museum", res.Value)
	assert.Empty(t, res.VacatedSlots)

	// Moving the same token to another slot vacates the old one.
	res, err = b.Assign("t1", 17)
	require.NoError(t, err)
	assert.Equal(t, []int{16}, res.VacatedSlots)

	_, held := b.SlotToken(16)
	assert.False(t, held)
	tok, held := b.SlotToken(17)
	require.True(t, held)
	assert.Equal(t, "t1", tok.ID)
}

func TestAssignReleasesDisplacedToken(t *testing.T) {
	b := testBoard()

	_, err := b.Assign("t1", 16)
	require.NoError(t, err)
	_, err = b.Assign("t2", 16)
	require.NoError(t, err)

	// t1 must be draggable again: a token is never stuck "used" while
	// occupying no slot.
	assert.False(t, b.IsAssigned("t1"))
	assert.True(t, b.IsAssigned("t2"))

	available := b.Available()
	ids := make([]string, 0, len(available))
	for _, tok := range available {
		ids = append(ids, tok.ID)
	}
	assert.ElementsMatch(t, []string{"t1", "t3"}, ids)
}

func TestAssignSameSlotIsNoOp(t *testing.T) {
	b := testBoard()

	_, err := b.Assign("t1", 16)
	require.NoError(t, err)
	res, err := b.Assign("t1", 16)
	require.NoError(t, err)
	assert.Empty(t, res.VacatedSlots)
	assert.True(t, b.IsAssigned("t1"))
}

func TestUnassign(t *testing.T) {
	b := testBoard()

	_, err := b.Unassign("t1")
	assert.ErrorIs(t, err, ErrTokenNotAssigned)

	_, err = b.Assign("t1", 16)
	require.NoError(t, err)

	slot, err := b.Unassign("t1")
	require.NoError(t, err)
	assert.Equal(t, 16, slot)
	assert.False(t, b.IsAssigned("t1"))

	_, err = b.Unassign("missing")
	assert.ErrorIs(t, err, ErrTokenNotFound)
}

func TestTokensPreservePoolOrder(t *testing.T) {
	b := testBoard()
	_, err := b.Assign("t2", 20)
	require.NoError(t, err)

	tokens := b.Tokens()
	require.Len(t, tokens, 3)
	assert.Equal(t, "t1", tokens[0].ID)
	assert.Equal(t, "t2", tokens[1].ID)
	assert.True(t, tokens[1].Assigned)
	assert.Equal(t, "t3", tokens[2].ID)
}
