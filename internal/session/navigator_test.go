package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func testNavigator(answered map[int]bool) *Navigator {
	return NewNavigator([]int{1, 2, 3, 4}, func(id int) bool { return answered[id] })
}

func TestNavigatorMovement(t *testing.T) {
	n := testNavigator(nil)

	assert.Equal(t, 1, n.Current())

	n.Prev() // clamped at the first
	assert.Equal(t, 1, n.Current())

	n.Next()
	n.Next()
	assert.Equal(t, 3, n.Current())

	n.Next()
	n.Next() // clamped at the last, no wraparound
	assert.Equal(t, 4, n.Current())

	n.GoTo(2)
	assert.Equal(t, 2, n.Current())

	n.GoTo(99) // unknown id leaves position unchanged
	assert.Equal(t, 2, n.Current())
}

func TestNavigatorReviewToggle(t *testing.T) {
	n := testNavigator(nil)

	n.ToggleReview(3)
	assert.True(t, n.IsFlagged(3))

	n.ToggleReview(3)
	assert.False(t, n.IsFlagged(3))

	n.ToggleReview(99)
	assert.Empty(t, n.Flagged())
}

func TestNavigatorFlaggedInOrder(t *testing.T) {
	n := testNavigator(nil)
	n.ToggleReview(4)
	n.ToggleReview(2)

	assert.Equal(t, []int{2, 4}, n.Flagged())
}

func TestMarkStatePriority(t *testing.T) {
	answered := map[int]bool{1: true, 2: true}
	n := testNavigator(answered)

	// Current beats everything, even review + answered.
	n.ToggleReview(1)
	assert.Equal(t, MarkCurrent, n.MarkState(1))

	n.Next() // current is now 2
	// Review beats answered.
	assert.Equal(t, MarkReview, n.MarkState(1))
	assert.Equal(t, MarkCurrent, n.MarkState(2))
	assert.Equal(t, MarkUnanswered, n.MarkState(3))

	n.Next() // current is now 3
	assert.Equal(t, MarkAnswered, n.MarkState(2))
	assert.Equal(t, MarkCurrent, n.MarkState(3))
}
