package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAnswerStoreSetGet(t *testing.T) {
	s := NewAnswerStore([]int{1, 2, 3})

	assert.Equal(t, "", s.Get(1))
	assert.False(t, s.IsAnswered(1))

	s.Set(1, "alpha")
	assert.Equal(t, "alpha", s.Get(1))
	assert.True(t, s.IsAnswered(1))

	// Last write wins
	s.Set(1, "beta")
	assert.Equal(t, "beta", s.Get(1))
}

func TestAnswerStoreIgnoresUnknownIDs(t *testing.T) {
	s := NewAnswerStore([]int{1, 2})

	s.Set(99, "ghost")
	assert.Equal(t, "", s.Get(99))
	assert.Equal(t, 0, s.AnsweredCount())
}

func TestAnswerStoreSnapshotOrder(t *testing.T) {
	s := NewAnswerStore([]int{3, 1, 2})
	s.Set(2, "two")
	s.Set(3, "three")

	snap := s.Snapshot()
	assert.Equal(t, []AnswerEntry{
		{QuestionID: 3, Value: "three"},
		{QuestionID: 1, Value: ""},
		{QuestionID: 2, Value: "two"},
	}, snap)
}

func TestAnswerStoreClearViaEmptyValue(t *testing.T) {
	s := NewAnswerStore([]int{1})
	s.Set(1, "kept")
	s.Set(1, "")

	assert.False(t, s.IsAnswered(1))
	assert.Equal(t, 0, s.AnsweredCount())
}

func TestAnswerStoreValuesOmitsEmpty(t *testing.T) {
	s := NewAnswerStore([]int{1, 2})
	s.Set(1, "kept")

	values := s.Values()
	assert.Equal(t, map[int]string{1: "kept"}, values)
}
