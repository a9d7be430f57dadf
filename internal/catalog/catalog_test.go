package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRejectsInvalidDefinitions(t *testing.T) {
	q := []Question{{ID: 1, Type: FillInBlank, Prompt: "Q", CorrectAnswer: "x", GroupID: 1}}

	cases := []struct {
		name string
		fn   func() (*Catalog, error)
	}{
		{"missing id", func() (*Catalog, error) {
			return New("", "t", KindReading, 60, nil, q, nil, nil)
		}},
		{"bad kind", func() (*Catalog, error) {
			return New("c", "t", "speaking", 60, nil, q, nil, nil)
		}},
		{"zero duration", func() (*Catalog, error) {
			return New("c", "t", KindReading, 0, nil, q, nil, nil)
		}},
		{"no questions", func() (*Catalog, error) {
			return New("c", "t", KindReading, 60, nil, nil, nil, nil)
		}},
		{"duplicate question id", func() (*Catalog, error) {
			return New("c", "t", KindReading, 60, nil, []Question{q[0], q[0]}, nil, nil)
		}},
		{"bad question type", func() (*Catalog, error) {
			return New("c", "t", KindReading, 60, nil,
				[]Question{{ID: 1, Type: "essay", Prompt: "Q", GroupID: 1}}, nil, nil)
		}},
		{"duplicate token id", func() (*Catalog, error) {
			return New("c", "t", KindReading, 60, nil, q,
				[]TokenDef{{ID: "t1", Value: "a"}, {ID: "t1", Value: "b"}}, nil)
		}},
		{"empty token value", func() (*Catalog, error) {
			return New("c", "t", KindReading, 60, nil, q,
				[]TokenDef{{ID: "t1", Value: ""}}, nil)
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := tc.fn()
			assert.Error(t, err)
		})
	}
}

func TestCatalogLookups(t *testing.T) {
	c, err := New("c", "t", KindReading, 60,
		[]Passage{{ID: 1, Title: "P", Content: "text"}},
		[]Question{
			{ID: 5, Type: FillInBlank, Prompt: "A", CorrectAnswer: "x", GroupID: 1},
			{ID: 2, Type: FillInBlank, Prompt: "B", CorrectAnswer: "y", GroupID: 1},
			{ID: 9, Type: FillInBlank, Prompt: "C", CorrectAnswer: "z", GroupID: 2},
		}, nil, nil)
	require.NoError(t, err)

	q, ok := c.Question(2)
	require.True(t, ok)
	assert.Equal(t, "B", q.Prompt)

	_, ok = c.Question(99)
	assert.False(t, ok)
	assert.True(t, c.Has(5))
	assert.False(t, c.Has(1))

	// Authoring order, not numeric order.
	assert.Equal(t, []int{5, 2, 9}, c.Order())

	group := c.PartQuestions(1)
	require.Len(t, group, 2)
	assert.Equal(t, 5, group[0].ID)

	p, ok := c.Passage(1)
	require.True(t, ok)
	assert.Equal(t, "P", p.Title)
}

func TestBandScaleEstimate(t *testing.T) {
	bands := DefaultReadingBands()

	assert.Equal(t, 8.5, bands.Estimate(40))
	assert.Equal(t, 8.5, bands.Estimate(36))
	assert.Equal(t, 7.5, bands.Estimate(35))
	assert.Equal(t, 6.5, bands.Estimate(28))
	assert.Equal(t, 5.5, bands.Estimate(27))
	assert.Equal(t, 5.5, bands.Estimate(0))
}

func TestBandScaleNormalizedInCatalog(t *testing.T) {
	// Steps given out of order still estimate correctly once loaded.
	scrambled := BandScale{
		{MinCorrect: 0, Band: 5.5},
		{MinCorrect: 36, Band: 8.5},
		{MinCorrect: 28, Band: 6.5},
	}
	c, err := New("c", "t", KindReading, 60, nil,
		[]Question{{ID: 1, Type: FillInBlank, Prompt: "Q", CorrectAnswer: "x", GroupID: 1}},
		nil, scrambled)
	require.NoError(t, err)

	assert.Equal(t, 8.5, c.Bands.Estimate(38))
	assert.Equal(t, 6.5, c.Bands.Estimate(30))
	assert.Equal(t, 5.5, c.Bands.Estimate(10))
}

func TestSeedCatalogs(t *testing.T) {
	seeds := SeedCatalogs()
	require.Len(t, seeds, 2)

	reading := seeds[0]
	assert.Equal(t, "reading-academic-1", reading.ID)
	assert.Equal(t, KindReading, reading.Kind)
	assert.Equal(t, 60*60, reading.DurationSeconds)
	assert.Len(t, reading.Questions, 40)
	assert.Len(t, reading.Passages, 3)
	for _, q := range reading.Questions {
		assert.NotEmpty(t, q.CorrectAnswer, "question %d has no key", q.ID)
		_, ok := reading.Passage(q.GroupID)
		assert.True(t, ok, "question %d references missing passage %d", q.ID, q.GroupID)
	}

	listening := seeds[1]
	assert.Equal(t, "listening-1", listening.ID)
	assert.Equal(t, KindListening, listening.Kind)
	assert.Equal(t, 58*60, listening.DurationSeconds)
	assert.NotEmpty(t, listening.Tokens)

	// Every drag answer must be coverable by a token value.
	values := make(map[string]struct{}, len(listening.Tokens))
	for _, tok := range listening.Tokens {
		values[tok.Value] = struct{}{}
	}
	for _, q := range listening.Questions {
		if q.Type == Drag {
			_, ok := values[q.CorrectAnswer]
			assert.True(t, ok, "drag question %d has no matching token", q.ID)
		}
	}
}

func TestStore(t *testing.T) {
	seeds := SeedCatalogs()
	s := NewStore(seeds...)

	got, err := s.Get("reading-academic-1")
	require.NoError(t, err)
	assert.Equal(t, seeds[0], got)

	_, err = s.Get("missing")
	assert.ErrorIs(t, err, ErrCatalogNotFound)

	list := s.List()
	require.Len(t, list, 2)
	assert.Equal(t, "reading-academic-1", list[0].ID)

	// Replacement keeps registration order.
	replacement := *seeds[0]
	replacement.Title = "Updated"
	s.Put(&replacement)
	list = s.List()
	require.Len(t, list, 2)
	assert.Equal(t, "Updated", list[0].Title)
}
