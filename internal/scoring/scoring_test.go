package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ieltslab/practice-service/internal/catalog"
)

func testCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	c, err := catalog.New("cat-1", "Scoring fixture", catalog.KindReading, 600, nil,
		[]catalog.Question{
			{ID: 1, Type: catalog.FillInBlank, Prompt: "Q1", CorrectAnswer: "harbour", GroupID: 1},
			{ID: 2, Type: catalog.MultipleChoice, Prompt: "Q2", Options: []string{"A", "B", "C"}, CorrectAnswer: "B", GroupID: 1},
			{ID: 3, Type: catalog.TrueFalseNotGiven, Prompt: "Q3", CorrectAnswer: "NOT GIVEN", GroupID: 1},
		}, nil, catalog.DefaultReadingBands())
	require.NoError(t, err)
	return c
}

func TestScoreCountsAndAccuracy(t *testing.T) {
	c := testCatalog(t)

	result := Score(c, map[int]string{
		1: "harbour",
		2: "B",
		3: "TRUE",
	})

	assert.Equal(t, 2, result.CorrectCount)
	assert.Equal(t, 3, result.TotalCount)
	assert.Equal(t, 66.7, result.AccuracyPercent)
}

func TestScoreIsCaseAndWhitespaceInsensitive(t *testing.T) {
	c := testCatalog(t)

	result := Score(c, map[int]string{
		1: "  Harbour ",
		2: "b",
		3: "not given",
	})

	assert.Equal(t, 3, result.CorrectCount)
	assert.Equal(t, 100.0, result.AccuracyPercent)
}

func TestScoreUnansweredCountsIncorrect(t *testing.T) {
	c := testCatalog(t)

	result := Score(c, map[int]string{1: "harbour"})
	assert.Equal(t, 1, result.CorrectCount)

	empty := Score(c, nil)
	assert.Equal(t, 0, empty.CorrectCount)
	assert.Equal(t, 0.0, empty.AccuracyPercent)
}

func TestScoreIsDeterministic(t *testing.T) {
	c := testCatalog(t)
	answers := map[int]string{1: "harbour", 2: "A"}

	first := Score(c, answers)
	second := Score(c, answers)
	assert.Equal(t, first, second)
}

func TestIsCorrectEmptyAnswer(t *testing.T) {
	q := catalog.Question{ID: 1, Type: catalog.FillInBlank, CorrectAnswer: "round"}

	assert.False(t, IsCorrect(q, ""))
	assert.False(t, IsCorrect(q, "   "))
	assert.True(t, IsCorrect(q, "Round"))
}

func TestScoreBandEstimate(t *testing.T) {
	questions := make([]catalog.Question, 40)
	answers := make(map[int]string, 40)
	for i := range questions {
		questions[i] = catalog.Question{
			ID:            i + 1,
			Type:          catalog.FillInBlank,
			Prompt:        "Q",
			CorrectAnswer: "x",
			GroupID:       1,
		}
	}
	c, err := catalog.New("cat-40", "Band fixture", catalog.KindReading, 3600, nil,
		questions, nil, catalog.DefaultReadingBands())
	require.NoError(t, err)

	cases := []struct {
		correct int
		band    float64
	}{
		{40, 8.5},
		{36, 8.5},
		{35, 7.5},
		{32, 7.5},
		{28, 6.5},
		{27, 5.5},
		{0, 5.5},
	}
	for _, tc := range cases {
		for id := range answers {
			delete(answers, id)
		}
		for i := 0; i < tc.correct; i++ {
			answers[i+1] = "x"
		}
		result := Score(c, answers)
		assert.Equal(t, tc.band, result.BandEstimate, "correct=%d", tc.correct)
	}
}
