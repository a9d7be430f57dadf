package scoring

import (
	"math"
	"strings"

	"github.com/ieltslab/practice-service/internal/catalog"
)

// Result is the advisory score computed from a frozen answer set. It is
// derived data: recomputing from the same inputs always yields the same
// Result.
type Result struct {
	CorrectCount    int     `json:"correct_count"`
	TotalCount      int     `json:"total_count"`
	AccuracyPercent float64 `json:"accuracy_percent"`
	BandEstimate    float64 `json:"band_estimate"`
}

// IsCorrect compares a response against the question key. The match is
// case-insensitive and exact after trimming surrounding whitespace; an empty
// response is always incorrect.
func IsCorrect(q catalog.Question, answer string) bool {
	a := strings.TrimSpace(answer)
	if a == "" {
		return false
	}
	return strings.EqualFold(a, strings.TrimSpace(q.CorrectAnswer))
}

// Score grades every catalog question against the given responses.
// Unanswered questions count as incorrect.
func Score(c *catalog.Catalog, answers map[int]string) Result {
	correct := 0
	for _, q := range c.Questions {
		if IsCorrect(q, answers[q.ID]) {
			correct++
		}
	}

	total := len(c.Questions)
	accuracy := 0.0
	if total > 0 {
		accuracy = round1(float64(correct) / float64(total) * 100)
	}

	return Result{
		CorrectCount:    correct,
		TotalCount:      total,
		AccuracyPercent: accuracy,
		BandEstimate:    c.Bands.Estimate(correct),
	}
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
