package explain

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubGenerator struct {
	mu    sync.Mutex
	calls []int
	fail  map[int]bool
	delay time.Duration
}

func (g *stubGenerator) Generate(ctx context.Context, req Request) (Explanation, error) {
	g.mu.Lock()
	g.calls = append(g.calls, req.QuestionID)
	g.mu.Unlock()

	if g.delay > 0 {
		select {
		case <-time.After(g.delay):
		case <-ctx.Done():
			return Explanation{}, ctx.Err()
		}
	}
	if g.fail[req.QuestionID] {
		return Explanation{}, errors.New("model unavailable")
	}
	return Explanation{Explanation: "generated"}, nil
}

func testItems(ids ...int) []Item {
	items := make([]Item, 0, len(ids))
	for _, id := range ids {
		items = append(items, Item{
			CatalogID: "cat-1",
			Request:   Request{QuestionID: id, CorrectAnswer: "x", UserAnswer: "y"},
		})
	}
	return items
}

func TestPipelineDeliversInOrder(t *testing.T) {
	gen := &stubGenerator{}
	p := NewPipeline(gen, nil, slog.Default(), time.Second)

	var delivered []int
	p.Run(context.Background(), testItems(3, 1, 2), func(id int, ex Explanation) {
		delivered = append(delivered, id)
		assert.Equal(t, "generated", ex.Explanation)
	})

	assert.Equal(t, []int{3, 1, 2}, delivered)
	assert.Equal(t, []int{3, 1, 2}, gen.calls)
}

func TestPipelineFailureIsIsolatedToItsQuestion(t *testing.T) {
	gen := &stubGenerator{fail: map[int]bool{2: true}}
	p := NewPipeline(gen, nil, slog.Default(), time.Second)

	results := make(map[int]Explanation)
	p.Run(context.Background(), testItems(1, 2, 3), func(id int, ex Explanation) {
		results[id] = ex
	})

	require.Len(t, results, 3)
	assert.Equal(t, "generated", results[1].Explanation)
	assert.Equal(t, "generated", results[3].Explanation)
	// The failed item got non-empty fallback content instead of a hole.
	assert.NotEmpty(t, results[2].Explanation)
	assert.NotEmpty(t, results[2].Keywords)
}

func TestPipelineTimeoutFallsBack(t *testing.T) {
	gen := &stubGenerator{delay: 200 * time.Millisecond}
	p := NewPipeline(gen, nil, slog.Default(), 10*time.Millisecond)

	var got Explanation
	p.Run(context.Background(), testItems(1), func(id int, ex Explanation) {
		got = ex
	})

	assert.NotEmpty(t, got.Explanation)
	assert.Contains(t, got.Explanation, "For Question 1")
}

func TestPipelineStopsOnCancelledContext(t *testing.T) {
	gen := &stubGenerator{}
	p := NewPipeline(gen, nil, slog.Default(), time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	delivered := 0
	p.Run(ctx, testItems(1, 2), func(int, Explanation) { delivered++ })
	assert.Zero(t, delivered)
}

func TestFallbackIsAlwaysNonEmpty(t *testing.T) {
	ex := Fallback(Request{QuestionID: 7, CorrectAnswer: "TRUE"})
	assert.Contains(t, ex.Explanation, "For Question 7")
	assert.NotEmpty(t, ex.Keywords)
	assert.NotEmpty(t, ex.Reasoning)
	assert.NotEmpty(t, ex.KeySentence)
}
