package explain

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/ieltslab/practice-service/internal/cache"
)

const (
	defaultRequestTimeout = 10 * time.Second
	cacheTTL              = 24 * time.Hour
)

// Pipeline turns a batch of answered questions into explanations. Requests
// are issued sequentially — one in flight at a time — so a slow collaborator
// bounds its own load and a failure stays isolated to its question: the
// failed item gets Fallback content and the batch continues. The pipeline
// runs strictly after submission and never feeds errors back into the
// session state machine.
type Pipeline struct {
	gen     Generator
	cache   cache.CacheService // optional
	logger  *slog.Logger
	timeout time.Duration
}

// NewPipeline creates a pipeline. cacheSvc may be nil.
func NewPipeline(gen Generator, cacheSvc cache.CacheService, logger *slog.Logger, timeout time.Duration) *Pipeline {
	if timeout <= 0 {
		timeout = defaultRequestTimeout
	}
	return &Pipeline{
		gen:     gen,
		cache:   cacheSvc,
		logger:  logger,
		timeout: timeout,
	}
}

// Item is one answered question awaiting explanation.
type Item struct {
	CatalogID string
	Request   Request
}

// Run processes every item in order, delivering each explanation through
// sink as soon as it is ready. The sink is called from the pipeline
// goroutine only, never concurrently.
func (p *Pipeline) Run(ctx context.Context, items []Item, sink func(questionID int, ex Explanation)) {
	for _, item := range items {
		if ctx.Err() != nil {
			return
		}
		sink(item.Request.QuestionID, p.explain(ctx, item))
	}
}

func (p *Pipeline) explain(ctx context.Context, item Item) Explanation {
	key := cacheKey(item)

	if p.cache != nil {
		var cached Explanation
		if err := p.cache.Get(ctx, key, &cached); err == nil {
			return cached
		}
	}

	reqCtx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	ex, err := p.gen.Generate(reqCtx, item.Request)
	if err != nil {
		p.logger.Warn("explanation generation failed, substituting fallback",
			"catalog_id", item.CatalogID,
			"question_id", item.Request.QuestionID,
			"error", err)
		return Fallback(item.Request)
	}

	if p.cache != nil {
		if err := p.cache.Set(ctx, key, ex, cacheTTL); err != nil {
			p.logger.Warn("failed to cache explanation",
				"question_id", item.Request.QuestionID,
				"error", err)
		}
	}
	return ex
}

func cacheKey(item Item) string {
	return fmt.Sprintf("explain:%s:%d:%s",
		item.CatalogID,
		item.Request.QuestionID,
		strings.ToLower(strings.TrimSpace(item.Request.UserAnswer)))
}
