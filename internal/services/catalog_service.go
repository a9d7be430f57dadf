package services

import (
	"context"
	"io"
	"log/slog"

	"github.com/ieltslab/practice-service/internal/catalog"
)

// CatalogSummary is the list-view projection of a catalog.
type CatalogSummary struct {
	ID              string           `json:"id"`
	Title           string           `json:"title"`
	Kind            catalog.TestKind `json:"kind"`
	DurationSeconds int              `json:"duration_seconds"`
	QuestionCount   int              `json:"question_count"`
}

// CatalogService exposes the read-only catalog store plus the spreadsheet
// import/export used by content authors.
type CatalogService interface {
	List(ctx context.Context) []CatalogSummary
	Get(ctx context.Context, id string) (*catalog.Catalog, error)
	ImportXLSX(ctx context.Context, r io.Reader) (*catalog.ImportResult, error)
	ExportXLSX(ctx context.Context, id string, w io.Writer) error
}

type catalogService struct {
	store  *catalog.Store
	logger *slog.Logger
}

func NewCatalogService(store *catalog.Store, logger *slog.Logger) CatalogService {
	return &catalogService{store: store, logger: logger}
}

func (s *catalogService) List(ctx context.Context) []CatalogSummary {
	catalogs := s.store.List()
	summaries := make([]CatalogSummary, 0, len(catalogs))
	for _, c := range catalogs {
		summaries = append(summaries, CatalogSummary{
			ID:              c.ID,
			Title:           c.Title,
			Kind:            c.Kind,
			DurationSeconds: c.DurationSeconds,
			QuestionCount:   len(c.Questions),
		})
	}
	return summaries
}

func (s *catalogService) Get(ctx context.Context, id string) (*catalog.Catalog, error) {
	return s.store.Get(id)
}

// ImportXLSX parses a workbook and registers the catalog when at least a
// usable skeleton was read. Row-level problems come back in the result, not
// as an error.
func (s *catalogService) ImportXLSX(ctx context.Context, r io.Reader) (*catalog.ImportResult, error) {
	result, err := catalog.ImportXLSX(r)
	if err != nil {
		return nil, err
	}

	s.store.Put(result.Catalog)
	s.logger.Info("catalog imported",
		"catalog_id", result.Catalog.ID,
		"accepted_rows", result.AcceptedRows,
		"rejected_rows", result.RejectedRows)
	return result, nil
}

func (s *catalogService) ExportXLSX(ctx context.Context, id string, w io.Writer) error {
	c, err := s.store.Get(id)
	if err != nil {
		return err
	}
	return catalog.ExportXLSX(c, w)
}
