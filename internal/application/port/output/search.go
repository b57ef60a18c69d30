package output

import (
	"context"

	"marketing-crew/internal/domain/entity"
)

type SearchPort interface {
	Search(ctx context.Context, query string, limit int) ([]entity.SearchResult, error)
}

// ScrapePort returns the visible text of a page, one block per line.
type ScrapePort interface {
	Scrape(ctx context.Context, url string) (string, error)
}
