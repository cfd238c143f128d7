package engine

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/dm/filtro-go/internal/client"
	"github.com/dm/filtro-go/internal/model"
)

// FetchAll queries every source concurrently and merges the rows into one
// catalog. If any source fails, FetchAll returns the first error and no
// catalog. Records keep the order of the sources argument, then each
// source's own row order, so classification output is stable across loads.
func FetchAll(ctx context.Context, sources ...client.CatalogSource) (*model.Catalog, error) {
	if len(sources) == 0 {
		return nil, fmt.Errorf("FetchAll: no catalog sources configured")
	}

	results := make([][]client.FilterRow, len(sources))
	g, gctx := errgroup.WithContext(ctx)
	for i, src := range sources {
		g.Go(func() error {
			rows, err := src.GetFilters(gctx)
			if err != nil {
				return fmt.Errorf("%s: %w", src.Name(), err)
			}
			results[i] = rows
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	cat := &model.Catalog{
		Filters:      []model.FilterRecord{},
		Issues:       []model.RowIssue{},
		SourceCounts: make(map[string]int, len(sources)),
		FetchedAt:    time.Now(),
	}
	for i, src := range sources {
		records, issues := BuildCatalog(src.Name(), results[i])
		cat.Filters = append(cat.Filters, records...)
		cat.Issues = append(cat.Issues, issues...)
		cat.SourceCounts[src.Name()] += len(records)
	}
	return cat, nil
}
