// Package fetch runs a single fetch-and-merge cycle: one outbound call to
// the content source, then an idempotent upsert of every candidate record.
package fetch

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/lain-corp/lain-tv/app/database"
	"github.com/lain-corp/lain-tv/app/metrics"
	"github.com/lain-corp/lain-tv/app/source"
)

// Pipeline is safely re-entrant: each Run is a self-contained unit of work
// with no shared mutable state beyond the video repository itself.
type Pipeline struct {
	source source.Source
	videos database.VideoRepository
}

func NewPipeline(src source.Source, videos database.VideoRepository) *Pipeline {
	return &Pipeline{
		source: src,
		videos: videos,
	}
}

// Run performs one fetch cycle and returns the number of candidate records
// written. Upserts are independent, not a batch transaction: a mid-batch
// failure leaves whatever was already written in place.
func (p *Pipeline) Run(ctx context.Context) (int, error) {
	candidates, err := p.source.Fetch(ctx)
	if err != nil {
		return 0, err
	}

	count := 0
	for i := range candidates {
		if err := p.videos.UpsertVideo(&candidates[i]); err != nil {
			return count, fmt.Errorf("failed to store candidate %q: %w", candidates[i].ID, err)
		}
		count++
	}

	metrics.VideosStoredTotal.Add(float64(count))
	slog.Debug("Fetch cycle stored candidates", "count", count)

	return count, nil
}
