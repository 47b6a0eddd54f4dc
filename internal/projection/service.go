package projection

import (
	"context"
	"time"

	"github.com/aevon-lab/project-tally/internal/engine"
	"github.com/shopspring/decimal"
)

// Service implements the rating read surface over the engine's read path.
type Service struct {
	reader *engine.Reader
}

// NewService creates the projection service.
func NewService(reader *engine.Reader) *Service {
	if reader == nil {
		panic("projection: reader must not be nil")
	}
	return &Service{reader: reader}
}

// RatingResponse is the public shape of one item's aggregate rating.
type RatingResponse struct {
	ItemID       string          `json:"item_id"`
	SampleCount  int64           `json:"sample_count"`
	AverageScore decimal.Decimal `json:"average_score"`
	Version      int64           `json:"version"`
	AsOf         time.Time       `json:"as_of"`
	Stale        bool            `json:"stale"`
}

// GetRating returns the item's rating aggregate with its freshness markers.
func (s *Service) GetRating(ctx context.Context, itemID string) (*RatingResponse, error) {
	view, err := s.reader.GetAggregate(ctx, itemID)
	if err != nil {
		return nil, err
	}
	return &RatingResponse{
		ItemID:       view.ItemID,
		SampleCount:  view.SampleCount,
		AverageScore: view.AverageScore,
		Version:      view.Version,
		AsOf:         view.AsOf,
		Stale:        view.Stale,
	}, nil
}
