package service

import (
	"context"
	"encoding/json"

	"github.com/plateful/backend/internal/types"
)

// UpstreamAPI is the surface of the external recipe API the rest of the
// application depends on. Tests substitute fakes for it.
type UpstreamAPI interface {
	Search(ctx context.Context, p types.SearchParams) ([]types.Recipe, error)
	Trending(ctx context.Context, number int, diet, cuisine string) ([]types.Recipe, error)
	Details(ctx context.Context, id int64) (*types.Recipe, error)
	Similar(ctx context.Context, id int64, number int) ([]types.Recipe, error)
	PriceBreakdown(ctx context.Context, id int64) (json.RawMessage, error)
}

var _ UpstreamAPI = (*SpoonacularClient)(nil)
