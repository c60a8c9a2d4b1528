package catalog

import "context"

// Repository loads and stores the distance table outside the process
type Repository interface {
	// Load reads the full catalog; an empty store yields an empty catalog
	Load(ctx context.Context) (*DistanceCatalog, error)

	// Save upserts every body and distance of the catalog
	Save(ctx context.Context, c *DistanceCatalog) error

	// Count returns the number of stored bodies and distances
	Count(ctx context.Context) (bodies int64, distances int64, err error)
}
