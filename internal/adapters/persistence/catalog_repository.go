package persistence

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/andrescamacho/starroute-go/internal/domain/catalog"
)

// GormCatalogRepository implements catalog.Repository using GORM
type GormCatalogRepository struct {
	db *gorm.DB
}

// NewGormCatalogRepository creates a new GORM-based catalog repository
func NewGormCatalogRepository(db *gorm.DB) *GormCatalogRepository {
	return &GormCatalogRepository{db: db}
}

var _ catalog.Repository = (*GormCatalogRepository)(nil)

// Load reads bodies in listing order and every distance, then validates
// them through the catalog constructor
func (r *GormCatalogRepository) Load(ctx context.Context) (*catalog.DistanceCatalog, error) {
	var bodies []BodyModel
	if err := r.db.WithContext(ctx).Order("position ASC, id ASC").Find(&bodies).Error; err != nil {
		return nil, fmt.Errorf("failed to load bodies: %w", err)
	}

	var distances []DistanceModel
	if err := r.db.WithContext(ctx).Order("body_a ASC, body_b ASC").Find(&distances).Error; err != nil {
		return nil, fmt.Errorf("failed to load distances: %w", err)
	}

	ids := make([]string, len(bodies))
	for i, b := range bodies {
		ids[i] = b.ID
	}
	entries := make([]catalog.Distance, len(distances))
	for i, d := range distances {
		entries[i] = catalog.Distance{Pair: catalog.NewPair(d.BodyA, d.BodyB), Value: d.Value}
	}

	c, err := catalog.New(ids, entries)
	if err != nil {
		return nil, fmt.Errorf("stored catalog is invalid: %w", err)
	}
	return c, nil
}

// Save upserts the whole catalog in one transaction
func (r *GormCatalogRepository) Save(ctx context.Context, c *catalog.DistanceCatalog) error {
	now := time.Now()

	bodies := c.Bodies()
	bodyModels := make([]BodyModel, len(bodies))
	for i, b := range bodies {
		bodyModels[i] = BodyModel{ID: b.ID, Kind: string(b.Kind), Position: i, CreatedAt: now}
	}

	distances := c.Distances()
	distanceModels := make([]DistanceModel, len(distances))
	for i, d := range distances {
		distanceModels[i] = DistanceModel{BodyA: d.A, BodyB: d.B, Value: d.Value, UpdatedAt: now}
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if len(bodyModels) > 0 {
			err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "id"}},
				DoUpdates: clause.AssignmentColumns([]string{"kind", "position"}),
			}).Create(&bodyModels).Error
			if err != nil {
				return fmt.Errorf("failed to save bodies: %w", err)
			}
		}

		if len(distanceModels) > 0 {
			err := tx.Omit(clause.Associations).Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "body_a"}, {Name: "body_b"}},
				DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
			}).Create(&distanceModels).Error
			if err != nil {
				return fmt.Errorf("failed to save distances: %w", err)
			}
		}
		return nil
	})
}

// Count returns the number of stored bodies and distances
func (r *GormCatalogRepository) Count(ctx context.Context) (int64, int64, error) {
	var bodies, distances int64
	if err := r.db.WithContext(ctx).Model(&BodyModel{}).Count(&bodies).Error; err != nil {
		return 0, 0, fmt.Errorf("failed to count bodies: %w", err)
	}
	if err := r.db.WithContext(ctx).Model(&DistanceModel{}).Count(&distances).Error; err != nil {
		return 0, 0, fmt.Errorf("failed to count distances: %w", err)
	}
	return bodies, distances, nil
}

// SeedIfEmpty saves c when the bodies table is empty and reports whether it
// did
func (r *GormCatalogRepository) SeedIfEmpty(ctx context.Context, c *catalog.DistanceCatalog) (bool, error) {
	bodies, _, err := r.Count(ctx)
	if err != nil {
		return false, err
	}
	if bodies > 0 {
		return false, nil
	}
	if err := r.Save(ctx, c); err != nil {
		return false, err
	}
	return true, nil
}
