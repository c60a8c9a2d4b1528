package helpers

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/andrescamacho/starroute-go/internal/adapters/persistence"
	"github.com/andrescamacho/starroute-go/internal/domain/catalog"
	"github.com/andrescamacho/starroute-go/internal/infrastructure/database"
)

// NewTestDB returns an empty, migrated in-memory catalog database that is
// closed when the test ends
func NewTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.OpenMemory()
	require.NoError(t, err, "failed to create test database")
	t.Cleanup(func() { _ = database.Close(db) })
	return db
}

// NewSeededTestDB returns a test database holding the built-in catalog
func NewSeededTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db := NewTestDB(t)
	require.NoError(t, persistence.NewGormCatalogRepository(db).Save(context.Background(), catalog.Builtin()))
	return db
}
