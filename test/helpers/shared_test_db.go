package helpers

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/andrescamacho/starroute-go/internal/adapters/persistence"
	"github.com/andrescamacho/starroute-go/internal/infrastructure/database"
)

// SharedTestDB is one in-memory catalog database for a whole BDD run.
// Scenarios call TruncateAllTables before using it.
var SharedTestDB *gorm.DB

// InitializeSharedTestDB opens SharedTestDB; call it from TestMain
func InitializeSharedTestDB() error {
	db, err := database.OpenMemory()
	if err != nil {
		return fmt.Errorf("failed to open shared test database: %w", err)
	}
	SharedTestDB = db
	return nil
}

// TruncateAllTables empties the catalog tables, distances first
func TruncateAllTables() error {
	if SharedTestDB == nil {
		return fmt.Errorf("shared test database not initialized")
	}

	all := SharedTestDB.Session(&gorm.Session{AllowGlobalUpdate: true})
	for _, model := range []interface{}{&persistence.DistanceModel{}, &persistence.BodyModel{}} {
		if err := all.Delete(model).Error; err != nil {
			return fmt.Errorf("failed to truncate %T: %w", model, err)
		}
	}
	return nil
}

// CloseSharedTestDB closes SharedTestDB; call it after m.Run
func CloseSharedTestDB() error {
	if SharedTestDB == nil {
		return nil
	}
	err := database.Close(SharedTestDB)
	SharedTestDB = nil
	return err
}
