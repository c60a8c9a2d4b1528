package config

// Catalog sources
const (
	CatalogSourceBuiltin  = "builtin"
	CatalogSourceDatabase = "database"
)

// CatalogConfig selects where the distance catalog is loaded from
type CatalogConfig struct {
	// Source: builtin (compiled-in table) or database (bodies/distances tables)
	Source string `mapstructure:"source" validate:"required,oneof=builtin database"`

	// Seed writes the built-in table into an empty database before loading
	Seed bool `mapstructure:"seed"`
}
