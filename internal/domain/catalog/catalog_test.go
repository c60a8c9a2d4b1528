package catalog_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/starroute-go/internal/domain/catalog"
	"github.com/andrescamacho/starroute-go/internal/domain/shared"
)

func TestBuiltin_LookupIsSymmetric(t *testing.T) {
	c := catalog.Builtin()

	for _, entry := range c.Distances() {
		forward, ok := c.Lookup(entry.A, entry.B)
		require.True(t, ok)
		backward, ok := c.Lookup(entry.B, entry.A)
		require.True(t, ok)
		assert.Equal(t, forward, backward, "%s-%s", entry.A, entry.B)
	}
}

func TestBuiltin_KnownValues(t *testing.T) {
	c := catalog.Builtin()

	d, ok := c.Lookup(catalog.Jupiter, catalog.Earth)
	require.True(t, ok)
	assert.Equal(t, 628.0, d)

	_, ok = c.Lookup(catalog.Mercury, catalog.Neptune)
	assert.False(t, ok, "catalog is partial")

	assert.Equal(t, 31, c.Len())
	assert.Len(t, c.Bodies(), 11)
}

func TestBuiltin_StationsFollowNamingConvention(t *testing.T) {
	c := catalog.Builtin()

	station, ok := c.Body(catalog.Station3)
	require.True(t, ok)
	assert.True(t, station.IsStation())

	planet, ok := c.Body(catalog.Neptune)
	require.True(t, ok)
	assert.False(t, planet.IsStation())

	assert.False(t, c.IsKnown("Pluto"))
}

func TestNew_Validation(t *testing.T) {
	tests := []struct {
		name      string
		bodies    []string
		distances []catalog.Distance
	}{
		{"duplicate body", []string{"A", "A"}, nil},
		{"unknown body in distance", []string{"A"}, []catalog.Distance{{Pair: catalog.NewPair("A", "B"), Value: 1}}},
		{"non positive distance", []string{"A", "B"}, []catalog.Distance{{Pair: catalog.NewPair("A", "B"), Value: 0}}},
		{"self distance", []string{"A"}, []catalog.Distance{{Pair: catalog.NewPair("A", "A"), Value: 3}}},
		{"duplicate pair", []string{"A", "B"}, []catalog.Distance{
			{Pair: catalog.NewPair("A", "B"), Value: 1},
			{Pair: catalog.NewPair("B", "A"), Value: 2},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := catalog.New(tt.bodies, tt.distances)

			var validationErr *shared.ValidationError
			assert.True(t, errors.As(err, &validationErr), "got %v", err)
		})
	}
}

func TestNewPair_Normalises(t *testing.T) {
	assert.Equal(t, catalog.NewPair("Mars", "Earth"), catalog.NewPair("Earth", "Mars"))
	assert.Equal(t, "Earth", catalog.NewPair("Mars", "Earth").A)
}
