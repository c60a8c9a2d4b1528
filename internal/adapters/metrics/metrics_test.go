package metrics

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/starroute-go/internal/domain/navigation"
	"github.com/andrescamacho/starroute-go/internal/domain/rules"
	"github.com/andrescamacho/starroute-go/internal/domain/shared"
)

func withRegistry(t *testing.T) {
	t.Helper()
	InitRegistry()
	t.Cleanup(Reset)
}

func TestTravelMetrics_RecordTravel(t *testing.T) {
	// Arrange
	withRegistry(t)
	c := NewTravelMetricsCollector("")
	require.NoError(t, c.Register())

	result := &navigation.TravelResult{
		Status:    navigation.TravelStatusCompleted,
		FinalFuel: 200,
		Effects:   []rules.Effect{{Kind: rules.EffectFuelDelta, Rule: "gravity-slingshot", Amount: 300}},
		Steps: []navigation.TravelStep{
			{From: "Mars", To: "Station-2", Distance: 400, RefueledAt: []string{"Station-2"}, Refueled: true},
			{From: "Station-2", To: "Neptune", Distance: 900},
		},
	}

	// Act
	c.RecordTravel(result, 5*time.Millisecond)

	// Assert
	assert.Equal(t, 1.0, testutil.ToFloat64(c.tripsTotal.WithLabelValues("COMPLETED", "")))
	assert.Equal(t, 1300.0, testutil.ToFloat64(c.distanceTraveled))
	assert.Equal(t, 2.0, testutil.ToFloat64(c.hopsTotal))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.refuelsTotal.WithLabelValues("Station-2")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.ruleEffects.WithLabelValues("gravity-slingshot", "FUEL_DELTA")))
	assert.Zero(t, testutil.ToFloat64(c.missingWeights))
}

func TestTravelMetrics_RecordPathFailure(t *testing.T) {
	c := NewTravelMetricsCollector("test")

	c.RecordPathFailure(navigation.TravelPlan{}, shared.NewNoPathError("Mercury", "Neptune"))
	c.RecordPathFailure(navigation.TravelPlan{}, errors.New("boom"))

	assert.Equal(t, 1.0, testutil.ToFloat64(c.pathFailures.WithLabelValues("NO_PATH")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.pathFailures.WithLabelValues("UNKNOWN")))
}

func TestGraphMetrics(t *testing.T) {
	c := NewGraphMetricsCollector("")

	c.RecordSize(3, 2)
	c.RecordMutation("add", nil)
	c.RecordMutation("add", errors.New("duplicate"))
	c.RecordImport(4, 1, []string{"validation", "validation", "state"})

	assert.Equal(t, 3.0, testutil.ToFloat64(c.nodes))
	assert.Equal(t, 2.0, testutil.ToFloat64(c.edges))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.mutationsTotal.WithLabelValues("add", "rejected")))
	assert.Equal(t, 4.0, testutil.ToFloat64(c.importRowsTotal.WithLabelValues("accepted")))
	assert.Equal(t, 2.0, testutil.ToFloat64(c.importDiagnostic.WithLabelValues("validation")))
}

func TestRegister_NoopWhenDisabled(t *testing.T) {
	Reset()

	assert.NoError(t, NewTravelMetricsCollector("").Register())
	assert.False(t, IsEnabled())
	assert.NoError(t, WriteTextfile(filepath.Join(t.TempDir(), "never.prom")))
}

func TestWriteTextfile(t *testing.T) {
	// Arrange
	withRegistry(t)
	commands := NewCommandMetricsCollector("")
	require.NoError(t, commands.Register())
	commands.RecordCommand("travel", nil, 10*time.Millisecond)
	path := filepath.Join(t.TempDir(), "starroute.prom")

	// Act
	require.NoError(t, WriteTextfile(path))

	// Assert
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `starroute_cli_commands_total{command="travel",status="success"} 1`)
}
