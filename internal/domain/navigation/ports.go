package navigation

import "time"

// MetricsRecorder receives every finished trip and every routing failure.
// Implementations live in the metrics adapter; a nil recorder is allowed.
type MetricsRecorder interface {
	RecordTravel(result *TravelResult, duration time.Duration)
	RecordPathFailure(plan TravelPlan, err error)
}
