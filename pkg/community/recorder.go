package community

import "time"

// Recorder receives detection telemetry. *metrics.Registry implements it.
type Recorder interface {
	RecordDetection(requested, algorithm string, err error, duration time.Duration, communities int, modularity float64)
	RecordFallback(algorithm, reason string)
	RecordComparison(duration time.Duration, failures int)
}

type nopRecorder struct{}

func (nopRecorder) RecordDetection(string, string, error, time.Duration, int, float64) {}
func (nopRecorder) RecordFallback(string, string)                                      {}
func (nopRecorder) RecordComparison(time.Duration, int)                                {}
