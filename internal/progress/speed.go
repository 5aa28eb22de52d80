package progress

import (
	"math"

	"github.com/versepace/versepace/internal/errors"
)

// ErrSampleTooShort is returned when a timed sample is too short to yield a
// meaningful speed.
var ErrSampleTooShort = errors.Validation("reading sample too short to measure speed")

// MeasureSpeed converts a timed sample into characters per second. Elapsed
// times that round to zero seconds are rejected, as are empty samples.
func MeasureSpeed(sampleChars int, elapsedSeconds float64) (float64, error) {
	if sampleChars <= 0 || math.IsNaN(elapsedSeconds) || math.Round(elapsedSeconds) <= 0 {
		return 0, ErrSampleTooShort.WithDetails(map[string]any{
			"sample_chars":    sampleChars,
			"elapsed_seconds": elapsedSeconds,
		})
	}
	return float64(sampleChars) / elapsedSeconds, nil
}
