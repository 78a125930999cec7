package delivery

import "time"

// DefaultEstimateOffset is used when no offset is configured.
const DefaultEstimateOffset = 30 * time.Minute

type offsetEstimateFactory struct {
	offset time.Duration
}

// NewEstimateFactory - creates an EstimateFactory that adds offset to the current time.
func NewEstimateFactory(offset time.Duration) EstimateFactory {
	if offset <= 0 {
		offset = DefaultEstimateOffset
	}
	return offsetEstimateFactory{offset: offset}
}

// Estimate returns the estimated delivery time for a delivery opened or accepted at now.
func (f offsetEstimateFactory) Estimate(now time.Time) time.Time {
	return now.Add(f.offset)
}
