package models

import "time"

// TrafficSample is one interval of a manual vehicle count. Time carries
// only the clock time; the date part is zero.
type TrafficSample struct {
	Time        time.Time
	HowthCount  int
	SuttonCount int
}

// Total is the combined count across both counting points.
func (s TrafficSample) Total() int {
	return s.HowthCount + s.SuttonCount
}

// TrafficCountSeries is one observation window (e.g. a morning peak) in
// chronological order.
type TrafficCountSeries struct {
	Name    string
	Samples []TrafficSample
}

// TotalCount sums Total over every sample.
func (s *TrafficCountSeries) TotalCount() int {
	n := 0
	for _, sample := range s.Samples {
		n += sample.Total()
	}
	return n
}
