package models

import "time"

// NavigationTiming holds the page timing of the last navigation.
type NavigationTiming struct {
	DNS  time.Duration
	TCP  time.Duration
	TTFB time.Duration
}

type ResourceTiming struct {
	Name     string
	Duration time.Duration
}

// Metrics is the performance record persisted per instance and written to
// the metrics artifact folder.
type Metrics struct {
	RunID      string
	Instance   string
	LoadTime   time.Duration
	DNS        time.Duration
	TCP        time.Duration
	TTFB       time.Duration
	Resources  int
	RecordedAt time.Time
}
