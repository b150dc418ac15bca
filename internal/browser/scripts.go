package browser

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/mikesterific/parallel-instances/internal/models"
)

// Scripts are arrow functions so both playwright and rod invoke them.
const (
	navigationTimingScript = `() => {
		const [nav] = performance.getEntriesByType('navigation');
		if (!nav) return JSON.stringify({});
		return JSON.stringify({
			dns: nav.domainLookupEnd - nav.domainLookupStart,
			tcp: nav.connectEnd - nav.connectStart,
			ttfb: nav.responseStart - nav.requestStart,
		});
	}`

	resourceTimingScript = `() => JSON.stringify(
		performance.getEntriesByType('resource').map(r => ({ name: r.name, duration: r.duration }))
	)`

	documentLoadedScript = `() => document.readyState === 'complete'`
)

type navigationTiming struct {
	DNS  float64 `json:"dns"`
	TCP  float64 `json:"tcp"`
	TTFB float64 `json:"ttfb"`
}

type resourceTiming struct {
	Name     string  `json:"name"`
	Duration float64 `json:"duration"`
}

func fromMillis(ms float64) time.Duration {
	return time.Duration(ms * float64(time.Millisecond))
}

func decodeNavigationTiming(raw string) (models.NavigationTiming, error) {
	var t navigationTiming
	if err := json.Unmarshal([]byte(raw), &t); err != nil {
		return models.NavigationTiming{}, fmt.Errorf("failed to decode navigation timing: %w", err)
	}
	return models.NavigationTiming{
		DNS:  fromMillis(t.DNS),
		TCP:  fromMillis(t.TCP),
		TTFB: fromMillis(t.TTFB),
	}, nil
}

func decodeResourceTiming(raw string) ([]models.ResourceTiming, error) {
	var entries []resourceTiming
	if err := json.Unmarshal([]byte(raw), &entries); err != nil {
		return nil, fmt.Errorf("failed to decode resource timing: %w", err)
	}
	resources := make([]models.ResourceTiming, 0, len(entries))
	for _, e := range entries {
		resources = append(resources, models.ResourceTiming{Name: e.Name, Duration: fromMillis(e.Duration)})
	}
	return resources, nil
}
