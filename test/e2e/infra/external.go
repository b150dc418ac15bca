package infra

import "strings"

// ExternalInfraManager implements InfraManager for instances deployed
// elsewhere. Start and stop are no-ops; instances are matched by name
// against the configured base URLs.
type ExternalInfraManager struct {
	baseURLs []string
}

func NewExternalInfraManager(baseURLs []string) *ExternalInfraManager {
	return &ExternalInfraManager{baseURLs: baseURLs}
}

func (e *ExternalInfraManager) StartInstances(...InstanceSpec) error { return nil }
func (e *ExternalInfraManager) StopInstances() error                 { return nil }

func (e *ExternalInfraManager) BaseURL(name string) (string, bool) {
	for _, u := range e.baseURLs {
		if strings.Contains(u, name) {
			return u, true
		}
	}
	return "", false
}

func (e *ExternalInfraManager) BaseURLs() []string {
	return e.baseURLs
}
