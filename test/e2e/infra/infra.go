package infra

// InfraManager abstracts the instances under test.
// Local: in-process instance servers, one per name.
// External: no-op, instances are deployed elsewhere and passed by URL.
type InfraManager interface {
	StartInstances(specs ...InstanceSpec) error
	StopInstances() error
	// BaseURL returns the base URL of a started instance.
	BaseURL(name string) (string, bool)
	BaseURLs() []string
}

// InstanceSpec describes a fake instance. Name is part of the base URL path,
// so fixture lookups and command timeout profiles see it.
type InstanceSpec struct {
	Name string
	// Status is answered for every page; 0 means 200.
	Status int
	// FailFirst makes the first n requests answer 503.
	FailFirst int
	Title     string
}
