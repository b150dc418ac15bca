package infra

import (
	"errors"
	"fmt"
)

// LocalInfraManager runs every instance in-process.
type LocalInfraManager struct {
	order     []string
	instances map[string]*InstanceServer
}

func NewLocalInfraManager() *LocalInfraManager {
	return &LocalInfraManager{instances: map[string]*InstanceServer{}}
}

func (l *LocalInfraManager) StartInstances(specs ...InstanceSpec) error {
	for _, spec := range specs {
		if _, ok := l.instances[spec.Name]; ok {
			return fmt.Errorf("instance %s already started", spec.Name)
		}
		srv, err := NewInstanceServer("127.0.0.1:0", spec)
		if err != nil {
			return err
		}
		l.instances[spec.Name] = srv
		l.order = append(l.order, spec.Name)
	}
	return nil
}

func (l *LocalInfraManager) StopInstances() error {
	var errs []error
	for _, name := range l.order {
		errs = append(errs, l.instances[name].Stop())
	}
	l.order = nil
	l.instances = map[string]*InstanceServer{}
	return errors.Join(errs...)
}

func (l *LocalInfraManager) BaseURL(name string) (string, bool) {
	srv, ok := l.instances[name]
	if !ok {
		return "", false
	}
	return srv.BaseURL(), true
}

func (l *LocalInfraManager) BaseURLs() []string {
	urls := make([]string, 0, len(l.order))
	for _, name := range l.order {
		urls = append(urls, l.instances[name].BaseURL())
	}
	return urls
}

// Requests returns how many requests an instance answered.
func (l *LocalInfraManager) Requests(name string) int64 {
	srv, ok := l.instances[name]
	if !ok {
		return 0
	}
	return srv.Requests()
}
