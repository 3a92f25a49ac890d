// Package mock provides mock implementations of the munidocs interfaces.
package mock

import "github.com/openfiscal/munidocs"

var _ munidocs.EntityService = (*EntityService)(nil)

// EntityService is a mock implementation of munidocs.EntityService.
type EntityService struct {
	EntitiesFn   func() []munidocs.Entity
	FindEntityFn func(name string) (*munidocs.Entity, error)
}

func (s *EntityService) Entities() []munidocs.Entity {
	return s.EntitiesFn()
}

func (s *EntityService) FindEntity(name string) (*munidocs.Entity, error) {
	return s.FindEntityFn(name)
}
