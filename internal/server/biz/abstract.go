package biz

import (
	"github.com/campushq/campushub/internal/store"
)

// AbstractService carries the dependencies every service shares.
type AbstractService struct {
	store *store.Store
}

// Store returns the tenant-scoped data access layer.
func (s *AbstractService) Store() *store.Store {
	return s.store
}
