package ioc

import (
	"sort"
)

// builderRegistry maps keys to registrations and falls back to the parent
// container's registry for keys it doesn't hold.
type builderRegistry interface {
	// set stores s under key. It fails with ErrServiceAlreadyRegistered
	// when key is already taken in this registry.
	set(key Key, s *service) error
	// get returns the registration visible under key. fromChild is set
	// once the lookup left the container it started in.
	get(key Key, fromChild bool) (*service, bool)
	// keys lists local keys sorted by their string form.
	keys() []Key
}

type registry struct {
	parent   builderRegistry
	services map[Key]*service
}

func newRegistry(parent builderRegistry) *registry {
	return &registry{
		parent:   parent,
		services: map[Key]*service{},
	}
}

func (r *registry) set(key Key, s *service) error {
	if _, ok := r.services[key]; ok {
		return ErrServiceAlreadyRegistered
	}
	r.services[key] = s
	return nil
}

func (r *registry) get(key Key, fromChild bool) (*service, bool) {
	if s, ok := r.services[key]; ok && (!fromChild || s.scope.AllowsAccessFromChildren()) {
		return s, true
	}
	if r.parent == nil {
		return nil, false
	}
	// graph and transient registrations above stay invisible, keep walking
	return r.parent.get(key, true)
}

func (r *registry) keys() []Key {
	keys := make([]Key, 0, len(r.services))
	for key := range r.services {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].String() < keys[j].String() })
	return keys
}
