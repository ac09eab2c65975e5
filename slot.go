package ioc

import (
	"sync"
	"sync/atomic"
	"weak"

	"github.com/pkg/errors"
)

// instanceSlot holds at most one live instance for one slot key.
//
// load returns the held instance without locking.
//
// getOrBuild returns the held instance or runs build to produce one. built
// reports whether this call ran build successfully. A failed build leaves
// the slot empty. lock serializes first construction between goroutines.
type instanceSlot interface {
	load() (v any, ok bool)
	getOrBuild(lock sync.Locker, build func() (any, error)) (v any, built bool, err error)
}

// transientSlot never retains anything.
type transientSlot struct{}

func (transientSlot) load() (any, bool) { return nil, false }

func (transientSlot) getOrBuild(_ sync.Locker, build func() (any, error)) (any, bool, error) {
	v, err := build()
	if err != nil {
		return nil, false, err
	}
	return v, true, nil
}

type instance struct {
	value any
}

// strongSlot keeps the first built instance for its entire existence.
// The loaded pointer is both the flag and the value.
type strongSlot struct {
	loaded atomic.Pointer[instance]
}

func newStrongSlot() instanceSlot { return &strongSlot{} }

func (s *strongSlot) load() (any, bool) {
	if i := s.loaded.Load(); i != nil {
		return i.value, true
	}
	return nil, false
}

func (s *strongSlot) getOrBuild(lock sync.Locker, build func() (any, error)) (any, bool, error) {
	if i := s.loaded.Load(); i != nil {
		return i.value, false, nil
	}

	lock.Lock()
	defer lock.Unlock()
	if i := s.loaded.Load(); i != nil {
		return i.value, false, nil
	}

	v, err := build()
	if err != nil {
		return nil, false, err
	}
	s.loaded.Store(&instance{value: v})
	return v, true, nil
}

// weakSlot keeps its instance only through a weak pointer. Once the
// garbage collector reclaims the instance the slot reads as empty and the
// next access builds a new one.
type weakSlot[S any] struct {
	ref atomic.Pointer[weak.Pointer[S]]
}

func newWeakSlot[S any]() instanceSlot { return &weakSlot[S]{} }

func (s *weakSlot[S]) load() (any, bool) {
	if p := s.live(); p != nil {
		return p, true
	}
	return nil, false
}

// live returns the live instance or nil when the slot is empty or the
// instance has been collected.
func (s *weakSlot[S]) live() *S {
	wp := s.ref.Load()
	if wp == nil {
		return nil
	}
	return wp.Value()
}

func (s *weakSlot[S]) getOrBuild(lock sync.Locker, build func() (any, error)) (any, bool, error) {
	if p := s.live(); p != nil {
		return p, false, nil
	}

	lock.Lock()
	defer lock.Unlock()
	if p := s.live(); p != nil {
		return p, false, nil
	}

	v, err := build()
	if err != nil {
		return nil, false, err
	}
	p, ok := v.(*S)
	if !ok {
		return nil, false, errors.Wrapf(ErrTypeMismatch, "weak slot of %T can't hold %T", p, v)
	}
	if p == nil {
		// nothing to reference, the next access builds again
		s.ref.Store(nil)
		return p, true, nil
	}
	wp := weak.Make(p)
	s.ref.Store(&wp)
	return p, true, nil
}
