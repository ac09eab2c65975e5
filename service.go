package ioc

import "reflect"

// Factory builds an instance for the untyped registration API. args holds
// one value per parameter type of the key the factory is registered under.
type Factory func(c Dic, args []any) (any, error)

// service is one registration. It is immutable once stored in a registry.
type service struct {
	key     Key
	scope   Scope
	creator Factory
	newSlot func() instanceSlot
	owner   *dic

	// set for untyped registrations, whose results are checked against key
	checkResult bool
}

func newService(owner *dic, key Key, scope Scope, creator Factory) *service {
	s := &service{
		key:     key,
		scope:   scope,
		creator: creator,
		owner:   owner,
	}
	if scope.IsMemoized() {
		s.newSlot = newStrongSlot
	}
	return s
}

func newWeakService[S any](owner *dic, key Key, creator Factory) *service {
	return &service{
		key:     key,
		scope:   Weak,
		creator: creator,
		newSlot: newWeakSlot[S],
		owner:   owner,
	}
}

// decoratorKey groups decorators by service type and name, regardless of
// the parameters a service is registered with.
type decoratorKey struct {
	name    string
	service reflect.Type
}

type ctorWrap struct {
	wraps func(c Dic, s any) any
}

func newCtorWrap[T any](wrap func(c Dic, s T) T) ctorWrap {
	return ctorWrap{wraps: func(c Dic, s any) any {
		var typed T
		if s != nil {
			typed = s.(T)
		}
		return wrap(c, typed)
	}}
}

type ctorWraps []ctorWrap

func (wraps ctorWraps) apply(c Dic, s any) any {
	for _, w := range wraps {
		s = w.wraps(c, s)
	}
	return s
}
