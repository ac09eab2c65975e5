package ioc

import (
	"go.uber.org/zap"
)

// Module groups registrations, usually one per package or per generated
// registration file.
type Module func(c Dic)

// Install runs modules against c in order. It has to be called before c is
// sealed.
func (c Dic) Install(modules ...Module) Dic {
	for _, module := range modules {
		module(c)
	}
	return c
}

// Seal ends the build phase of c. Afterwards registering in c panics
// unless c was created WithConcurrentRegistration. Resolving from c or
// creating a child of c seals it implicitly.
//
// With WithEagerLoading the first call to Seal also constructs every
// zero-parameter Graph and Container service registered in c and returns
// the first construction error.
func (c Dic) Seal() error {
	c.c.freeze()
	if !c.c.eagerLoading {
		return nil
	}
	var err error
	c.c.eagerOnce.Do(func() { err = c.loadEager() })
	return err
}

func (c Dic) loadEager() error {
	for _, key := range c.c.registry.keys() {
		s, ok := c.c.registry.get(key, false)
		if !ok || s.owner != c.c || key.arity != 0 {
			continue
		}
		if !s.scope.IsMemoized() || s.scope.IsWeak() {
			continue
		}
		if _, err := c.resolve(key, nil); err != nil {
			c.c.logger.Debug("eager loading failed", zap.Stringer("key", key), zap.Error(err))
			return err
		}
	}
	return nil
}
