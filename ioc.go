package ioc

import (
	"reflect"
)

// Registers a service of type T built by creator.
// Panics when the key is already registered in c, when c is sealed, or
// when scope is Weak (use RegisterWeak).
func Register[T any](c Dic, scope Scope, creator func(c Dic) (T, error), opts ...KeyOption) {
	key := NewKey(keyName(opts), reflect.TypeFor[T]())
	registerTyped(c, key, scope, func(c Dic, _ []any) (any, error) {
		return creator(c)
	})
}

// Registers a service of type T built from one parameter. Every distinct
// parameter value gets its own memoized instance.
func Register1[T any, P1 comparable](c Dic, scope Scope, creator func(c Dic, p1 P1) (T, error), opts ...KeyOption) {
	key := NewKey(keyName(opts), reflect.TypeFor[T](), reflect.TypeFor[P1]())
	registerTyped(c, key, scope, func(c Dic, args []any) (any, error) {
		return creator(c, arg[P1](args, 0))
	})
}

func Register2[T any, P1, P2 comparable](c Dic, scope Scope, creator func(c Dic, p1 P1, p2 P2) (T, error), opts ...KeyOption) {
	key := NewKey(keyName(opts), reflect.TypeFor[T](), reflect.TypeFor[P1](), reflect.TypeFor[P2]())
	registerTyped(c, key, scope, func(c Dic, args []any) (any, error) {
		return creator(c, arg[P1](args, 0), arg[P2](args, 1))
	})
}

func Register3[T any, P1, P2, P3 comparable](c Dic, scope Scope, creator func(c Dic, p1 P1, p2 P2, p3 P3) (T, error), opts ...KeyOption) {
	key := NewKey(keyName(opts), reflect.TypeFor[T](), reflect.TypeFor[P1](), reflect.TypeFor[P2](), reflect.TypeFor[P3]())
	registerTyped(c, key, scope, func(c Dic, args []any) (any, error) {
		return creator(c, arg[P1](args, 0), arg[P2](args, 1), arg[P3](args, 2))
	})
}

func Register4[T any, P1, P2, P3, P4 comparable](c Dic, scope Scope, creator func(c Dic, p1 P1, p2 P2, p3 P3, p4 P4) (T, error), opts ...KeyOption) {
	key := NewKey(keyName(opts), reflect.TypeFor[T](), reflect.TypeFor[P1](), reflect.TypeFor[P2](), reflect.TypeFor[P3](), reflect.TypeFor[P4]())
	registerTyped(c, key, scope, func(c Dic, args []any) (any, error) {
		return creator(c, arg[P1](args, 0), arg[P2](args, 1), arg[P3](args, 2), arg[P4](args, 3))
	})
}

func registerTyped(c Dic, key Key, scope Scope, creator Factory) {
	if scope.IsWeak() {
		panic(c.c.fatal(configurationError(key, ErrInvalidScope, "weak services have to be registered with RegisterWeak")))
	}
	c.register(newService(c.c, key, scope, creator))
}

// Registers a service of type *S with the Weak scope. The instance is
// shared with child containers and rebuilt once nothing outside of the
// container references it anymore.
func RegisterWeak[S any](c Dic, creator func(c Dic) (*S, error), opts ...KeyOption) {
	key := NewKey(keyName(opts), reflect.TypeFor[*S]())
	c.register(newWeakService[S](c.c, key, func(c Dic, _ []any) (any, error) {
		return creator(c)
	}))
}

func RegisterWeak1[S any, P1 comparable](c Dic, creator func(c Dic, p1 P1) (*S, error), opts ...KeyOption) {
	key := NewKey(keyName(opts), reflect.TypeFor[*S](), reflect.TypeFor[P1]())
	c.register(newWeakService[S](c.c, key, func(c Dic, args []any) (any, error) {
		return creator(c, arg[P1](args, 0))
	}))
}

func RegisterWeak2[S any, P1, P2 comparable](c Dic, creator func(c Dic, p1 P1, p2 P2) (*S, error), opts ...KeyOption) {
	key := NewKey(keyName(opts), reflect.TypeFor[*S](), reflect.TypeFor[P1](), reflect.TypeFor[P2]())
	c.register(newWeakService[S](c.c, key, func(c Dic, args []any) (any, error) {
		return creator(c, arg[P1](args, 0), arg[P2](args, 1))
	}))
}

func RegisterWeak3[S any, P1, P2, P3 comparable](c Dic, creator func(c Dic, p1 P1, p2 P2, p3 P3) (*S, error), opts ...KeyOption) {
	key := NewKey(keyName(opts), reflect.TypeFor[*S](), reflect.TypeFor[P1](), reflect.TypeFor[P2](), reflect.TypeFor[P3]())
	c.register(newWeakService[S](c.c, key, func(c Dic, args []any) (any, error) {
		return creator(c, arg[P1](args, 0), arg[P2](args, 1), arg[P3](args, 2))
	}))
}

func RegisterWeak4[S any, P1, P2, P3, P4 comparable](c Dic, creator func(c Dic, p1 P1, p2 P2, p3 P3, p4 P4) (*S, error), opts ...KeyOption) {
	key := NewKey(keyName(opts), reflect.TypeFor[*S](), reflect.TypeFor[P1](), reflect.TypeFor[P2](), reflect.TypeFor[P3](), reflect.TypeFor[P4]())
	c.register(newWeakService[S](c.c, key, func(c Dic, args []any) (any, error) {
		return creator(c, arg[P1](args, 0), arg[P2](args, 1), arg[P3](args, 2), arg[P4](args, 3))
	}))
}

// Decorate wraps every instance of T built by c, memoized or not, before it
// is handed out. Decorators run in the order they were added.
func Decorate[T any](c Dic, wrap func(c Dic, s T) T, opts ...KeyOption) {
	c.addDecorator(decoratorKey{name: keyName(opts), service: reflect.TypeFor[T]()}, newCtorWrap(wrap))
}

// Returns service instance of type T.
// Panics with a *ConfigurationError when T isn't registered in c or in an
// ancestor visible to c. Errors returned by factories are returned.
func Resolve[T any](c Dic, opts ...KeyOption) (T, error) {
	key := NewKey(keyName(opts), reflect.TypeFor[T]())
	return resolveAs[T](c, key, nil)
}

func Resolve1[T any, P1 comparable](c Dic, p1 P1, opts ...KeyOption) (T, error) {
	key := NewKey(keyName(opts), reflect.TypeFor[T](), reflect.TypeFor[P1]())
	return resolveAs[T](c, key, []any{p1})
}

func Resolve2[T any, P1, P2 comparable](c Dic, p1 P1, p2 P2, opts ...KeyOption) (T, error) {
	key := NewKey(keyName(opts), reflect.TypeFor[T](), reflect.TypeFor[P1](), reflect.TypeFor[P2]())
	return resolveAs[T](c, key, []any{p1, p2})
}

func Resolve3[T any, P1, P2, P3 comparable](c Dic, p1 P1, p2 P2, p3 P3, opts ...KeyOption) (T, error) {
	key := NewKey(keyName(opts), reflect.TypeFor[T](), reflect.TypeFor[P1](), reflect.TypeFor[P2](), reflect.TypeFor[P3]())
	return resolveAs[T](c, key, []any{p1, p2, p3})
}

func Resolve4[T any, P1, P2, P3, P4 comparable](c Dic, p1 P1, p2 P2, p3 P3, p4 P4, opts ...KeyOption) (T, error) {
	key := NewKey(keyName(opts), reflect.TypeFor[T](), reflect.TypeFor[P1](), reflect.TypeFor[P2](), reflect.TypeFor[P3](), reflect.TypeFor[P4]())
	return resolveAs[T](c, key, []any{p1, p2, p3, p4})
}

// MustResolve is Resolve which panics on construction errors as well.
func MustResolve[T any](c Dic, opts ...KeyOption) T {
	s, err := Resolve[T](c, opts...)
	if err != nil {
		panic(err)
	}
	return s
}

// Has reports whether T resolves from c.
func Has[T any](c Dic, opts ...KeyOption) bool {
	return c.Has(KeyFor[T](opts...))
}

func resolveAs[T any](c Dic, key Key, args []any) (T, error) {
	var zero T
	v, err := c.resolve(key, args)
	if err != nil {
		return zero, err
	}
	if v == nil {
		return zero, nil
	}
	s, ok := v.(T)
	if !ok {
		panic(c.c.fatal(configurationError(key, ErrTypeMismatch, "registered factory produced %T", v)))
	}
	return s, nil
}

func arg[P any](args []any, i int) P {
	p, _ := args[i].(P)
	return p
}
