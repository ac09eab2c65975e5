package ioc

import (
	"reflect"
	"strings"
)

// MaxParams is the largest number of positional parameters a service can
// be registered with.
const MaxParams = 4

// Key identifies a registration: an optional instance name, the service
// type and the ordered parameter types. Keys are comparable and two keys
// are equal iff all three parts are equal.
type Key struct {
	name    string
	service reflect.Type
	params  [MaxParams]reflect.Type
	arity   int
}

// NewKey builds a key from runtime types. Passing more than MaxParams
// parameter types panics with a *ConfigurationError.
func NewKey(name string, service reflect.Type, params ...reflect.Type) Key {
	k := Key{name: name, service: service}
	if len(params) > MaxParams {
		panic(configurationError(k, ErrTooManyParameters, "%d parameters, at most %d are supported", len(params), MaxParams))
	}
	copy(k.params[:], params)
	k.arity = len(params)
	return k
}

// KeyFor returns the zero-parameter key of T.
func KeyFor[T any](opts ...KeyOption) Key {
	return NewKey(keyName(opts), reflect.TypeFor[T]())
}

func (k Key) Name() string { return k.name }

func (k Key) Service() reflect.Type { return k.service }

func (k Key) Arity() int { return k.arity }

// Params returns a copy of the parameter types.
func (k Key) Params() []reflect.Type {
	params := make([]reflect.Type, k.arity)
	copy(params, k.params[:k.arity])
	return params
}

// String renders the key as name:type(param, ...).
func (k Key) String() string {
	var sb strings.Builder
	if k.name != "" {
		sb.WriteString(k.name)
		sb.WriteByte(':')
	}
	if k.service == nil {
		sb.WriteString("<nil>")
	} else {
		sb.WriteString(k.service.String())
	}
	if k.arity == 0 {
		return sb.String()
	}
	sb.WriteByte('(')
	for i := 0; i < k.arity; i++ {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(k.params[i].String())
	}
	sb.WriteByte(')')
	return sb.String()
}

// KeyOption customizes the key a service is registered or resolved under.
type KeyOption func(*keyOptions)

type keyOptions struct {
	name string
}

// Named selects a named instance of the service. Registrations and
// resolutions have to use the same name.
func Named(name string) KeyOption {
	return func(o *keyOptions) { o.name = name }
}

func keyName(opts []KeyOption) string {
	var o keyOptions
	for _, opt := range opts {
		opt(&o)
	}
	return o.name
}
