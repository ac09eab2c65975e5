package ioc

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	ErrServiceIsntRegistered    error = errors.New("service isn't registered")
	ErrServiceAlreadyRegistered error = errors.New("service is already registered")
	ErrTypeMismatch             error = errors.New("type mismatch")
	ErrTooManyParameters        error = errors.New("too many parameters")
	ErrInvalidScope             error = errors.New("invalid scope")

	ErrContainerSealed error = errors.New("container is sealed")
	ErrContainerClosed error = errors.New("container is closed")

	ErrCircularDependency error = errors.New("circular dependency")
)

// ConfigurationError is the value the container panics with when the
// service graph is wired incorrectly: a missing registration, a duplicate
// one, or types that do not line up with the key.
//
// It unwraps to one of the sentinel errors above, so a recovered value can
// be checked with errors.Is.
type ConfigurationError struct {
	Key Key
	Err error
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("ioc: %s: %v", e.Key, e.Err)
}

func (e *ConfigurationError) Unwrap() error { return e.Err }

// AsConfigurationError reports whether a recovered panic value is a
// configuration error.
func AsConfigurationError(recovered any) (*ConfigurationError, bool) {
	err, ok := recovered.(error)
	if !ok {
		return nil, false
	}
	var cfgErr *ConfigurationError
	if !errors.As(err, &cfgErr) {
		return nil, false
	}
	return cfgErr, true
}

func configurationError(key Key, err error, format string, args ...any) *ConfigurationError {
	if format != "" {
		err = errors.Wrapf(err, format, args...)
	}
	return &ConfigurationError{Key: key, Err: err}
}
