package ioc

import "go.uber.org/zap"

// Option configures a container when it is created.
type Option func(*dic)

// WithLogger sets the logger of the container. Child containers inherit
// it unless they get their own. The default logger discards everything.
func WithLogger(logger *zap.Logger) Option {
	return func(c *dic) {
		if logger != nil {
			c.baseLogger = logger
		}
	}
}

// WithID overrides the generated container id used in logs and errors.
func WithID(id string) Option {
	return func(c *dic) { c.id = id }
}

// WithConcurrentRegistration guards the registry of the container with a
// lock, so services can still be registered after the container is sealed
// and while other goroutines resolve.
func WithConcurrentRegistration() Option {
	return func(c *dic) { c.concurrentRegistration = true }
}

// WithEagerLoading makes [Dic.Seal] construct every memoized
// zero-parameter service registered with the Graph or Container scope.
func WithEagerLoading() Option {
	return func(c *dic) { c.eagerLoading = true }
}
