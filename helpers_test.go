package ioc_test

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/ogiusek/ioc/v3"
	"github.com/stretchr/testify/require"
)

// widget is large enough to stay out of the tiny allocator, which would
// otherwise keep weak referents alive longer than expected.
type widget struct {
	ID      int32
	Owner   string
	Payload [64]byte
}

type closable struct {
	Name  string
	mu    *sync.Mutex
	order *[]string
	err   error
}

func (c *closable) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	*c.order = append(*c.order, c.Name)
	return c.err
}

// countingWidgets returns a factory numbering the widgets it builds.
func countingWidgets(calls *atomic.Int32) func(c ioc.Dic) (*widget, error) {
	return func(c ioc.Dic) (*widget, error) {
		return &widget{ID: calls.Add(1), Owner: c.ID()}, nil
	}
}

// requireConfigurationError runs fn and returns the configuration error it
// panicked with.
func requireConfigurationError(t *testing.T, fn func()) (cfgErr *ioc.ConfigurationError) {
	t.Helper()
	defer func() {
		r := recover()
		require.NotNil(t, r, "expected a configuration panic")
		var ok bool
		cfgErr, ok = ioc.AsConfigurationError(r)
		require.Truef(t, ok, "panic value %v isn't a configuration error", r)
	}()
	fn()
	return nil
}
