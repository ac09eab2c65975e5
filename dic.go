package ioc

import (
	"reflect"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

type dic struct {
	id         string
	parent     *dic
	baseLogger *zap.Logger
	logger     *zap.Logger

	registry  builderRegistry
	instances *instances

	decoratorsMu sync.RWMutex
	decorators   map[decoratorKey]ctorWraps

	concurrentRegistration bool
	eagerLoading           bool
	eagerOnce              sync.Once

	sealed atomic.Bool
	closed atomic.Bool
}

// Dic is a handle to a container. Handles are cheap values; the handle a
// factory receives also remembers which services are being constructed so
// that circular dependencies fail instead of deadlocking.
//
// A child container keeps a reference to its parent. The parent has to
// outlive its children: closing it makes every lookup delegated to it fail
// with ErrContainerClosed.
type Dic struct {
	c    *dic
	path *frame
}

// NewContainer creates a root container.
func NewContainer(opts ...Option) Dic {
	return Dic{c: newDic(nil, opts)}
}

// Child creates a container whose lookups fall back to c for keys it
// doesn't register itself. Creating a child seals c.
func (c Dic) Child(opts ...Option) Dic {
	c.c.freeze()
	return Dic{c: newDic(c.c, opts)}
}

func newDic(parent *dic, opts []Option) *dic {
	c := &dic{
		parent:     parent,
		baseLogger: zap.NewNop(),
		instances:  newInstances(),
		decorators: map[decoratorKey]ctorWraps{},
	}
	if parent != nil {
		c.baseLogger = parent.baseLogger
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.id == "" {
		c.id = uuid.NewString()
	}
	c.logger = c.baseLogger.With(zap.String("container", c.id))

	var parentRegistry builderRegistry
	if parent != nil {
		parentRegistry = parent.registry
	}
	c.registry = newRegistry(parentRegistry)
	if c.concurrentRegistration {
		c.registry = newLockedRegistry(c.registry)
	}
	return c
}

func (c Dic) ID() string { return c.c.id }

// Parent returns the parent container of a child.
func (c Dic) Parent() (Dic, bool) {
	if c.c.parent == nil {
		return Dic{}, false
	}
	return Dic{c: c.c.parent}, true
}

// Registrations lists the keys registered directly in this container.
func (c Dic) Registrations() []Key {
	return c.c.registry.keys()
}

func (c *dic) freeze() {
	if c.sealed.CompareAndSwap(false, true) {
		c.logger.Debug("container sealed")
	}
}

func (c *dic) fatal(err *ConfigurationError) *ConfigurationError {
	c.logger.Error("invalid container configuration", zap.Stringer("key", err.Key), zap.Error(err.Err))
	return err
}

func (c *dic) checkRegistrationAllowed(key Key) {
	if c.sealed.Load() && !c.concurrentRegistration {
		panic(c.fatal(configurationError(key, ErrContainerSealed, "registering in container %s", c.id)))
	}
}

func (c Dic) register(s *service) {
	if !s.scope.valid() {
		panic(c.c.fatal(configurationError(s.key, ErrInvalidScope, "scope %d", int(s.scope))))
	}
	c.c.checkRegistrationAllowed(s.key)
	if err := c.c.registry.set(s.key, s); err != nil {
		panic(c.c.fatal(configurationError(s.key, err, "container %s", c.c.id)))
	}
	c.c.logger.Debug("registered service", zap.Stringer("key", s.key), zap.Stringer("scope", s.scope))
}

// RegisterKey registers an untyped factory, as emitted by generated
// registration code. The value the factory returns must be assignable to
// key.Service(); otherwise construction panics with ErrTypeMismatch.
//
// The Weak scope needs a typed pointer and is only available through
// [RegisterWeak] and its variants.
func (c Dic) RegisterKey(key Key, scope Scope, factory Factory) {
	if scope.IsWeak() {
		panic(c.c.fatal(configurationError(key, ErrInvalidScope, "weak services have to be registered with RegisterWeak")))
	}
	s := newService(c.c, key, scope, factory)
	s.checkResult = true
	c.register(s)
}

// ResolveKey resolves key with the given parameters. The parameters have
// to match the parameter types of the key; a mismatch panics with
// ErrTypeMismatch.
func (c Dic) ResolveKey(key Key, args ...any) (any, error) {
	if len(args) != key.arity {
		panic(c.c.fatal(configurationError(key, ErrTypeMismatch, "expected %d parameters, got %d", key.arity, len(args))))
	}
	for i, arg := range args {
		want := key.params[i]
		if arg == nil {
			if want.Kind() != reflect.Interface {
				panic(c.c.fatal(configurationError(key, ErrTypeMismatch, "parameter %d: nil isn't a %s", i, want)))
			}
			continue
		}
		if got := reflect.TypeOf(arg); !got.AssignableTo(want) {
			panic(c.c.fatal(configurationError(key, ErrTypeMismatch, "parameter %d: %s isn't assignable to %s", i, got, want)))
		}
	}
	return c.resolve(key, args)
}

// Has reports whether key resolves from c, either through a registration
// of c or one of an ancestor that is visible to children.
func (c Dic) Has(key Key) bool {
	_, ok := c.c.registry.get(key, false)
	return ok
}

func (c Dic) resolve(key Key, args []any) (any, error) {
	if c.c.closed.Load() {
		return nil, errors.Wrapf(ErrContainerClosed, "resolving %s from container %s", key, c.c.id)
	}
	c.c.freeze()

	s, ok := c.c.registry.get(key, false)
	if !ok {
		panic(c.c.fatal(configurationError(key, ErrServiceIsntRegistered, "no registration visible from container %s", c.c.id)))
	}
	owner := s.owner
	if owner != c.c && owner.closed.Load() {
		return nil, errors.Wrapf(ErrContainerClosed, "resolving %s from container %s", key, owner.id)
	}

	for i, arg := range args {
		if arg != nil && !reflect.ValueOf(arg).Comparable() {
			panic(c.c.fatal(configurationError(key, ErrTypeMismatch, "parameter %d: %T isn't comparable", i, arg)))
		}
	}
	sk := newSlotKey(key, args)

	if !s.scope.IsMemoized() {
		v, _, err := transientSlot{}.getOrBuild(nil, func() (any, error) { return c.build(owner, s, sk, args) })
		return v, err
	}

	entry := owner.instances.slot(sk, s.newSlot)
	if v, ok := entry.load(); ok {
		return v, nil
	}
	if err := c.checkCycle(owner, sk); err != nil {
		return nil, err
	}
	v, built, err := entry.getOrBuild(entry, func() (any, error) { return c.build(owner, s, sk, args) })
	if err != nil {
		return nil, err
	}
	if built && !s.scope.IsWeak() {
		if err := owner.instances.track(v); err != nil {
			return nil, errors.Wrapf(err, "resolving %s from container %s", key, owner.id)
		}
	}
	return v, nil
}

func (c Dic) checkCycle(owner *dic, sk slotKey) error {
	if c.path.contains(owner, sk) {
		return errors.Wrapf(ErrCircularDependency, "%s", c.path.describe(owner, sk))
	}
	return nil
}

// build runs the factory of s in owner with a handle whose path includes sk.
func (c Dic) build(owner *dic, s *service, sk slotKey, args []any) (any, error) {
	if err := c.checkCycle(owner, sk); err != nil {
		return nil, err
	}
	f := &frame{owner: owner, slot: sk, prev: c.path}
	defer f.done.Store(true)
	return owner.construct(Dic{c: owner, path: f}, s, args)
}

func (c *dic) construct(h Dic, s *service, args []any) (any, error) {
	c.logger.Debug("constructing service", zap.Stringer("key", s.key), zap.Stringer("scope", s.scope))
	v, err := s.creator(h, args)
	if err != nil {
		return nil, errors.Wrapf(err, "constructing %s", s.key)
	}
	if s.checkResult && v != nil {
		if got := reflect.TypeOf(v); !got.AssignableTo(s.key.service) {
			panic(c.fatal(configurationError(s.key, ErrTypeMismatch, "factory returned %s", got)))
		}
	}
	return c.decorate(h, s.key, v), nil
}

func (c *dic) decorate(h Dic, key Key, v any) any {
	c.decoratorsMu.RLock()
	wraps := c.decorators[decoratorKey{name: key.name, service: key.service}]
	c.decoratorsMu.RUnlock()
	return wraps.apply(h, v)
}

func (c Dic) addDecorator(key decoratorKey, wrap ctorWrap) {
	c.c.checkRegistrationAllowed(NewKey(key.name, key.service))
	c.c.decoratorsMu.Lock()
	defer c.c.decoratorsMu.Unlock()
	c.c.decorators[key] = append(c.c.decorators[key], wrap)
}

// frame is one service under construction in a resolution chain. A
// handle kept by a factory outlives its construction, so finished frames
// are skipped.
type frame struct {
	owner *dic
	slot  slotKey
	prev  *frame
	done  atomic.Bool
}

func (f *frame) contains(owner *dic, k slotKey) bool {
	for ; f != nil; f = f.prev {
		if !f.done.Load() && f.owner == owner && f.slot == k {
			return true
		}
	}
	return false
}

func (f *frame) describe(owner *dic, next slotKey) string {
	chain := []string{next.String()}
	for ; f != nil; f = f.prev {
		if f.done.Load() {
			continue
		}
		chain = append(chain, f.slot.String())
		if f.owner == owner && f.slot == next {
			break
		}
	}
	for i, j := 0, len(chain)-1; i < j; i, j = i+1, j-1 {
		chain[i], chain[j] = chain[j], chain[i]
	}
	return strings.Join(chain, " -> ")
}
