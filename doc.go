// Package ioc is a dependency injection container with hierarchical
// containers and per-registration scopes.
//
// Services are registered under a [Key]: an optional name, the service
// type and up to four parameter types. Every registration has a [Scope]:
//
//   - [Transient] builds a new instance on every resolution.
//   - [Graph] builds one instance per container, hidden from children.
//   - [Weak] keeps the instance while something else references it and
//     shares it with children.
//   - [Container] builds one instance per container and shares it with
//     children.
//
// A child container resolves its own registrations first. Keys it doesn't
// register are looked up in its ancestors, skipping Graph and Transient
// registrations, which only serve the container they are registered in.
// Shared instances are built and cached by the container that owns the
// registration.
//
//	c := ioc.NewContainer()
//	ioc.Register(c, ioc.Container, func(c ioc.Dic) (*Config, error) { return loadConfig() })
//	ioc.Register1(c, ioc.Graph, func(c ioc.Dic, tenant string) (*Repo, error) {
//		return newRepo(ioc.MustResolve[*Config](c), tenant), nil
//	})
//
//	request := c.Child()
//	cfg, err := ioc.Resolve[*Config](request)
//
// Resolving a key that isn't registered, registering a key twice and
// similar wiring mistakes panic with a [*ConfigurationError]. Errors
// returned by factories are returned by Resolve and aren't cached.
package ioc
