package ioc

// Scope is the lifetime and visibility policy of a registration.
//
//	scope      memoized  retention             visible to children
//	Transient  no        none                  no
//	Graph      yes       container lifetime    no
//	Weak       yes       while referenced      yes
//	Container  yes       container lifetime    yes
type Scope int

const (
	// Transient builds a new instance on every resolution.
	Transient Scope = iota
	// Graph memoizes one instance per container. Child containers can't see it.
	Graph
	// Weak memoizes an instance for as long as something outside of the
	// container keeps a reference to it. Shared with child containers.
	Weak
	// Container memoizes one instance for the container's lifetime and
	// shares it with child containers.
	Container
)

func (s Scope) IsTransient() bool { return s == Transient }

func (s Scope) IsWeak() bool { return s == Weak }

func (s Scope) IsMemoized() bool { return s == Graph || s == Weak || s == Container }

// AllowsAccessFromChildren reports whether a child container without its
// own registration may resolve the instance owned by this registration.
func (s Scope) AllowsAccessFromChildren() bool { return s == Weak || s == Container }

func (s Scope) valid() bool { return s >= Transient && s <= Container }

func (s Scope) String() string {
	switch s {
	case Transient:
		return "transient"
	case Graph:
		return "graph"
	case Weak:
		return "weak"
	case Container:
		return "container"
	default:
		return "unknown"
	}
}
