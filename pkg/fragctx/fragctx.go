// Package fragctx implements the cooperative fragment-shader execution
// model: the token stream a fragment program yields, and the per-fragment
// context through which quad/line siblings exchange values to compute
// derivatives.
package fragctx

import "fmt"

// Token is yielded by a fragment program at each cooperative step.
type Token int

const (
	// Keep commits the fragment's output targets, subject to the depth test
	// and the helper-invocation flag.
	Keep Token = iota
	// Discard drops this fragment; other bundle members continue
	// independently.
	Discard
	// Synchronize requests a lock-step rendezvous with the other bundle
	// siblings so their shared slots can be read. Never the final token.
	Synchronize
)

func (t Token) String() string {
	switch t {
	case Keep:
		return "Keep"
	case Discard:
		return "Discard"
	case Synchronize:
		return "Synchronize"
	default:
		return fmt.Sprintf("Token(%d)", int(t))
	}
}

// BundleType is the shape of the primitive a fragment context belongs to.
// It starts Uninitialized and transitions on the first joint Synchronize.
type BundleType int

const (
	Uninitialized BundleType = iota
	Point
	Line
	Filled
)

func (b BundleType) String() string {
	switch b {
	case Uninitialized:
		return "Uninitialized"
	case Point:
		return "Point"
	case Line:
		return "Line"
	case Filled:
		return "Filled"
	default:
		return fmt.Sprintf("BundleType(%d)", int(b))
	}
}

// maxIDForType enforces the id range per §3's fragment-context data model:
// 0 for Point, 0-1 for Line, 0-3 for Filled (quad).
func maxIDForType(t BundleType) int {
	switch t {
	case Point:
		return 0
	case Line:
		return 1
	case Filled:
		return 3
	default:
		return -1
	}
}

// Context is the per-fragment cooperative-execution record. One Context
// exists per bundle position (up to 4, for a quad); all Contexts in a bundle
// share the same backing slots array.
type Context struct {
	id          int
	slots       *[4]any
	bundleType  *BundleType
	helper      bool
	initialized bool
}

// NewBundle allocates a fresh set of n (1, 2, or 4) sibling Contexts sharing
// one slots array and one bundle-type tag, with the given per-slot helper
// flags (a fragment run only to supply derivatives to neighbours).
func NewBundle(n int, helper []bool) []*Context {
	slots := new([4]any)
	bt := new(BundleType)
	ctxs := make([]*Context, n)
	for i := 0; i < n; i++ {
		h := false
		if i < len(helper) {
			h = helper[i]
		}
		ctxs[i] = &Context{id: i, slots: slots, bundleType: bt, helper: h}
	}
	return ctxs
}

// ID returns the fragment's index within its bundle.
func (c *Context) ID() int { return c.id }

// Type returns the bundle's current type tag.
func (c *Context) Type() BundleType { return *c.bundleType }

// IsHelperInvocation reports whether this fragment exists only to supply
// derivatives to its neighbours; its plot must be suppressed.
func (c *Context) IsHelperInvocation() bool { return c.helper }

// IsInitialized reports whether Init has been called on this context at
// least once.
func (c *Context) IsInitialized() bool { return c.initialized }

// Init writes this fragment's value into its shared slot, in preparation for
// a Synchronize yield. The driver transitions the bundle's type tag once all
// siblings have jointly yielded Synchronize; it does not inspect the slot
// values, whose types are checked when a slot is read through At.
func (c *Context) Init(value any) {
	c.slots[c.id] = value
	c.initialized = true
}

// setType is called by the driver once all bundle siblings have jointly
// yielded Synchronize; it transitions Uninitialized -> the given type.
func (c *Context) setType(t BundleType) {
	*c.bundleType = t
}

// At reads bundle sibling id's shared slot, asserting it was initialized
// with exactly type T and that id is valid for the current bundle type. A
// violation panics, matching the fatal-logic-error/contract-violation
// handling the core specifies for uninitialized or wrong-type access.
func At[T any](c *Context, id int) T {
	if !c.initialized {
		panic("fragctx: context accessed before initialization")
	}
	maxID := maxIDForType(c.Type())
	if maxID < 0 || id < 0 || id > maxID {
		panic(fmt.Sprintf("fragctx: id %d out of range for bundle type %s", id, c.Type()))
	}
	v, ok := c.slots[id].(T)
	if !ok {
		panic(fmt.Sprintf("fragctx: slot %d does not hold the requested type", id))
	}
	return v
}

// DFdx returns the finite-difference derivative in x across a 2x2 quad,
// laid out 0 1 / 2 3: [1]-[0] for the top row, [3]-[2] for the bottom.
// Valid only on a Filled bundle.
func DFdx[T interface{ Sub(T) T }](c *Context) T {
	if c.Type() != Filled {
		panic("fragctx: dFdx is only valid on a Filled (quad) bundle")
	}
	switch c.id {
	case 0, 1:
		return At[T](c, 1).Sub(At[T](c, 0))
	default:
		return At[T](c, 3).Sub(At[T](c, 2))
	}
}

// DFdy returns the finite-difference derivative in y across a 2x2 quad:
// [2]-[0] for the left column, [3]-[1] for the right. Valid only on a
// Filled bundle.
func DFdy[T interface{ Sub(T) T }](c *Context) T {
	if c.Type() != Filled {
		panic("fragctx: dFdy is only valid on a Filled (quad) bundle")
	}
	switch c.id {
	case 0, 2:
		return At[T](c, 2).Sub(At[T](c, 0))
	default:
		return At[T](c, 3).Sub(At[T](c, 1))
	}
}

// DFdv returns the finite-difference derivative along a line: [1]-[0].
// Valid only on a Line bundle.
func DFdv[T interface{ Sub(T) T }](c *Context) T {
	if c.Type() != Line {
		panic("fragctx: dFdv is only valid on a Line bundle")
	}
	return At[T](c, 1).Sub(At[T](c, 0))
}
