// Package catalog is the typed in-memory model of a BSMP server's
// Variables, Groups, Curves and Functions. It enforces the reference
// validity invariants of spec §4.D and §9: a handle minted before a
// catalog repopulation is rejected, never silently treated as valid.
package catalog

import "github.com/lerwys/libbsmp/protocol"

// Variable is one entry of the Variables catalog.
type Variable struct {
	ID       uint8
	Size     int
	Writable bool
}

// Group is one entry of the Groups catalog.
type Group struct {
	ID       uint8
	Writable bool
	Vars     []VarHandle
	Size     int
}

// Curve is one entry of the Curves catalog.
type Curve struct {
	ID        uint8
	Writable  bool
	BlockSize uint16
	NBlocks   uint16
	Checksum  [protocol.CurveCsumSize]byte
}

// Function is one entry of the Functions catalog.
type Function struct {
	ID         uint8
	InputSize  int
	OutputSize int
}

// The first three groups are reserved by the server and cannot be
// removed by RemoveAllGroups (spec §3, invariant 4).
const (
	GroupAllVars   = 0
	GroupReadOnly  = 1
	GroupWritable  = 2
	ReservedGroups = 3
)

// Catalog is the per-client entity model. It is not safe for
// concurrent use (spec §5): callers serialize their own access.
type Catalog struct {
	vars  []Variable
	varGen uint32

	groups  []Group
	groupGen uint32

	curves  []Curve
	curveGen uint32

	funcs  []Function
	funcGen uint32
}

// New returns an empty catalog, as after construction per spec §3
// ("Catalog is empty after construction").
func New() *Catalog {
	return &Catalog{}
}

// Vars returns the current Variables list.
func (c *Catalog) Vars() []Variable { return c.vars }

// Groups returns the current Groups list.
func (c *Catalog) Groups() []Group { return c.groups }

// Curves returns the current Curves list.
func (c *Catalog) Curves() []Curve { return c.curves }

// Funcs returns the current Functions list.
func (c *Catalog) Funcs() []Function { return c.funcs }

// ReplaceVars replaces the Variables list wholesale and bumps its
// generation, invalidating every VarHandle minted against the old
// list. Used by client.Init during handshake population.
func (c *Catalog) ReplaceVars(vars []Variable) {
	c.vars = vars
	c.varGen++
}

// ReplaceGroups replaces the Groups list wholesale and bumps its
// generation. Passing nil implements the full-zeroing rollback spec
// §9 prescribes for a mid-populate group-query failure.
func (c *Catalog) ReplaceGroups(groups []Group) {
	c.groups = groups
	c.groupGen++
}

// ReplaceCurves replaces the Curves list wholesale and bumps its
// generation.
func (c *Catalog) ReplaceCurves(curves []Curve) {
	c.curves = curves
	c.curveGen++
}

// ReplaceFuncs replaces the Functions list wholesale and bumps its
// generation.
func (c *Catalog) ReplaceFuncs(funcs []Function) {
	c.funcs = funcs
	c.funcGen++
}
