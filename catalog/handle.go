package catalog

// A handle is an {index, generation} pair validated against the
// catalog's current generation counter for that entity kind, standing
// in for the source's pointer-identity comparison (spec §9, option
// (a)): a handle minted before a repopulation carries the old
// generation and is rejected even though its index may coincidentally
// still be in range.
type handle struct {
	index      int
	generation uint32
}

// VarHandle addresses one entry of the Variables catalog.
type VarHandle handle

// GroupHandle addresses one entry of the Groups catalog.
type GroupHandle handle

// CurveHandle addresses one entry of the Curves catalog.
type CurveHandle handle

// FuncHandle addresses one entry of the Functions catalog.
type FuncHandle handle

// list pairs a catalog's backing slice with its generation counter,
// the one generic routine spec §9 calls for in place of four
// near-identical per-kind contains/get-list variants.
type list[T any] struct {
	items      []T
	generation uint32
}

func contains[T any](l list[T], h handle) bool {
	return h.generation == l.generation && h.index >= 0 && h.index < len(l.items)
}

func get[T any](l list[T], h handle) (item T, ok bool) {
	if !contains(l, h) {
		return
	}
	return l.items[h.index], true
}

func (c *Catalog) varList() list[Variable]   { return list[Variable]{c.vars, c.varGen} }
func (c *Catalog) groupList() list[Group]    { return list[Group]{c.groups, c.groupGen} }
func (c *Catalog) curveList() list[Curve]    { return list[Curve]{c.curves, c.curveGen} }
func (c *Catalog) funcList() list[Function]  { return list[Function]{c.funcs, c.funcGen} }

// VarHandleAt returns a handle to vars()[index], stamped with the
// catalog's current Variables generation.
func (c *Catalog) VarHandleAt(index int) (VarHandle, bool) {
	h := handle{index, c.varGen}
	if !contains(c.varList(), h) {
		return VarHandle{}, false
	}
	return VarHandle(h), true
}

// GroupHandleAt returns a handle to groups()[index].
func (c *Catalog) GroupHandleAt(index int) (GroupHandle, bool) {
	h := handle{index, c.groupGen}
	if !contains(c.groupList(), h) {
		return GroupHandle{}, false
	}
	return GroupHandle(h), true
}

// CurveHandleAt returns a handle to curves()[index].
func (c *Catalog) CurveHandleAt(index int) (CurveHandle, bool) {
	h := handle{index, c.curveGen}
	if !contains(c.curveList(), h) {
		return CurveHandle{}, false
	}
	return CurveHandle(h), true
}

// FuncHandleAt returns a handle to funcs()[index].
func (c *Catalog) FuncHandleAt(index int) (FuncHandle, bool) {
	h := handle{index, c.funcGen}
	if !contains(c.funcList(), h) {
		return FuncHandle{}, false
	}
	return FuncHandle(h), true
}

// ContainsVar reports whether h belongs to the current Variables
// catalog (spec §4.D's contains predicate).
func (c *Catalog) ContainsVar(h VarHandle) bool { return contains(c.varList(), handle(h)) }

// ContainsGroup reports whether h belongs to the current Groups
// catalog.
func (c *Catalog) ContainsGroup(h GroupHandle) bool { return contains(c.groupList(), handle(h)) }

// ContainsCurve reports whether h belongs to the current Curves
// catalog.
func (c *Catalog) ContainsCurve(h CurveHandle) bool { return contains(c.curveList(), handle(h)) }

// ContainsFunc reports whether h belongs to the current Functions
// catalog.
func (c *Catalog) ContainsFunc(h FuncHandle) bool { return contains(c.funcList(), handle(h)) }

// Var dereferences h. ok is false if h is stale or out of range.
func (c *Catalog) Var(h VarHandle) (v Variable, ok bool) { return get(c.varList(), handle(h)) }

// Group dereferences h.
func (c *Catalog) Group(h GroupHandle) (g Group, ok bool) { return get(c.groupList(), handle(h)) }

// Curve dereferences h.
func (c *Catalog) Curve(h CurveHandle) (cv Curve, ok bool) { return get(c.curveList(), handle(h)) }

// Func dereferences h.
func (c *Catalog) Func(h FuncHandle) (f Function, ok bool) { return get(c.funcList(), handle(h)) }
