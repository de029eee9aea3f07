package catalog

import "testing"

func TestHandleStaleAfterRepopulate(t *testing.T) {
	c := New()
	c.ReplaceVars([]Variable{{ID: 0, Size: 2, Writable: true}})

	h, ok := c.VarHandleAt(0)
	if !ok {
		t.Fatal("expected handle at index 0")
	}
	if !c.ContainsVar(h) {
		t.Fatal("expected fresh handle to be contained")
	}

	c.ReplaceVars([]Variable{{ID: 0, Size: 2, Writable: true}})
	if c.ContainsVar(h) {
		t.Fatal("expected stale handle to be rejected after repopulate")
	}

	fresh, ok := c.VarHandleAt(0)
	if !ok || !c.ContainsVar(fresh) {
		t.Fatal("expected a freshly minted handle to be valid")
	}
}

func TestHandleOutOfRange(t *testing.T) {
	c := New()
	c.ReplaceVars([]Variable{{ID: 0, Size: 1}})
	if _, ok := c.VarHandleAt(5); ok {
		t.Fatal("expected out-of-range index to fail")
	}
}

func TestGroupDereference(t *testing.T) {
	c := New()
	c.ReplaceVars([]Variable{{ID: 0, Size: 2}, {ID: 1, Size: 1}})
	v0, _ := c.VarHandleAt(0)
	v1, _ := c.VarHandleAt(1)
	c.ReplaceGroups([]Group{{ID: 0, Writable: false, Vars: []VarHandle{v0, v1}, Size: 3}})

	gh, ok := c.GroupHandleAt(0)
	if !ok {
		t.Fatal("expected group handle")
	}
	g, ok := c.Group(gh)
	if !ok {
		t.Fatal("expected group dereference to succeed")
	}
	if g.Size != 3 || len(g.Vars) != 2 {
		t.Fatalf("unexpected group: %+v", g)
	}
}

func TestReplaceGroupsNilRollback(t *testing.T) {
	c := New()
	c.ReplaceGroups([]Group{{ID: 0}})
	gh, _ := c.GroupHandleAt(0)

	c.ReplaceGroups(nil)
	if len(c.Groups()) != 0 {
		t.Fatal("expected groups list to be fully zeroed")
	}
	if c.ContainsGroup(gh) {
		t.Fatal("expected handle minted before rollback to be rejected")
	}
}
