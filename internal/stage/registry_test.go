package stage

import (
	"errors"
	"testing"

	"github.com/stagecue/stagecue/pkg/math"
)

func newObject(id string) *StageObject {
	return &StageObject{
		ID:        id,
		ModelPath: "models/" + id + ".glb",
		Type:      TypeStage,
		Transform: IdentityTransform(),
	}
}

func buildRegistry(t *testing.T, ids ...string) *Registry {
	t.Helper()
	reg := NewRegistry()
	for _, id := range ids {
		if err := reg.Add(newObject(id)); err != nil {
			t.Fatalf("Add(%q) error: %v", id, err)
		}
	}
	return reg
}

func TestAddDuplicateID(t *testing.T) {
	reg := buildRegistry(t, "a")
	if err := reg.Add(newObject("a")); !errors.Is(err, ErrDuplicateID) {
		t.Errorf("Add(duplicate) error = %v, want ErrDuplicateID", err)
	}
	if reg.Count() != 1 {
		t.Errorf("Count() = %d after rejected add, want 1", reg.Count())
	}
}

func TestRemove(t *testing.T) {
	reg := buildRegistry(t, "a", "b", "c")

	if err := reg.Remove("b"); err != nil {
		t.Fatalf("Remove() error: %v", err)
	}
	if reg.Get("b") != nil {
		t.Error("removed object still resolvable")
	}
	if reg.Count() != 2 {
		t.Errorf("Count() = %d, want 2", reg.Count())
	}
	if err := reg.Remove("b"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Remove(missing) error = %v, want ErrNotFound", err)
	}
}

func TestRemoveClearsSelection(t *testing.T) {
	reg := buildRegistry(t, "a", "b")
	if err := reg.Select("a"); err != nil {
		t.Fatalf("Select() error: %v", err)
	}
	if err := reg.Remove("a"); err != nil {
		t.Fatalf("Remove() error: %v", err)
	}
	if got := reg.SelectedID(); got != "" {
		t.Errorf("SelectedID() = %q after removing selection, want empty", got)
	}
}

func TestRemoveLeavesParentDangling(t *testing.T) {
	// Deleting a parent does not unlink children; the resolver treats
	// the dangling reference as no parent.
	reg := buildRegistry(t, "parent", "child")
	if err := reg.Link("child", "parent"); err != nil {
		t.Fatalf("Link() error: %v", err)
	}
	if err := reg.Remove("parent"); err != nil {
		t.Fatalf("Remove() error: %v", err)
	}
	if got := reg.Get("child").ParentID; got != "parent" {
		t.Errorf("child.ParentID = %q, want dangling %q", got, "parent")
	}
}

func TestUpdateTransform(t *testing.T) {
	reg := buildRegistry(t, "a")

	pos := math.Vec3{X: 1, Y: 2, Z: 3}
	rot := math.Vec3{X: 0.5}
	scale := math.Vec3{X: 2, Y: 2, Z: 2}
	if err := reg.UpdateTransform("a", pos, rot, scale); err != nil {
		t.Fatalf("UpdateTransform() error: %v", err)
	}

	got := reg.Get("a").Transform
	want := Transform{Position: pos, Rotation: rot, Scale: scale}
	if got != want {
		t.Errorf("Transform = %+v, want %+v", got, want)
	}

	if err := reg.UpdateTransform("missing", pos, rot, scale); !errors.Is(err, ErrNotFound) {
		t.Errorf("UpdateTransform(missing) error = %v, want ErrNotFound", err)
	}
}

func TestLinkSelfParentRejected(t *testing.T) {
	reg := buildRegistry(t, "x")
	if err := reg.Link("x", "x"); !errors.Is(err, ErrSelfParent) {
		t.Errorf("Link(x, x) error = %v, want ErrSelfParent", err)
	}
	if got := reg.Get("x").ParentID; got != "" {
		t.Errorf("x.ParentID = %q after rejected link, want empty", got)
	}
}

func TestLinkDirectCycleRejected(t *testing.T) {
	reg := buildRegistry(t, "a", "b")
	if err := reg.Link("b", "a"); err != nil {
		t.Fatalf("Link(b, a) error: %v", err)
	}
	if err := reg.Link("a", "b"); !errors.Is(err, ErrCycle) {
		t.Errorf("Link(a, b) error = %v, want ErrCycle", err)
	}
	if got := reg.Get("a").ParentID; got != "" {
		t.Errorf("a.ParentID = %q after rejected link, want empty", got)
	}
}

func TestLinkDeepCycleRejected(t *testing.T) {
	// a <- b <- c; closing c -> a would loop three levels up
	reg := buildRegistry(t, "a", "b", "c")
	if err := reg.Link("b", "a"); err != nil {
		t.Fatalf("Link(b, a) error: %v", err)
	}
	if err := reg.Link("c", "b"); err != nil {
		t.Fatalf("Link(c, b) error: %v", err)
	}
	if err := reg.Link("a", "c"); !errors.Is(err, ErrCycle) {
		t.Errorf("Link(a, c) error = %v, want ErrCycle", err)
	}
}

func TestLinkUnlink(t *testing.T) {
	reg := buildRegistry(t, "a", "b")
	if err := reg.Link("b", "a"); err != nil {
		t.Fatalf("Link() error: %v", err)
	}
	if err := reg.Link("b", ""); err != nil {
		t.Fatalf("Link(unlink) error: %v", err)
	}
	if got := reg.Get("b").ParentID; got != "" {
		t.Errorf("b.ParentID = %q after unlink, want empty", got)
	}
}

func TestLinkUnknownIDs(t *testing.T) {
	reg := buildRegistry(t, "a")
	if err := reg.Link("missing", "a"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Link(missing child) error = %v, want ErrNotFound", err)
	}
	if err := reg.Link("a", "missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Link(missing parent) error = %v, want ErrNotFound", err)
	}
}

func TestAvailableParents(t *testing.T) {
	// a <- b <- c: valid parents for "a" exclude itself and both of its
	// descendants; "d" stays available.
	reg := buildRegistry(t, "a", "b", "c", "d")
	if err := reg.Link("b", "a"); err != nil {
		t.Fatalf("Link(b, a) error: %v", err)
	}
	if err := reg.Link("c", "b"); err != nil {
		t.Fatalf("Link(c, b) error: %v", err)
	}

	got := reg.AvailableParents("a")
	if len(got) != 1 || got[0].ID != "d" {
		ids := make([]string, len(got))
		for i, o := range got {
			ids[i] = o.ID
		}
		t.Errorf("AvailableParents(a) = %v, want [d]", ids)
	}
}

func TestSelect(t *testing.T) {
	reg := buildRegistry(t, "a")
	if err := reg.Select("missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Select(missing) error = %v, want ErrNotFound", err)
	}
	if err := reg.Select("a"); err != nil {
		t.Fatalf("Select() error: %v", err)
	}
	if got := reg.SelectedID(); got != "a" {
		t.Errorf("SelectedID() = %q, want %q", got, "a")
	}
	if err := reg.Select(""); err != nil {
		t.Fatalf("Select(clear) error: %v", err)
	}
	if got := reg.SelectedID(); got != "" {
		t.Errorf("SelectedID() = %q after clear, want empty", got)
	}
}
