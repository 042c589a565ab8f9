package stage

import (
	"testing"

	"github.com/stagecue/stagecue/pkg/math"
)

func TestWorldTransformNoParent(t *testing.T) {
	reg := buildRegistry(t, "a")
	local := Transform{
		Position: math.Vec3{X: 1, Y: 2, Z: 3},
		Rotation: math.Vec3{Y: 0.5},
		Scale:    math.Vec3{X: 2, Y: 2, Z: 2},
	}
	reg.Get("a").Transform = local

	got := Resolver{}.WorldTransform(reg.Get("a"), reg)
	if got != local {
		t.Errorf("WorldTransform() = %+v, want local %+v", got, local)
	}
}

func TestWorldTransformDanglingParent(t *testing.T) {
	// A dangling parent reference behaves exactly like no parent.
	reg := buildRegistry(t, "a", "b")
	if err := reg.Link("b", "a"); err != nil {
		t.Fatalf("Link() error: %v", err)
	}
	if err := reg.Remove("a"); err != nil {
		t.Fatalf("Remove() error: %v", err)
	}

	local := Transform{Position: math.Vec3{X: 4}, Scale: math.Vec3{X: 1, Y: 1, Z: 1}}
	reg.Get("b").Transform = local

	got := Resolver{}.WorldTransform(reg.Get("b"), reg)
	if got != local {
		t.Errorf("WorldTransform() with dangling parent = %+v, want local %+v", got, local)
	}
}

func TestWorldTransformParentOffset(t *testing.T) {
	// A at origin, B offset by [1,0,0] under A; moving A to [5,0,0]
	// resolves B at [6,0,0].
	reg := buildRegistry(t, "A", "B")
	if err := reg.Link("B", "A"); err != nil {
		t.Fatalf("Link() error: %v", err)
	}
	reg.Get("B").Transform.Position = math.Vec3{X: 1}

	if err := reg.UpdateTransform("A",
		math.Vec3{X: 5}, math.Vec3{}, math.Vec3{X: 1, Y: 1, Z: 1}); err != nil {
		t.Fatalf("UpdateTransform() error: %v", err)
	}

	got := Resolver{}.WorldTransform(reg.Get("B"), reg)
	want := math.Vec3{X: 6}
	if got.Position != want {
		t.Errorf("world position = %v, want %v", got.Position, want)
	}
}

func TestWorldTransformSumsRotationNotScale(t *testing.T) {
	reg := buildRegistry(t, "p", "c")
	if err := reg.Link("c", "p"); err != nil {
		t.Fatalf("Link() error: %v", err)
	}
	reg.Get("p").Transform.Rotation = math.Vec3{Y: 0.5}
	reg.Get("p").Transform.Scale = math.Vec3{X: 4, Y: 4, Z: 4}
	reg.Get("c").Transform.Rotation = math.Vec3{Y: 0.25}

	got := Resolver{}.WorldTransform(reg.Get("c"), reg)
	if got.Rotation != (math.Vec3{Y: 0.75}) {
		t.Errorf("world rotation = %v, want summed %v", got.Rotation, math.Vec3{Y: 0.75})
	}
	// Parent scale is not inherited
	if got.Scale != (math.Vec3{X: 1, Y: 1, Z: 1}) {
		t.Errorf("world scale = %v, want child scale", got.Scale)
	}
}

func TestWorldTransformOneLevelOnly(t *testing.T) {
	// a has parent b, b has parent c: a incorporates b's offset but not
	// c's in the default single-level mode.
	reg := buildRegistry(t, "a", "b", "c")
	if err := reg.Link("a", "b"); err != nil {
		t.Fatalf("Link(a, b) error: %v", err)
	}
	if err := reg.Link("b", "c"); err != nil {
		t.Fatalf("Link(b, c) error: %v", err)
	}
	reg.Get("a").Transform.Position = math.Vec3{X: 1}
	reg.Get("b").Transform.Position = math.Vec3{X: 10}
	reg.Get("c").Transform.Position = math.Vec3{X: 100}

	got := Resolver{}.WorldTransform(reg.Get("a"), reg)
	want := math.Vec3{X: 11}
	if got.Position != want {
		t.Errorf("single-level world position = %v, want %v", got.Position, want)
	}
}

func TestWorldTransformDeepChain(t *testing.T) {
	reg := buildRegistry(t, "a", "b", "c")
	if err := reg.Link("a", "b"); err != nil {
		t.Fatalf("Link(a, b) error: %v", err)
	}
	if err := reg.Link("b", "c"); err != nil {
		t.Fatalf("Link(b, c) error: %v", err)
	}
	reg.Get("a").Transform.Position = math.Vec3{X: 1}
	reg.Get("b").Transform.Position = math.Vec3{X: 10}
	reg.Get("c").Transform.Position = math.Vec3{X: 100}

	got := Resolver{Deep: true}.WorldTransform(reg.Get("a"), reg)
	want := math.Vec3{X: 111}
	if got.Position != want {
		t.Errorf("deep world position = %v, want %v", got.Position, want)
	}
}
