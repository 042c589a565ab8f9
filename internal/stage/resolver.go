package stage

// Resolver computes world transforms from parent offsets. It only reads
// registry state and runs once per object per frame, so every lookup is
// a map access plus arithmetic.
//
// The offset model is a simplified composition: positions and Euler
// rotations sum component-wise and scale is never inherited. It is not a
// true matrix hierarchy, matching how existing projects were authored.
type Resolver struct {
	// Deep walks the whole ancestor chain instead of the single direct
	// parent. Off by default: legacy projects were saved against
	// one-level resolution and deeper chains would shift.
	Deep bool
}

// WorldTransform returns the object's effective transform. A missing or
// dangling parent reference behaves exactly like no parent.
func (rv Resolver) WorldTransform(obj *StageObject, reg *Registry) Transform {
	world := obj.Transform
	if obj.ParentID == "" {
		return world
	}

	if !rv.Deep {
		parent := reg.Get(obj.ParentID)
		if parent == nil {
			return world
		}
		world.Position = world.Position.Add(parent.Transform.Position)
		world.Rotation = world.Rotation.Add(parent.Transform.Rotation)
		return world
	}

	// Deep mode: accumulate offsets up the chain. Link keeps the graph
	// acyclic; the step bound guards against corrupt loaded data.
	ancestor := reg.Get(obj.ParentID)
	for steps := 0; ancestor != nil && steps <= reg.Count(); steps++ {
		world.Position = world.Position.Add(ancestor.Transform.Position)
		world.Rotation = world.Rotation.Add(ancestor.Transform.Rotation)
		ancestor = reg.Get(ancestor.ParentID)
	}
	return world
}
