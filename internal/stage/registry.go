package stage

import (
	"errors"

	"go.uber.org/zap"

	"github.com/stagecue/stagecue/internal/logger"
	"github.com/stagecue/stagecue/pkg/math"
)

var (
	// ErrNotFound reports an id that resolves to no object.
	ErrNotFound = errors.New("stage: object not found")
	// ErrDuplicateID reports an id collision on add.
	ErrDuplicateID = errors.New("stage: duplicate object id")
	// ErrSelfParent reports an attempt to parent an object to itself.
	ErrSelfParent = errors.New("stage: object cannot be its own parent")
	// ErrCycle reports a link that would close a parent loop.
	ErrCycle = errors.New("stage: link would create a parent cycle")
)

// Registry holds all placeable stage objects in insertion order.
type Registry struct {
	objects []*StageObject
	byID    map[string]*StageObject

	selectedID string
}

// NewRegistry creates an empty object registry.
func NewRegistry() *Registry {
	return &Registry{
		byID: make(map[string]*StageObject),
	}
}

// Add appends a new object. The id must not collide with an existing one.
func (r *Registry) Add(obj *StageObject) error {
	if _, exists := r.byID[obj.ID]; exists {
		return ErrDuplicateID
	}
	r.objects = append(r.objects, obj)
	r.byID[obj.ID] = obj
	logger.Debug("object added", zap.String("id", obj.ID), zap.String("model", obj.ModelPath))
	return nil
}

// Remove deletes the object. Cue snapshots referencing the id stay as
// they are and get skipped on apply; child objects keep their dangling
// ParentID and the resolver falls back to their local transform.
func (r *Registry) Remove(id string) error {
	obj, exists := r.byID[id]
	if !exists {
		return ErrNotFound
	}
	delete(r.byID, id)
	for i, o := range r.objects {
		if o == obj {
			r.objects = append(r.objects[:i], r.objects[i+1:]...)
			break
		}
	}
	if r.selectedID == id {
		r.selectedID = ""
	}
	logger.Debug("object removed", zap.String("id", id))
	return nil
}

// Get returns an object by id, or nil.
func (r *Registry) Get(id string) *StageObject {
	return r.byID[id]
}

// All returns all objects in insertion order. The slice is a copy; the
// objects are not.
func (r *Registry) All() []*StageObject {
	out := make([]*StageObject, len(r.objects))
	copy(out, r.objects)
	return out
}

// Count returns the number of objects.
func (r *Registry) Count() int {
	return len(r.objects)
}

// UpdateTransform replaces the object's local transform wholesale.
func (r *Registry) UpdateTransform(id string, position, rotation, scale math.Vec3) error {
	obj, exists := r.byID[id]
	if !exists {
		return ErrNotFound
	}
	obj.Transform = Transform{Position: position, Rotation: rotation, Scale: scale}
	return nil
}

// Link sets or clears an object's parent. An empty parentID unlinks.
// Self-parenting and links that would close a cycle are rejected with no
// state change.
func (r *Registry) Link(childID, parentID string) error {
	child, exists := r.byID[childID]
	if !exists {
		return ErrNotFound
	}
	if parentID == "" {
		child.ParentID = ""
		return nil
	}
	if parentID == childID {
		logger.Warn("link rejected: self-parent", zap.String("id", childID))
		return ErrSelfParent
	}
	parent, exists := r.byID[parentID]
	if !exists {
		return ErrNotFound
	}
	if r.hasAncestor(parent, childID) {
		logger.Warn("link rejected: cycle",
			zap.String("child", childID), zap.String("parent", parentID))
		return ErrCycle
	}
	child.ParentID = parentID
	logger.Debug("object linked", zap.String("child", childID), zap.String("parent", parentID))
	return nil
}

// hasAncestor walks the parent chain from obj and reports whether id
// appears in it. The walk is bounded by the registry size so a corrupt
// chain cannot loop forever.
func (r *Registry) hasAncestor(obj *StageObject, id string) bool {
	for steps := 0; obj != nil && steps <= len(r.objects); steps++ {
		if obj.ID == id {
			return true
		}
		obj = r.byID[obj.ParentID]
	}
	return false
}

// AvailableParents lists every object the given child could link to
// without creating a cycle: itself and its own descendants are excluded.
func (r *Registry) AvailableParents(childID string) []*StageObject {
	out := make([]*StageObject, 0, len(r.objects))
	for _, candidate := range r.objects {
		if candidate.ID == childID {
			continue
		}
		if r.hasAncestor(candidate, childID) {
			continue
		}
		out = append(out, candidate)
	}
	return out
}

// Load replaces the whole object set, keeping the given selection when
// it still resolves. Used when loading a project.
func (r *Registry) Load(objects []*StageObject, selectedID string) {
	r.objects = make([]*StageObject, 0, len(objects))
	r.byID = make(map[string]*StageObject, len(objects))
	for _, obj := range objects {
		if _, exists := r.byID[obj.ID]; exists {
			logger.Warn("duplicate object id in loaded project, skipping", zap.String("id", obj.ID))
			continue
		}
		r.objects = append(r.objects, obj)
		r.byID[obj.ID] = obj
	}
	r.selectedID = ""
	if _, exists := r.byID[selectedID]; exists {
		r.selectedID = selectedID
	}
}

// Select marks an object as the current selection. An empty id clears it.
func (r *Registry) Select(id string) error {
	if id == "" {
		r.selectedID = ""
		return nil
	}
	if _, exists := r.byID[id]; !exists {
		return ErrNotFound
	}
	r.selectedID = id
	return nil
}

// SelectedID returns the currently selected object id, or empty.
func (r *Registry) SelectedID() string {
	return r.selectedID
}
