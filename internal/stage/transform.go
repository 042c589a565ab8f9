// Package stage implements the cue-and-transform state machine for stage
// previsualization: a registry of parent-linked objects, named cue
// snapshots, saved camera views, and the animators that move the live
// scene between them.
//
// Everything in this package is single-threaded and frame-driven. Stores
// mutate synchronously in response to user actions; animators advance via
// explicit Tick calls from the show loop. There is no locking because
// there is no concurrent access.
package stage

import (
	"github.com/google/uuid"

	"github.com/stagecue/stagecue/pkg/math"
)

// ObjectType categorizes an uploaded model.
type ObjectType string

const (
	TypeVenue       ObjectType = "venues"
	TypeStage       ObjectType = "stage"
	TypeStaticLED   ObjectType = "static_LED"
	TypeMovingLED   ObjectType = "moving_LED"
	TypeBasicCamera ObjectType = "basic_camera"
)

// Transform is an object's local position, rotation and scale.
// Rotation is Euler angles in radians.
type Transform struct {
	Position math.Vec3 `json:"pos"`
	Rotation math.Vec3 `json:"rot"`
	Scale    math.Vec3 `json:"scale"`
}

// IdentityTransform returns a transform at the origin with unit scale.
func IdentityTransform() Transform {
	return Transform{Scale: math.Vec3{X: 1, Y: 1, Z: 1}}
}

// StageObject is a placeable entity on the stage. The model reference is
// opaque: parsing and rendering belong to external layers.
type StageObject struct {
	ID         string     `json:"id"`
	ModelPath  string     `json:"model_path"`
	MaterialID string     `json:"material_id"`
	Type       ObjectType `json:"type"`
	MeshNames  []string   `json:"mesh_names,omitempty"`
	Transform  Transform  `json:"transform"`

	// ParentID references another object this one follows. Empty means
	// unparented. The chain is kept acyclic by Registry.Link.
	ParentID string `json:"parent_id,omitempty"`
}

// NewID returns a fresh unique identifier for stage entities.
func NewID() string {
	return uuid.NewString()
}
