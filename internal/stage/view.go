package stage

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/stagecue/stagecue/internal/logger"
	"github.com/stagecue/stagecue/pkg/math"
)

// CameraPose is a camera state: position, look-at target and field of
// view in degrees.
type CameraPose struct {
	Position math.Vec3 `json:"position"`
	Target   math.Vec3 `json:"target"`
	FOV      float32   `json:"fov"`
}

// View is a saved camera pose, independent of object cues.
type View struct {
	ID     string     `json:"id"`
	Name   string     `json:"name"`
	Camera CameraPose `json:"camera"`
	Order  int        `json:"order"`
}

// ViewStore holds saved camera views, the active-view pointer, and the
// capture handshake with the render layer.
//
// Capture is a two-phase handshake because the live camera lives outside
// this store: RequestCapture records a one-shot request, and the render
// layer answers it with ConfirmCapture (appending the view) or
// CancelCapture (no live camera available). The store never imports
// rendering primitives.
type ViewStore struct {
	views    []*View
	activeID string
	pending  bool

	// onActivate fires when a view becomes active, so the camera
	// animator can start a transition toward it.
	onActivate func(*View)
}

// NewViewStore creates an empty view store.
func NewViewStore() *ViewStore {
	return &ViewStore{}
}

// SetOnActivate registers the callback fired by SetActiveView.
func (s *ViewStore) SetOnActivate(fn func(*View)) {
	s.onActivate = fn
}

// Add appends a new view named "View N" with 1-based sequential order.
func (s *ViewStore) Add(camera CameraPose) *View {
	n := len(s.views) + 1
	view := &View{
		ID:     NewID(),
		Name:   fmt.Sprintf("View %d", n),
		Camera: camera,
		Order:  n,
	}
	s.views = append(s.views, view)
	logger.Info("view added", zap.String("id", view.ID), zap.String("name", view.Name))
	return view
}

// Remove deletes a view and clears the active pointer if it pointed here.
func (s *ViewStore) Remove(id string) error {
	for i, view := range s.views {
		if view.ID == id {
			s.views = append(s.views[:i], s.views[i+1:]...)
			if s.activeID == id {
				s.activeID = ""
			}
			logger.Info("view removed", zap.String("id", id))
			return nil
		}
	}
	return ErrNotFound
}

// SetActiveView points the live camera at a view, kicking off a smooth
// transition via the registered callback. An empty id clears the pointer
// without moving the camera, which is how manual orbiting away from a
// saved view is recorded.
func (s *ViewStore) SetActiveView(id string) error {
	if id == "" {
		s.activeID = ""
		return nil
	}
	view := s.Get(id)
	if view == nil {
		return ErrNotFound
	}
	s.activeID = id
	if s.onActivate != nil {
		s.onActivate(view)
	}
	return nil
}

// RequestCapture records a one-shot request for the render layer to read
// the live camera. Repeat requests before fulfillment coalesce.
func (s *ViewStore) RequestCapture() {
	s.pending = true
}

// CapturePending reports whether a capture request awaits fulfillment.
func (s *ViewStore) CapturePending() bool {
	return s.pending
}

// ConfirmCapture fulfils a pending request with the live camera pose and
// appends the new view. Without a pending request it is a no-op and
// returns nil.
func (s *ViewStore) ConfirmCapture(camera CameraPose) *View {
	if !s.pending {
		return nil
	}
	s.pending = false
	return s.Add(camera)
}

// CancelCapture drops a pending request. Used when no live camera is
// available to read; no malformed view is appended.
func (s *ViewStore) CancelCapture() {
	if s.pending {
		s.pending = false
		logger.Warn("view capture cancelled: no live camera")
	}
}

// Load replaces the whole view list, keeping the active pointer when it
// still resolves. No activation callback fires: loading a project must
// not move the camera. Used when loading a project.
func (s *ViewStore) Load(views []*View, activeID string) {
	s.views = append([]*View(nil), views...)
	s.pending = false
	s.activeID = ""
	if s.Get(activeID) != nil {
		s.activeID = activeID
	}
}

// Get returns a view by id, or nil.
func (s *ViewStore) Get(id string) *View {
	for _, view := range s.views {
		if view.ID == id {
			return view
		}
	}
	return nil
}

// All returns the views in order. The slice is a copy; the views are not.
func (s *ViewStore) All() []*View {
	out := make([]*View, len(s.views))
	copy(out, s.views)
	return out
}

// Count returns the number of views.
func (s *ViewStore) Count() int {
	return len(s.views)
}

// ActiveID returns the active view id, or empty.
func (s *ViewStore) ActiveID() string {
	return s.activeID
}

// ActiveView returns the active view, or nil.
func (s *ViewStore) ActiveView() *View {
	if s.activeID == "" {
		return nil
	}
	return s.Get(s.activeID)
}
