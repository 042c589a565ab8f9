package stage

import (
	"errors"

	"go.uber.org/zap"

	"github.com/stagecue/stagecue/internal/logger"
)

// ErrEmptyName reports a cue created without a name.
var ErrEmptyName = errors.New("stage: cue name is empty")

// ObjectTransform is one object's local transform copied into a cue at
// snapshot time. Each entry is owned by the cue that holds it.
type ObjectTransform struct {
	ObjectID  string    `json:"id"`
	Transform Transform `json:"transform"`
}

// Cue is a named, ordered snapshot of every object's local transform.
// The cue at order 0 conventionally holds the rest state of the show.
type Cue struct {
	ID         string            `json:"id"`
	Name       string            `json:"name"`
	Order      int               `json:"order"`
	Transforms []ObjectTransform `json:"transforms"`
}

// CueStore holds the ordered cue list and the active-cue pointer. It
// snapshots from and restores into the object registry.
type CueStore struct {
	registry *Registry
	cues     []*Cue
	activeID string
}

// NewCueStore creates an empty cue store over the given registry.
func NewCueStore(registry *Registry) *CueStore {
	return &CueStore{registry: registry}
}

// snapshot copies every current object's local transform.
func (s *CueStore) snapshot() []ObjectTransform {
	objects := s.registry.All()
	out := make([]ObjectTransform, 0, len(objects))
	for _, obj := range objects {
		out = append(out, ObjectTransform{
			ObjectID:  obj.ID,
			Transform: obj.Transform,
		})
	}
	return out
}

// Create snapshots the full registry into a new cue appended at the end
// of the list, and makes it active.
func (s *CueStore) Create(name string) (*Cue, error) {
	if name == "" {
		return nil, ErrEmptyName
	}
	cue := &Cue{
		ID:         NewID(),
		Name:       name,
		Order:      len(s.cues),
		Transforms: s.snapshot(),
	}
	s.cues = append(s.cues, cue)
	s.activeID = cue.ID
	logger.Info("cue created",
		zap.String("id", cue.ID), zap.String("name", name), zap.Int("order", cue.Order))
	return cue, nil
}

// Overwrite replaces an existing cue's transforms with a fresh snapshot
// of the whole registry. Objects added since the cue's creation are
// captured; id, name and order are untouched.
func (s *CueStore) Overwrite(id string) error {
	cue := s.Get(id)
	if cue == nil {
		return ErrNotFound
	}
	cue.Transforms = s.snapshot()
	logger.Info("cue overwritten", zap.String("id", id), zap.String("name", cue.Name))
	return nil
}

// Delete removes a cue and clears the active pointer if it pointed here.
// Order values of the remaining cues are untouched; the first remaining
// cue keeps the rest-state convention. The store places no protection on
// cue 0; confirmation is the caller's concern.
func (s *CueStore) Delete(id string) error {
	for i, cue := range s.cues {
		if cue.ID == id {
			s.cues = append(s.cues[:i], s.cues[i+1:]...)
			if s.activeID == id {
				s.activeID = ""
			}
			logger.Info("cue deleted", zap.String("id", id), zap.String("name", cue.Name))
			return nil
		}
	}
	return ErrNotFound
}

// Apply copies every snapshotted transform back into the registry and
// marks the cue active. Entries whose object no longer exists are
// skipped; objects missing from the snapshot keep their transforms. The
// restore is synchronous and total.
func (s *CueStore) Apply(id string) error {
	cue := s.Get(id)
	if cue == nil {
		return ErrNotFound
	}
	restored := 0
	for _, entry := range cue.Transforms {
		t := entry.Transform
		if err := s.registry.UpdateTransform(entry.ObjectID, t.Position, t.Rotation, t.Scale); err != nil {
			continue // stale entry, best-effort restore
		}
		restored++
	}
	s.activeID = id
	logger.Debug("cue applied",
		zap.String("id", id), zap.String("name", cue.Name),
		zap.Int("restored", restored), zap.Int("stale", len(cue.Transforms)-restored))
	return nil
}

// Load replaces the whole cue list, keeping the active pointer when it
// still resolves. Used when loading a project.
func (s *CueStore) Load(cues []*Cue, activeID string) {
	s.cues = append([]*Cue(nil), cues...)
	s.activeID = ""
	if s.Get(activeID) != nil {
		s.activeID = activeID
	}
}

// Get returns a cue by id, or nil.
func (s *CueStore) Get(id string) *Cue {
	for _, cue := range s.cues {
		if cue.ID == id {
			return cue
		}
	}
	return nil
}

// At returns the cue at the given list position, or nil.
func (s *CueStore) At(index int) *Cue {
	if index < 0 || index >= len(s.cues) {
		return nil
	}
	return s.cues[index]
}

// All returns the cues in order. The slice is a copy; the cues are not.
func (s *CueStore) All() []*Cue {
	out := make([]*Cue, len(s.cues))
	copy(out, s.cues)
	return out
}

// Count returns the number of cues.
func (s *CueStore) Count() int {
	return len(s.cues)
}

// ActiveID returns the active cue id, or empty.
func (s *CueStore) ActiveID() string {
	return s.activeID
}
