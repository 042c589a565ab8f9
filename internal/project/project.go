// Package project persists the full editor state as plain JSON: stage
// objects, camera views, cues, content references, scene settings and the
// active-id pointers. The schema is deliberately flat and versionless;
// every field round-trips exactly.
package project

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/stagecue/stagecue/internal/stage"
)

// RenderMode selects the preview shading style.
type RenderMode string

const (
	RenderWireframe RenderMode = "wireframe"
	RenderBeauty    RenderMode = "beauty"
	RenderClay      RenderMode = "clay"
)

// Settings holds per-project scene tuning, stored verbatim for the
// render layer.
type Settings struct {
	RenderMode           RenderMode `json:"render_mode"`
	AmbientIntensity     float32    `json:"ambient_intensity"`
	DirectionalIntensity float32    `json:"directional_intensity"`
	BloomIntensity       float32    `json:"bloom_intensity"`
	BloomThreshold       float32    `json:"bloom_threshold"`
}

// DefaultSettings returns the scene tuning new projects start from.
func DefaultSettings() Settings {
	return Settings{
		RenderMode:           RenderBeauty,
		AmbientIntensity:     0.8,
		DirectionalIntensity: 1.2,
		BloomIntensity:       0.3,
		BloomThreshold:       0.5,
	}
}

// State is the complete serialized shape of a project.
type State struct {
	Objects  []*stage.StageObject    `json:"stage_objects"`
	Views    []*stage.View           `json:"views"`
	Cues     []*stage.Cue            `json:"cues"`
	Content  []*stage.ContentTexture `json:"content_textures"`
	Settings Settings                `json:"settings"`

	ActiveViewID     string `json:"active_view_id,omitempty"`
	ActiveCueID      string `json:"active_cue_id,omitempty"`
	ActiveContentID  string `json:"active_content_id,omitempty"`
	SelectedObjectID string `json:"selected_object_id,omitempty"`
}

// Capture collects the current state of all stores into a State.
func Capture(reg *stage.Registry, cues *stage.CueStore, views *stage.ViewStore,
	content *stage.ContentStore, settings Settings) *State {
	return &State{
		Objects:          reg.All(),
		Views:            views.All(),
		Cues:             cues.All(),
		Content:          content.All(),
		Settings:         settings,
		ActiveViewID:     views.ActiveID(),
		ActiveCueID:      cues.ActiveID(),
		ActiveContentID:  content.ActiveID(),
		SelectedObjectID: reg.SelectedID(),
	}
}

// Restore pushes a State into the stores, replacing their contents.
// Pointers to missing referents are dropped rather than kept dangling.
func Restore(s *State, reg *stage.Registry, cues *stage.CueStore,
	views *stage.ViewStore, content *stage.ContentStore) {
	reg.Load(s.Objects, s.SelectedObjectID)
	cues.Load(s.Cues, s.ActiveCueID)
	views.Load(s.Views, s.ActiveViewID)
	content.Load(s.Content, s.ActiveContentID)
}

// Save writes the state as indented JSON.
func Save(path string, s *State) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating project dir: %w", err)
	}

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding project: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}

// Load reads a project file.
func Load(path string) (*State, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading project %s: %w", path, err)
	}

	s := &State{Settings: DefaultSettings()}
	if err := json.Unmarshal(data, s); err != nil {
		return nil, fmt.Errorf("decoding project %s: %w", path, err)
	}
	return s, nil
}
