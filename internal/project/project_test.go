package project

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stagecue/stagecue/internal/stage"
	"github.com/stagecue/stagecue/pkg/math"
)

func buildStores(t *testing.T) (*stage.Registry, *stage.CueStore, *stage.ViewStore, *stage.ContentStore) {
	t.Helper()
	reg := stage.NewRegistry()
	for _, id := range []string{"truss", "ledwall", "speaker"} {
		obj := &stage.StageObject{
			ID:        id,
			ModelPath: "/models/" + id + ".glb",
			Type:      stage.TypeStage,
			Transform: stage.IdentityTransform(),
		}
		if err := reg.Add(obj); err != nil {
			t.Fatalf("Add(%q): %v", id, err)
		}
	}
	if err := reg.Link("ledwall", "truss"); err != nil {
		t.Fatalf("Link: %v", err)
	}
	reg.Select("speaker")

	cues := stage.NewCueStore(reg)
	if _, err := cues.Create("Opening"); err != nil {
		t.Fatalf("Create cue: %v", err)
	}

	views := stage.NewViewStore()
	v := views.Add(stage.CameraPose{
		Position: math.Vec3{X: 0, Y: 5, Z: 12},
		Target:   math.Vec3{X: 0, Y: 1, Z: 0},
		FOV:      50,
	})
	views.SetActiveView(v.ID)

	content := stage.NewContentStore()
	content.Add(&stage.ContentTexture{
		ID:       "tex-1",
		Name:     "intro loop",
		FilePath: "/content/intro.mp4",
		Type:     stage.TextureVideo,
	})

	return reg, cues, views, content
}

func TestSaveLoadRoundTrip(t *testing.T) {
	reg, cues, views, content := buildStores(t)
	path := filepath.Join(t.TempDir(), "show", "project.json")

	state := Capture(reg, cues, views, content, DefaultSettings())
	if err := Save(path, state); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if len(loaded.Objects) != 3 {
		t.Fatalf("loaded %d objects, want 3", len(loaded.Objects))
	}
	if loaded.SelectedObjectID != "speaker" {
		t.Errorf("selected = %q, want speaker", loaded.SelectedObjectID)
	}
	if len(loaded.Cues) != 1 || loaded.Cues[0].Name != "Opening" {
		t.Fatalf("cues not preserved: %+v", loaded.Cues)
	}
	if loaded.ActiveCueID != loaded.Cues[0].ID {
		t.Errorf("active cue = %q, want %q", loaded.ActiveCueID, loaded.Cues[0].ID)
	}
	if len(loaded.Views) != 1 || loaded.ActiveViewID != loaded.Views[0].ID {
		t.Errorf("views not preserved: %+v active=%q", loaded.Views, loaded.ActiveViewID)
	}
	if loaded.Settings != DefaultSettings() {
		t.Errorf("settings = %+v, want defaults", loaded.Settings)
	}

	// Parent links survive the round trip.
	var wall *stage.StageObject
	for _, o := range loaded.Objects {
		if o.ID == "ledwall" {
			wall = o
		}
	}
	if wall == nil || wall.ParentID != "truss" {
		t.Errorf("ledwall parent link lost: %+v", wall)
	}
	if wall != nil && wall.Type != stage.TypeStage {
		t.Errorf("object type = %q, want %q", wall.Type, stage.TypeStage)
	}
}

func TestRestoreReplacesStoreContents(t *testing.T) {
	reg, cues, views, content := buildStores(t)
	state := Capture(reg, cues, views, content, DefaultSettings())

	reg2 := stage.NewRegistry()
	if err := reg2.Add(&stage.StageObject{ID: "leftover", Transform: stage.IdentityTransform()}); err != nil {
		t.Fatalf("Add: %v", err)
	}
	cues2 := stage.NewCueStore(reg2)
	views2 := stage.NewViewStore()
	content2 := stage.NewContentStore()

	Restore(state, reg2, cues2, views2, content2)

	if reg2.Count() != 3 {
		t.Errorf("registry count = %d, want 3", reg2.Count())
	}
	if reg2.Get("leftover") != nil {
		t.Error("pre-existing object survived restore")
	}
	if reg2.SelectedID() != "speaker" {
		t.Errorf("selection = %q, want speaker", reg2.SelectedID())
	}
	if cues2.Count() != 1 {
		t.Errorf("cue count = %d, want 1", cues2.Count())
	}
	if views2.Count() != 1 || views2.ActiveID() == "" {
		t.Errorf("views not restored: count=%d active=%q", views2.Count(), views2.ActiveID())
	}
	if content2.ActiveID() != "tex-1" {
		t.Errorf("content active = %q, want tex-1", content2.ActiveID())
	}
}

func TestRestoreDropsDanglingPointers(t *testing.T) {
	state := &State{
		Objects:          []*stage.StageObject{{ID: "a", Transform: stage.IdentityTransform()}},
		Settings:         DefaultSettings(),
		ActiveViewID:     "gone",
		ActiveCueID:      "gone",
		ActiveContentID:  "gone",
		SelectedObjectID: "gone",
	}

	reg := stage.NewRegistry()
	cues := stage.NewCueStore(reg)
	views := stage.NewViewStore()
	content := stage.NewContentStore()
	Restore(state, reg, cues, views, content)

	if reg.SelectedID() != "" {
		t.Errorf("selection = %q, want empty", reg.SelectedID())
	}
	if cues.ActiveID() != "" || views.ActiveID() != "" || content.ActiveID() != "" {
		t.Errorf("dangling active ids kept: cue=%q view=%q content=%q",
			cues.ActiveID(), views.ActiveID(), content.ActiveID())
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestLoadFillsDefaultSettings(t *testing.T) {
	path := filepath.Join(t.TempDir(), "project.json")
	if err := os.WriteFile(path, []byte(`{"stage_objects": []}`), 0644); err != nil {
		t.Fatal(err)
	}
	s, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if s.Settings != DefaultSettings() {
		t.Errorf("settings = %+v, want defaults", s.Settings)
	}
}
