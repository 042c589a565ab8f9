// Package show owns the frame loop that ties the stores together: cue
// playback, view transitions, capture requests and per-object transform
// chasing all advance once per Frame call. The loop is single-threaded;
// every mutation of the stores happens between frames or inside one.
package show

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/stagecue/stagecue/internal/camera"
	"github.com/stagecue/stagecue/internal/config"
	"github.com/stagecue/stagecue/internal/logger"
	"github.com/stagecue/stagecue/internal/picking"
	"github.com/stagecue/stagecue/internal/project"
	"github.com/stagecue/stagecue/internal/stage"
	"github.com/stagecue/stagecue/pkg/math"
)

// ErrRestCue reports an attempt to delete the first cue, which holds
// the rest state of the show.
var ErrRestCue = errors.New("show: the rest cue cannot be deleted")

// ObjectFrame is one object's drawable state for the current frame.
type ObjectFrame struct {
	Object *stage.StageObject
	Pose   stage.DisplayPose
	Model  math.Mat4
}

// FrameState is everything the render layer needs for one frame, plus
// whether anything is still in motion and the loop must keep rendering.
type FrameState struct {
	Objects     []ObjectFrame
	Camera      stage.CameraPose
	NeedsRender bool
}

// Show wires the stores, the camera rig and the animators into a single
// frame-driven loop.
type Show struct {
	cfg *config.Config

	registry *stage.Registry
	cues     *stage.CueStore
	views    *stage.ViewStore
	content  *stage.ContentStore
	player   *stage.Player
	resolver stage.Resolver
	settings project.Settings

	rig      *camera.Rig
	camAnim  *stage.CameraAnimator
	objAnims map[string]*stage.ObjectAnimator
	lerpCfg  stage.ObjectLerpConfig

	// pendingView holds a just-activated view until the next frame, when
	// the tween can start from a known time.
	pendingView *stage.CameraPose
}

// New builds a show around empty stores, wired per the config.
func New(cfg *config.Config) *Show {
	registry := stage.NewRegistry()
	cues := stage.NewCueStore(registry)

	s := &Show{
		cfg:      cfg,
		registry: registry,
		cues:     cues,
		views:    stage.NewViewStore(),
		content:  stage.NewContentStore(),
		player:   stage.NewPlayer(cues, cfg.Stage.DwellDuration.Std()),
		resolver: stage.Resolver{Deep: cfg.Stage.DeepHierarchy},
		settings: project.DefaultSettings(),
		rig:      camera.NewRig(cfg.Camera.DefaultFOV),
		camAnim:  stage.NewCameraAnimator(cfg.Camera.TransitionDuration.Std()),
		objAnims: make(map[string]*stage.ObjectAnimator),
		lerpCfg: stage.ObjectLerpConfig{
			DistanceFactor: cfg.Stage.LerpDistanceFactor,
			MinSeconds:     cfg.Stage.LerpMinSeconds,
			MaxSeconds:     cfg.Stage.LerpMaxSeconds,
		},
	}

	s.views.SetOnActivate(func(v *stage.View) {
		pose := v.Camera
		s.pendingView = &pose
	})
	s.rig.SetOnManualMove(func() {
		s.camAnim.Stop()
		s.pendingView = nil
		if s.views.ActiveID() != "" {
			if err := s.views.SetActiveView(""); err != nil {
				logger.Warn("clearing active view", zap.Error(err))
			}
		}
	})

	return s
}

// Registry exposes the object store.
func (s *Show) Registry() *stage.Registry { return s.registry }

// Cues exposes the cue store.
func (s *Show) Cues() *stage.CueStore { return s.cues }

// Views exposes the camera view store.
func (s *Show) Views() *stage.ViewStore { return s.views }

// Content exposes the content texture store.
func (s *Show) Content() *stage.ContentStore { return s.content }

// Player exposes the cue player.
func (s *Show) Player() *stage.Player { return s.player }

// Rig exposes the live camera rig.
func (s *Show) Rig() *camera.Rig { return s.rig }

// Settings returns the current scene settings.
func (s *Show) Settings() project.Settings { return s.settings }

// SetSettings replaces the scene settings.
func (s *Show) SetSettings(settings project.Settings) { s.settings = settings }

// Frame advances everything by one tick and returns the drawable state.
func (s *Show) Frame(now time.Time) FrameState {
	if s.views.CapturePending() {
		v := s.views.ConfirmCapture(s.rig.Pose())
		logger.Info("captured camera view",
			zap.String("id", v.ID), zap.String("name", v.Name))
	}

	s.player.Update(now)

	if s.pendingView != nil {
		s.camAnim.Start(now, s.rig.Pose(), *s.pendingView)
		s.pendingView = nil
	}
	if s.camAnim.Active() {
		s.rig.SetPose(s.camAnim.Tick(now))
	}

	objects := s.registry.All()
	frames := make([]ObjectFrame, 0, len(objects))
	moving := false
	for _, obj := range objects {
		anim, ok := s.objAnims[obj.ID]
		if !ok {
			anim = stage.NewObjectAnimator(s.lerpCfg)
			s.objAnims[obj.ID] = anim
		}

		world := s.resolver.WorldTransform(obj, s.registry)
		pose, settling := anim.Tick(now, world)
		if settling {
			moving = true
		}

		model := math.Translate(pose.Position.X, pose.Position.Y, pose.Position.Z).
			Mul(pose.Rotation.ToMat4()).
			Mul(math.Scale(pose.Scale.X, pose.Scale.Y, pose.Scale.Z))
		frames = append(frames, ObjectFrame{Object: obj, Pose: pose, Model: model})
	}
	s.pruneAnimators(objects)

	return FrameState{
		Objects:     frames,
		Camera:      s.rig.Pose(),
		NeedsRender: moving || s.camAnim.Active() || s.player.Playing(),
	}
}

// DeleteCue removes a cue through the store, refusing to delete the
// rest cue at the head of the list.
func (s *Show) DeleteCue(id string) error {
	if first := s.cues.At(0); first != nil && first.ID == id {
		return ErrRestCue
	}
	return s.cues.Delete(id)
}

// Pick selects the nearest object under the screen point and returns
// it, or clears the selection and returns nil when the click hits
// nothing.
func (s *Show) Pick(screenX, screenY, viewportW, viewportH float32) *stage.StageObject {
	ray := picking.ScreenRay(s.rig.Pose(), screenX, screenY, viewportW, viewportH)

	var best *stage.StageObject
	var bestT float32
	for _, obj := range s.registry.All() {
		world := s.resolver.WorldTransform(obj, s.registry)
		box := picking.ObjectAABB(world.Position, world.Scale)
		t, hit := ray.IntersectAABB(box)
		if !hit {
			continue
		}
		if best == nil || t < bestT {
			best, bestT = obj, t
		}
	}

	if best == nil {
		_ = s.registry.Select("")
		return nil
	}
	_ = s.registry.Select(best.ID)
	return best
}

// pruneAnimators drops chase state for objects that no longer exist.
func (s *Show) pruneAnimators(objects []*stage.StageObject) {
	if len(s.objAnims) == len(objects) {
		return
	}
	alive := make(map[string]struct{}, len(objects))
	for _, obj := range objects {
		alive[obj.ID] = struct{}{}
	}
	for id := range s.objAnims {
		if _, ok := alive[id]; !ok {
			delete(s.objAnims, id)
		}
	}
}

// Run drives the loop at the configured frame rate until the context is
// cancelled.
func (s *Show) Run(ctx context.Context) error {
	interval := time.Second / time.Duration(s.cfg.Show.FrameRate)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	logger.Info("show loop started",
		zap.Int("frame_rate", s.cfg.Show.FrameRate))

	for {
		select {
		case <-ctx.Done():
			logger.Info("show loop stopped")
			return ctx.Err()
		case now := <-ticker.C:
			s.Frame(now)
		}
	}
}

// SaveProject captures the stores and writes them to path.
func (s *Show) SaveProject(path string) error {
	state := project.Capture(s.registry, s.cues, s.views, s.content, s.settings)
	if err := project.Save(path, state); err != nil {
		return err
	}
	logger.Info("project saved", zap.String("path", path),
		zap.Int("objects", s.registry.Count()),
		zap.Int("cues", s.cues.Count()))
	return nil
}

// LoadProject reads path and replaces the store contents. Animators are
// reset so nothing chases stale positions, and the camera stays where it
// is until a view is activated.
func (s *Show) LoadProject(path string) error {
	state, err := project.Load(path)
	if err != nil {
		return err
	}

	project.Restore(state, s.registry, s.cues, s.views, s.content)
	s.settings = state.Settings
	s.objAnims = make(map[string]*stage.ObjectAnimator)
	s.pendingView = nil
	s.camAnim.Stop()

	logger.Info("project loaded", zap.String("path", path),
		zap.Int("objects", s.registry.Count()),
		zap.Int("views", s.views.Count()),
		zap.Int("cues", s.cues.Count()))
	return nil
}
