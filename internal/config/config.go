// Package config handles stagecue configuration loading and management.
package config

import (
	"fmt"
	"time"

	"gopkg.in/yaml.v3"
)

// Duration wraps time.Duration so YAML files can say "800ms" or "3s".
type Duration time.Duration

// Std returns the wrapped time.Duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

func (d Duration) String() string {
	return time.Duration(d).String()
}

func (d Duration) MarshalYAML() (interface{}, error) {
	return time.Duration(d).String(), nil
}

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	parsed, err := time.ParseDuration(value.Value)
	if err != nil {
		return fmt.Errorf("parsing duration %q: %w", value.Value, err)
	}
	*d = Duration(parsed)
	return nil
}

// Config holds all stagecue settings.
type Config struct {
	Stage   StageConfig   `yaml:"stage"`
	Camera  CameraConfig  `yaml:"camera"`
	Show    ShowConfig    `yaml:"show"`
	Project ProjectConfig `yaml:"project"`
	Assets  AssetsConfig  `yaml:"assets"`
	Logging LoggingConfig `yaml:"logging"`
}

// StageConfig holds object hierarchy and cue playback settings.
type StageConfig struct {
	// DwellDuration is how long each cue holds during autoplay.
	DwellDuration Duration `yaml:"dwell_duration"`
	// DeepHierarchy resolves the full parent chain instead of the
	// single-level offset used by saved legacy projects.
	DeepHierarchy bool `yaml:"deep_hierarchy"`
	// LerpDistanceFactor scales object travel distance into transition
	// seconds before clamping.
	LerpDistanceFactor float32 `yaml:"lerp_distance_factor"`
	// LerpMinSeconds bounds the shortest object transition.
	LerpMinSeconds float32 `yaml:"lerp_min_seconds"`
	// LerpMaxSeconds bounds the longest object transition.
	LerpMaxSeconds float32 `yaml:"lerp_max_seconds"`
}

// CameraConfig holds camera transition settings.
type CameraConfig struct {
	// TransitionDuration is the fixed length of a view-to-view tween.
	TransitionDuration Duration `yaml:"transition_duration"`
	// DefaultFOV is the field of view used before any view is applied.
	DefaultFOV float32 `yaml:"default_fov"`
}

// ShowConfig holds the frame loop settings.
type ShowConfig struct {
	FrameRate int `yaml:"frame_rate"`
}

// ProjectConfig holds project file settings.
type ProjectConfig struct {
	Path string `yaml:"path"`
}

// AssetsConfig holds the model and media library directories.
type AssetsConfig struct {
	// Dirs are searched in order; later entries override earlier ones.
	Dirs []string `yaml:"dirs"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Stage: StageConfig{
			DwellDuration:      Duration(3 * time.Second),
			DeepHierarchy:      false,
			LerpDistanceFactor: 0.1,
			LerpMinSeconds:     0.5,
			LerpMaxSeconds:     1.5,
		},
		Camera: CameraConfig{
			TransitionDuration: Duration(800 * time.Millisecond),
			DefaultFOV:         50,
		},
		Show: ShowConfig{
			FrameRate: 60,
		},
		Project: ProjectConfig{
			Path: "project.json",
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
