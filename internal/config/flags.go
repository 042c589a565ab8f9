package config

import (
	"flag"
	"time"
)

var (
	flagConfig  = flag.String("config", "", "Path to config file")
	flagDebug   = flag.Bool("debug", false, "Enable debug logging")
	flagProject = flag.String("project", "", "Path to project file")
	flagDwell   = flag.Duration("dwell", 0, "Cue dwell duration during autoplay")
	flagFPS     = flag.Int("fps", 0, "Show loop frame rate")
	flagDeep    = flag.Bool("deep-hierarchy", false, "Resolve full parent chains")
	flagAssets  = flag.String("assets", "", "Additional asset directory")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagProject != "" {
		cfg.Project.Path = *flagProject
	}
	if *flagDwell > time.Duration(0) {
		cfg.Stage.DwellDuration = Duration(*flagDwell)
	}
	if *flagFPS > 0 {
		cfg.Show.FrameRate = *flagFPS
	}
	if *flagDeep {
		cfg.Stage.DeepHierarchy = true
	}
	if *flagAssets != "" {
		cfg.Assets.Dirs = append(cfg.Assets.Dirs, *flagAssets)
	}
}
