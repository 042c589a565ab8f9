package stage

import (
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/stagecue/stagecue/internal/logger"
)

// ErrNoCues reports autoplay started on an empty cue list.
var ErrNoCues = errors.New("stage: no cues to play")

// PlayerState is the autoplay sequencer state.
type PlayerState uint8

const (
	PlayerIdle PlayerState = iota
	PlayerPlaying
)

// Player steps through the cue list on a fixed dwell timer. It is
// frame-driven: Update(now) advances it, so there is no goroutine to
// cancel and at most one pending deadline exists at a time. Stopping
// clears the deadline; no stale advance can fire afterwards.
type Player struct {
	cues  *CueStore
	dwell time.Duration

	state  PlayerState
	index  int
	nextAt time.Time
}

// NewPlayer creates an idle player over the cue store.
func NewPlayer(cues *CueStore, dwell time.Duration) *Player {
	return &Player{cues: cues, dwell: dwell}
}

// Play starts autoplay from the first cue, applying it immediately.
// It is a no-op error when no cues exist.
func (p *Player) Play(now time.Time) error {
	if p.cues.Count() == 0 {
		return ErrNoCues
	}
	p.state = PlayerPlaying
	p.index = 0
	p.applyCurrent()
	p.nextAt = now.Add(p.dwell)
	logger.Info("autoplay started", zap.Int("cues", p.cues.Count()), zap.Duration("dwell", p.dwell))
	return nil
}

// Stop halts autoplay immediately. The already-applied cue stays applied.
func (p *Player) Stop() {
	if p.state == PlayerIdle {
		return
	}
	p.state = PlayerIdle
	p.index = 0
	p.nextAt = time.Time{}
	logger.Info("autoplay stopped")
}

// Update advances the sequencer. Call it once per frame; it applies the
// next cue when the dwell deadline passes and returns to idle past the
// last cue.
func (p *Player) Update(now time.Time) {
	if p.state != PlayerPlaying || now.Before(p.nextAt) {
		return
	}
	if p.index+1 < p.cues.Count() {
		p.index++
		p.applyCurrent()
		p.nextAt = now.Add(p.dwell)
		return
	}
	p.state = PlayerIdle
	p.index = 0
	p.nextAt = time.Time{}
	logger.Info("autoplay finished")
}

func (p *Player) applyCurrent() {
	if cue := p.cues.At(p.index); cue != nil {
		_ = p.cues.Apply(cue.ID)
	}
}

// State returns the current sequencer state.
func (p *Player) State() PlayerState {
	return p.state
}

// Playing reports whether autoplay is running.
func (p *Player) Playing() bool {
	return p.state == PlayerPlaying
}

// Index returns the current cue position while playing.
func (p *Player) Index() int {
	return p.index
}
