package engine

import (
	"sync/atomic"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/spokedu77-ops/flowrunner/parameter"
	"github.com/spokedu77-ops/flowrunner/physics"
	"github.com/spokedu77-ops/flowrunner/scene"
	"github.com/spokedu77-ops/flowrunner/status"
)

// metrics are the debug status line entries, in display order
type metrics struct {
	reg    *status.Registry
	phase  *status.Text
	level  *atomic.Int64
	segs   *atomic.Int64
	fps    *status.Float
	tier   *status.Text
	clock  *status.Float
	beats  *atomic.Int64
	coins  *atomic.Int64
	boxes  *atomic.Int64
	ufos   *atomic.Int64
	stateT *status.Float
	trans  *atomic.Int64
	audio  *status.Text
	assets *status.Text
}

func newMetrics(reg *status.Registry) metrics {
	return metrics{
		reg:    reg,
		phase:  reg.Text("phase"),
		level:  reg.Int("level"),
		segs:   reg.Int("segs"),
		fps:    reg.Float("fps"),
		tier:   reg.Text("tier"),
		clock:  reg.Float("audio_t"),
		beats:  reg.Int("beats"),
		coins:  reg.Int("coins"),
		boxes:  reg.Int("smashed"),
		ufos:   reg.Int("passed"),
		stateT: reg.Float("state_t"),
		trans:  reg.Int("trans"),
		audio:  reg.Text("audio"),
		assets: reg.Text("assets"),
	}
}

// spawnSpeedLines emits ambient streaks at a rate scaled by tier and normalized speed
func (e *Engine) spawnSpeedLines(dt float64) {
	rate := parameter.SpeedLinesPerSecond * e.quality.Scale().SpeedLines *
		parameter.NormalizedSpeed(e.sim.Game.Speed)
	e.sim.speedLineAcc += rate * dt
	for e.sim.speedLineAcc >= 1 {
		e.sim.speedLineAcc--
		x := e.sim.Camera.LaneX + (e.rng.Float64()*2-1)*parameter.SpeedLineSpread
		y := e.rng.Float64() * parameter.CameraHeight * 2
		e.scene.SpawnSpeedLine(mgl64.Vec3{x, y, parameter.PlayerZ - parameter.SpeedLineDistance})
	}
}

// progress is the share of total play time completed, 0..100
func (e *Engine) progress() float64 {
	total := e.timeline.PlayDuration().Seconds()
	if total <= 0 {
		return 0
	}
	if e.sim.Game.Phase == PhaseFinished {
		return 100
	}
	done := 0.0
	for i := 0; i < e.sim.Game.LevelIndex && i < len(e.timeline); i++ {
		if s := e.timeline[i]; s.Kind == SlotLevel {
			done += s.Duration.Seconds()
		}
	}
	if e.timeline.At(e.sim.Game.LevelIndex).Kind == SlotLevel {
		done += e.sim.Game.LevelTime
	}
	return 100 * physics.Clamp01(done/total)
}

// present pushes the frame's derived state to the scene and the HUD
func (e *Engine) present(pose scene.CameraPose) {
	sim := &e.sim
	scale := e.quality.Scale()

	e.scene.SetCamera(pose)
	e.scene.SetPlayer(mgl64.Vec3{sim.Camera.LaneX, sim.Jump.Offset, parameter.PlayerZ})

	flash := physics.Clamp01(sim.Beat.FlashPulse)
	e.scene.SetVisuals(scene.Visuals{
		Flash:     flash,
		Vignette:  scale.Vignette * (parameter.VignetteBase + sim.Beat.BeatPulse*parameter.VignettePulse),
		Grain:     scale.Grain,
		BeatPulse: sim.Beat.BeatPulse,
	})
	e.ui.SetFlashOpacity(flash)
	if sim.Game.MovementActive {
		e.ui.SetProgress(e.progress())
	}

	m := e.metrics
	m.phase.Set(e.machine.CurrentName())
	m.level.Store(int64(sim.Game.Level))
	m.segs.Store(int64(len(sim.Track.Segments)))
	m.fps.Set(e.quality.FPS())
	m.tier.Set(e.quality.Tier().String())
	m.clock.Set(e.audio.Now())
	m.beats.Store(int64(e.audio.Scheduled()))
	m.coins.Store(int64(sim.Coins))
	m.boxes.Store(int64(e.obstacles.Smashed()))
	m.ufos.Store(int64(e.obstacles.Passed()))
	m.stateT.Set(e.machine.TimeInState().Seconds())
	m.trans.Store(int64(e.machine.Transitions()))
	e.ui.SetDebugStatus(m.reg.Line())

	e.scene.Render()
}

// Snapshot is a copy of the observable engine state
type Snapshot struct {
	Phase          Phase
	State          string
	InSession      bool
	StateTime      float64
	Transitions    uint64
	Level          int
	LevelIndex     int
	LevelTime      float64
	GameTime       float64
	MovementActive bool
	Resting        bool
	RestLeft       int
	Segments       []Segment
	ActiveID       uint64
	Jump           JumpState
	Camera         CameraState
	Beat           BeatState
	Coins          int
	Run            uint64
	PendingTimers  int
	Progress       float64
}

// Snapshot returns the current state for hosts and tests
func (e *Engine) Snapshot() Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()

	segs := make([]Segment, len(e.sim.Track.Segments))
	for i, s := range e.sim.Track.Segments {
		segs[i] = *s
	}
	g := e.sim.Game
	return Snapshot{
		Phase:          g.Phase,
		State:          e.machine.CurrentName(),
		InSession:      e.machine.In(StateSession),
		StateTime:      e.machine.TimeInState().Seconds(),
		Transitions:    e.machine.Transitions(),
		Level:          g.Level,
		LevelIndex:     g.LevelIndex,
		LevelTime:      g.LevelTime,
		GameTime:       g.GameTime,
		MovementActive: g.MovementActive,
		Resting:        g.Resting,
		RestLeft:       e.restLeft,
		Segments:       segs,
		ActiveID:       e.sim.Track.ActiveID,
		Jump:           e.sim.Jump,
		Camera:         e.sim.Camera,
		Beat:           e.sim.Beat,
		Coins:          e.sim.Coins,
		Run:            e.timeouts.Run(),
		PendingTimers:  e.timeouts.Pending(),
		Progress:       e.progress(),
	}
}
