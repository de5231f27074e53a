// Package engine runs the flow session: timeline, track, jumps, camera and beat scheduling
package engine

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/spokedu77-ops/flowrunner/asset"
	"github.com/spokedu77-ops/flowrunner/audio"
	"github.com/spokedu77-ops/flowrunner/engine/fsm"
	"github.com/spokedu77-ops/flowrunner/parameter"
	"github.com/spokedu77-ops/flowrunner/quality"
	"github.com/spokedu77-ops/flowrunner/scene"
	"github.com/spokedu77-ops/flowrunner/status"
)

var (
	ErrNoScene        = errors.New("engine: scene is required")
	ErrDisposed       = errors.New("engine: disposed")
	ErrAlreadyStarted = errors.New("engine: session already started")
)

// Config tunes an Engine
type Config struct {
	MaxDt    float64 // upper bound of one update step, seconds
	Seed     uint64  // 0 = random
	Timeline Timeline
	Assets   asset.Request
	DrumBPM  int
}

// DefaultConfig returns the standard session plan
func DefaultConfig() Config {
	return Config{
		MaxDt:    parameter.MaxFrameDt,
		Timeline: DefaultTimeline(),
		DrumBPM:  parameter.DrumBPM,
	}
}

// Deps are the collaborators of an Engine; only Scene is required
type Deps struct {
	Scene     scene.Scene
	UI        UI
	Audio     Audio
	Obstacles Obstacles
	Loader    Loader
	Clock     Clock
	Log       logrus.FieldLogger
	Status    *status.Registry
	Quality   *quality.Monitor
}

// Engine orchestrates one play session
// Update, admin controls and every timer callback serialize on mu
type Engine struct {
	mu sync.Mutex

	cfg      Config
	timeline Timeline
	session  string
	log      *logrus.Entry

	scene     scene.Scene
	ui        UI
	audio     Audio
	obstacles Obstacles
	loader    Loader
	quality   *quality.Monitor
	rng       *rand.Rand

	timeouts *Timeouts
	machine  *fsm.Machine[*Engine]

	sim Sim

	started  bool
	disposed bool
	restLeft int
	instrSeq uint64

	track         *audio.Track
	assetsSettled bool
	cancelLoad    context.CancelFunc
	assetsDone    chan struct{}

	metrics metrics
}

// New creates an engine in the Waiting phase with its initial HUD shown
func New(cfg Config, deps Deps) (*Engine, error) {
	if deps.Scene == nil {
		return nil, ErrNoScene
	}
	def := DefaultConfig()
	if cfg.MaxDt <= 0 {
		cfg.MaxDt = def.MaxDt
	}
	if len(cfg.Timeline) == 0 {
		cfg.Timeline = def.Timeline
	}
	if cfg.DrumBPM <= 0 {
		cfg.DrumBPM = def.DrumBPM
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = rand.Uint64()
	}

	if deps.UI == nil {
		deps.UI = nopUI{}
	}
	if deps.Audio == nil {
		deps.Audio = audio.NewEngine(audio.Config{Enabled: false}, nil)
	}
	if deps.Obstacles == nil {
		deps.Obstacles = nopObstacles{}
	}
	if deps.Clock == nil {
		deps.Clock = NewWallClock()
	}
	if deps.Log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		deps.Log = l
	}
	if deps.Status == nil {
		deps.Status = status.NewRegistry()
	}
	if deps.Quality == nil {
		deps.Quality = quality.NewMonitor()
	}

	session := uuid.NewString()
	e := &Engine{
		cfg:        cfg,
		timeline:   cfg.Timeline,
		session:    session,
		log:        deps.Log.WithField("session", session),
		scene:      deps.Scene,
		ui:         deps.UI,
		audio:      deps.Audio,
		obstacles:  deps.Obstacles,
		loader:     deps.Loader,
		quality:    deps.Quality,
		rng:        rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		assetsDone: make(chan struct{}),
	}
	e.timeouts = NewTimeouts(deps.Clock, &e.mu)
	e.metrics = newMetrics(deps.Status)
	e.resetSim()
	e.sim.Game.Level = parameter.ClampLevel(e.timeline.At(0).Level)

	e.quality.OnChange = func(from, to quality.Tier) {
		e.log.WithFields(logrus.Fields{"from": from, "to": to, "fps": e.quality.FPS()}).Info("quality downgraded")
	}

	machine, err := newPhaseMachine()
	if err != nil {
		return nil, fmt.Errorf("phase machine: %w", err)
	}
	e.machine = machine
	e.obstacles.Bind(e.hooks())

	e.mu.Lock()
	err = e.machine.Init(e)
	e.mu.Unlock()
	if err != nil {
		return nil, fmt.Errorf("phase machine init: %w", err)
	}

	e.ui.OnStart(func() {
		if err := e.Start(); err != nil {
			e.log.WithError(err).Debug("start ignored")
		}
	})
	e.log.WithField("seed", seed).Debug("engine created")
	return e, nil
}

// Session returns the session id
func (e *Engine) Session() string {
	return e.session
}

// Start begins the session: audio, assets, initial track, then the intro choreography
func (e *Engine) Start() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.disposed {
		return ErrDisposed
	}
	if e.started {
		return ErrAlreadyStarted
	}
	e.startSession()
	w := e.world()
	for len(e.sim.Track.Segments) < parameter.MaxSegments {
		spawnSegment(&e.sim, w)
	}
	e.machine.HandleEvent(e, evStart)
	return nil
}

// startSession starts the collaborators shared by Start and an admin jump from Waiting
func (e *Engine) startSession() {
	e.started = true
	if err := e.audio.Start(); err != nil {
		e.log.WithError(err).Warn("audio unavailable, running silent")
		e.metrics.audio.Set("off")
	} else {
		e.metrics.audio.Set("on")
	}
	e.loadAssets()
	e.log.Info("session started")
}

// Update advances the simulation by dt seconds, clamped to [0, MaxDt]
func (e *Engine) Update(dt float64) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.disposed {
		return
	}
	if dt < 0 || math.IsNaN(dt) {
		dt = 0
	}
	if dt > e.cfg.MaxDt {
		dt = e.cfg.MaxDt
	}

	e.quality.Sample(dt)
	e.machine.Update(e, time.Duration(dt*float64(time.Second)))
	e.step(dt)
}

// step runs one frame of every subsystem; caller holds mu
func (e *Engine) step(dt float64) {
	sim := &e.sim
	w := e.world()

	if sim.Game.MovementActive {
		sim.Game.GameTime += dt
		sim.Game.LevelTime += dt

		advanceTrack(sim, w, dt)
		fillTrack(sim, w)

		active := updateActive(sim)
		followLane(&sim.Camera, active, sim.Jump.Jumping)
		sim.Camera.OverPad = active != nil && active.OverPad(parameter.PlayerZ)
		if jumpTriggered(sim, active) {
			target := active.Lane
			if next := nextAfter(sim, active.ID); next != nil {
				target = next.Lane
			}
			startJump(sim, active, target)
			e.audio.Play(audio.SoundJump)
		}
		if updateJump(sim) {
			e.audio.Play(audio.SoundLand)
		}

		e.obstacles.Update(dt*parameter.ReferenceFPS, sim.Game.Speed, sim.Game.Level, parameter.PlayerZ, sim.Camera.LaneX)
		e.spawnSpeedLines(dt)
		e.advanceTimeline()
	}

	if sim.Game.MovementActive {
		e.scheduleBeats()
	}
	updatePulse(&sim.Beat, sim.Game.GameTime, dt)

	pose := updateCamera(&sim.Camera, cameraInput{
		Speed:        sim.Game.Speed,
		Moving:       sim.Game.MovementActive,
		Jumping:      sim.Jump.Jumping,
		LaneChange:   sim.Jump.LaneChange,
		JumpProgress: sim.Jump.Progress,
		JumpOffset:   sim.Jump.Offset,
	}, dt)

	e.present(pose)
}

// advanceTimeline moves to the next slot once the current level slot has elapsed
func (e *Engine) advanceTimeline() {
	g := &e.sim.Game
	slot := e.timeline.At(g.LevelIndex)
	if slot.Kind != SlotLevel || g.LevelTime < slot.Duration.Seconds() {
		return
	}

	g.LevelIndex++
	if e.timeline.At(g.LevelIndex).Kind != SlotEnd {
		g.LevelTime = 0
	}
	e.log.WithFields(logrus.Fields{"level": g.Level, "index": g.LevelIndex}).Debug("level slot complete")
	e.machine.HandleEvent(e, evLevelEnd)
}

func (e *Engine) scheduleBeats() {
	now := e.audio.Now()
	running := e.audio.Running()
	if running && (!e.sim.Beat.Armed || e.sim.Beat.Suspended) {
		e.ensureMusic()
	}
	scheduleBeats(&e.sim.Beat, now, running, func(cue Cue, at float64) {
		e.audio.PlayAt(cue.sound(), at)
		e.timeouts.After(VisualDelay(at, now), func() {
			beatVisual(&e.sim.Beat, cue)
		})
	})
}

// JumpToLevel atomically restarts play at level, cancelling every pending timer
// Out of range levels are clamped
func (e *Engine) JumpToLevel(level int) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.disposed {
		return ErrDisposed
	}
	level = parameter.ClampLevel(level)
	run := e.timeouts.CancelAll()

	if !e.started {
		e.startSession()
	}

	w := e.world()
	clearTrack(&e.sim, w)
	e.resetSim()
	e.sim.Game.LevelIndex = e.timeline.IndexOfLevel(level)

	e.ui.SetIntroVisible(false)
	e.ui.SetStartVisible(false)
	e.ui.SetCountdown("", false)
	e.ui.HideInstruction()

	e.machine.HandleEvent(e, evJump)
	for len(e.sim.Track.Segments) < parameter.MaxSegments {
		spawnSegment(&e.sim, w)
	}
	e.ensureMusic()

	e.log.WithFields(logrus.Fields{"level": level, "run": run}).Info("admin level jump")
	return nil
}

// resetSim zeroes every transient state; the track must already be cleared
func (e *Engine) resetSim() {
	nextID := e.sim.Track.NextID
	e.sim = Sim{
		Camera: newCameraState(),
	}
	e.sim.Track.NextID = nextID
	e.sim.Game.Level = 1
	e.restLeft = 0
}

// Dispose cancels timers and loads, stops audio and releases every scene object
func (e *Engine) Dispose() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.disposed {
		return
	}
	e.disposed = true
	e.timeouts.CancelAll()
	if e.cancelLoad != nil {
		e.cancelLoad()
	}

	e.audio.StopMusic()
	e.audio.Stop()

	clearTrack(&e.sim, e.world())
	e.obstacles.Dispose()
	e.machine.HandleEvent(e, evDispose)
	e.scene.Dispose()
	e.log.Info("engine disposed")
}

// Resize forwards the new viewport to the scene
func (e *Engine) Resize(width, height int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.disposed {
		return
	}
	e.scene.Resize(width, height)
}

// AssetsDone is closed once the session's asset load has been applied or discarded
func (e *Engine) AssetsDone() <-chan struct{} {
	return e.assetsDone
}

func (e *Engine) world() world {
	return world{scene: e.scene, obstacles: e.obstacles, rng: e.rng}
}

// showInstruction shows a banner and hides it after d unless a newer banner replaced it
func (e *Engine) showInstruction(text, style string, d time.Duration) {
	e.instrSeq++
	seq := e.instrSeq
	e.ui.ShowInstruction(text, style)
	if d <= 0 {
		return
	}
	e.timeouts.After(d, func() {
		if e.instrSeq == seq {
			e.ui.HideInstruction()
		}
	})
}
