package engine

import (
	"context"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/spokedu77-ops/flowrunner/asset"
	"github.com/spokedu77-ops/flowrunner/audio"
	"github.com/spokedu77-ops/flowrunner/scene"
)

type fakeUI struct {
	mu sync.Mutex

	progress     float64
	levelNumber  string
	levelTag     string
	instructions []string
	instrVisible bool
	introVisible bool
	introTitle   string
	startVisible bool
	countdowns   []string // visible texts in call order
	countdownOn  bool
	flash        float64
	debug        string
	start        func()
}

func (u *fakeUI) SetProgress(p float64) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.progress = p
}

func (u *fakeUI) SetLevelNumber(s string) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.levelNumber = s
}

func (u *fakeUI) SetLevelTag(label, _ string) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.levelTag = label
}

func (u *fakeUI) ShowInstruction(text, _ string) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.instructions = append(u.instructions, text)
	u.instrVisible = true
}

func (u *fakeUI) HideInstruction() {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.instrVisible = false
}

func (u *fakeUI) SetIntroVisible(v bool) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.introVisible = v
}

func (u *fakeUI) SetIntroTitle(s string) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.introTitle = s
}

func (u *fakeUI) SetStartVisible(v bool) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.startVisible = v
}

func (u *fakeUI) SetFlashOpacity(f float64) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.flash = f
}

func (u *fakeUI) SetDebugStatus(s string) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.debug = s
}

func (u *fakeUI) OnStart(fn func()) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.start = fn
}

func (u *fakeUI) SetCountdown(text string, visible bool) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.countdownOn = visible
	if visible {
		u.countdowns = append(u.countdowns, text)
	}
}

func (u *fakeUI) countdownHistory() []string {
	u.mu.Lock()
	defer u.mu.Unlock()
	return append([]string(nil), u.countdowns...)
}

func (u *fakeUI) lastInstruction() string {
	u.mu.Lock()
	defer u.mu.Unlock()
	if len(u.instructions) == 0 {
		return ""
	}
	return u.instructions[len(u.instructions)-1]
}

func (u *fakeUI) debugLine() string {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.debug
}

type fakeObstacles struct {
	hooks    Hooks
	gold     []int
	released []uint64
	boxes    []uint64
	ufo      bool // TrySpawnUfo answer
	box      bool // ShouldSpawnBox answer
	updates  int
	smashed  int
	passed   int
	disposed bool
	onUpdate func(h Hooks)
}

func (f *fakeObstacles) Bind(h Hooks)                          { f.hooks = h }
func (f *fakeObstacles) TrySpawnUfo(_ int, _ *Segment) bool    { return f.ufo }
func (f *fakeObstacles) ShouldSpawnBox(int) bool               { return f.box }
func (f *fakeObstacles) AttachBoxToBridge(seg *Segment, _ int) { f.boxes = append(f.boxes, seg.ID) }
func (f *fakeObstacles) SetGoldBudget(n int)                   { f.gold = append(f.gold, n) }
func (f *fakeObstacles) ReleaseBridge(id uint64)               { f.released = append(f.released, id) }
func (f *fakeObstacles) Dispose()                              { f.disposed = true }
func (f *fakeObstacles) Smashed() int                          { return f.smashed }
func (f *fakeObstacles) Passed() int                           { return f.passed }
func (f *fakeObstacles) Update(_, _ float64, _ int, _, _ float64) {
	f.updates++
	if f.onUpdate != nil {
		fn := f.onUpdate
		f.onUpdate = nil
		fn(f.hooks)
	}
}

// stubLoader returns a fixed result, optionally blocking until release is closed
type stubLoader struct {
	res     asset.Result
	release chan struct{}
}

func (l *stubLoader) Load(ctx context.Context, _ asset.Request) (asset.Result, error) {
	if l.release != nil {
		select {
		case <-l.release:
		case <-ctx.Done():
			return asset.Result{}, ctx.Err()
		}
	}
	return l.res, nil
}

type harnessOpts struct {
	audio     bool
	audioErr  error
	timeline  Timeline
	loader    Loader
	assets    asset.Request
	seed      uint64
	obstacles *fakeObstacles
}

type harness struct {
	t     *testing.T
	e     *Engine
	clock *MockClock
	rec   *scene.Recorder
	ui    *fakeUI
	obs   *fakeObstacles
	out   *audio.ManualOutput
	aud   *audio.Engine
}

func newHarness(t *testing.T, o harnessOpts) *harness {
	t.Helper()
	h := &harness{
		t:     t,
		clock: NewMockClock(time.Unix(1_700_000_000, 0)),
		rec:   scene.NewRecorder(),
		ui:    &fakeUI{},
		obs:   o.obstacles,
	}
	if h.obs == nil {
		h.obs = &fakeObstacles{}
	}

	acfg := audio.DefaultConfig()
	acfg.Enabled = o.audio
	h.out = audio.NewManualOutput(o.audioErr)
	h.aud = audio.NewEngine(acfg, h.out)

	log := logrus.New()
	log.SetOutput(io.Discard)

	seed := o.seed
	if seed == 0 {
		seed = 7
	}
	cfg := DefaultConfig()
	cfg.Seed = seed
	cfg.Assets = o.assets
	if o.timeline != nil {
		cfg.Timeline = o.timeline
	}

	e, err := New(cfg, Deps{
		Scene:     h.rec,
		UI:        h.ui,
		Audio:     h.aud,
		Obstacles: h.obs,
		Loader:    o.loader,
		Clock:     h.clock,
		Log:       log,
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	h.e = e
	t.Cleanup(e.Dispose)
	return h
}

func seconds(dt float64) time.Duration {
	return time.Duration(dt * float64(time.Second))
}

// frame pumps audio, advances the wall clock, then updates the engine
// check, when set, observes the state after the clock advanced and again after Update
func (h *harness) frame(dt float64, check func(Snapshot)) {
	h.out.PumpDuration(dt)
	h.clock.Advance(seconds(dt))
	if check != nil {
		check(h.e.Snapshot())
	}
	h.e.Update(dt)
	if check != nil {
		check(h.e.Snapshot())
	}
}

// until runs frames until cond holds, failing after limit seconds
func (h *harness) until(dt, limit float64, cond func(Snapshot) bool) Snapshot {
	h.t.Helper()
	for elapsed := 0.0; elapsed <= limit; elapsed += dt {
		if s := h.e.Snapshot(); cond(s) {
			return s
		}
		h.frame(dt, nil)
	}
	s := h.e.Snapshot()
	if !cond(s) {
		h.t.Fatalf("condition not reached within %.1fs (state=%s level=%d index=%d)", limit, s.State, s.Level, s.LevelIndex)
	}
	return s
}

func (h *harness) run(dt, dur float64, check func(Snapshot)) {
	for elapsed := 0.0; elapsed < dur; elapsed += dt {
		h.frame(dt, check)
	}
}

func inState(name string) func(Snapshot) bool {
	return func(s Snapshot) bool { return s.State == name }
}

func isDigits(s string) bool {
	return s != "" && strings.Trim(s, "0123456789") == ""
}
