package engine

import (
	"errors"
	"image"
	"math"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/spokedu77-ops/flowrunner/asset"
	"github.com/spokedu77-ops/flowrunner/parameter"
)

const dt60 = 1.0 / 60

// shortTimeline keeps scenario tests fast: level, rest, level, end
func shortTimeline() Timeline {
	return Timeline{
		{Kind: SlotLevel, Level: 1, Duration: 2 * time.Second},
		{Kind: SlotRest, Duration: 3 * time.Second},
		{Kind: SlotLevel, Level: 2, Duration: 2 * time.Second},
		{Kind: SlotEnd},
	}
}

func TestNewRequiresScene(t *testing.T) {
	if _, err := New(DefaultConfig(), Deps{}); !errors.Is(err, ErrNoScene) {
		t.Errorf("expected ErrNoScene, got %v", err)
	}
}

func TestInitialState(t *testing.T) {
	h := newHarness(t, harnessOpts{})
	s := h.e.Snapshot()
	if s.Phase != PhaseWaiting || s.State != "Waiting" {
		t.Errorf("phase=%v state=%s", s.Phase, s.State)
	}
	if !h.ui.startVisible || !h.ui.introVisible || h.ui.introTitle != parameter.IntroTitle {
		t.Error("waiting HUD not shown")
	}
	h.run(dt60, 1, nil)
	if n := len(h.e.Snapshot().Segments); n != 0 {
		t.Errorf("segments spawned before start: %d", n)
	}
}

func TestStartButton(t *testing.T) {
	h := newHarness(t, harnessOpts{})
	h.ui.start()

	s := h.e.Snapshot()
	if s.Phase != PhasePlaying || s.State != "Intro" {
		t.Errorf("after start: phase=%v state=%s", s.Phase, s.State)
	}
	if len(s.Segments) != parameter.MaxSegments {
		t.Errorf("initial segments = %d", len(s.Segments))
	}
	first := s.Segments[0]
	if first.Z != parameter.PlayerZ || first.Lane != parameter.CenterLane {
		t.Errorf("forced first segment at z=%v lane=%d", first.Z, first.Lane)
	}
	if h.ui.startVisible {
		t.Error("start button still visible")
	}
	if err := h.e.Start(); !errors.Is(err, ErrAlreadyStarted) {
		t.Errorf("second Start: %v", err)
	}
}

func TestChoreographyReachesPlaying(t *testing.T) {
	h := newHarness(t, harnessOpts{})
	if err := h.e.Start(); err != nil {
		t.Fatal(err)
	}

	h.run(dt60, 1.5, nil)
	if s := h.e.Snapshot(); s.State != "Intro" || s.MovementActive {
		t.Fatalf("state=%s moving=%v during intro", s.State, s.MovementActive)
	}

	s := h.until(dt60, 10, inState("Playing"))
	if !s.MovementActive || s.Resting || s.Level != 1 {
		t.Errorf("playing: moving=%v resting=%v level=%d", s.MovementActive, s.Resting, s.Level)
	}
	want := []string{"3", "2", "1", parameter.GoText}
	if got := h.ui.countdownHistory(); strings.Join(got, ",") != strings.Join(want, ",") {
		t.Errorf("countdown = %v, want %v", got, want)
	}
	if h.ui.countdownOn {
		t.Error("countdown overlay still visible")
	}
	if h.ui.lastInstruction() != parameter.Level(1).Instruction || h.ui.levelNumber != "1" {
		t.Errorf("level HUD: instruction=%q number=%q", h.ui.lastInstruction(), h.ui.levelNumber)
	}
	if len(h.obs.gold) == 0 || h.obs.gold[len(h.obs.gold)-1] != parameter.Level(1).GoldBudget {
		t.Errorf("gold budget = %v", h.obs.gold)
	}

	h.run(dt60, parameter.InstructionDuration.Seconds()+0.1, nil)
	if h.ui.instrVisible {
		t.Error("instruction banner not hidden after its duration")
	}
}

func TestSegmentInvariants(t *testing.T) {
	h := newHarness(t, harnessOpts{})
	if err := h.e.JumpToLevel(1); err != nil {
		t.Fatal(err)
	}

	check := func(s Snapshot) {
		if s.State != "Playing" {
			return
		}
		if n := len(s.Segments); n < 1 || n > parameter.MaxSegments {
			t.Fatalf("segment count %d at t=%.2f", n, s.GameTime)
		}
		active := 0
		for _, seg := range s.Segments {
			if seg.Active {
				active++
				if !seg.Straddles(parameter.PlayerZ) || seg.ID != s.ActiveID {
					t.Fatalf("active segment %d does not straddle the player (rel=%.2f)", seg.ID, seg.Rel(parameter.PlayerZ))
				}
			}
		}
		if active > 1 {
			t.Fatalf("%d active segments", active)
		}
		if got := h.rec.SegmentCount(); got != len(s.Segments) {
			t.Fatalf("scene has %d segment views, track has %d", got, len(s.Segments))
		}
	}
	h.run(dt60, 30, check)

	s := h.e.Snapshot()
	if s.Jump.Jumps < 10 {
		t.Errorf("only %d jumps in 30s", s.Jump.Jumps)
	}
	if len(h.obs.released) == 0 {
		t.Error("no segment was pruned")
	}
}

func TestNoDoubleJumpPerSegment(t *testing.T) {
	h := newHarness(t, harnessOpts{})
	if err := h.e.JumpToLevel(4); err != nil {
		t.Fatal(err)
	}

	seen := map[uint64]bool{}
	lastJumps := 0
	h.run(dt60, 20, func(s Snapshot) {
		if s.Jump.Jumps == lastJumps {
			return
		}
		if s.Jump.Jumps != lastJumps+1 {
			t.Fatalf("jump counter moved by %d in one frame", s.Jump.Jumps-lastJumps)
		}
		lastJumps = s.Jump.Jumps
		if seen[s.Jump.LastJumpBridgeID] {
			t.Fatalf("segment %d triggered twice", s.Jump.LastJumpBridgeID)
		}
		seen[s.Jump.LastJumpBridgeID] = true
	})
	if lastJumps == 0 {
		t.Fatal("no jumps happened")
	}
}

func TestLandingKicksCamera(t *testing.T) {
	h := newHarness(t, harnessOpts{})
	if err := h.e.JumpToLevel(1); err != nil {
		t.Fatal(err)
	}
	h.until(dt60, 5, func(s Snapshot) bool { return s.Jump.Jumping })
	s := h.until(dt60, 5, func(s Snapshot) bool { return !s.Jump.Jumping })

	if s.Jump.Offset != 0 || s.Jump.LaneChange {
		t.Errorf("after landing offset=%v laneChange=%v", s.Jump.Offset, s.Jump.LaneChange)
	}
	if s.Camera.ImpactY.Settled(1e-3) || s.Camera.Stable <= 0 {
		t.Errorf("landing impulse missing: impactY=%+v stable=%v", s.Camera.ImpactY, s.Camera.Stable)
	}
	if s.Camera.LaneTarget != s.Jump.TargetLane {
		t.Errorf("camera lane target %d, jump target %d", s.Camera.LaneTarget, s.Jump.TargetLane)
	}
}

func TestNormalRun(t *testing.T) {
	h := newHarness(t, harnessOpts{audio: true})
	if err := h.e.Start(); err != nil {
		t.Fatal(err)
	}
	h.until(dt60, 10, inState("Playing"))
	countdownsBefore := len(h.ui.countdownHistory())

	lastIndex := 0
	increments := 0
	var restEntryGameTime float64
	check := func(s Snapshot) {
		if s.LevelIndex == lastIndex {
			return
		}
		increments++
		lastIndex = s.LevelIndex
		if s.LevelTime != 0 {
			t.Errorf("levelTime = %v right after moving to index %d", s.LevelTime, s.LevelIndex)
		}
		if s.State == "Resting" {
			restEntryGameTime = s.GameTime
		}
	}

	level1 := parameter.LevelDuration(1)
	for elapsed := 0.0; elapsed < level1+40; elapsed += dt60 {
		h.frame(dt60, check)
		if s := h.e.Snapshot(); s.Level == 2 && s.State == "Playing" {
			break
		}
	}

	s := h.e.Snapshot()
	if s.Level != 2 || s.State != "Playing" {
		t.Fatalf("did not reach level 2: state=%s level=%d", s.State, s.Level)
	}
	if increments != 2 || s.LevelIndex != 2 {
		t.Errorf("index incremented %d times, now %d", increments, s.LevelIndex)
	}
	if restEntryGameTime < level1 || restEntryGameTime > level1+2*dt60 {
		t.Errorf("rest began at gameTime %.3f, level lasts %.3f", restEntryGameTime, level1)
	}

	got := h.ui.countdownHistory()[countdownsBefore:]
	var want []string
	for n := int(parameter.RestDuration / parameter.RestTick); n >= 0; n-- {
		want = append(want, itoa(n))
	}
	want = append(want, "LEVEL 2", "3", "2", "1", parameter.GoText)
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Errorf("countdowns = %v\nwant %v", got, want)
	}
	if h.ui.lastInstruction() != parameter.Level(2).Instruction {
		t.Errorf("instruction = %q", h.ui.lastInstruction())
	}
	if h.aud.Scheduled() == 0 || !h.aud.MusicPlaying() {
		t.Errorf("audio idle: scheduled=%d music=%v", h.aud.Scheduled(), h.aud.MusicPlaying())
	}
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	var b []byte
	for ; n > 0; n /= 10 {
		b = append([]byte{byte('0' + n%10)}, b...)
	}
	return string(b)
}

func TestTerminationIndependentOfFrameRate(t *testing.T) {
	tl := DefaultTimeline()
	play := tl.PlayDuration().Seconds()
	choreo := parameter.IntroDuration.Seconds() +
		float64(parameter.LevelCount)*(3*parameter.CountdownStep.Seconds()+parameter.GoDuration.Seconds()) +
		float64(parameter.LevelCount-1)*parameter.IntertitleDuration.Seconds()
	wallBound := play + tl.RestDuration().Seconds() + choreo + 1

	tests := []struct {
		name    string
		frameDt float64 // wall seconds per frame
	}{
		{"30fps", 1.0 / 30},
		{"60fps", 1.0 / 60},
		{"144fps", 1.0 / 144},
		{"stalled", 0.25},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t, harnessOpts{})
			if err := h.e.Start(); err != nil {
				t.Fatal(err)
			}

			limit := wallBound
			if tt.frameDt > parameter.MaxFrameDt {
				limit = wallBound * tt.frameDt / parameter.MaxFrameDt
			}
			s := h.until(tt.frameDt, limit, func(s Snapshot) bool { return s.Phase == PhaseFinished })

			simDt := math.Min(tt.frameDt, parameter.MaxFrameDt)
			slack := float64(parameter.LevelCount)*simDt + 1e-6
			if s.GameTime < play-1e-6 || s.GameTime > play+slack {
				t.Errorf("gameTime = %.4f, want %.1f (+%.4f)", s.GameTime, play, slack)
			}
			if s.LevelIndex != len(tl)-1 || s.State != "Finished" {
				t.Errorf("index=%d state=%s", s.LevelIndex, s.State)
			}
			if h.ui.introTitle != parameter.EndTitle || h.ui.lastInstruction() != parameter.EndMessage {
				t.Errorf("ending HUD: title=%q message=%q", h.ui.introTitle, h.ui.lastInstruction())
			}

			frozen := s.Segments
			h.run(tt.frameDt, 1, nil)
			after := h.e.Snapshot()
			if after.GameTime != s.GameTime || after.Segments[0].Z != frozen[0].Z {
				t.Error("simulation kept moving after finish")
			}
		})
	}
}

func TestAdminJumpIsAtomic(t *testing.T) {
	h := newHarness(t, harnessOpts{audio: true})
	if err := h.e.JumpToLevel(2); err != nil {
		t.Fatal(err)
	}
	h.run(dt60, 5, nil)
	h.until(dt60, parameter.LevelDuration(2)+1, inState("Resting"))
	h.run(dt60, 2.5, nil) // rest countdown under way

	before := h.e.Snapshot()
	oldIDs := make(map[uint64]bool)
	for _, seg := range before.Segments {
		oldIDs[seg.ID] = true
	}
	countdowns := len(h.ui.countdownHistory())

	if err := h.e.JumpToLevel(4); err != nil {
		t.Fatal(err)
	}
	s := h.e.Snapshot()

	if s.State != "Playing" || s.Phase != PhasePlaying || s.Level != 4 || s.LevelTime != 0 || !s.MovementActive {
		t.Fatalf("state=%s phase=%v level=%d levelTime=%v moving=%v", s.State, s.Phase, s.Level, s.LevelTime, s.MovementActive)
	}
	if s.Run <= before.Run {
		t.Error("run id not advanced")
	}
	if len(s.Segments) != 3 || h.rec.SegmentCount() != 3 {
		t.Fatalf("segments=%d views=%d", len(s.Segments), h.rec.SegmentCount())
	}
	spec := parameter.Level(4)
	spacing := parameter.SegmentLength + parameter.SegmentPadDepth + spec.Gap
	for i, seg := range s.Segments {
		if oldIDs[seg.ID] {
			t.Errorf("stale segment %d survived", seg.ID)
		}
		if want := parameter.PlayerZ - float64(i)*spacing; math.Abs(seg.Z-want) > 1e-9 {
			t.Errorf("segment %d at z=%v, want %v", i, seg.Z, want)
		}
	}
	for id := range oldIDs {
		released := false
		for _, r := range h.obs.released {
			released = released || r == id
		}
		if !released {
			t.Errorf("hazards of segment %d not released", id)
		}
	}
	if s.Jump != (JumpState{}) {
		t.Errorf("jump state not zeroed: %+v", s.Jump)
	}
	if !s.Camera.ImpactY.Settled(1e-12) || !s.Camera.ImpactZ.Settled(1e-12) || s.Camera.Jolt != 0 {
		t.Errorf("camera impulses not zeroed: %+v", s.Camera)
	}
	if s.PendingTimers != 1 {
		t.Errorf("pending timers = %d, want only the banner timeout", s.PendingTimers)
	}

	h.run(dt60, 15, nil)
	for _, c := range h.ui.countdownHistory()[countdowns:] {
		if isDigits(c) {
			t.Errorf("rest countdown %q fired after the jump", c)
		}
	}
	if after := h.e.Snapshot(); after.State != "Playing" || after.Level != 4 {
		t.Errorf("after jump: state=%s level=%d", after.State, after.Level)
	}
}

func TestJumpWhilePlayingKeepsPhase(t *testing.T) {
	h := newHarness(t, harnessOpts{audio: true})
	h.ui.start()
	h.until(dt60, 10, inState("Playing"))
	if s := h.e.Snapshot(); s.Phase != PhasePlaying {
		t.Fatalf("before jump: phase=%v", s.Phase)
	}

	if err := h.e.JumpToLevel(4); err != nil {
		t.Fatal(err)
	}
	h.run(dt60, 1, func(s Snapshot) {
		if s.Phase != PhasePlaying || s.State != "Playing" {
			t.Fatalf("after jump: phase=%v state=%s", s.Phase, s.State)
		}
	})
	if s := h.e.Snapshot(); s.Level != 4 || !s.MovementActive {
		t.Errorf("level=%d moving=%v", s.Level, s.MovementActive)
	}
}

func TestJumpToLevelClamps(t *testing.T) {
	h := newHarness(t, harnessOpts{})
	if err := h.e.JumpToLevel(99); err != nil {
		t.Fatal(err)
	}
	if s := h.e.Snapshot(); s.Level != parameter.LevelCount {
		t.Errorf("level = %d", s.Level)
	}
	if err := h.e.JumpToLevel(-3); err != nil {
		t.Fatal(err)
	}
	if s := h.e.Snapshot(); s.Level != 1 || s.LevelIndex != 0 {
		t.Errorf("level = %d index = %d", s.Level, s.LevelIndex)
	}
}

func TestDisposeMidRest(t *testing.T) {
	h := newHarness(t, harnessOpts{audio: true, timeline: shortTimeline()})
	if err := h.e.Start(); err != nil {
		t.Fatal(err)
	}
	h.until(dt60, 20, inState("Resting"))
	h.run(dt60, 1.2, nil)

	if h.clock.Pending() == 0 {
		t.Fatal("expected a pending rest timer")
	}
	countdowns := len(h.ui.countdownHistory())

	h.e.Dispose()

	if h.clock.Pending() != 0 {
		t.Errorf("%d timers still pending", h.clock.Pending())
	}
	h.clock.Advance(30 * time.Second)
	h.e.Update(dt60)
	if got := len(h.ui.countdownHistory()); got != countdowns {
		t.Errorf("countdown changed after dispose: %v", h.ui.countdownHistory()[countdowns:])
	}
	if h.aud.Running() || h.aud.MusicPlaying() {
		t.Error("audio still running")
	}
	if h.rec.SegmentCount() != 0 || !h.rec.Disposed || !h.obs.disposed {
		t.Errorf("segments=%d sceneDisposed=%v obstaclesDisposed=%v", h.rec.SegmentCount(), h.rec.Disposed, h.obs.disposed)
	}
	if s := h.e.Snapshot(); s.Phase != PhaseFinished || s.State != "Disposed" {
		t.Errorf("phase=%v state=%s", s.Phase, s.State)
	}
	if err := h.e.JumpToLevel(2); !errors.Is(err, ErrDisposed) {
		t.Errorf("JumpToLevel after dispose: %v", err)
	}
	if err := h.e.Start(); !errors.Is(err, ErrDisposed) {
		t.Errorf("Start after dispose: %v", err)
	}
}

func TestShortTimelineFinishes(t *testing.T) {
	h := newHarness(t, harnessOpts{audio: true, timeline: shortTimeline()})
	if err := h.e.Start(); err != nil {
		t.Fatal(err)
	}
	s := h.until(dt60, 30, func(s Snapshot) bool { return s.Phase == PhaseFinished })
	if s.Level != 2 || s.Progress != 100 {
		t.Errorf("level=%d progress=%v", s.Level, s.Progress)
	}
	if h.aud.MusicPlaying() {
		t.Error("music not stopped at finish")
	}
}

func TestUpdateClampsDt(t *testing.T) {
	h := newHarness(t, harnessOpts{})
	if err := h.e.JumpToLevel(1); err != nil {
		t.Fatal(err)
	}
	before := h.e.Snapshot().Segments[1].Z
	h.e.Update(5)
	after := h.e.Snapshot()

	want := parameter.Level(1).Speed * parameter.MaxFrameDt
	if got := after.Segments[1].Z - before; math.Abs(got-want) > 1e-9 {
		t.Errorf("segment moved %v, want %v", got, want)
	}
	if after.GameTime != parameter.MaxFrameDt {
		t.Errorf("gameTime = %v", after.GameTime)
	}

	h.e.Update(-1)
	h.e.Update(math.NaN())
	if s := h.e.Snapshot(); s.GameTime != after.GameTime {
		t.Error("negative or NaN dt advanced the simulation")
	}
}

func TestObstacleHooks(t *testing.T) {
	obs := &fakeObstacles{}
	h := newHarness(t, harnessOpts{obstacles: obs})
	if err := h.e.JumpToLevel(3); err != nil {
		t.Fatal(err)
	}
	h.run(dt60, parameter.InstructionDuration.Seconds()+0.1, nil)

	obs.onUpdate = func(hk Hooks) {
		hk.OnPunch()
		hk.OnCoin()
		hk.OnFlash()
		hk.OnUfoDuckStart()
		hk.OnCameraTilt(0.06)
		hk.OnShowInstruction("hint", "warn", time.Second)
	}
	h.frame(dt60, nil)

	s := h.e.Snapshot()
	if s.Coins != 1 || s.Camera.Jolt <= 0 || !s.Camera.Ducking || s.Camera.Shake < 0.05 {
		t.Errorf("hooks not applied: coins=%d jolt=%v ducking=%v shake=%v", s.Coins, s.Camera.Jolt, s.Camera.Ducking, s.Camera.Shake)
	}
	if s.Beat.FlashPulse < 0.4 {
		t.Errorf("flash pulse = %v", s.Beat.FlashPulse)
	}
	if !h.ui.instrVisible || h.ui.lastInstruction() != "hint" {
		t.Error("hint banner not shown")
	}

	h.run(dt60, 0.5, nil)
	if d := h.e.Snapshot().Camera.Duck; d < parameter.DuckDepth/2 {
		t.Errorf("camera did not duck: %v", d)
	}
	h.run(dt60, 0.6, nil)
	if h.ui.instrVisible {
		t.Error("hint banner not hidden")
	}

	obs.onUpdate = func(hk Hooks) { hk.OnUfoPassed() }
	h.frame(dt60, nil)
	if h.e.Snapshot().Camera.Ducking {
		t.Error("duck not released after UFO passed")
	}
}

func TestStatusReportsMachineAndHazards(t *testing.T) {
	h := newHarness(t, harnessOpts{})
	h.run(dt60, 1, nil)
	s := h.e.Snapshot()
	if s.InSession || s.StateTime < 0.9 {
		t.Errorf("waiting: inSession=%v stateTime=%v", s.InSession, s.StateTime)
	}
	before := s.Transitions

	h.ui.start()
	s = h.e.Snapshot()
	if !s.InSession || s.StateTime != 0 || s.Transitions <= before {
		t.Errorf("after start: inSession=%v stateTime=%v transitions=%d", s.InSession, s.StateTime, s.Transitions)
	}

	h.obs.smashed, h.obs.passed = 2, 1
	h.frame(dt60, nil)
	line := h.ui.debugLine()
	for _, want := range []string{"smashed=2", "passed=1", "state_t=0.0", "trans="} {
		if !strings.Contains(line, want) {
			t.Errorf("debug line %q missing %q", line, want)
		}
	}
}

func TestAudioUnavailableStillRuns(t *testing.T) {
	h := newHarness(t, harnessOpts{audio: true, audioErr: errors.New("no device")})
	if err := h.e.JumpToLevel(1); err != nil {
		t.Fatal(err)
	}

	maxFlash := 0.0
	h.run(dt60, 3, func(s Snapshot) {
		maxFlash = math.Max(maxFlash, s.Beat.FlashPulse)
	})

	s := h.e.Snapshot()
	if s.GameTime < 2.9 {
		t.Errorf("simulation stalled: gameTime=%v", s.GameTime)
	}
	if s.Beat.Armed {
		t.Error("beat scheduler armed without audio")
	}
	if maxFlash <= 0 {
		t.Error("ambient pulse did not drive the flash")
	}
	if !strings.Contains(h.ui.debugLine(), "audio=off") {
		t.Errorf("debug line = %q", h.ui.debugLine())
	}
}

func TestAssetFailureDegradesGracefully(t *testing.T) {
	loader := &stubLoader{res: asset.Result{
		TrackErr:   &asset.StatusError{Code: http.StatusNotFound, URL: "x"},
		Background: image.NewRGBA(image.Rect(0, 0, 2, 2)),
	}}
	h := newHarness(t, harnessOpts{
		audio:  true,
		loader: loader,
		assets: asset.Request{TrackPath: "music/a.mp3", BackgroundPath: "bg/a.webp"},
	})
	if err := h.e.Start(); err != nil {
		t.Fatal(err)
	}
	<-h.e.AssetsDone()

	if h.rec.Background == nil {
		t.Error("background not applied")
	}
	if !h.aud.MusicPlaying() {
		t.Error("drum loop fallback not playing")
	}
	h.frame(dt60, nil)
	if !strings.Contains(h.ui.debugLine(), "assets=music:http404") {
		t.Errorf("debug line = %q", h.ui.debugLine())
	}
	if s := h.e.Snapshot(); s.Phase != PhasePlaying {
		t.Errorf("session interrupted: %v", s.Phase)
	}
}

func TestDisposeDuringLoadDiscardsResult(t *testing.T) {
	loader := &stubLoader{
		res:     asset.Result{Background: image.NewRGBA(image.Rect(0, 0, 2, 2))},
		release: make(chan struct{}),
	}
	h := newHarness(t, harnessOpts{
		audio:  true,
		loader: loader,
		assets: asset.Request{BackgroundPath: "bg/a.png"},
	})
	if err := h.e.Start(); err != nil {
		t.Fatal(err)
	}
	h.e.Dispose()
	close(loader.release)
	<-h.e.AssetsDone()

	if h.rec.Background != nil {
		t.Error("background applied after dispose")
	}
	if h.aud.MusicPlaying() {
		t.Error("music started after dispose")
	}
}

func TestResizeForwardsToScene(t *testing.T) {
	h := newHarness(t, harnessOpts{})
	h.e.Resize(120, 40)
	if h.rec.Width != 120 || h.rec.Height != 40 {
		t.Errorf("scene size = %dx%d", h.rec.Width, h.rec.Height)
	}
}
