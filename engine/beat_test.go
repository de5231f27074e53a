package engine

import (
	"math"
	"strings"
	"testing"
	"time"

	"github.com/spokedu77-ops/flowrunner/parameter"
)

type beatLog struct {
	cues  []Cue
	times []float64
}

func (l *beatLog) emit(cue Cue, at float64) {
	l.cues = append(l.cues, cue)
	l.times = append(l.times, at)
}

func TestCueFor(t *testing.T) {
	for sub := 0; sub < parameter.BeatsPerRound; sub++ {
		want := CueAction
		switch {
		case sub < parameter.ListenBeats:
			want = CueListen
		case sub == parameter.ListenBeats:
			want = CueAccent
		}
		if got := CueFor(sub); got != want {
			t.Errorf("CueFor(%d) = %v, want %v", sub, got, want)
		}
	}
}

func TestScheduleBeatsOneRound(t *testing.T) {
	var b BeatState
	var log beatLog

	// Beats land every BeatStep after the anchor; stop before the 17th enters the lookahead
	for i := 0; i <= 231; i++ {
		scheduleBeats(&b, float64(i)/60, true, log.emit)
	}

	if len(log.cues) != parameter.BeatsPerRound {
		t.Fatalf("emitted %d beats, want %d", len(log.cues), parameter.BeatsPerRound)
	}
	for i, at := range log.times {
		want := parameter.BeatAnchorLead + float64(i)*parameter.BeatStep
		if math.Abs(at-want) > 1e-9 {
			t.Errorf("beat %d at %v, want %v", i, at, want)
		}
		if log.cues[i] != CueFor(i) {
			t.Errorf("beat %d cue %v", i, log.cues[i])
		}
	}
	if b.Round != 1 || b.SubBeat != 0 || b.Skipped != 0 {
		t.Errorf("round=%d sub=%d skipped=%d", b.Round, b.SubBeat, b.Skipped)
	}
}

func TestScheduleBeatsSkipsPast(t *testing.T) {
	b := BeatState{Armed: true, NextNoteTime: 1.0}
	var log beatLog

	n := scheduleBeats(&b, 1.6, true, log.emit)
	if n != 0 || len(log.cues) != 0 {
		t.Errorf("emitted %d past beats", n)
	}
	if b.Skipped != 3 || b.NextNoteTime != 1.75 || b.SubBeat != 3 {
		t.Errorf("skipped=%d next=%v sub=%d", b.Skipped, b.NextNoteTime, b.SubBeat)
	}
}

func TestScheduleBeatsReanchorsAfterSuspend(t *testing.T) {
	b := BeatState{Armed: true, NextNoteTime: 1.0, SubBeat: 4}
	var log beatLog

	if n := scheduleBeats(&b, 0.95, false, log.emit); n != 0 || !b.Suspended {
		t.Fatalf("n=%d suspended=%v", n, b.Suspended)
	}
	n := scheduleBeats(&b, 3.0, true, log.emit)
	if n != 1 || b.Suspended || b.Skipped != 0 {
		t.Fatalf("n=%d suspended=%v skipped=%d", n, b.Suspended, b.Skipped)
	}
	if got := log.times[0]; math.Abs(got-(3.0+parameter.BeatAnchorLead)) > 1e-9 {
		t.Errorf("re-anchored beat at %v", got)
	}
	if log.cues[0] != CueFor(4) {
		t.Errorf("sub-beat position lost: %v", log.cues[0])
	}
}

func TestScheduleBeatsWaitsForAudio(t *testing.T) {
	var b BeatState
	var log beatLog
	for i := 0; i < 10; i++ {
		scheduleBeats(&b, 0, false, log.emit)
	}
	if b.Armed || b.Suspended || len(log.cues) != 0 {
		t.Errorf("scheduler moved without audio: %+v", b)
	}
}

func TestVisualDelay(t *testing.T) {
	tests := []struct {
		beat, now float64
		want      time.Duration
	}{
		{1.25, 1.0, 250 * time.Millisecond},
		{1.0, 1.0, 0},
		{0.5, 1.0, 0},
		{math.NaN(), 1.0, 0},
	}
	for _, tt := range tests {
		if got := VisualDelay(tt.beat, tt.now); got != tt.want {
			t.Errorf("VisualDelay(%v, %v) = %v, want %v", tt.beat, tt.now, got, tt.want)
		}
	}
}

func TestBeatVisual(t *testing.T) {
	var b BeatState
	beatVisual(&b, CueListen)
	if b.BeatPulse != 0.5 || b.FlashPulse != 0 {
		t.Errorf("listen: %+v", b)
	}
	beatVisual(&b, CueAccent)
	if b.BeatPulse != parameter.AccentPulse || b.FlashPulse != parameter.AccentFlash {
		t.Errorf("accent: %+v", b)
	}
	beatVisual(&b, CueAction)
	if b.BeatPulse != parameter.AccentPulse {
		t.Error("action beat lowered a stronger pulse")
	}
}

func TestUpdatePulse(t *testing.T) {
	var b BeatState
	if n := updatePulse(&b, 0, 1.0/60); n != 1 {
		t.Fatalf("pulses at t=0: %d", n)
	}
	first := b.FlashPulse
	if first <= 0 || first > parameter.AmbientFlash {
		t.Errorf("flash = %v", first)
	}

	// A stall fires every missed pulse once
	if n := updatePulse(&b, 1.6, 0.1); n != 3 {
		t.Errorf("pulses after stall = %d", n)
	}
	if b.NextPulseTime != 2.0 {
		t.Errorf("next pulse = %v", b.NextPulseTime)
	}

	b.FlashPulse = 1
	b.BeatPulse = 1
	for i := 0; i < 60; i++ {
		updatePulse(&b, 1.7, 1.0/60)
	}
	if b.FlashPulse > 0.01 || b.BeatPulse > 0.01 {
		t.Errorf("accumulators did not decay: flash=%v beat=%v", b.FlashPulse, b.BeatPulse)
	}
}

func TestBeatsReachAudioEngine(t *testing.T) {
	h := newHarness(t, harnessOpts{audio: true})
	if err := h.e.JumpToLevel(1); err != nil {
		t.Fatal(err)
	}

	maxPulse := 0.0
	for i := 0; i < 240; i++ {
		h.frame(dt60, func(s Snapshot) { maxPulse = math.Max(maxPulse, s.Beat.BeatPulse) })
	}

	s := h.e.Snapshot()
	if !s.Beat.Armed {
		t.Fatalf("beat state %+v", s.Beat)
	}
	// 4s of audio holds 16 sub-beats; the one inside the lookahead may be queued too
	sub := s.Beat.Round*parameter.BeatsPerRound + s.Beat.SubBeat
	if sub < 15 || sub > 17 {
		t.Errorf("scheduled %d sub-beats in 4s", sub)
	}
	if h.aud.Scheduled() < uint64(sub) {
		t.Errorf("audio engine received %d sounds for %d beats", h.aud.Scheduled(), sub)
	}
	if maxPulse < 0.5 {
		t.Errorf("beat visuals never fired: max pulse %v", maxPulse)
	}
	if !strings.Contains(h.ui.debugLine(), "audio=on") {
		t.Errorf("debug line = %q", h.ui.debugLine())
	}
}
