package main

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/spokedu77-ops/flowrunner/audio"
	"github.com/spokedu77-ops/flowrunner/config"
	"github.com/spokedu77-ops/flowrunner/engine"
	"github.com/spokedu77-ops/flowrunner/scene"
)

// headlessReport summarizes a run without a terminal
type headlessReport struct {
	Frames   int
	Elapsed  time.Duration
	Renders  int
	Seed     uint64
	Snapshot engine.Snapshot
	Status   string
}

func (r headlessReport) String() string {
	return fmt.Sprintf("frames=%d sim=%s seed=%d state=%s level=%d progress=%.0f%% coins=%d renders=%d\n%s",
		r.Frames, r.Elapsed.Round(time.Millisecond), r.Seed, r.Snapshot.State, r.Snapshot.Level,
		r.Snapshot.Progress, r.Snapshot.Coins, r.Renders, r.Status)
}

// runHeadless plays a session on a simulated clock into a recording scene
// Audio is pulled manually so the beat scheduler sees a moving audio clock
// It stops at limit, or when the session finishes if limit is zero
func runHeadless(cfg config.Config, limit time.Duration, log *logrus.Logger) (headlessReport, error) {
	clock := engine.NewMockClock(time.Unix(0, 0))
	out := audio.NewManualOutput(nil)
	rec := scene.NewRecorder()

	s, err := newSession(cfg, rec, nil, out, clock, log)
	if err != nil {
		return headlessReport{}, err
	}
	defer s.engine.Dispose()

	if err := s.begin(cfg.Engine.StartLevel); err != nil {
		return headlessReport{}, fmt.Errorf("start: %w", err)
	}
	if !s.waitAssets(cfg.Assets.Timeout) {
		log.Warn("assets still loading, continuing without them")
	}

	if limit <= 0 {
		limit = sessionLength(cfg)
	}
	step := cfg.FrameInterval()
	dt := step.Seconds()

	rep := headlessReport{Seed: s.seed}
	for rep.Elapsed < limit {
		clock.Advance(step)
		s.engine.Update(dt)
		out.PumpDuration(dt)
		rep.Frames++
		rep.Elapsed += step
		if s.engine.Snapshot().Phase == engine.PhaseFinished {
			break
		}
	}

	rep.Snapshot = s.engine.Snapshot()
	rep.Renders = rec.RenderCount()
	rep.Status = s.status.Line()
	log.WithFields(logrus.Fields{"frames": rep.Frames, "state": rep.Snapshot.State}).Info("headless run complete")
	return rep, nil
}
