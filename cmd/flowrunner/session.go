package main

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/gopxl/beep"
	"github.com/sirupsen/logrus"

	"github.com/spokedu77-ops/flowrunner/asset"
	"github.com/spokedu77-ops/flowrunner/audio"
	"github.com/spokedu77-ops/flowrunner/config"
	"github.com/spokedu77-ops/flowrunner/engine"
	"github.com/spokedu77-ops/flowrunner/obstacle"
	"github.com/spokedu77-ops/flowrunner/scene"
	"github.com/spokedu77-ops/flowrunner/status"
)

// session is an engine plus the collaborators the host keeps handles to
type session struct {
	engine    *engine.Engine
	audio     *audio.Engine
	obstacles *obstacle.Manager
	status    *status.Registry
	seed      uint64
}

// newSession wires one engine; ui may be nil for hosts without a HUD
func newSession(cfg config.Config, sc scene.Scene, ui engine.UI, out audio.Output, clock engine.Clock, log *logrus.Logger) (*session, error) {
	seed := cfg.Engine.Seed
	if seed == 0 {
		seed = rand.Uint64()
	}
	ecfg := cfg.EngineSettings()
	ecfg.Seed = seed

	s := &session{
		audio:     audio.NewEngine(cfg.AudioSettings(), out),
		obstacles: obstacle.NewManager(sc, rand.New(rand.NewPCG(seed, seed>>1)), log),
		status:    status.NewRegistry(),
		seed:      seed,
	}

	deps := engine.Deps{
		Scene:     sc,
		UI:        ui,
		Audio:     s.audio,
		Obstacles: s.obstacles,
		Clock:     clock,
		Log:       log,
		Status:    s.status,
	}
	if src := cfg.AssetSource(); src != nil {
		deps.Loader = asset.NewLoader(src, beep.SampleRate(cfg.Audio.SampleRate))
	}

	e, err := engine.New(ecfg, deps)
	if err != nil {
		return nil, fmt.Errorf("engine: %w", err)
	}
	s.engine = e
	log.WithFields(logrus.Fields{"seed": seed, "session": e.Session()}).Info("session created")
	return s, nil
}

// begin starts normally, or jumps straight into level when it is set
func (s *session) begin(level int) error {
	if level > 0 {
		return s.engine.JumpToLevel(level)
	}
	return s.engine.Start()
}

// waitAssets blocks until the session's asset load settles or timeout passes
func (s *session) waitAssets(timeout time.Duration) bool {
	select {
	case <-s.engine.AssetsDone():
		return true
	case <-time.After(timeout):
		return false
	}
}

// sessionLength bounds a full run: every slot plus the choreography between them
func sessionLength(cfg config.Config) time.Duration {
	tl := cfg.EngineSettings().Timeline
	return tl.PlayDuration() + tl.RestDuration() + time.Minute
}
