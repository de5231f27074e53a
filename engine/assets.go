package engine

import (
	"context"
	"errors"
	"strconv"

	"github.com/spokedu77-ops/flowrunner/asset"
)

// loadAssets fetches the session's music and background off the frame loop
// The continuation discards its result once the engine is disposed
func (e *Engine) loadAssets() {
	req := e.cfg.Assets
	done := e.assetsDone

	if e.loader == nil || (req.TrackPath == "" && req.BackgroundPath == "") {
		e.applyAssets(asset.Result{})
		close(done)
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	e.cancelLoad = cancel
	log := e.log.WithField("track", req.TrackPath)

	go func() {
		defer close(done)
		defer cancel()

		res, err := e.loader.Load(ctx, req)

		e.mu.Lock()
		defer e.mu.Unlock()
		if e.disposed || ctx.Err() != nil {
			log.Debug("asset result discarded")
			return
		}
		if err != nil {
			log.WithError(err).Warn("asset load aborted")
			e.metrics.assets.Set("failed")
			e.applyAssets(asset.Result{})
			return
		}
		e.applyAssets(res)
	}()
}

// applyAssets installs whatever loaded and falls back for the rest; caller holds mu
func (e *Engine) applyAssets(res asset.Result) {
	e.assetsSettled = true

	if res.Background != nil {
		e.scene.SetBackground(res.Background)
	} else if res.BackgroundErr != nil {
		e.log.WithError(res.BackgroundErr).Warn("background unavailable, using plain backdrop")
		e.metrics.assets.Set(describeAssetError("bg", res.BackgroundErr))
	}

	if res.Track != nil {
		e.track = res.Track
		e.log.WithField("duration", res.Track.Duration()).Info("music loaded")
	} else if res.TrackErr != nil {
		e.log.WithError(res.TrackErr).Warn("music unavailable, using drum loop")
		e.metrics.assets.Set(describeAssetError("music", res.TrackErr))
	}

	if e.sim.Game.Phase != PhaseFinished {
		e.ensureMusic()
	}
}

// ensureMusic starts the music voice if none plays: the loaded track, else the drum loop
func (e *Engine) ensureMusic() {
	if !e.assetsSettled || !e.audio.Running() || e.audio.MusicPlaying() {
		return
	}
	var err error
	if e.track != nil {
		err = e.audio.PlayTrack(e.track)
	} else {
		err = e.audio.PlayDrumLoop(e.cfg.DrumBPM)
	}
	if err != nil {
		e.log.WithError(err).Debug("music not started")
	}
}

func describeAssetError(what string, err error) string {
	var se *asset.StatusError
	switch {
	case errors.As(err, &se):
		return what + ":http" + strconv.Itoa(se.Code)
	case asset.IsNotFound(err):
		return what + ":missing"
	case errors.Is(err, asset.ErrDecode):
		return what + ":decode"
	default:
		return what + ":error"
	}
}
