package asset

import (
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"

	"github.com/gopxl/beep"
	_ "golang.org/x/image/webp"
	"golang.org/x/sync/errgroup"

	"github.com/spokedu77-ops/flowrunner/audio"
)

// Loader turns storage paths into decoded tracks and images
type Loader struct {
	src  Source
	rate beep.SampleRate
}

// NewLoader creates a loader decoding tracks at rate
func NewLoader(src Source, rate beep.SampleRate) *Loader {
	return &Loader{src: src, rate: rate}
}

// LoadTrack fetches and decodes a WAV or MP3 track
func (l *Loader) LoadTrack(ctx context.Context, storagePath string) (*audio.Track, error) {
	if l.src == nil {
		return nil, ErrNoSource
	}
	rc, err := l.src.Open(ctx, storagePath)
	if err != nil {
		return nil, err
	}
	t, err := audio.DecodeTrack(rc, storagePath, l.rate)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	return t, nil
}

// LoadImage fetches and decodes a PNG, JPEG or WebP image
func (l *Loader) LoadImage(ctx context.Context, storagePath string) (image.Image, error) {
	if l.src == nil {
		return nil, ErrNoSource
	}
	rc, err := l.src.Open(ctx, storagePath)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	img, _, err := image.Decode(rc)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrDecode, storagePath, err)
	}
	return img, nil
}

// Request names the assets of one session; empty paths are skipped
type Request struct {
	TrackPath      string
	BackgroundPath string
}

// Result carries each asset or its own failure; one failing never cancels the other
type Result struct {
	Track         *audio.Track
	TrackErr      error
	Background    image.Image
	BackgroundErr error
}

// Load fetches every requested asset concurrently
// Per-asset failures are carried in Result; only cancellation is returned, and it stops the other fetch
func (l *Loader) Load(ctx context.Context, req Request) (Result, error) {
	var res Result
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(2)

	if req.TrackPath != "" {
		g.Go(func() error {
			res.Track, res.TrackErr = l.LoadTrack(gctx, req.TrackPath)
			return cancelled(ctx, res.TrackErr)
		})
	}
	if req.BackgroundPath != "" {
		g.Go(func() error {
			res.Background, res.BackgroundErr = l.LoadImage(gctx, req.BackgroundPath)
			return cancelled(ctx, res.BackgroundErr)
		})
	}
	if err := g.Wait(); err != nil {
		return Result{}, err
	}
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}
	return res, nil
}

// cancelled promotes err to a group error only when the caller's context ended
func cancelled(ctx context.Context, err error) error {
	if err == nil {
		return nil
	}
	if cerr := ctx.Err(); cerr != nil && (errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)) {
		return cerr
	}
	return nil
}

// Degraded reports whether any requested asset failed
func (r Result) Degraded() bool {
	return r.TrackErr != nil || r.BackgroundErr != nil
}

// IsNotFound reports whether err is a missing asset, local or remote
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
