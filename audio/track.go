package audio

import (
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/mp3"
	"github.com/gopxl/beep/wav"
)

// resampleQuality is the beep resampler quality used for tracks
const resampleQuality = 4

// Track is a fully decoded music track at the engine sample rate
type Track struct {
	Name   string
	buffer *beep.Buffer
}

// Len returns the number of frames
func (t *Track) Len() int {
	return t.buffer.Len()
}

// Duration returns the playing time
func (t *Track) Duration() time.Duration {
	return t.buffer.Format().SampleRate.D(t.buffer.Len())
}

// DecodeTrack decodes a WAV or MP3 stream, chosen by the name's extension, resampled to rate
// rc is always closed
func DecodeTrack(rc io.ReadCloser, name string, rate beep.SampleRate) (*Track, error) {
	var (
		s      beep.StreamSeekCloser
		format beep.Format
		err    error
	)

	switch strings.ToLower(path.Ext(name)) {
	case ".wav":
		s, format, err = wav.Decode(rc)
	case ".mp3":
		s, format, err = mp3.Decode(rc)
	default:
		rc.Close()
		return nil, fmt.Errorf("%s: %w", name, ErrUnsupportedFormat)
	}
	if err != nil {
		rc.Close()
		return nil, fmt.Errorf("decode %s: %w", name, err)
	}
	defer s.Close()

	var src beep.Streamer = s
	if format.SampleRate != rate {
		src = beep.Resample(resampleQuality, format.SampleRate, rate, s)
	}

	buf := beep.NewBuffer(beep.Format{SampleRate: rate, NumChannels: 2, Precision: 2})
	buf.Append(src)
	if err := s.Err(); err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	if buf.Len() == 0 {
		return nil, fmt.Errorf("%s: %w", name, ErrEmptyTrack)
	}

	return &Track{Name: name, buffer: buf}, nil
}

// loop returns an endless streamer over the track
func (t *Track) loop() beep.Streamer {
	return beep.Loop(-1, t.buffer.Streamer(0, t.buffer.Len()))
}
