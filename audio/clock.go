package audio

import (
	"sync/atomic"

	"github.com/gopxl/beep"
)

// clockStreamer counts frames pulled by the device, giving a hardware-paced clock
// Position only moves while the device streams, so it is independent of the frame loop
type clockStreamer struct {
	s   beep.Streamer
	pos atomic.Int64
}

func (c *clockStreamer) Stream(samples [][2]float64) (int, bool) {
	n, ok := c.s.Stream(samples)
	if !ok || n < len(samples) {
		// Keep the clock running on silence if the source ever ends
		for i := n; i < len(samples); i++ {
			samples[i] = [2]float64{}
		}
		n = len(samples)
	}
	c.pos.Add(int64(n))
	return n, true
}

func (c *clockStreamer) Err() error { return c.s.Err() }

func (c *clockStreamer) frames() int64 { return c.pos.Load() }
