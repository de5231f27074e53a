package terminal

import (
	"image"
	"os"
	"strings"

	"github.com/gdamore/tcell/v2"
)

// ColorMode indicates terminal color capability
type ColorMode uint8

const (
	ColorMode256       ColorMode = iota // xterm-256 palette
	ColorModeTrueColor                  // 24-bit RGB
)

func (m ColorMode) String() string {
	if m == ColorModeTrueColor {
		return "truecolor"
	}
	return "256"
}

// ParseColorMode resolves a -color flag value; anything unknown means auto-detect
func ParseColorMode(s string) ColorMode {
	switch strings.ToLower(s) {
	case "256":
		return ColorMode256
	case "truecolor", "true", "24bit":
		return ColorModeTrueColor
	default:
		return DetectColorMode()
	}
}

// DetectColorMode determines terminal color capability from environment
func DetectColorMode() ColorMode {
	colorterm := os.Getenv("COLORTERM")
	if colorterm == "truecolor" || colorterm == "24bit" {
		return ColorModeTrueColor
	}

	if os.Getenv("KITTY_WINDOW_ID") != "" ||
		os.Getenv("KONSOLE_VERSION") != "" ||
		os.Getenv("ITERM_SESSION_ID") != "" ||
		os.Getenv("ALACRITTY_WINDOW_ID") != "" ||
		os.Getenv("WEZTERM_PANE") != "" {
		return ColorModeTrueColor
	}

	term := strings.ToLower(os.Getenv("TERM"))
	if strings.Contains(term, "truecolor") ||
		strings.Contains(term, "24bit") ||
		strings.Contains(term, "direct") {
		return ColorModeTrueColor
	}
	return ColorMode256
}

// RGB represents a 24-bit color
type RGB struct {
	R, G, B uint8
}

// Scale multiplies every channel by f, clamped
func (c RGB) Scale(f float64) RGB {
	return RGB{scaleChannel(c.R, f), scaleChannel(c.G, f), scaleChannel(c.B, f)}
}

// Mix blends c toward o by t in [0,1]
func (c RGB) Mix(o RGB, t float64) RGB {
	if t <= 0 {
		return c
	}
	if t >= 1 {
		return o
	}
	mix := func(a, b uint8) uint8 { return uint8(float64(a) + (float64(b)-float64(a))*t) }
	return RGB{mix(c.R, o.R), mix(c.G, o.G), mix(c.B, o.B)}
}

func scaleChannel(v uint8, f float64) uint8 {
	x := float64(v) * f
	if x < 0 {
		return 0
	}
	if x > 255 {
		return 255
	}
	return uint8(x)
}

// Color cube levels of the 6x6x6 palette (indices 16-231)
var cubeValues = [6]uint8{0, 95, 135, 175, 215, 255}

const grayscaleStart = 232

func cubeIndex(v uint8) uint8 {
	best := uint8(0)
	bestDist := absInt(int(v) - int(cubeValues[0]))
	for j := 1; j < len(cubeValues); j++ {
		if d := absInt(int(v) - int(cubeValues[j])); d < bestDist {
			bestDist = d
			best = uint8(j)
		}
	}
	return best
}

// RGBTo256 finds the nearest xterm-256 palette index
func RGBTo256(c RGB) uint8 {
	r, g, b := c.R, c.G, c.B
	gray := (int(r) + int(g) + int(b)) / 3
	maxDiff := max(absInt(int(r)-gray), absInt(int(g)-gray), absInt(int(b)-gray))

	cr, cg, cb := cubeIndex(r), cubeIndex(g), cubeIndex(b)
	if maxDiff < 10 {
		if gray < 4 {
			return 16
		}
		if gray > 243 {
			return 231
		}
		grayIdx := grayscaleStart + (gray-8)/10
		if grayIdx > 255 {
			grayIdx = 255
		}
		grayLevel := 8 + (grayIdx-grayscaleStart)*10
		grayDist := absInt(int(r)-grayLevel) + absInt(int(g)-grayLevel) + absInt(int(b)-grayLevel)
		cubeDist := absInt(int(r)-int(cubeValues[cr])) +
			absInt(int(g)-int(cubeValues[cg])) +
			absInt(int(b)-int(cubeValues[cb]))
		if grayDist < cubeDist {
			return uint8(grayIdx)
		}
	}
	return 16 + 36*cr + 6*cg + cb
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// Color converts c for the mode
func (m ColorMode) Color(c RGB) tcell.Color {
	if m == ColorModeTrueColor {
		return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
	}
	return tcell.PaletteColor(int(RGBTo256(c)))
}

// Named HUD styles used by level tags and banners
var styleColors = map[string]RGB{
	"info":     {230, 230, 230},
	"warn":     {255, 200, 60},
	"alert":    {255, 80, 80},
	"tag-calm": {90, 200, 255},
	"tag-warm": {120, 230, 120},
	"tag-hot":  {255, 150, 50},
	"tag-max":  {230, 90, 230},
	"tag-rest": {120, 140, 255},
}

// StyleColor returns the color of a named style, white when unknown
func StyleColor(name string) RGB {
	if c, ok := styleColors[name]; ok {
		return c
	}
	return styleColors["info"]
}

// AverageColor samples img on a coarse grid and returns its mean color
func AverageColor(img image.Image) RGB {
	b := img.Bounds()
	if b.Empty() {
		return RGB{}
	}
	const grid = 16
	stepX := max(1, b.Dx()/grid)
	stepY := max(1, b.Dy()/grid)

	var r, g, bl, n uint64
	for y := b.Min.Y; y < b.Max.Y; y += stepY {
		for x := b.Min.X; x < b.Max.X; x += stepX {
			cr, cg, cb, _ := img.At(x, y).RGBA()
			r += uint64(cr >> 8)
			g += uint64(cg >> 8)
			bl += uint64(cb >> 8)
			n++
		}
	}
	return RGB{uint8(r / n), uint8(g / n), uint8(bl / n)}
}
