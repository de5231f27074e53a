// Package config resolves runner settings from code defaults, an optional TOML file and FLOW_* environment variables
// Later sources win; every value is clamped into its valid range after loading
package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/sirupsen/logrus"

	"github.com/spokedu77-ops/flowrunner/asset"
	"github.com/spokedu77-ops/flowrunner/audio"
	"github.com/spokedu77-ops/flowrunner/engine"
	"github.com/spokedu77-ops/flowrunner/parameter"
)

// DefaultPath is read when it exists and no explicit path is given
const DefaultPath = "flowrunner.toml"

// ErrUnknownKey is returned for keys in the file that map to no setting
var ErrUnknownKey = errors.New("config: unknown key")

// Config is the full runner configuration
type Config struct {
	Audio  AudioConfig  `toml:"audio"`
	Assets AssetsConfig `toml:"assets"`
	Engine EngineConfig `toml:"engine"`
	Log    LogConfig    `toml:"log"`
}

// AudioConfig is the [audio] section
type AudioConfig struct {
	Enabled      bool    `toml:"enabled"`
	MasterVolume float64 `toml:"master_volume"` // 0..1
	MusicVolume  float64 `toml:"music_volume"`  // 0..1
	SampleRate   int     `toml:"sample_rate"`
	BufferMS     int     `toml:"buffer_ms"`
	MusicPath    string  `toml:"music_path"`
	BPM          int     `toml:"bpm"` // drum loop tempo
}

// AssetsConfig is the [assets] section
// BaseURL wins over RootDir when both are set
type AssetsConfig struct {
	BaseURL        string        `toml:"base_url"`
	RootDir        string        `toml:"root_dir"`
	BackgroundPath string        `toml:"background_path"`
	Timeout        time.Duration `toml:"timeout"`
}

// EngineConfig is the [engine] section
type EngineConfig struct {
	MaxDt      float64 `toml:"max_dt"`
	Seed       uint64  `toml:"seed"`        // 0 = random
	StartLevel int     `toml:"start_level"` // 0 = normal start, 1..4 jumps straight into a level
	FPS        int     `toml:"fps"`
}

// LogConfig is the [log] section
type LogConfig struct {
	Debug bool   `toml:"debug"`
	Level string `toml:"level"`
}

// Valid ranges
const (
	minSampleRate = 8000
	maxSampleRate = 192000
	minBufferMS   = 10
	maxBufferMS   = 500
	minBPM        = 60
	maxBPM        = 200
	minFPS        = 10
	maxFPS        = 240
	maxDtLimit    = 0.25
)

// Default returns the built-in configuration
func Default() Config {
	return Config{
		Audio: AudioConfig{
			Enabled:      true,
			MasterVolume: parameter.AudioMasterVolume,
			MusicVolume:  parameter.AudioMusicVolume,
			SampleRate:   parameter.AudioSampleRate,
			BufferMS:     int(parameter.AudioBufferDuration / time.Millisecond),
			BPM:          parameter.DrumBPM,
		},
		Assets: AssetsConfig{
			Timeout: 10 * time.Second,
		},
		Engine: EngineConfig{
			MaxDt: parameter.MaxFrameDt,
			FPS:   int(time.Second / parameter.FrameInterval),
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load builds the configuration from defaults, the file at path and the environment
// An empty path reads DefaultPath when present
func Load(path string) (Config, error) {
	cfg := Default()

	if path == "" {
		if _, err := os.Stat(DefaultPath); err == nil {
			path = DefaultPath
		}
	}
	if path != "" {
		if err := cfg.loadFile(path); err != nil {
			return cfg, err
		}
	}

	cfg.ApplyEnv()
	cfg.Normalize()
	return cfg, nil
}

// Parse decodes TOML text over the defaults, then normalizes; the environment is not read
func Parse(text string) (Config, error) {
	cfg := Default()
	md, err := toml.Decode(text, &cfg)
	if err != nil {
		return cfg, fmt.Errorf("config: %w", err)
	}
	if err := checkUndecoded(md); err != nil {
		return cfg, err
	}
	cfg.Normalize()
	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	md, err := toml.DecodeFile(path, c)
	if err != nil {
		return fmt.Errorf("config: read %s: %w", path, err)
	}
	return checkUndecoded(md)
}

func checkUndecoded(md toml.MetaData) error {
	undecoded := md.Undecoded()
	if len(undecoded) == 0 {
		return nil
	}
	keys := make([]string, len(undecoded))
	for i, k := range undecoded {
		keys[i] = k.String()
	}
	sort.Strings(keys)
	return fmt.Errorf("%w: %s", ErrUnknownKey, strings.Join(keys, ", "))
}

// ApplyEnv overrides settings from FLOW_* variables; unparsable values are ignored
func (c *Config) ApplyEnv() {
	if v, ok := envBool("FLOW_AUDIO_ENABLED"); ok {
		c.Audio.Enabled = v
	}
	// Volume is given in percent
	if v, ok := envInt("FLOW_MASTER_VOLUME"); ok {
		c.Audio.MasterVolume = float64(v) / 100
	}
	if v, ok := envInt("FLOW_SAMPLE_RATE"); ok && v > 0 {
		c.Audio.SampleRate = v
	}
	if v := os.Getenv("FLOW_MUSIC_PATH"); v != "" {
		c.Audio.MusicPath = v
	}
	if v := os.Getenv("FLOW_ASSET_BASE_URL"); v != "" {
		c.Assets.BaseURL = v
	}
	if v := os.Getenv("FLOW_ASSET_DIR"); v != "" {
		c.Assets.RootDir = v
	}
	if v := os.Getenv("FLOW_BACKGROUND_PATH"); v != "" {
		c.Assets.BackgroundPath = v
	}
	if v, ok := envInt("FLOW_START_LEVEL"); ok {
		c.Engine.StartLevel = v
	}
	if v, ok := envBool("FLOW_DEBUG"); ok {
		c.Log.Debug = v
	}
	if v := os.Getenv("FLOW_LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
}

func envBool(key string) (bool, bool) {
	s := os.Getenv(key)
	if s == "" {
		return false, false
	}
	v, err := strconv.ParseBool(s)
	return v, err == nil
}

func envInt(key string) (int, bool) {
	s := os.Getenv(key)
	if s == "" {
		return 0, false
	}
	v, err := strconv.Atoi(s)
	return v, err == nil
}

// Normalize clamps every value into its valid range; invalid non-numeric values fall back to defaults
func (c *Config) Normalize() {
	def := Default()

	c.Audio.MasterVolume = clampFloat(c.Audio.MasterVolume, 0, 1)
	c.Audio.MusicVolume = clampFloat(c.Audio.MusicVolume, 0, 1)
	if c.Audio.SampleRate <= 0 {
		c.Audio.SampleRate = def.Audio.SampleRate
	}
	c.Audio.SampleRate = clampInt(c.Audio.SampleRate, minSampleRate, maxSampleRate)
	c.Audio.BufferMS = clampInt(c.Audio.BufferMS, minBufferMS, maxBufferMS)
	c.Audio.BPM = clampInt(c.Audio.BPM, minBPM, maxBPM)

	if c.Assets.Timeout <= 0 {
		c.Assets.Timeout = def.Assets.Timeout
	}

	if c.Engine.MaxDt <= 0 {
		c.Engine.MaxDt = def.Engine.MaxDt
	}
	c.Engine.MaxDt = clampFloat(c.Engine.MaxDt, 0.001, maxDtLimit)
	c.Engine.StartLevel = clampInt(c.Engine.StartLevel, 0, parameter.LevelCount)
	c.Engine.FPS = clampInt(c.Engine.FPS, minFPS, maxFPS)

	if _, err := logrus.ParseLevel(c.Log.Level); err != nil {
		c.Log.Level = def.Log.Level
	}
}

// AudioSettings returns the audio engine configuration
func (c Config) AudioSettings() audio.Config {
	return audio.Config{
		Enabled:        c.Audio.Enabled,
		SampleRate:     c.Audio.SampleRate,
		BufferDuration: time.Duration(c.Audio.BufferMS) * time.Millisecond,
		MasterVolume:   c.Audio.MasterVolume,
		MusicVolume:    c.Audio.MusicVolume,
	}
}

// AssetRequest returns the asset paths of a session
func (c Config) AssetRequest() asset.Request {
	return asset.Request{
		TrackPath:      c.Audio.MusicPath,
		BackgroundPath: c.Assets.BackgroundPath,
	}
}

// AssetSource returns the configured source, nil when no assets are configured
func (c Config) AssetSource() asset.Source {
	switch {
	case c.Assets.BaseURL != "":
		return asset.NewHTTPSource(c.Assets.BaseURL, c.Assets.Timeout)
	case c.Assets.RootDir != "":
		return asset.DirSource{Root: c.Assets.RootDir}
	default:
		return nil
	}
}

// EngineSettings returns the engine configuration
func (c Config) EngineSettings() engine.Config {
	ec := engine.DefaultConfig()
	ec.MaxDt = c.Engine.MaxDt
	ec.Seed = c.Engine.Seed
	ec.Assets = c.AssetRequest()
	ec.DrumBPM = c.Audio.BPM
	return ec
}

// FrameInterval is the host frame period
func (c Config) FrameInterval() time.Duration {
	return time.Second / time.Duration(c.Engine.FPS)
}

// LogLevel returns the parsed log level
func (c Config) LogLevel() logrus.Level {
	if c.Log.Debug {
		return logrus.DebugLevel
	}
	lvl, err := logrus.ParseLevel(c.Log.Level)
	if err != nil {
		return logrus.InfoLevel
	}
	return lvl
}

func clampFloat(v, lo, hi float64) float64 {
	if math.IsNaN(v) || v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
