package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"
)

// AudioConfig controls the audio engine
type AudioConfig struct {
	SampleRate int     `json:"sampleRate,omitempty"`
	MasterGain float64 `json:"masterGain,omitempty"`
	Headless   bool    `json:"headless,omitempty"` // never open an output device
}

// MIDIConfig defines the optional MIDI trigger output
type MIDIConfig struct {
	Enabled  bool   `json:"enabled,omitempty"`
	PortName string `json:"portName,omitempty"`
	Channel  uint8  `json:"channel,omitempty"` // 1-16, drums usually on 10

	// Controller names a Launchpad to edit the pattern from ("" for none)
	Controller string `json:"controller,omitempty"`
}

// UIConfig stores UI preferences
type UIConfig struct {
	Preset  string  `json:"preset,omitempty"`
	LastBps float64 `json:"lastBps,omitempty"`
}

// PersistConfig tunes pattern persistence
type PersistConfig struct {
	DebounceMs int `json:"debounceMs,omitempty"`
}

// Config is the main configuration structure
type Config struct {
	Audio   AudioConfig   `json:"audio,omitempty"`
	MIDI    MIDIConfig    `json:"midi,omitempty"`
	UI      UIConfig      `json:"ui,omitempty"`
	Persist PersistConfig `json:"persist,omitempty"`

	dir string // where the config was loaded from
}

// DefaultConfig returns a config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Audio: AudioConfig{
			SampleRate: 44100,
			MasterGain: 0.65,
		},
		MIDI: MIDIConfig{
			Channel: 10,
		},
		UI: UIConfig{
			Preset: "classic",
		},
		Persist: PersistConfig{
			DebounceMs: 120,
		},
	}
}

// ConfigDir returns the config directory path
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "go-drummer"), nil
}

// Load reads config.json from dir (ConfigDir when empty), or returns defaults if not found.
// Missing fields keep their defaults.
func Load(dir string) (*Config, error) {
	cfg := DefaultConfig()
	if dir == "" {
		d, err := ConfigDir()
		if err != nil {
			return cfg, nil
		}
		dir = d
	}
	cfg.dir = dir

	data, err := os.ReadFile(filepath.Join(dir, "config.json"))
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}

	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	cfg.normalize()

	return cfg, nil
}

// Dir returns the directory the config belongs to
func (c *Config) Dir() string {
	return c.dir
}

// Save writes the config to disk
func (c *Config) Save() error {
	dir := c.dir
	if dir == "" {
		d, err := ConfigDir()
		if err != nil {
			return err
		}
		dir = d
	}

	// Create directory if it doesn't exist
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(filepath.Join(dir, "config.json"), data, 0644)
}

// Debounce returns the persistence coalescing window
func (c *Config) Debounce() time.Duration {
	return time.Duration(c.Persist.DebounceMs) * time.Millisecond
}

func (c *Config) normalize() {
	def := DefaultConfig()
	if c.Audio.SampleRate <= 0 {
		c.Audio.SampleRate = def.Audio.SampleRate
	}
	if c.Audio.MasterGain <= 0 {
		c.Audio.MasterGain = def.Audio.MasterGain
	}
	if c.MIDI.Channel < 1 || c.MIDI.Channel > 16 {
		c.MIDI.Channel = def.MIDI.Channel
	}
	if c.UI.Preset == "" {
		c.UI.Preset = def.UI.Preset
	}
	if c.Persist.DebounceMs <= 0 {
		c.Persist.DebounceMs = def.Persist.DebounceMs
	}
}
