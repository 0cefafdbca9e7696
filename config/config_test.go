package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	qt "github.com/frankban/quicktest"
)

func TestLoadMissingReturnsDefaults(t *testing.T) {
	c := qt.New(t)
	dir := t.TempDir()

	cfg, err := Load(dir)
	c.Assert(err, qt.IsNil)
	c.Assert(cfg.Audio.SampleRate, qt.Equals, 44100)
	c.Assert(cfg.UI.Preset, qt.Equals, "classic")
	c.Assert(cfg.Debounce(), qt.Equals, 120*time.Millisecond)
	c.Assert(cfg.Dir(), qt.Equals, dir)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	c := qt.New(t)
	dir := t.TempDir()

	cfg, err := Load(dir)
	c.Assert(err, qt.IsNil)
	cfg.UI.Preset = "arcade"
	cfg.MIDI.PortName = "IAC Bus 1"
	cfg.MIDI.Controller = "Launchpad X"
	c.Assert(cfg.Save(), qt.IsNil)

	got, err := Load(dir)
	c.Assert(err, qt.IsNil)
	c.Assert(got.UI.Preset, qt.Equals, "arcade")
	c.Assert(got.MIDI.PortName, qt.Equals, "IAC Bus 1")
	c.Assert(got.MIDI.Channel, qt.Equals, uint8(10))
	c.Assert(got.MIDI.Controller, qt.Equals, "Launchpad X")
}

func TestLoadNormalizesBadValues(t *testing.T) {
	c := qt.New(t)
	dir := t.TempDir()
	err := os.WriteFile(filepath.Join(dir, "config.json"), []byte(`{"midi":{"channel":40},"persist":{"debounceMs":-3}}`), 0644)
	c.Assert(err, qt.IsNil)

	cfg, err := Load(dir)
	c.Assert(err, qt.IsNil)
	c.Assert(cfg.MIDI.Channel, qt.Equals, uint8(10))
	c.Assert(cfg.Persist.DebounceMs, qt.Equals, 120)
}

func TestLoadCorrupt(t *testing.T) {
	c := qt.New(t)
	dir := t.TempDir()
	c.Assert(os.WriteFile(filepath.Join(dir, "config.json"), []byte(`{`), 0644), qt.IsNil)

	_, err := Load(dir)
	c.Assert(err, qt.Not(qt.IsNil))
}
