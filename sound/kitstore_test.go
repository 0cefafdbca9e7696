package sound

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	qt "github.com/frankban/quicktest"
)

func TestKitStorePutGet(t *testing.T) {
	c := qt.New(t)
	store := NewKitStore(filepath.Join(c.TempDir(), "kit"))

	e, err := store.Get(Kick)
	c.Assert(err, qt.IsNil)
	c.Assert(e, qt.IsNil)

	data := wavBytes(c, testRate, testRate, 2000)
	saved := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	err = store.Put(KitEntry{Key: "kick", Mime: "audio/wav", StartSec: 0.1, EndSec: 0.6, SavedAt: saved, Data: data})
	c.Assert(err, qt.IsNil)

	e, err = store.Get(Kick)
	c.Assert(err, qt.IsNil)
	c.Assert(e, qt.Not(qt.IsNil))
	c.Assert(e.Key, qt.Equals, "kick")
	c.Assert(e.Mime, qt.Equals, "audio/wav")
	c.Assert(e.StartSec, qt.Equals, 0.1)
	c.Assert(e.EndSec, qt.Equals, 0.6)
	c.Assert(e.SavedAt.Equal(saved), qt.IsTrue)
	c.Assert(e.Data, qt.DeepEquals, data)

	s, err := e.Sample()
	c.Assert(err, qt.IsNil)
	start, dur := s.Window()
	c.Assert(start, qt.Equals, 0.1)
	c.Assert(near(dur, 0.5, 1e-9), qt.IsTrue)
}

func TestKitStoreRejectsBadEntries(t *testing.T) {
	c := qt.New(t)
	store := NewKitStore(c.TempDir())
	c.Assert(store.Put(KitEntry{Key: "cowbell", Data: []byte{1}}), qt.ErrorMatches, `unknown kit slot "cowbell"`)
	c.Assert(store.Put(KitEntry{Key: "snare"}), qt.ErrorMatches, `kit slot snare: no audio data`)
}

func TestKitStoreDeleteAndClear(t *testing.T) {
	c := qt.New(t)
	dir := c.TempDir()
	store := NewKitStore(dir)
	data := wavBytes(c, testRate, 100, 10)
	for _, inst := range []Instrument{Kick, Snare, Hat} {
		c.Assert(store.Put(KitEntry{Key: inst.String(), Data: data}), qt.IsNil)
	}

	c.Assert(store.Delete(Snare), qt.IsNil)
	c.Assert(store.Delete(Perc), qt.IsNil)
	e, err := store.Get(Snare)
	c.Assert(err, qt.IsNil)
	c.Assert(e, qt.IsNil)

	c.Assert(store.Clear(), qt.IsNil)
	files, err := os.ReadDir(dir)
	c.Assert(err, qt.IsNil)
	c.Assert(files, qt.HasLen, 0)
}

func TestLoadKit(t *testing.T) {
	c := qt.New(t)
	dir := c.TempDir()
	store := NewKitStore(dir)
	c.Assert(store.Put(KitEntry{Key: "hat", Data: wavBytes(c, testRate, testRate, 500), EndSec: 0.4}), qt.IsNil)

	// a slot whose audio no longer decodes is reported and left empty
	c.Assert(store.Put(KitEntry{Key: "perc", Data: []byte("garbage")}), qt.IsNil)

	b := NewBank(NewMixer(testRate, 1))
	b.SetSample(Kick, constSample(0.1, 0.2))

	err := LoadKit(store, b)
	c.Assert(err, qt.ErrorIs, ErrDecode)
	c.Assert(b.Available(Key{Recorded, Hat}), qt.IsTrue)
	c.Assert(b.Available(Key{Recorded, Perc}), qt.IsFalse)
	c.Assert(b.Available(Key{Recorded, Kick}), qt.IsFalse)

	s, err := b.Sample(Hat)
	c.Assert(err, qt.IsNil)
	c.Assert(s.EndSec, qt.Equals, 0.4)
}
