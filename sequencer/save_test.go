package sequencer

import (
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	qt "github.com/frankban/quicktest"
)

func TestFileStore(t *testing.T) {
	c := qt.New(t)
	f := NewFileStore(filepath.Join(c.TempDir(), "nested"))

	data, err := f.Load()
	c.Assert(err, qt.IsNil)
	c.Assert(data, qt.IsNil)

	c.Assert(f.Save([]byte(`{"bps":2}`)), qt.IsNil)
	c.Assert(f.Save([]byte(`{"bps":3}`)), qt.IsNil)
	data, err = f.Load()
	c.Assert(err, qt.IsNil)
	c.Assert(string(data), qt.Equals, `{"bps":3}`)

	_, err = os.Stat(f.Path + ".tmp")
	c.Assert(os.IsNotExist(err), qt.IsTrue)
}

func TestSaverCoalesces(t *testing.T) {
	c := qt.New(t)
	store := &memStore{}
	s := NewSaver(store, 20*time.Millisecond)

	s.Save([]byte("a"))
	s.Save([]byte("b"))
	s.Save([]byte("c"))
	c.Assert(s.Pending(), qt.IsTrue)

	c.Assert(eventually(func() bool { return store.count() == 1 }), qt.IsTrue)
	time.Sleep(40 * time.Millisecond)
	c.Assert(store.count(), qt.Equals, 1)
	data, _ := store.Load()
	c.Assert(string(data), qt.Equals, "c")
	c.Assert(s.Pending(), qt.IsFalse)
}

func TestSaverFlushAndClose(t *testing.T) {
	c := qt.New(t)
	store := &memStore{}
	s := NewSaver(store, time.Hour)
	c.Assert(s.Window(), qt.Equals, time.Hour)

	c.Assert(s.Flush(), qt.IsNil)
	c.Assert(store.count(), qt.Equals, 0)

	s.Save([]byte("x"))
	c.Assert(s.Flush(), qt.IsNil)
	c.Assert(store.count(), qt.Equals, 1)

	s.Save([]byte("y"))
	c.Assert(s.Close(), qt.IsNil)
	c.Assert(store.count(), qt.Equals, 2)

	s.Save([]byte("z"))
	c.Assert(s.Pending(), qt.IsFalse)
	data, _ := store.Load()
	c.Assert(string(data), qt.Equals, "y")
}

func TestSaverReportsErrors(t *testing.T) {
	c := qt.New(t)
	boom := errors.New("disk full")
	store := &memStore{err: boom}
	s := NewSaver(store, time.Millisecond)

	var mu sync.Mutex
	var got error
	s.OnError = func(err error) {
		mu.Lock()
		got = err
		mu.Unlock()
	}
	s.Save([]byte("x"))
	c.Assert(eventually(func() bool {
		mu.Lock()
		defer mu.Unlock()
		return got != nil
	}), qt.IsTrue)
	c.Assert(got, qt.ErrorIs, boom)

	slow := NewSaver(store, time.Hour)
	slow.Save([]byte("y"))
	c.Assert(slow.Flush(), qt.ErrorIs, boom)
}

func TestSaverDefaultWindow(t *testing.T) {
	c := qt.New(t)
	c.Assert(NewSaver(&memStore{}, 0).Window(), qt.Equals, DefaultDebounce)
}
