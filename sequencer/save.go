package sequencer

import (
	"os"
	"path/filepath"
	"sync"
	"time"

	"go-drummer/debug"
)

// StateFile is the file name the pattern is persisted under
const StateFile = "drummer.state.v1.json"

// Store reads and writes the persisted pattern
type Store interface {
	Load() ([]byte, error)
	Save(data []byte) error
}

// FileStore keeps the pattern in a single file
type FileStore struct {
	Path string
}

// NewFileStore returns a store for dir/StateFile
func NewFileStore(dir string) *FileStore {
	return &FileStore{Path: filepath.Join(dir, StateFile)}
}

// Load returns the saved data, or nil if nothing was saved yet
func (f *FileStore) Load() ([]byte, error) {
	data, err := os.ReadFile(f.Path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	return data, err
}

// Save replaces the file atomically
func (f *FileStore) Save(data []byte) error {
	if err := os.MkdirAll(filepath.Dir(f.Path), 0755); err != nil {
		return err
	}
	tmp := f.Path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return err
	}
	return os.Rename(tmp, f.Path)
}

// DefaultDebounce is how long the Saver waits for more changes before writing
const DefaultDebounce = 120 * time.Millisecond

// Saver coalesces writes to a Store. Each Save restarts the debounce window;
// when it expires only the newest data is written. Flush writes immediately.
type Saver struct {
	store  Store
	window time.Duration

	// OnError is called with failed writes from the debounce timer
	OnError func(error)

	wmu sync.Mutex // serializes writes

	mu      sync.Mutex
	pending []byte
	timer   *time.Timer
	closed  bool
}

// NewSaver returns a saver writing to store after window of quiet
func NewSaver(store Store, window time.Duration) *Saver {
	if window <= 0 {
		window = DefaultDebounce
	}
	return &Saver{store: store, window: window}
}

// Window returns the debounce window
func (s *Saver) Window() time.Duration {
	return s.window
}

// Save queues data, replacing anything not yet written
func (s *Saver) Save(data []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.pending = data
	if s.timer != nil {
		s.timer.Stop()
	}
	s.timer = time.AfterFunc(s.window, s.fire)
}

// Pending reports whether data is waiting to be written
func (s *Saver) Pending() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pending != nil
}

func (s *Saver) fire() {
	if err := s.write(); err != nil {
		debug.Log("persist", "save failed: %v", err)
		if s.OnError != nil {
			s.OnError(err)
		}
	}
}

func (s *Saver) write() error {
	s.wmu.Lock()
	defer s.wmu.Unlock()

	s.mu.Lock()
	data := s.pending
	s.pending = nil
	s.mu.Unlock()

	if data == nil {
		return nil
	}
	debug.Log("persist", "writing %d bytes", len(data))
	return s.store.Save(data)
}

// Flush writes pending data now
func (s *Saver) Flush() error {
	s.mu.Lock()
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.mu.Unlock()
	return s.write()
}

// Close flushes and stops accepting writes
func (s *Saver) Close() error {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
	return s.Flush()
}
