package sound

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go-drummer/debug"
)

// KitEntry is the persisted record of one recorded instrument
type KitEntry struct {
	Key      string    `json:"key"`
	Mime     string    `json:"mime"`
	StartSec float64   `json:"startSec"`
	EndSec   float64   `json:"endSec"`
	SavedAt  time.Time `json:"savedAt"`

	Data []byte `json:"-"` // stored next to the record as <key>.wav
}

// KitStore keeps the recorded kit in a directory, one audio file and one
// metadata file per instrument
type KitStore struct {
	Dir string
}

// NewKitStore returns a store rooted at dir
func NewKitStore(dir string) *KitStore {
	return &KitStore{Dir: dir}
}

func (s *KitStore) paths(inst Instrument) (meta, audio string) {
	base := filepath.Join(s.Dir, inst.String())
	return base + ".json", base + ".wav"
}

// Put saves an entry, replacing whatever the slot held
func (s *KitStore) Put(e KitEntry) error {
	inst, ok := ParseInstrument(e.Key)
	if !ok {
		return fmt.Errorf("unknown kit slot %q", e.Key)
	}
	if len(e.Data) == 0 {
		return fmt.Errorf("kit slot %s: no audio data", e.Key)
	}
	if err := os.MkdirAll(s.Dir, 0755); err != nil {
		return err
	}
	meta, audio := s.paths(inst)
	if err := writeFileAtomic(audio, e.Data); err != nil {
		return err
	}
	data, err := json.MarshalIndent(e, "", "  ")
	if err != nil {
		return err
	}
	return writeFileAtomic(meta, data)
}

// Get returns the entry for inst, or nil if the slot is empty
func (s *KitStore) Get(inst Instrument) (*KitEntry, error) {
	meta, audio := s.paths(inst)
	raw, err := os.ReadFile(meta)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	var e KitEntry
	if err := json.Unmarshal(raw, &e); err != nil {
		return nil, fmt.Errorf("kit slot %s: %w", inst, err)
	}
	e.Key = inst.String()
	e.Data, err = os.ReadFile(audio)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	return &e, nil
}

// Delete empties a slot
func (s *KitStore) Delete(inst Instrument) error {
	meta, audio := s.paths(inst)
	var errs []error
	for _, p := range []string{meta, audio} {
		if err := os.Remove(p); err != nil && !os.IsNotExist(err) {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Clear empties every slot
func (s *KitStore) Clear() error {
	var errs []error
	for i := Instrument(0); i < NumInstruments; i++ {
		if err := s.Delete(i); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Sample decodes the entry's audio and applies its trim window
func (e *KitEntry) Sample() (*Sample, error) {
	s, err := DecodeWAV(e.Data)
	if err != nil {
		return nil, err
	}
	s.StartSec = e.StartSec
	s.EndSec = e.EndSec
	return s, nil
}

// LoadKit fills the bank's recorded slots from the store. Slots that fail to
// load are left empty and reported in the returned error.
func LoadKit(store *KitStore, bank *Bank) error {
	var errs []error
	for i := Instrument(0); i < NumInstruments; i++ {
		e, err := store.Get(i)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if e == nil {
			bank.SetSample(i, nil)
			continue
		}
		s, err := e.Sample()
		if err != nil {
			debug.Log("kit", "slot %s: %v", i, err)
			errs = append(errs, fmt.Errorf("kit slot %s: %w", i, err))
			bank.SetSample(i, nil)
			continue
		}
		bank.SetSample(i, s)
		debug.Log("kit", "loaded slot %s (%.2fs, trim %.2f-%.2f)", i, s.Duration(), s.StartSec, s.EndSec)
	}
	return errors.Join(errs...)
}

func writeFileAtomic(path string, data []byte) error {
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

// Take reopens the entry's recording with its saved trim window
func (e *KitEntry) Take() (*Take, error) {
	t, err := NewTake(e.Data, e.Mime)
	if err != nil {
		return nil, err
	}
	t.SetTrim(TrimStart, e.StartSec)
	if e.EndSec > 0 {
		t.SetTrim(TrimEnd, e.EndSec)
	}
	return t, nil
}
