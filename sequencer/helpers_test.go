package sequencer

import (
	"sync"
	"time"

	qt "github.com/frankban/quicktest"

	"go-drummer/sound"
)

type fakeEngine struct {
	mu        sync.Mutex
	now       float64
	resumeErr error
	resumes   int
}

func (e *fakeEngine) Now() float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.now
}

func (e *fakeEngine) Resume() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.resumes++
	return e.resumeErr
}

func (e *fakeEngine) set(t float64) {
	e.mu.Lock()
	e.now = t
	e.mu.Unlock()
}

type trigger struct {
	key sound.Key
	at  float64
	now float64 // audio clock when the trigger was issued
}

type fakeBank struct {
	engine *fakeEngine

	mu          sync.Mutex
	triggers    []trigger
	unavailable map[sound.Key]bool
}

func (b *fakeBank) Trigger(key sound.Key, at float64) {
	now := b.engine.Now()
	b.mu.Lock()
	b.triggers = append(b.triggers, trigger{key: key, at: at, now: now})
	b.mu.Unlock()
}

func (b *fakeBank) Available(key sound.Key) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return !b.unavailable[key]
}

func (b *fakeBank) take() []trigger {
	b.mu.Lock()
	defer b.mu.Unlock()
	t := b.triggers
	b.triggers = nil
	return t
}

func (b *fakeBank) count() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.triggers)
}

type deferred struct {
	d time.Duration
	f func()
}

// fakeAfter collects deferred playhead updates instead of running them
type fakeAfter struct {
	mu    sync.Mutex
	calls []deferred
}

func (a *fakeAfter) after(d time.Duration, f func()) {
	a.mu.Lock()
	a.calls = append(a.calls, deferred{d, f})
	a.mu.Unlock()
}

func (a *fakeAfter) take() []deferred {
	a.mu.Lock()
	defer a.mu.Unlock()
	c := a.calls
	a.calls = nil
	return c
}

func (a *fakeAfter) runAll() {
	for _, c := range a.take() {
		c.f()
	}
}

type rig struct {
	s      *Sequencer
	engine *fakeEngine
	bank   *fakeBank
	after  *fakeAfter
}

// newRig returns a sequencer whose loop never fires on its own; tests run
// scheduling passes with pass and advance
func newRig(c *qt.C) *rig {
	e := &fakeEngine{}
	b := &fakeBank{engine: e, unavailable: map[sound.Key]bool{}}
	a := &fakeAfter{}
	s := New(e, b, Options{After: a.after})
	s.tickInterval = time.Hour
	c.Cleanup(s.Stop)
	return &rig{s: s, engine: e, bank: b, after: a}
}

// pass runs one scheduling pass at the current audio time
func (r *rig) pass() {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.playing {
		r.s.schedule(r.s.engine.Now())
	}
}

// advance moves the audio clock to until in steps of dt, running a pass after each
func (r *rig) advance(until, dt float64) {
	for t := r.engine.Now() + dt; t <= until+1e-9; t += dt {
		r.engine.set(t)
		r.pass()
	}
}

// setRow replaces a row without previewing
func (r *rig) setRow(track int, steps ...int) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.pattern.rows[track] = [Steps]bool{}
	for _, st := range steps {
		r.s.pattern.rows[track][st] = true
	}
}

func allSteps() []int {
	s := make([]int, Steps)
	for i := range s {
		s[i] = i
	}
	return s
}

type memStore struct {
	mu     sync.Mutex
	writes [][]byte
	err    error
}

func (m *memStore) Load() ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.writes) == 0 {
		return nil, nil
	}
	return m.writes[len(m.writes)-1], nil
}

func (m *memStore) Save(data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.writes = append(m.writes, data)
	return nil
}

func (m *memStore) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.writes)
}

// eventually polls cond until it holds or a second passes
func eventually(cond func() bool) bool {
	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return true
		}
		time.Sleep(2 * time.Millisecond)
	}
	return cond()
}
