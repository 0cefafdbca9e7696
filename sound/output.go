package sound

import (
	"sync"
	"time"
)

// Output pulls rendered audio from a Mixer, which is what makes its clock advance
type Output interface {
	Name() string
	Resume() error
	Close() error
}

// headlessChunk is how often the headless output pulls from the mixer
const headlessChunk = 10 * time.Millisecond

// HeadlessOutput drives the mixer in real time without a device, so the
// transport keeps working when no audio output is available.
type HeadlessOutput struct {
	stop chan struct{}
	done chan struct{}
	once sync.Once
}

// NewHeadlessOutput starts pulling from m at its sample rate
func NewHeadlessOutput(m *Mixer) *HeadlessOutput {
	h := &HeadlessOutput{
		stop: make(chan struct{}),
		done: make(chan struct{}),
	}
	go h.run(m)
	return h
}

func (h *HeadlessOutput) run(m *Mixer) {
	defer close(h.done)
	ticker := time.NewTicker(headlessChunk)
	defer ticker.Stop()

	t0 := time.Now()
	var rendered int64
	var buf []float32
	for {
		select {
		case <-h.stop:
			return
		case now := <-ticker.C:
			target := int64(now.Sub(t0).Seconds() * float64(m.SampleRate()))
			n := int(target - rendered)
			if n <= 0 {
				continue
			}
			if cap(buf) < n {
				buf = make([]float32, n)
			}
			m.Render(buf[:n])
			rendered = target
		}
	}
}

func (h *HeadlessOutput) Name() string  { return "headless" }
func (h *HeadlessOutput) Resume() error { return nil }

func (h *HeadlessOutput) Close() error {
	h.once.Do(func() { close(h.stop) })
	<-h.done
	return nil
}

// Engine is the audio engine: a mixer plus whatever output drives it
type Engine struct {
	*Mixer
	out Output
}

// NewEngineWithOutput wires a mixer to a caller-supplied output
func NewEngineWithOutput(m *Mixer, out Output) *Engine {
	return &Engine{Mixer: m, out: out}
}

// Output returns the name of the active output
func (e *Engine) Output() string {
	if e.out == nil {
		return "none"
	}
	return e.out.Name()
}

// Resume makes sure the output is running
func (e *Engine) Resume() error {
	if e.out == nil {
		return nil
	}
	return e.out.Resume()
}

func (e *Engine) Close() error {
	if e.out == nil {
		return nil
	}
	return e.out.Close()
}
