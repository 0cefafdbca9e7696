// Package device connects a sound.Mixer to the system audio output. It is the
// only package that needs cgo; everything else runs on the headless output.
package device

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"

	"go-drummer/debug"
	"go-drummer/sound"
)

// Oto plays a mixer through the default audio device
type Oto struct {
	ctx    *oto.Context
	player *oto.Player
	mu     sync.Mutex
}

// Open opens the default audio device and starts pulling from m
func Open(m *sound.Mixer) (*Oto, error) {
	op := &oto.NewContextOptions{
		SampleRate:   m.SampleRate(),
		ChannelCount: 1,
		Format:       oto.FormatFloat32LE,
		BufferSize:   20 * time.Millisecond,
	}

	ctx, ready, err := oto.NewContext(op)
	if err != nil {
		return nil, fmt.Errorf("open audio device: %w", err)
	}
	<-ready

	p := ctx.NewPlayer(m)
	p.Play()
	return &Oto{ctx: ctx, player: p}, nil
}

func (o *Oto) Name() string { return "oto" }

// Resume resumes a suspended device
func (o *Oto) Resume() error {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.player == nil {
		return errors.New("audio output closed")
	}
	return o.ctx.Resume()
}

func (o *Oto) Close() error {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.player == nil {
		return nil
	}
	err := o.player.Close()
	o.player = nil
	return err
}

// NewEngine opens the audio device, falling back to a headless output when
// there is none (or when headless is requested). The returned error describes
// the fallback and is not fatal.
func NewEngine(sampleRate int, gain float64, headless bool) (*sound.Engine, error) {
	m := sound.NewMixer(sampleRate, gain)
	if headless {
		return sound.NewEngineWithOutput(m, sound.NewHeadlessOutput(m)), nil
	}
	out, err := Open(m)
	if err != nil {
		debug.Log("sound", "no audio device, going headless: %v", err)
		return sound.NewEngineWithOutput(m, sound.NewHeadlessOutput(m)), fmt.Errorf("audio: no output device (headless): %w", err)
	}
	return sound.NewEngineWithOutput(m, out), nil
}
