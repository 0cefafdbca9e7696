package midi

import (
	"fmt"
	"sync"
	"time"

	gomidi "gitlab.com/gomidi/midi/v2"

	"go-drummer/debug"
	"go-drummer/sound"
)

// Sender writes one message to a port
type Sender func(gomidi.Message) error

// Gate is how long a triggered note is held
const Gate = 50 * time.Millisecond

// Out plays triggers on a MIDI port. Each trigger becomes a NoteOn sent when
// the audio clock reaches its time, followed by a NoteOff after Gate.
type Out struct {
	send     Sender
	channel  uint8 // 0-based
	velocity uint8
	now      func() float64
	after    func(d time.Duration, f func())
	closer   func() error

	mu     sync.Mutex
	closed bool
}

// NewOut sends on channel (1-16). now is the audio clock triggers are timed against.
func NewOut(send Sender, channel uint8, now func() float64) *Out {
	if channel < 1 || channel > 16 {
		channel = 10
	}
	return &Out{
		send:     send,
		channel:  channel - 1,
		velocity: 100,
		now:      now,
		after:    func(d time.Duration, f func()) { time.AfterFunc(d, f) },
	}
}

// Open finds portName and returns an Out sending to it
func Open(portName string, channel uint8, now func() float64) (*Out, error) {
	port, err := FindOutPort(portName)
	if err != nil {
		return nil, err
	}
	send, err := gomidi.SendTo(port)
	if err != nil {
		return nil, fmt.Errorf("open midi port %q: %w", port.String(), err)
	}
	o := NewOut(send, channel, now)
	o.closer = port.Close
	debug.Log("midi", "output on %q channel %d", port.String(), channel)
	return o, nil
}

// Trigger schedules the note for key at absolute audio time at
func (o *Out) Trigger(key sound.Key, at float64) {
	note, ok := Note(key)
	if !ok {
		return
	}
	delay := max(0, time.Duration((at-o.now())*float64(time.Second)))
	o.after(delay, func() {
		if !o.emit(gomidi.NoteOn(o.channel, note, o.velocity)) {
			return
		}
		o.after(Gate, func() {
			o.emit(gomidi.NoteOff(o.channel, note))
		})
	})
}

// Available is true for every key; any sound can be mapped to a note
func (o *Out) Available(key sound.Key) bool {
	return key.Valid()
}

func (o *Out) emit(msg gomidi.Message) bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.closed {
		return false
	}
	if err := o.send(msg); err != nil {
		debug.Log("midi", "send %s: %v", msg, err)
		return false
	}
	return true
}

// Close stops sending and closes the port
func (o *Out) Close() error {
	o.mu.Lock()
	o.closed = true
	o.mu.Unlock()
	if o.closer != nil {
		return o.closer()
	}
	return nil
}
