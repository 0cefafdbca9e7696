package sequencer

import (
	"context"
	"time"

	"go-drummer/debug"
)

// Lookahead timing. ScheduleAhead must stay well above TickInterval or steps
// falling between two passes are missed.
const (
	ScheduleAhead = 0.12 // seconds of audio committed per pass
	TickInterval  = 25 * time.Millisecond
	StartOffset   = 0.05 // first step lands this far after Start
	PreviewOffset = 0.005
)

// afterHook runs f after d; playhead updates go through it
type afterHook func(d time.Duration, f func())

// run is the scheduler loop. Exactly one runs per Start; it exits when ctx is
// cancelled, which Stop does before waiting on done.
func (s *Sequencer) run(ctx context.Context, interval time.Duration, done chan struct{}) {
	defer close(done)
	timer := time.NewTimer(interval)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-timer.C:
		}
		s.tick(ctx)
		timer.Reset(interval)
	}
}

// tick runs one scheduling pass if ctx still owns the transport
func (s *Sequencer) tick(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if ctx.Err() != nil || !s.playing {
		return
	}
	s.schedule(s.engine.Now())
}

// schedule commits every step starting before now+ScheduleAhead: the sounds
// on that step are triggered at its exact time and a playhead update is
// deferred until the step is heard. Caller holds s.mu.
func (s *Sequencer) schedule(now float64) {
	horizon := now + ScheduleAhead
	n := 0
	for s.nextNoteTime < horizon {
		step, at := s.currentStep, s.nextNoteTime
		for _, key := range s.pattern.Active(step) {
			s.bank.Trigger(key, at)
		}
		s.deferPlayhead(step, max(0, at-now))

		s.nextNoteTime += s.clock.StepDuration()
		s.currentStep = (s.currentStep + 1) % Steps
		n++
	}
	if n > 0 {
		debug.LogEvery(40, "sched", "pass now=%.3f scheduled=%d next=%.3f step=%d", now, n, s.nextNoteTime, s.currentStep)
	}
}

// deferPlayhead shows step after delay seconds, unless the transport was
// stopped or restarted in the meantime. Caller holds s.mu.
func (s *Sequencer) deferPlayhead(step int, delay float64) {
	gen := s.gen
	s.after(time.Duration(delay*float64(time.Second)), func() {
		s.mu.Lock()
		if s.gen != gen || !s.playing {
			s.mu.Unlock()
			return
		}
		s.playhead = step
		cb := s.OnPlayhead
		s.mu.Unlock()

		if cb != nil {
			cb(step)
		}
		s.notify()
	})
}

func afterFunc(d time.Duration, f func()) {
	time.AfterFunc(d, f)
}
