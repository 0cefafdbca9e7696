package sequencer

import (
	"context"
	"fmt"

	"go-drummer/debug"
)

// Start resets the cursor to step 0 and starts the scheduler. The first step
// sounds StartOffset seconds from now.
func (s *Sequencer) Start() error {
	if err := s.engine.Resume(); err != nil {
		s.status("Audio unavailable")
		return fmt.Errorf("start: %w: %v", ErrUnavailable, err)
	}

	s.mu.Lock()
	if s.playing {
		s.mu.Unlock()
		return nil
	}
	now := s.engine.Now()
	s.gen++
	s.playing = true
	s.currentStep = 0
	s.nextNoteTime = now + StartOffset

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	s.cancel, s.done = cancel, done

	s.schedule(now)
	go s.run(ctx, s.tickInterval, done)
	bps := s.clock.Bps()
	s.mu.Unlock()

	debug.Log("transport", "start now=%.3f bps=%.2f", now, bps)
	s.notify()
	return nil
}

// Stop cancels the scheduler and clears the playhead. When Stop returns no
// further pass will run; sounds already handed to the bank still play.
func (s *Sequencer) Stop() {
	s.mu.Lock()
	if !s.playing {
		s.mu.Unlock()
		return
	}
	s.playing = false
	s.gen++
	s.playhead = -1
	cancel, done := s.cancel, s.done
	s.cancel, s.done = nil, nil
	onPlayhead := s.OnPlayhead
	s.mu.Unlock()

	cancel()
	<-done

	debug.Log("transport", "stop")
	if onPlayhead != nil {
		onPlayhead(-1)
	}
	s.notify()
}

// Toggle starts a stopped sequencer and stops a running one
func (s *Sequencer) Toggle() error {
	if s.Playing() {
		s.Stop()
		return nil
	}
	return s.Start()
}

// Hide is called when the UI loses focus; playback never runs unattended
func (s *Sequencer) Hide() {
	if s.Playing() {
		debug.Log("transport", "hidden while playing, stopping")
		s.Stop()
	}
}

// Playing reports whether the transport is running
func (s *Sequencer) Playing() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.playing
}
