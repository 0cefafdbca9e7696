package sound

import (
	"testing"
	"time"

	qt "github.com/frankban/quicktest"
)

func TestHeadlessEngineKeepsClock(t *testing.T) {
	c := qt.New(t)
	m := NewMixer(testRate, 1)
	e := NewEngineWithOutput(m, NewHeadlessOutput(m))
	c.Assert(e.Output(), qt.Equals, "headless")
	c.Assert(e.Resume(), qt.IsNil)

	deadline := time.Now().Add(time.Second)
	for e.Now() == 0 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	c.Assert(e.Now() > 0, qt.IsTrue)
	c.Assert(e.Close(), qt.IsNil)

	stopped := e.Now()
	time.Sleep(30 * time.Millisecond)
	c.Assert(e.Now(), qt.Equals, stopped)
}

func TestEngineWithoutOutput(t *testing.T) {
	c := qt.New(t)
	e := NewEngineWithOutput(NewMixer(testRate, 1), nil)
	c.Assert(e.Output(), qt.Equals, "none")
	c.Assert(e.Resume(), qt.IsNil)
	c.Assert(e.Close(), qt.IsNil)
}
