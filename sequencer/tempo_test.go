package sequencer

import (
	"math"
	"testing"

	qt "github.com/frankban/quicktest"
)

func TestClampBps(t *testing.T) {
	c := qt.New(t)
	c.Assert(ClampBps(math.NaN()), qt.Equals, DefaultBps)
	c.Assert(ClampBps(math.Inf(1)), qt.Equals, DefaultBps)
	c.Assert(ClampBps(0), qt.Equals, MinBps)
	c.Assert(ClampBps(-3), qt.Equals, MinBps)
	c.Assert(ClampBps(100), qt.Equals, MaxBps)
	c.Assert(ClampBps(2.5), qt.Equals, 2.5)
}

func TestClock(t *testing.T) {
	c := qt.New(t)
	var clk Clock
	c.Assert(clk.Bps(), qt.Equals, DefaultBps)
	c.Assert(clk.StepDuration(), qt.Equals, 0.125)
	c.Assert(clk.Bpm(), qt.Equals, 120)

	c.Assert(clk.Set(2.5), qt.Equals, 2.5)
	c.Assert(clk.Bpm(), qt.Equals, 150)
	c.Assert(clk.StepDuration(), qt.Equals, 0.1)

	c.Assert(clk.Set(0.01), qt.Equals, MinBps)
	c.Assert(clk.StepDuration(), qt.Equals, 0.5)

	clk = NewClock(math.NaN())
	c.Assert(clk.Bps(), qt.Equals, DefaultBps)
}

func TestParseBpm(t *testing.T) {
	c := qt.New(t)
	bps, ok := ParseBpm(" 150 ")
	c.Assert(ok, qt.IsTrue)
	c.Assert(bps, qt.Equals, 2.5)

	bps, ok = ParseBpm("9999")
	c.Assert(ok, qt.IsTrue)
	c.Assert(bps, qt.Equals, MaxBps)

	_, ok = ParseBpm("fast")
	c.Assert(ok, qt.IsFalse)
}
