package sound

import (
	"encoding/binary"
	"math"
	"math/rand/v2"
	"testing"

	qt "github.com/frankban/quicktest"
)

const testRate = 8000

func ones(n int) *bufferVoice {
	buf := make([]float32, n)
	for i := range buf {
		buf[i] = 1
	}
	return &bufferVoice{buf: buf}
}

func TestMixerStartsVoiceOnExactSample(t *testing.T) {
	c := qt.New(t)
	m := NewMixer(testRate, 1)
	m.Schedule(ones(3), 10.0/testRate)

	out := make([]float32, 20)
	m.Render(out)
	c.Assert(out[9], qt.Equals, float32(0))
	c.Assert(out[10:13], qt.DeepEquals, []float32{1, 1, 1})
	c.Assert(out[13], qt.Equals, float32(0))
	c.Assert(m.Now(), qt.Equals, 20.0/testRate)
	c.Assert(m.Active(), qt.Equals, 0)
}

func TestMixerPastVoiceStartsImmediately(t *testing.T) {
	c := qt.New(t)
	m := NewMixer(testRate, 1)
	m.Render(make([]float32, 100))
	m.Schedule(ones(2), 0)

	out := make([]float32, 4)
	m.Render(out)
	c.Assert(out, qt.DeepEquals, []float32{1, 1, 0, 0})
}

func TestMixerClampsSum(t *testing.T) {
	c := qt.New(t)
	m := NewMixer(testRate, 1)
	m.Schedule(ones(1), 0)
	m.Schedule(ones(1), 0)

	out := make([]float32, 1)
	m.Render(out)
	c.Assert(out[0], qt.Equals, float32(1))
}

func TestMixerReleaseFadesLinearly(t *testing.T) {
	c := qt.New(t)
	m := NewMixer(testRate, 1)
	h := m.Schedule(ones(1000), 0)
	m.Release(h, 10.0/testRate, 4.0/testRate)

	out := make([]float32, 20)
	m.Render(out)
	c.Assert(out[9], qt.Equals, float32(1))
	c.Assert(out[10:14], qt.DeepEquals, []float32{1, 0.75, 0.5, 0.25})
	c.Assert(out[14], qt.Equals, float32(0))
	c.Assert(m.Ringing(h), qt.IsFalse)
	c.Assert(m.Active(), qt.Equals, 0)
}

func TestMixerReleaseBeforeStartNeverSounds(t *testing.T) {
	c := qt.New(t)
	m := NewMixer(testRate, 1)
	h := m.Schedule(ones(10), 50.0/testRate)
	m.Release(h, 0, 2.0/testRate)

	out := make([]float32, 100)
	m.Render(out)
	for _, s := range out {
		c.Assert(s, qt.Equals, float32(0))
	}
	c.Assert(m.Ringing(h), qt.IsFalse)
}

func TestMixerRead(t *testing.T) {
	c := qt.New(t)
	m := NewMixer(testRate, 0.5)
	m.Schedule(ones(1), 0)

	p := make([]byte, 8)
	n, err := m.Read(p)
	c.Assert(err, qt.IsNil)
	c.Assert(n, qt.Equals, 8)
	c.Assert(math.Float32frombits(binary.LittleEndian.Uint32(p)), qt.Equals, float32(0.5))
	c.Assert(math.Float32frombits(binary.LittleEndian.Uint32(p[4:])), qt.Equals, float32(0))
}

func TestRecipeRenderLength(t *testing.T) {
	c := qt.New(t)
	rng := rand.New(rand.NewPCG(1, 2))
	for k, r := range Recipes {
		buf := r.Render(testRate, rng)
		c.Check(len(buf), qt.Equals, int(math.Ceil(r.Length()*testRate)), qt.Commentf("key %s", k))

		var peak float64
		for _, s := range buf {
			peak = max(peak, math.Abs(float64(s)))
		}
		c.Check(peak > 0, qt.IsTrue, qt.Commentf("key %s is silent", k))
		c.Check(peak <= 2, qt.IsTrue, qt.Commentf("key %s peak %f", k, peak))
	}
}

func TestExpEnv(t *testing.T) {
	c := qt.New(t)
	e := sweep(100, 25, 1)
	c.Assert(e.at(-1), qt.Equals, 100.0)
	c.Assert(e.at(2), qt.Equals, 25.0)
	c.Assert(math.Abs(e.at(0.5)-50) < 1e-9, qt.IsTrue)
}
