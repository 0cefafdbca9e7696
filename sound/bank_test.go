package sound

import (
	"testing"

	qt "github.com/frankban/quicktest"
)

func constSample(sec float64, v float32) *Sample {
	data := make([]float32, int(sec*testRate))
	for i := range data {
		data[i] = v
	}
	return &Sample{Data: data, SampleRate: testRate}
}

func TestBankIgnoresUnplayableKeys(t *testing.T) {
	c := qt.New(t)
	m := NewMixer(testRate, 1)
	b := NewBank(m)

	b.Trigger(Key{Kit: NumKits}, 0)
	b.Trigger(Key{Recorded, Kick}, 0)
	c.Assert(m.Active(), qt.Equals, 0)
	c.Assert(b.Available(Key{Recorded, Kick}), qt.IsFalse)
	c.Assert(b.Available(Key{Instrument: NumInstruments}), qt.IsFalse)

	empty := NewBankWithRecipes(m, map[Key]Recipe{})
	c.Assert(empty.Available(Key{Classic, Kick}), qt.IsFalse)
	empty.Trigger(Key{Classic, Kick}, 0)
	c.Assert(m.Active(), qt.Equals, 0)
}

func TestBankTriggersSynthAtTime(t *testing.T) {
	c := qt.New(t)
	m := NewMixer(testRate, 1)
	b := NewBank(m)
	c.Assert(b.Available(Key{Classic, Kick}), qt.IsTrue)

	b.Trigger(Key{Classic, Kick}, 0.01)
	c.Assert(m.Active(), qt.Equals, 1)

	out := make([]float32, 80)
	m.Render(out)
	for _, s := range out {
		c.Assert(s, qt.Equals, float32(0))
	}
	m.Render(make([]float32, testRate))
	c.Assert(m.Active(), qt.Equals, 0)
}

func TestBankRecordedSlot(t *testing.T) {
	c := qt.New(t)
	m := NewMixer(testRate, 1)
	b := NewBank(m)

	_, err := b.Sample(Hat)
	c.Assert(err, qt.ErrorIs, ErrNoSample)

	b.SetSample(Hat, constSample(0.5, 0.5))
	c.Assert(b.Available(Key{Recorded, Hat}), qt.IsTrue)
	s, err := b.Sample(Hat)
	c.Assert(err, qt.IsNil)
	c.Assert(s.SampleRate, qt.Equals, testRate)

	b.SetSample(Hat, nil)
	c.Assert(b.Available(Key{Recorded, Hat}), qt.IsFalse)
}

func TestBankResamplesToMixerRate(t *testing.T) {
	c := qt.New(t)
	m := NewMixer(2*testRate, 1)
	b := NewBank(m)
	b.SetSample(Perc, constSample(0.25, 0.1))

	s, err := b.Sample(Perc)
	c.Assert(err, qt.IsNil)
	c.Assert(s.SampleRate, qt.Equals, 2*testRate)
	c.Assert(s.Data, qt.HasLen, testRate/2)
}

func TestBankRetriggerFadesPreviousVoice(t *testing.T) {
	c := qt.New(t)
	m := NewMixer(testRate, 1)
	b := NewBank(m)
	b.SetSample(Kick, constSample(1, 0.5))

	b.Trigger(Key{Recorded, Kick}, 0.1)
	b.Trigger(Key{Recorded, Kick}, 0.104)
	c.Assert(b.Ringing(Kick), qt.Equals, 2)

	// 25ms past the second trigger the first voice has faded out
	m.Render(make([]float32, int(0.129*testRate)))
	c.Assert(b.Ringing(Kick), qt.Equals, 1)

	b.Trigger(Key{Recorded, Kick}, 0.2)
	m.Render(make([]float32, int(0.1*testRate)))
	c.Assert(b.Ringing(Kick), qt.Equals, 1)
}

func TestBankPreview(t *testing.T) {
	c := qt.New(t)
	m := NewMixer(testRate, 1)
	b := NewBank(m)

	b.Preview(nil)
	c.Assert(m.Active(), qt.Equals, 0)

	b.Preview(constSample(0.1, 0.3))
	c.Assert(m.Active(), qt.Equals, 1)
	m.Render(make([]float32, testRate))
	c.Assert(m.Active(), qt.Equals, 0)
}
