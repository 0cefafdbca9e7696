package sound

import (
	"math"
	"math/rand/v2"
)

// silence is the floor exponential ramps start from and decay to
const silence = 0.0001

type point struct {
	t, v float64
}

// expEnv is a piecewise exponential curve. Values hold outside the first and
// last points. All values must be positive.
type expEnv []point

// flat returns a constant curve
func flat(v float64) expEnv {
	return expEnv{{0, v}}
}

// sweep returns a curve moving exponentially from v0 at 0 to v1 at t
func sweep(v0, v1, t float64) expEnv {
	return expEnv{{0, v0}, {t, v1}}
}

func (e expEnv) at(t float64) float64 {
	if len(e) == 0 {
		return 0
	}
	if t <= e[0].t {
		return e[0].v
	}
	for i := 1; i < len(e); i++ {
		if t <= e[i].t {
			a, b := e[i-1], e[i]
			return a.v * math.Pow(b.v/a.v, (t-a.t)/(b.t-a.t))
		}
	}
	return e[len(e)-1].v
}

// gainEnv is the attack/decay shape used by every percussive voice
func gainEnv(peak, attack, decay float64) expEnv {
	return expEnv{{0, silence}, {attack, peak}, {decay, silence}}
}

// Wave is an oscillator shape
type Wave uint8

const (
	Sine Wave = iota
	Square
	Triangle
)

func oscillate(w Wave, phase float64) float64 {
	switch w {
	case Square:
		if phase < 0.5 {
			return 1
		}
		return -1
	case Triangle:
		return 1 - 4*math.Abs(phase-0.5)
	default:
		return math.Sin(2 * math.Pi * phase)
	}
}

// FilterKind selects the biquad response
type FilterKind uint8

const (
	NoFilter FilterKind = iota
	Lowpass
	Highpass
	Bandpass
)

// biquad is an RBJ cookbook filter in transposed direct form II
type biquad struct {
	kind               FilterKind
	b0, b1, b2, a1, a2 float64
	z1, z2             float64
}

func (f *biquad) set(kind FilterKind, freq, q float64, sr int) {
	f.kind = kind
	nyq := float64(sr) / 2
	if freq >= nyq {
		freq = nyq * 0.99
	}
	if q <= 0 {
		q = math.Sqrt2 / 2
	}
	w0 := 2 * math.Pi * freq / float64(sr)
	cos, sin := math.Cos(w0), math.Sin(w0)
	alpha := sin / (2 * q)
	a0 := 1 + alpha

	var b0, b1, b2 float64
	switch kind {
	case Lowpass:
		b0, b1, b2 = (1-cos)/2, 1-cos, (1-cos)/2
	case Highpass:
		b0, b1, b2 = (1+cos)/2, -(1 + cos), (1+cos)/2
	case Bandpass:
		b0, b1, b2 = alpha, 0, -alpha
	default:
		f.b0, f.b1, f.b2, f.a1, f.a2 = 1, 0, 0, 0, 0
		return
	}
	f.b0, f.b1, f.b2 = b0/a0, b1/a0, b2/a0
	f.a1, f.a2 = -2*cos/a0, (1-alpha)/a0
}

func (f *biquad) process(x float64) float64 {
	if f.kind == NoFilter {
		return x
	}
	y := f.b0*x + f.z1
	f.z1 = f.b1*x - f.a1*y + f.z2
	f.z2 = f.b2*x - f.a2*y
	return y
}

// coefficient refresh period while a cutoff sweeps
const filterUpdate = 32

// Partial is one oscillator-or-noise source through an optional filter and
// an exponential gain envelope. Several partials make a drum sound.
type Partial struct {
	Noise    bool
	NoiseLen float64  // seconds of noise before it runs dry
	Wave     Wave
	Freqs    []expEnv // summed oscillators (ignored for noise)

	Filter FilterKind
	Cutoff expEnv
	Q      float64

	Peak   float64
	Attack float64
	Decay  float64
	Stop   float64
}

// Recipe is a complete synthesized sound
type Recipe []Partial

// Length returns the voice length in seconds
func (r Recipe) Length() float64 {
	var l float64
	for _, p := range r {
		l = max(l, p.Stop)
	}
	return l
}

// Render synthesizes the recipe at the given sample rate
func (r Recipe) Render(sr int, rng *rand.Rand) []float32 {
	out := make([]float32, int(math.Ceil(r.Length()*float64(sr))))
	for _, p := range r {
		p.renderInto(out, sr, rng)
	}
	return out
}

func (p Partial) renderInto(out []float32, sr int, rng *rand.Rand) {
	n := min(len(out), int(p.Stop*float64(sr)))
	if p.Noise && p.NoiseLen > 0 {
		n = min(n, int(p.NoiseLen*float64(sr)))
	}
	env := gainEnv(p.Peak, p.Attack, p.Decay)
	phases := make([]float64, len(p.Freqs))
	sweeping := len(p.Cutoff) > 1

	var f biquad
	if p.Filter != NoFilter {
		f.set(p.Filter, p.Cutoff.at(0), p.Q, sr)
	}

	dt := 1 / float64(sr)
	for i := 0; i < n; i++ {
		t := float64(i) * dt

		var x float64
		if p.Noise {
			x = rng.Float64()*2 - 1
		} else {
			for j, freq := range p.Freqs {
				x += oscillate(p.Wave, phases[j])
				phases[j] += freq.at(t) * dt
				phases[j] -= math.Floor(phases[j])
			}
		}

		if p.Filter != NoFilter {
			if sweeping && i%filterUpdate == 0 {
				z1, z2 := f.z1, f.z2
				f.set(p.Filter, p.Cutoff.at(t), p.Q, sr)
				f.z1, f.z2 = z1, z2
			}
			x = f.process(x)
		}

		out[i] += float32(x * env.at(t))
	}
}
