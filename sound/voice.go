package sound

// Voice generates PCM samples in the range [-1,1].
type Voice interface {
	// Sample returns the next sample and whether the voice has finished.
	Sample() (float64, bool)
}

// bufferVoice plays a pre-rendered buffer once
type bufferVoice struct {
	buf []float32
	i   int
}

func (v *bufferVoice) Sample() (float64, bool) {
	if v.i >= len(v.buf) {
		return 0, true
	}
	s := v.buf[v.i]
	v.i++
	return float64(s), false
}

// recorded playback envelope
const (
	sampleAttack = 0.008
	fadeOut      = 0.02
)

// sampleVoice plays the trim window of a recorded sample
type sampleVoice struct {
	data []float32
	sr   float64
	i, n int
	env  expEnv
}

func newSampleVoice(s *Sample, sr int) *sampleVoice {
	start, dur := s.Window()
	first := int(start * float64(sr))
	n := int(dur * float64(sr))
	if first > len(s.Data) {
		first = len(s.Data)
	}
	n = min(n, len(s.Data)-first)
	return &sampleVoice{
		data: s.Data[first : first+n],
		sr:   float64(sr),
		n:    n,
		env:  gainEnv(1.0, sampleAttack, dur),
	}
}

func (v *sampleVoice) Sample() (float64, bool) {
	if v.i >= v.n {
		return 0, true
	}
	s := float64(v.data[v.i]) * v.env.at(float64(v.i)/v.sr)
	v.i++
	return s, false
}
