package sound

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/go-audio/wav"
)

// MinPlayable is the shortest trim window that will be played, in seconds
const MinPlayable = 0.02

// ErrDecode is returned when recorded audio cannot be decoded
var ErrDecode = errors.New("cannot decode audio")

// Sample is decoded mono audio plus the trim window to play from it
type Sample struct {
	Data       []float32
	SampleRate int

	StartSec float64
	EndSec   float64 // <= 0 means the end of the data
}

// Duration returns the length of the data in seconds
func (s *Sample) Duration() float64 {
	if s.SampleRate == 0 {
		return 0
	}
	return float64(len(s.Data)) / float64(s.SampleRate)
}

// Window returns the clamped start offset and the playable duration
func (s *Sample) Window() (start, dur float64) {
	d := s.Duration()
	start = clamp(s.StartSec, 0, d)
	end := d
	if s.EndSec > 0 {
		end = clamp(s.EndSec, 0, d)
	}
	return start, max(MinPlayable, end-start)
}

// Resampled returns a copy of s at rate sr (linear interpolation)
func (s *Sample) Resampled(sr int) *Sample {
	if s.SampleRate == sr || s.SampleRate == 0 || len(s.Data) == 0 {
		return s
	}
	ratio := float64(s.SampleRate) / float64(sr)
	n := int(float64(len(s.Data)) / ratio)
	out := make([]float32, n)
	for i := range out {
		x := float64(i) * ratio
		j := int(x)
		frac := float32(x - float64(j))
		a := s.Data[j]
		b := a
		if j+1 < len(s.Data) {
			b = s.Data[j+1]
		}
		out[i] = a + (b-a)*frac
	}
	return &Sample{Data: out, SampleRate: sr, StartSec: s.StartSec, EndSec: s.EndSec}
}

// DecodeWAV decodes PCM WAV data, mixing all channels down to mono
func DecodeWAV(data []byte) (*Sample, error) {
	d := wav.NewDecoder(bytes.NewReader(data))
	if !d.IsValidFile() {
		return nil, fmt.Errorf("%w: not a WAV file", ErrDecode)
	}
	buf, err := d.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	if buf == nil || buf.Format == nil || buf.Format.NumChannels < 1 || len(buf.Data) == 0 {
		return nil, fmt.Errorf("%w: empty audio", ErrDecode)
	}

	chans := buf.Format.NumChannels
	depth := buf.SourceBitDepth
	if depth <= 0 {
		depth = int(d.BitDepth)
	}
	if depth <= 0 || depth > 32 {
		return nil, fmt.Errorf("%w: unsupported bit depth %d", ErrDecode, depth)
	}
	scale := float64(int64(1) << (depth - 1))

	frames := len(buf.Data) / chans
	out := make([]float32, frames)
	for i := 0; i < frames; i++ {
		var sum float64
		for c := 0; c < chans; c++ {
			sum += float64(buf.Data[i*chans+c])
		}
		out[i] = float32(sum / float64(chans) / scale)
	}
	return &Sample{Data: out, SampleRate: buf.Format.SampleRate}, nil
}

func clamp(v, lo, hi float64) float64 {
	return min(hi, max(lo, v))
}
