package midi

import (
	"errors"
	"fmt"
	"strings"
	"time"

	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"
	_ "gitlab.com/gomidi/midi/v2/drivers/rtmididrv" // Register MIDI driver
)

// ErrTimeout is returned when the MIDI system does not answer (CoreMIDI can hang)
var ErrTimeout = errors.New("midi: timed out listing ports")

// ScanTimeout bounds how long port listing may take
const ScanTimeout = 3 * time.Second

// Ports lists the input and output port names
func Ports() (ins, outs []string, err error) {
	in, out, err := scan()
	if err != nil {
		return nil, nil, err
	}
	for _, p := range in {
		ins = append(ins, p.String())
	}
	for _, p := range out {
		outs = append(outs, p.String())
	}
	return ins, outs, nil
}

func scan() ([]drivers.In, []drivers.Out, error) {
	type result struct {
		ins  []drivers.In
		outs []drivers.Out
	}
	ch := make(chan result, 1)
	go func() {
		ch <- result{ins: gomidi.GetInPorts(), outs: gomidi.GetOutPorts()}
	}()

	select {
	case r := <-ch:
		return r.ins, r.outs, nil
	case <-time.After(ScanTimeout):
		return nil, nil, ErrTimeout
	}
}

// FindOutPort returns the output port named name. An exact match wins;
// otherwise the first port whose name contains name (ignoring case).
func FindOutPort(name string) (drivers.Out, error) {
	_, outs, err := scan()
	if err != nil {
		return nil, err
	}
	if i := matchPort(portNames(outs), name); i >= 0 {
		return outs[i], nil
	}
	return nil, fmt.Errorf("midi: no output port matching %q", name)
}

func portNames[P fmt.Stringer](ports []P) []string {
	names := make([]string, len(ports))
	for i, p := range ports {
		names[i] = p.String()
	}
	return names
}

func matchPort(names []string, name string) int {
	if name == "" {
		return -1
	}
	for i, n := range names {
		if n == name {
			return i
		}
	}
	want := strings.ToLower(name)
	for i, n := range names {
		if strings.Contains(strings.ToLower(n), want) {
			return i
		}
	}
	return -1
}

// CloseDriver releases the MIDI driver at exit
func CloseDriver() {
	gomidi.CloseDriver()
}
