package sound

import "strings"

// Kit is a named group of four instrument sounds
type Kit uint8

const (
	Classic Kit = iota
	Toy
	Arcade
	Recorded
	NumKits
)

var kitNames = [NumKits]string{"classic", "toy", "arcade", "recorded"}

var kitLabels = [NumKits]string{"Classic", "Toy", "Arcade", "My Kit"}

func (k Kit) String() string {
	if k >= NumKits {
		return "unknown"
	}
	return kitNames[k]
}

// Label is the human name shown in kit pickers
func (k Kit) Label() string {
	if k >= NumKits {
		return "Unknown"
	}
	return kitLabels[k]
}

// Synthesized reports whether the kit is generated rather than recorded
func (k Kit) Synthesized() bool {
	return k < Recorded
}

// ParseKit maps "classic", "toy", "arcade" or "recorded" to a Kit
func ParseKit(s string) (Kit, bool) {
	for i, name := range kitNames {
		if name == s {
			return Kit(i), true
		}
	}
	return 0, false
}

// Instrument is one of the four sound slots of every kit
type Instrument uint8

const (
	Kick Instrument = iota
	Snare
	Hat
	Perc
	NumInstruments
)

var instrumentNames = [NumInstruments]string{"kick", "snare", "hat", "perc"}

var instrumentLabels = [NumInstruments]string{"Kick", "Snare", "Hi-Hat", "Perc"}

func (i Instrument) String() string {
	if i >= NumInstruments {
		return "unknown"
	}
	return instrumentNames[i]
}

func (i Instrument) Label() string {
	if i >= NumInstruments {
		return "Unknown"
	}
	return instrumentLabels[i]
}

// ParseInstrument maps "kick", "snare", "hat" or "perc" to an Instrument
func ParseInstrument(s string) (Instrument, bool) {
	for i, name := range instrumentNames {
		if name == s {
			return Instrument(i), true
		}
	}
	return 0, false
}

// Key identifies a (kit, instrument) pair, written "kit:instrument"
type Key struct {
	Kit        Kit
	Instrument Instrument
}

// Valid reports whether both halves of the key are known
func (k Key) Valid() bool {
	return k.Kit < NumKits && k.Instrument < NumInstruments
}

func (k Key) String() string {
	return k.Kit.String() + ":" + k.Instrument.String()
}

// Label is e.g. "Classic - Kick" or "My Kit - Hi-Hat"
func (k Key) Label() string {
	return k.Kit.Label() + " - " + k.Instrument.Label()
}

// ParseKey parses "classic:kick" style keys. Unknown keys return false.
func ParseKey(s string) (Key, bool) {
	kit, inst, ok := strings.Cut(s, ":")
	if !ok {
		return Key{}, false
	}
	k, ok := ParseKit(kit)
	if !ok {
		return Key{}, false
	}
	i, ok := ParseInstrument(inst)
	if !ok {
		return Key{}, false
	}
	return Key{Kit: k, Instrument: i}, true
}

// MarshalText implements encoding.TextMarshaler
func (k Key) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// KitKeys returns the four keys of a kit in instrument order
func KitKeys(kit Kit) []Key {
	keys := make([]Key, 0, NumInstruments)
	for i := Instrument(0); i < NumInstruments; i++ {
		keys = append(keys, Key{Kit: kit, Instrument: i})
	}
	return keys
}

// Keys returns every key, grouped by kit
func Keys() []Key {
	keys := make([]Key, 0, int(NumKits)*int(NumInstruments))
	for k := Kit(0); k < NumKits; k++ {
		keys = append(keys, KitKeys(k)...)
	}
	return keys
}
