package midi

import "go-drummer/sound"

// NoteMap maps the four instruments of a kit to General MIDI drum notes
type NoteMap [sound.NumInstruments]uint8

// KitNotes holds one note map per sound kit. Kits lean on different GM
// voices so a drum module can tell them apart.
var KitNotes = [sound.NumKits]NoteMap{
	sound.Classic: {
		36, // Kick
		38, // Snare
		42, // Closed HH
		37, // Rimshot
	},
	sound.Toy: {
		35, // Acoustic Kick
		40, // Electric Snare
		44, // Pedal HH
		56, // Cowbell
	},
	sound.Arcade: {
		36, // Kick
		39, // Clap
		46, // Open HH
		75, // Clave
	},
	sound.Recorded: {
		36, // Kick
		38, // Snare
		42, // Closed HH
		39, // Clap
	},
}

// Note returns the MIDI note for key
func Note(key sound.Key) (uint8, bool) {
	if !key.Valid() {
		return 0, false
	}
	return KitNotes[key.Kit][key.Instrument], true
}
