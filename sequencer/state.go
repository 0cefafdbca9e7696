package sequencer

import (
	"encoding/json"
	"fmt"
	"math"

	"go-drummer/sound"
)

// Record is the persisted shape of a pattern:
//
//	{"tracks":[{"soundKey":"classic:kick"}],"pattern":[[true,false,...]],"bps":2}
type Record struct {
	Tracks  []TrackRecord `json:"tracks"`
	Pattern [][]bool      `json:"pattern"`
	Bps     float64       `json:"bps"`
}

// TrackRecord is one persisted track
type TrackRecord struct {
	SoundKey string `json:"soundKey"`
}

// NewRecord captures p and bps
func NewRecord(p *Pattern, bps float64) Record {
	r := Record{
		Tracks:  make([]TrackRecord, p.Len()),
		Pattern: make([][]bool, p.Len()),
		Bps:     bps,
	}
	for i, t := range p.tracks {
		r.Tracks[i] = TrackRecord{SoundKey: t.Sound.String()}
		r.Pattern[i] = append([]bool(nil), p.rows[i][:]...)
	}
	return r
}

// Restored is what LoadRecord recovered from persisted data
type Restored struct {
	Pattern *Pattern
	Bps     float64
	HasBps  bool // false when the record had no usable tempo
	Dropped int  // tracks filtered out for unknown sounds
}

// fallbackKey replaces a track whose soundKey is not a string
var fallbackKey = sound.Key{Kit: sound.Classic, Instrument: sound.Kick}

// LoadRecord decodes persisted state, repairing what it can:
//   - tracks or pattern not arrays: the default classic kit
//   - a track whose soundKey is not a string: classic:kick
//   - a track with an unknown soundKey: dropped; if none remain, the default kit
//   - short or missing rows: padded with off steps
//   - bps not a number: HasBps is false
//
// Only undecodable JSON is an error; the default pattern is returned with it.
func LoadRecord(data []byte) (Restored, error) {
	res := Restored{Pattern: DefaultPattern(sound.Classic)}

	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return res, fmt.Errorf("decode state: %w", err)
	}

	if v, ok := raw["bps"].(float64); ok && !math.IsNaN(v) {
		res.Bps = ClampBps(v)
		res.HasBps = true
	}

	tracks, ok := raw["tracks"].([]any)
	if !ok {
		return res, nil
	}
	rows, ok := raw["pattern"].([]any)
	if !ok {
		return res, nil
	}

	p := &Pattern{}
	for i, t := range tracks {
		key := fallbackKey
		if m, ok := t.(map[string]any); ok {
			if s, ok := m["soundKey"].(string); ok {
				k, known := sound.ParseKey(s)
				if !known {
					res.Dropped++
					continue
				}
				key = k
			}
		}

		var row []any
		if i < len(rows) {
			row, _ = rows[i].([]any)
		}
		p.AddRow(key)
		for s := 0; s < Steps && s < len(row); s++ {
			p.rows[p.Len()-1][s] = truthy(row[s])
		}
	}
	if p.Len() > 0 {
		res.Pattern = p
	}
	return res, nil
}

// truthy follows JSON-ish truthiness so hand-edited files with 1/0 cells load
func truthy(v any) bool {
	switch x := v.(type) {
	case nil:
		return false
	case bool:
		return x
	case float64:
		return x != 0 && !math.IsNaN(x)
	case string:
		return x != ""
	default:
		return true
	}
}
