package sound

import (
	"testing"

	qt "github.com/frankban/quicktest"
)

func TestParseKeyRoundTrip(t *testing.T) {
	c := qt.New(t)
	keys := Keys()
	c.Assert(keys, qt.HasLen, int(NumKits)*int(NumInstruments))
	for _, k := range keys {
		got, ok := ParseKey(k.String())
		c.Assert(ok, qt.IsTrue, qt.Commentf("key %s", k))
		c.Assert(got, qt.Equals, k)
	}
}

func TestParseKeyRejectsUnknown(t *testing.T) {
	c := qt.New(t)
	for _, s := range []string{"", "classic", "classic:", ":kick", "jazz:kick", "classic:cowbell", "classic:kick:extra"} {
		_, ok := ParseKey(s)
		c.Check(ok, qt.IsFalse, qt.Commentf("input %q", s))
	}
}

func TestKeyLabels(t *testing.T) {
	c := qt.New(t)
	c.Assert(Key{Classic, Kick}.Label(), qt.Equals, "Classic - Kick")
	c.Assert(Key{Recorded, Hat}.Label(), qt.Equals, "My Kit - Hi-Hat")
	c.Assert(Key{Arcade, Perc}.String(), qt.Equals, "arcade:perc")
	c.Assert(Key{Kit: NumKits}.Valid(), qt.IsFalse)
}

func TestEveryStandardKeyHasRecipe(t *testing.T) {
	c := qt.New(t)
	for _, k := range Keys() {
		_, ok := Recipes[k]
		c.Check(ok, qt.Equals, k.Kit.Synthesized(), qt.Commentf("key %s", k))
	}
}
