package sound

// Recipes holds the synthesized sounds of the classic, toy and arcade kits.
// The recorded kit has no recipe; its sounds come from the kit store.
var Recipes = map[Key]Recipe{
	// Classic
	{Classic, Kick}: {
		{Wave: Sine, Freqs: []expEnv{sweep(170, 52, 0.12)}, Peak: 0.95, Attack: 0.01, Decay: 0.18, Stop: 0.22},
	},
	{Classic, Snare}: {
		{Noise: true, NoiseLen: 0.2, Filter: Highpass, Cutoff: flat(900), Peak: 0.6, Attack: 0.01, Decay: 0.14, Stop: 0.2},
		{Wave: Triangle, Freqs: []expEnv{flat(190)}, Peak: 0.28, Attack: 0.005, Decay: 0.08, Stop: 0.12},
	},
	{Classic, Hat}: {
		{Noise: true, NoiseLen: 0.08, Filter: Highpass, Cutoff: flat(7000), Peak: 0.25, Attack: 0.004, Decay: 0.055, Stop: 0.09},
	},
	{Classic, Perc}: {
		{Wave: Square, Freqs: []expEnv{sweep(420, 260, 0.08)}, Filter: Lowpass, Cutoff: flat(1600), Peak: 0.22, Attack: 0.006, Decay: 0.075, Stop: 0.1},
	},

	// Toy
	{Toy, Kick}: {
		{Wave: Triangle, Freqs: []expEnv{sweep(220, 85, 0.13)}, Filter: Lowpass, Cutoff: sweep(900, 220, 0.12), Peak: 0.55, Attack: 0.01, Decay: 0.12, Stop: 0.16},
	},
	{Toy, Snare}: {
		{Wave: Square, Freqs: []expEnv{flat(980)}, Peak: 0.25, Attack: 0.002, Decay: 0.03, Stop: 0.04},
		{Noise: true, NoiseLen: 0.12, Filter: Bandpass, Cutoff: flat(2200), Q: 0.9, Peak: 0.25, Attack: 0.004, Decay: 0.09, Stop: 0.13},
	},
	{Toy, Hat}: {
		{Noise: true, NoiseLen: 0.06, Filter: Highpass, Cutoff: flat(9500), Peak: 0.15, Attack: 0.003, Decay: 0.035, Stop: 0.07},
	},
	{Toy, Perc}: {
		{Wave: Sine, Freqs: []expEnv{sweep(660, 440, 0.09)}, Peak: 0.18, Attack: 0.004, Decay: 0.1, Stop: 0.12},
	},

	// Arcade
	{Arcade, Kick}: {
		{Wave: Square, Freqs: []expEnv{sweep(180, 65, 0.14)}, Filter: Lowpass, Cutoff: sweep(2400, 700, 0.13), Peak: 0.7, Attack: 0.008, Decay: 0.16, Stop: 0.18},
	},
	{Arcade, Snare}: {
		{Noise: true, NoiseLen: 0.16, Filter: Highpass, Cutoff: flat(1400), Peak: 0.42, Attack: 0.008, Decay: 0.11, Stop: 0.17},
		{Wave: Square, Freqs: []expEnv{flat(240)}, Peak: 0.22, Attack: 0.004, Decay: 0.06, Stop: 0.09},
	},
	{Arcade, Hat}: {
		{Wave: Square, Freqs: []expEnv{flat(8200), flat(12200)}, Filter: Highpass, Cutoff: flat(6500), Peak: 0.12, Attack: 0.002, Decay: 0.04, Stop: 0.06},
	},
	{Arcade, Perc}: {
		{Wave: Triangle, Freqs: []expEnv{sweep(520, 320, 0.07)}, Filter: Lowpass, Cutoff: flat(1600), Peak: 0.16, Attack: 0.004, Decay: 0.08, Stop: 0.1},
	},
}
