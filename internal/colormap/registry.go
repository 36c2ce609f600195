package colormap

import (
	"math"
	"strings"
)

// DefaultName is the palette returned for unknown names.
const DefaultName = "jet"

var (
	black = NewARGB(0, 0, 0)
	white = NewARGB(0xff, 0xff, 0xff)
	gray  = NewARGB(0x88, 0x88, 0x88)
)

type entry struct {
	name    string
	palette *Palette
}

var registry = buildRegistry()

// Lookup returns the named palette, case-insensitively. Unknown names fall
// back to the default palette.
func Lookup(name string) *Palette {
	key := strings.ToLower(strings.TrimSpace(name))
	for _, e := range registry {
		if e.name == key {
			return e.palette
		}
	}
	return Default()
}

// Default returns the jet palette.
func Default() *Palette {
	return registry[0].palette
}

// Names lists registered palettes in registration order.
func Names() []string {
	out := make([]string, len(registry))
	for i, e := range registry {
		out[i] = e.name
	}
	return out
}

func buildRegistry() []entry {
	specs := []struct {
		name          string
		colors        []ARGB
		missing, none ARGB
	}{
		{DefaultName, jetColors(), gray, black},
		{"cube-helix", hexes("#000000", "#1a1530", "#163d4e", "#1f6642", "#54792f", "#a07949", "#d07e93", "#cf9cda", "#c1caf3", "#d2eeef", "#ffffff"), NewARGB(0xff, 0xff, 0), gray},
		{"parula", hexes("#352a87", "#1957d9", "#0f77db", "#0d92d2", "#07aac1", "#34b8a0", "#7abf7c", "#b7bd64", "#ecb94c", "#fad22a", "#f9fb0e"), black, gray},
		{"seismic", []ARGB{
			FromFloats(0, 0, 0.3), FromFloats(0, 0, 1), FromFloats(1, 1, 1), FromFloats(1, 0, 0), FromFloats(0.5, 0, 0),
		}, black, gray},
		{"gray", []ARGB{black, white}, NewARGB(0xff, 0, 0), NewARGB(0, 0, 0xff)},
		{"viridis", hexes("#440154", "#482878", "#3e4989", "#31688e", "#26828e", "#1f9e89", "#35b779", "#6ece58", "#b5de2b", "#fde725"), black, gray},
		{"magma", hexes("#000004", "#180f3d", "#440f76", "#721f81", "#9e2f7f", "#cd4071", "#f1605d", "#fd9668", "#feca8d", "#fcfdbf"), black, gray},
		{"inferno", hexes("#000004", "#1b0c41", "#4a0c6b", "#781c6d", "#a52c60", "#cf4446", "#ed6925", "#fb9b06", "#f7d13d", "#fcffa4"), black, gray},
		{"plasma", hexes("#0d0887", "#46039f", "#7201a8", "#9c179e", "#bd3786", "#d8576b", "#ed7953", "#fb9f3a", "#fdca26", "#f0f921"), black, gray},
		// Cyclic: both ends are the same pale gray.
		{"twilight", hexes("#e2d9e2", "#a6bfcf", "#7a9fc8", "#6176be", "#5c4aa8", "#4a2a78", "#2f1436", "#6a1f4e", "#9d334f", "#bd5b4c", "#cd8c6f", "#d7b8a8", "#e2d9e2"), black, gray},
		{"turbo", hexes("#30123b", "#4662d7", "#36aaf9", "#1ae4b6", "#72fe5e", "#c8ef34", "#faba39", "#f66b19", "#ca2a04", "#7a0403"), black, gray},
		{"rainbow", hexes("#8000ff", "#4856fb", "#10a2f0", "#2adddd", "#62fbc4", "#9cfba4", "#d4dd80", "#ffa256", "#ff562c", "#ff0000"), black, gray},
		{"better rainbow", sinebowColors(12), black, gray},
	}
	out := make([]entry, 0, len(specs))
	for _, s := range specs {
		p, err := Uniform(s.colors, s.missing, s.none)
		if err != nil {
			panic("colormap: bad builtin palette " + s.name + ": " + err.Error())
		}
		p.name = s.name
		out = append(out, entry{name: s.name, palette: p})
	}
	return out
}

// jet interpolates blue, cyan, yellow and red in thirds.
func jetColors() []ARGB {
	const a, b = 1.0 / 3, 2.0 / 3
	return []ARGB{
		FromFloats(0, 0, 1),
		FromFloats(0, a, 1),
		FromFloats(0, b, 1),
		FromFloats(0, 1, 1),
		FromFloats(a, 1, b),
		FromFloats(b, 1, a),
		FromFloats(1, 1, 0),
		FromFloats(1, b, 0),
		FromFloats(1, a, 0),
		FromFloats(1, 0, 0),
	}
}

// sinebowColors samples n colors from the sinebow: three squared sines a
// third of a period apart.
func sinebowColors(n int) []ARGB {
	out := make([]ARGB, n)
	for i := range out {
		t := 0.5 - float64(i)/float64(n-1)
		r := math.Sin(math.Pi * t)
		g := math.Sin(math.Pi * (t + 1.0/3))
		b := math.Sin(math.Pi * (t + 2.0/3))
		out[i] = FromFloats(r*r, g*g, b*b)
	}
	return out
}

func hexes(codes ...string) []ARGB {
	out := make([]ARGB, len(codes))
	for i, c := range codes {
		out[i] = Hex(c)
	}
	return out
}
