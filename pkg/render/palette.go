package render

import "github.com/papercomputeco/prooftree/pkg/merkle"

// Palette maps diagnostic labels to fill colors (hex, e.g. "#ef476f").
type Palette struct {
	Normal  string `toml:"normal"`
	Target  string `toml:"target"`
	Witness string `toml:"witness"`
	Path    string `toml:"path"`
	Error   string `toml:"error"`
}

// DefaultPalette is the palette used when none is configured.
var DefaultPalette = Palette{
	Normal:  "#f2e9e4",
	Target:  "#ef476f",
	Witness: "#06d6a0",
	Path:    "#ffd166",
	Error:   "#073b4c",
}

// Color returns the color for l, falling back to [DefaultPalette] for unset entries.
func (p Palette) Color(l merkle.Label) string {
	var c, def string
	switch l {
	case merkle.LabelTarget:
		c, def = p.Target, DefaultPalette.Target
	case merkle.LabelWitness:
		c, def = p.Witness, DefaultPalette.Witness
	case merkle.LabelPath:
		c, def = p.Path, DefaultPalette.Path
	case merkle.LabelError:
		c, def = p.Error, DefaultPalette.Error
	default:
		c, def = p.Normal, DefaultPalette.Normal
	}
	if c == "" {
		return def
	}
	return c
}
