package render

// Mode selects how triangles are rasterized.
type Mode uint8

// Draw modes.
const (
	Shaded Mode = iota
	Wireframe
	Points

	modeCount
)

// String returns the mode name as used in config files and the title bar.
func (m Mode) String() string {
	switch m {
	case Wireframe:
		return "wireframe"
	case Points:
		return "points"
	default:
		return "shaded"
	}
}

// Next returns the following mode, cycling back to Shaded.
func (m Mode) Next() Mode {
	return (m + 1) % modeCount
}

// ParseMode maps a mode name to its value. Unknown names fall back to
// Shaded.
func ParseMode(s string) Mode {
	switch s {
	case "wireframe":
		return Wireframe
	case "points":
		return Points
	default:
		return Shaded
	}
}
