package dispatch

// FallbackIcon is shown for any state label outside the known set.
const FallbackIcon = "❔"

// Icons maps runtime state labels to display glyphs. The zero value maps
// everything to the fallback glyph. Icons is immutable once built.
type Icons struct {
	glyphs   map[string]string
	fallback string
}

// DefaultIcons returns the glyph table for docker's container states.
func DefaultIcons() Icons {
	return Icons{
		glyphs: map[string]string{
			"created":    "💦👶🏻",
			"running":    "🟢",
			"paused":     "⏸️",
			"restarting": "🔃",
			"exited":     "🔴",
			"removing":   "🚮",
			"dead":       "❌",
		},
		fallback: FallbackIcon,
	}
}

// For returns the glyph for state, or the fallback glyph.
func (i Icons) For(state string) string {
	if glyph, ok := i.glyphs[state]; ok {
		return glyph
	}
	if i.fallback == "" {
		return FallbackIcon
	}
	return i.fallback
}
