package model

// Theme identifies one of the color schemes the client can render with.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
	ThemeMonet Theme = "monet"
	ThemeOLED  Theme = "oled"
)

// Themes lists every theme in menu order.
var Themes = []Theme{ThemeLight, ThemeDark, ThemeMonet, ThemeOLED}

var themeNames = map[Theme]string{
	ThemeLight: "Light",
	ThemeDark:  "Dark",
	ThemeMonet: "Monet Colorful",
	ThemeOLED:  "OLED Black",
}

// ParseTheme maps an identifier to a Theme. Unknown identifiers fall back to
// light silently so that newer theme names coming from persisted state never
// break an older client.
func ParseTheme(s string) Theme {
	t := Theme(s)
	if _, ok := themeNames[t]; ok {
		return t
	}
	return ThemeLight
}

// DisplayName returns the human-readable theme name.
func (t Theme) DisplayName() string {
	if name, ok := themeNames[t]; ok {
		return name
	}
	return string(t)
}

// Dark reports whether chart text and grid lines need light-on-dark colors.
func (t Theme) Dark() bool {
	return t == ThemeDark || t == ThemeOLED
}
