package ui

// Color accessors read the active theme on every call so that a theme change
// (e.g. --no-color) applies everywhere.

// ColorReset returns the reset sequence.
func ColorReset() string { return GetCurrentTheme().Reset }

// ColorRed returns the error color.
func ColorRed() string { return GetCurrentTheme().Error }

// ColorGreen returns the success color.
func ColorGreen() string { return GetCurrentTheme().Success }

// ColorYellow returns the warning color.
func ColorYellow() string { return GetCurrentTheme().Warning }

// ColorBlue returns the primary color.
func ColorBlue() string { return GetCurrentTheme().Primary }

// ColorMagenta returns the info color.
func ColorMagenta() string { return GetCurrentTheme().Info }

// ColorCyan returns the primary color; the themes use one accent for both.
func ColorCyan() string { return GetCurrentTheme().Primary }

// ColorBold returns the bold sequence.
func ColorBold() string { return GetCurrentTheme().Bold }

// ColorProvider adapts the active theme to apperrors.ColorProvider.
type ColorProvider struct{}

// Red returns the error color.
func (ColorProvider) Red() string { return ColorRed() }

// Yellow returns the warning color.
func (ColorProvider) Yellow() string { return ColorYellow() }

// Reset returns the reset sequence.
func (ColorProvider) Reset() string { return ColorReset() }
