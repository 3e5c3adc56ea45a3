package notionpub

// Theme defines semantic color mappings for terminal output using ANSI
// color indices (0-15). The user's terminal theme determines the actual RGB
// values, so previews match any color scheme.
type Theme struct {
	Accent  int // Headings, selected results
	Muted   int // URLs, hints, code gutters
	Quote   int // Blockquote bars
	Error   int // Error messages
	Success int // Success indicators
}

// DefaultTheme returns the default ANSI color mapping.
func DefaultTheme() Theme {
	return Theme{
		Accent:  5,
		Muted:   8,
		Quote:   2,
		Error:   1,
		Success: 2,
	}
}
