package text

import (
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// LowerResult describes the outcome of lowercasing a single value
type LowerResult struct {
	Original    string
	Lowered     string
	WasModified bool
}

// Lowercaser maps text to lowercase using the Unicode default case mapping.
// No locale tailoring is applied, so "I" always maps to "i".
// A Lowercaser is not safe for concurrent use.
type Lowercaser struct {
	caser cases.Caser
}

// NewLowercaser creates a new Lowercaser
func NewLowercaser() *Lowercaser {
	return &Lowercaser{
		caser: cases.Lower(language.Und),
	}
}

// LowerText lowercases the full string
func (l *Lowercaser) LowerText(s string) *LowerResult {
	lowered := l.caser.String(s)
	return &LowerResult{
		Original:    s,
		Lowered:     lowered,
		WasModified: lowered != s,
	}
}

// Lower is a convenience wrapper around a fresh Lowercaser.
func Lower(s string) string {
	return NewLowercaser().LowerText(s).Lowered
}
