package validate

import (
	"strings"
	"unicode"
)

// Rules holds the style convention a transcript is checked against.
type Rules struct {
	// ValidLabels is the closed set of accepted speaker labels, colon
	// included (e.g. "ENTREVISTADOR:").
	ValidLabels []string

	// InterviewerLabels are the labels whose whole line must be bold.
	InterviewerLabels []string

	// ForbiddenWords are case-insensitive substrings that mark a line as
	// carrying a wrong speaker tag (raw transcription-tool output).
	ForbiddenWords []string

	// RequiredFont is the only accepted font name, compared case-insensitively.
	RequiredFont string

	// RequiredSizePt is the only accepted font size in points.
	RequiredSizePt float64
}

// DefaultRules returns the fixed transcript convention: Spanish interview
// labels, Arial 12pt.
func DefaultRules() Rules {
	return Rules{
		ValidLabels: []string{
			"ENTREVISTADOR:",
			"ENTREVISTADORA:",
			"ENTREVISTADO:",
			"ENTREVISTADA:",
		},
		InterviewerLabels: []string{
			"ENTREVISTADOR:",
			"ENTREVISTADORA:",
		},
		ForbiddenWords: []string{"speaker", "usuario", "xxx"},
		RequiredFont:   "Arial",
		RequiredSizePt: 12,
	}
}

// isValidLabel reports whether label is in the accepted set.
func (r Rules) isValidLabel(label string) bool {
	for _, l := range r.ValidLabels {
		if label == l {
			return true
		}
	}
	return false
}

// isInterviewerLabel reports whether label must be rendered fully bold.
func (r Rules) isInterviewerLabel(label string) bool {
	for _, l := range r.InterviewerLabels {
		if label == l {
			return true
		}
	}
	return false
}

// allowedRune reports whether a character may stay in cleaned text: Latin
// letters plain or Spanish-accented, digits, whitespace, and the
// punctuation . , : ? ¿
func allowedRune(c rune) bool {
	switch {
	case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		return true
	case unicode.IsSpace(c):
		return true
	}
	return strings.ContainsRune("áéíóúÁÉÍÓÚñÑ.,:?¿", c)
}
