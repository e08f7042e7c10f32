// Package report renders validation results as the plain-text error
// report that accompanies a cleaned transcript.
package report

import (
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/unicode/runenames"

	"github.com/transcriba/transcriba/validate"
)

const timeLayout = "2006-01-02 15:04:05"

// Render produces the full report for one source file: header, one line
// per finding, a per-category summary and the text-cleanup section.
func Render(filename string, generated time.Time, res *validate.Result) string {
	var sb strings.Builder

	sb.WriteString("ERROR REPORT\n")
	fmt.Fprintf(&sb, "File: %s\n", filename)
	fmt.Fprintf(&sb, "Generated: %s\n\n", generated.Format(timeLayout))

	for _, f := range res.Findings {
		fmt.Fprintf(&sb, "Line %d: %s → %s\n", f.Line, f.Category, f.Message)
	}

	if counts := res.CountByCategory(); len(counts) > 0 {
		sb.WriteString("\n--- ERROR SUMMARY ---\n")
		for _, c := range counts {
			fmt.Fprintf(&sb, "%s: %d occurrences\n", c.Category, c.Count)
		}
	}

	sb.WriteString("\n--- TEXT CLEANUP ---\n")
	fmt.Fprintf(&sb, "Total special characters removed: %d\n", res.Removed)
	fmt.Fprintf(&sb, "Distinct characters removed: %d\n", res.DistinctRemoved())
	if removals := res.Removals(); len(removals) > 0 {
		sb.WriteString("\nPer-character detail:\n")
		for _, rm := range removals {
			fmt.Fprintf(&sb, "  %s → %d\n", charHuman(rm.Char), rm.Count)
		}
	}

	return sb.String()
}

// charHuman renders a removed character with its code point and Unicode
// name. Whitespace characters are shown as a quoted escape so the line
// stays readable.
func charHuman(c rune) string {
	visible := string(c)
	if unicode.IsSpace(c) {
		visible = strconv.QuoteRune(c)
	}
	name := runenames.Name(c)
	if name == "" {
		name = "UNKNOWN"
	}
	return fmt.Sprintf("%s (U+%04X %s)", visible, c, name)
}
