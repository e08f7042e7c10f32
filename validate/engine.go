// Package validate implements the transcript style checks and the
// disallowed-character cleanup over a docx document model.
package validate

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/transcriba/transcriba/docx"
)

var (
	// timestampRe matches a line that is exactly a mm:ss timestamp.
	// Such lines are exempt from every check and from cleaning.
	timestampRe = regexp.MustCompile(`^\d{1,2}:\d{2}$`)

	// labelRe captures an uppercase-run-plus-colon prefix, the label
	// candidate at the start of a dialogue line.
	labelRe = regexp.MustCompile(`^[A-ZÁÉÍÓÚÑ]+:`)
)

// Engine runs one synchronous validation-and-cleaning pass per document.
// It carries no per-document state, so a single Engine can process any
// number of documents sequentially.
type Engine struct {
	rules Rules
}

// New returns an engine for the given rules.
func New(rules Rules) *Engine {
	return &Engine{rules: rules}
}

// paragraphResult is the outcome of checking a single paragraph; the
// caller merges it into the document Result.
type paragraphResult struct {
	findings []Finding
	removed  []rune
}

// Run checks and cleans every paragraph of doc, top to bottom. Run text is
// mutated in place; findings keep encounter order.
func (e *Engine) Run(doc *docx.Document) *Result {
	res := newResult()
	for i, p := range doc.Paragraphs() {
		res.merge(e.checkParagraph(i+1, p))
	}
	return res
}

// checkParagraph applies the label, formatting and font checks, then
// strips disallowed characters from the paragraph's runs.
func (e *Engine) checkParagraph(line int, p *docx.Paragraph) paragraphResult {
	var pr paragraphResult

	trimmed := strings.TrimSpace(p.Text())
	if trimmed == "" {
		return pr
	}

	// Timestamp lines (e.g. "12:34") pass through untouched: no checks,
	// and intentionally no cleaning either.
	if timestampRe.MatchString(trimmed) {
		return pr
	}

	pr.findings = append(pr.findings, e.checkForbiddenWords(line, trimmed)...)

	if label := labelRe.FindString(trimmed); label != "" {
		pr.findings = append(pr.findings, e.checkLabel(line, label, trimmed, p)...)
	}

	pr.findings = append(pr.findings, e.checkFont(line, p)...)
	pr.findings = append(pr.findings, e.checkSize(line, p)...)

	pr.removed = e.cleanRuns(p)
	return pr
}

// checkForbiddenWords flags leftover transcription-tool speaker tags.
func (e *Engine) checkForbiddenWords(line int, trimmed string) []Finding {
	var out []Finding
	lower := strings.ToLower(trimmed)
	for _, word := range e.rules.ForbiddenWords {
		if !strings.Contains(lower, word) {
			continue
		}
		var msg string
		switch word {
		case "usuario":
			msg = "Found 'Usuario'. Use 'ENTREVISTADO:' or 'ENTREVISTADOR:'."
		case "xxx":
			msg = fmt.Sprintf("Found %q. Replace it with the correct label.", trimmed)
		default:
			msg = fmt.Sprintf("Found %q. Use 'ENTREVISTADOR:' or 'ENTREVISTADO:'.", trimmed)
		}
		out = append(out, Finding{Line: line, Category: CategoryInvalidLabel, Message: msg})
	}
	return out
}

// checkLabel validates a label candidate and, for interviewer lines, the
// bold formatting of the whole paragraph.
func (e *Engine) checkLabel(line int, label, trimmed string, p *docx.Paragraph) []Finding {
	if !e.rules.isValidLabel(label) {
		return []Finding{{
			Line:     line,
			Category: CategoryInvalidLabel,
			Message:  fmt.Sprintf("Found %q. Use only %v.", label, e.rules.ValidLabels),
		}}
	}

	var out []Finding
	if trimmed == label {
		out = append(out, Finding{
			Line:     line,
			Category: CategoryIncorrectFormat,
			Message:  fmt.Sprintf("The label %q stands alone. It must be followed by the dialogue text.", label),
		})
	}

	if e.rules.isInterviewerLabel(label) {
		headerBold := false
		allBold := true
		for _, run := range p.Runs() {
			bold := run.Bold() != nil && *run.Bold()
			runTrimmed := strings.TrimSpace(run.Text())
			if strings.HasPrefix(runTrimmed, label) && bold {
				headerBold = true
			}
			if runTrimmed != "" && !bold {
				allBold = false
			}
		}
		if !headerBold {
			out = append(out, Finding{
				Line:     line,
				Category: CategoryHeaderNotBold,
				Message:  fmt.Sprintf("The label %q should be in bold.", label),
			})
		}
		if !allBold {
			out = append(out, Finding{
				Line:     line,
				Category: CategoryBoldFormatting,
				Message:  fmt.Sprintf("The %q line should be entirely bold.", label),
			})
		}
	}
	return out
}

// checkFont reports the first run carrying an explicit font other than the
// required one. The scan stops at the first violation: one font finding
// per paragraph at most, later runs are never inspected.
func (e *Engine) checkFont(line int, p *docx.Paragraph) []Finding {
	for _, run := range p.Runs() {
		font := run.Font()
		if font != "" && !strings.EqualFold(font, e.rules.RequiredFont) {
			return []Finding{{
				Line:     line,
				Category: CategoryIncorrectFont,
				Message:  fmt.Sprintf("Found font %q instead of %s.", font, e.rules.RequiredFont),
			}}
		}
	}
	return nil
}

// checkSize reports the first run carrying an explicit size other than the
// required one, with the same single-violation short-circuit as checkFont.
// The two scans are independent: a font violation does not hide a size
// violation on the same paragraph.
func (e *Engine) checkSize(line int, p *docx.Paragraph) []Finding {
	for _, run := range p.Runs() {
		if size := run.Size(); size != nil && *size != e.rules.RequiredSizePt {
			return []Finding{{
				Line:     line,
				Category: CategoryIncorrectSize,
				Message:  fmt.Sprintf("Found %gpt instead of %gpt.", *size, e.rules.RequiredSizePt),
			}}
		}
	}
	return nil
}

// cleanRuns deletes disallowed characters from every run of the paragraph,
// returning the removed characters in encounter order. Runs containing no
// disallowed character are left untouched.
func (e *Engine) cleanRuns(p *docx.Paragraph) []rune {
	var removed []rune
	for _, run := range p.Runs() {
		text := run.Text()
		if text == "" {
			continue
		}
		cleaned, dropped := cleanText(text)
		if len(dropped) == 0 {
			continue
		}
		removed = append(removed, dropped...)
		run.SetText(cleaned)
	}
	return removed
}

// cleanText removes every disallowed character from s, preserving the
// order of what remains.
func cleanText(s string) (string, []rune) {
	var dropped []rune
	var sb strings.Builder
	for _, c := range s {
		if allowedRune(c) {
			sb.WriteRune(c)
			continue
		}
		dropped = append(dropped, c)
	}
	if len(dropped) == 0 {
		return s, nil
	}
	return sb.String(), dropped
}
