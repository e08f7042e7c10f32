// Package transcriba provides a fluent API for validating and cleaning
// interview-transcript DOCX documents against the house style convention.
//
// Basic usage:
//
//	outcome, err := transcriba.Open("entrevista.docx").Run()
//	if err != nil {
//	    // handle error
//	}
//	fmt.Println(outcome.Report(time.Now()))
//
// With custom rules:
//
//	rules := validate.DefaultRules()
//	rules.RequiredSizePt = 11
//	outcome, err := transcriba.Open("entrevista.docx").WithRules(rules).Run()
//
// For advanced use cases, the lower-level docx and validate packages are
// also available.
package transcriba

import (
	"fmt"
	"os"
	"time"

	"github.com/transcriba/transcriba/docx"
	"github.com/transcriba/transcriba/report"
	"github.com/transcriba/transcriba/validate"
)

// Runner holds a pending validation run for fluent configuration.
type Runner struct {
	filename string
	data     []byte
	readErr  error
	rules    validate.Rules
}

// Open prepares a validation run over a DOCX file on disk.
func Open(filename string) *Runner {
	data, err := os.ReadFile(filename)
	if err != nil {
		err = fmt.Errorf("reading %s: %w", filename, err)
	}
	return &Runner{
		filename: filename,
		data:     data,
		readErr:  err,
		rules:    validate.DefaultRules(),
	}
}

// FromBytes prepares a validation run over an in-memory DOCX. The name is
// only used for reporting.
func FromBytes(name string, data []byte) *Runner {
	return &Runner{
		filename: name,
		data:     data,
		rules:    validate.DefaultRules(),
	}
}

// WithRules overrides the default style rules.
func (r *Runner) WithRules(rules validate.Rules) *Runner {
	r.rules = rules
	return r
}

// Run loads the document and executes one validation-and-cleaning pass.
func (r *Runner) Run() (*Outcome, error) {
	if r.readErr != nil {
		return nil, r.readErr
	}
	doc, err := docx.FromBytes(r.data)
	if err != nil {
		return nil, err
	}
	res := validate.New(r.rules).Run(doc)
	return &Outcome{
		Filename: r.filename,
		Document: doc,
		Result:   res,
	}, nil
}

// Outcome is the product of one validation run: the cleaned document and
// the findings.
type Outcome struct {
	Filename string
	Document *docx.Document
	Result   *validate.Result
}

// CleanedBytes serializes the cleaned document back to DOCX.
func (o *Outcome) CleanedBytes() ([]byte, error) {
	return o.Document.Bytes()
}

// Report renders the plain-text error report for this run.
func (o *Outcome) Report(generated time.Time) string {
	return report.Render(o.Filename, generated, o.Result)
}

// Must is a helper that wraps a call to a function returning (T, error)
// and panics if the error is non-nil. It is intended for use in scripts
// or tests where error handling would be cumbersome.
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}
