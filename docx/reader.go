// Package docx loads DOCX (Office Open XML) documents as an ordered
// sequence of paragraphs and styled text runs, and writes them back out
// with any run-text edits applied.
package docx

import (
	"archive/zip"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/antchfx/xmlquery"
)

// ErrInvalidDocument is returned (wrapped) when the input is not a
// well-formed DOCX container.
var ErrInvalidDocument = errors.New("not a valid DOCX document")

const documentPart = "word/document.xml"

// requiredParts are the container entries every DOCX must carry.
var requiredParts = []string{
	"[Content_Types].xml",
	documentPart,
}

// Open opens a DOCX file from disk.
func Open(filename string) (*Document, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", filename, err)
	}
	return FromBytes(data)
}

// OpenReader opens a DOCX document from an io.ReaderAt of known size.
func OpenReader(r io.ReaderAt, size int64) (*Document, error) {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return nil, fmt.Errorf("%w: opening ZIP archive: %v", ErrInvalidDocument, err)
	}
	return fromZip(zr)
}

// FromBytes opens a DOCX document held in memory.
func FromBytes(data []byte) (*Document, error) {
	return OpenReader(bytes.NewReader(data), int64(len(data)))
}

// fromZip reads every container part into memory, validates the container
// and parses the main document part.
func fromZip(zr *zip.Reader) (*Document, error) {
	d := &Document{}
	for _, f := range zr.File {
		rc, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("%w: reading part %s: %v", ErrInvalidDocument, f.Name, err)
		}
		data, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return nil, fmt.Errorf("%w: reading part %s: %v", ErrInvalidDocument, f.Name, err)
		}
		d.parts = append(d.parts, part{name: f.Name, data: data})
	}

	if err := d.validate(); err != nil {
		return nil, err
	}
	if err := d.parseDocument(); err != nil {
		return nil, err
	}
	return d, nil
}

// validate checks that the required DOCX parts exist.
func (d *Document) validate() error {
	have := make(map[string]bool, len(d.parts))
	for _, p := range d.parts {
		have[p.name] = true
	}
	for _, name := range requiredParts {
		if !have[name] {
			return fmt.Errorf("%w: missing required part %s", ErrInvalidDocument, name)
		}
	}
	return nil
}

// partData returns the raw bytes of a container part.
func (d *Document) partData(name string) ([]byte, bool) {
	for _, p := range d.parts {
		if p.name == name {
			return p.data, true
		}
	}
	return nil, false
}

// parseDocument parses word/document.xml and builds the paragraph model.
// Only body-level paragraphs are modeled; content inside tables, headers
// and footers is carried through untouched.
func (d *Document) parseDocument() error {
	data, _ := d.partData(documentPart)

	dom, err := xmlquery.Parse(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("%w: parsing %s: %v", ErrInvalidDocument, documentPart, err)
	}
	d.dom = dom

	root := findChild(dom, "document")
	if root == nil {
		return fmt.Errorf("%w: %s has no document element", ErrInvalidDocument, documentPart)
	}
	body := findChild(root, "body")
	if body == nil {
		return fmt.Errorf("%w: %s has no body element", ErrInvalidDocument, documentPart)
	}

	for _, pn := range childElements(body, "p") {
		d.paragraphs = append(d.paragraphs, newParagraph(pn))
	}
	return nil
}
