package docx

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
)

// Save writes the document back out as a DOCX container. Every part is
// copied byte-for-byte from the original except word/document.xml, which
// is serialized from the in-memory tree so that run-text edits are kept.
func (d *Document) Save(w io.Writer) error {
	zw := zip.NewWriter(w)
	for _, p := range d.parts {
		fw, err := zw.Create(p.name)
		if err != nil {
			return fmt.Errorf("creating part %s: %w", p.name, err)
		}
		data := p.data
		if p.name == documentPart {
			data = d.serializeDocument()
		}
		if _, err := fw.Write(data); err != nil {
			return fmt.Errorf("writing part %s: %w", p.name, err)
		}
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("closing container: %w", err)
	}
	return nil
}

// Bytes returns the serialized DOCX container.
func (d *Document) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	if err := d.Save(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// serializeDocument re-emits word/document.xml from the parsed tree.
func (d *Document) serializeDocument() []byte {
	return []byte(d.dom.OutputXML(true))
}
