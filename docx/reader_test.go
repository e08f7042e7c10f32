package docx

import (
	"archive/zip"
	"bytes"
	"errors"
	"testing"
)

// buildDOCX creates a minimal in-memory DOCX with the given body content.
func buildDOCX(t *testing.T, body string) []byte {
	t.Helper()

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	write := func(name, data string) {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatalf("creating %s: %v", name, err)
		}
		if _, err := w.Write([]byte(data)); err != nil {
			t.Fatalf("writing %s: %v", name, err)
		}
	}

	write("[Content_Types].xml", `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">
  <Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>
  <Default Extension="xml" ContentType="application/xml"/>
  <Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/>
</Types>`)

	write("_rels/.rels", `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
  <Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="word/document.xml"/>
</Relationships>`)

	write("word/document.xml", `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
  <w:body>`+body+`</w:body>
</w:document>`)

	if err := zw.Close(); err != nil {
		t.Fatalf("closing fixture zip: %v", err)
	}
	return buf.Bytes()
}

func TestFromBytes(t *testing.T) {
	body := `<w:p><w:r><w:t>Hello World</w:t></w:r></w:p>`
	doc, err := FromBytes(buildDOCX(t, body))
	if err != nil {
		t.Fatalf("FromBytes: %v", err)
	}

	paras := doc.Paragraphs()
	if len(paras) != 1 {
		t.Fatalf("expected 1 paragraph, got %d", len(paras))
	}
	if got := paras[0].Text(); got != "Hello World" {
		t.Errorf("paragraph text = %q, want %q", got, "Hello World")
	}
}

func TestParagraphOrder(t *testing.T) {
	body := `<w:p><w:r><w:t>uno</w:t></w:r></w:p>
<w:p/>
<w:p><w:r><w:t>tres</w:t></w:r></w:p>`
	doc, err := FromBytes(buildDOCX(t, body))
	if err != nil {
		t.Fatalf("FromBytes: %v", err)
	}

	paras := doc.Paragraphs()
	if len(paras) != 3 {
		t.Fatalf("expected 3 paragraphs (empty one included), got %d", len(paras))
	}
	want := []string{"uno", "", "tres"}
	for i, w := range want {
		if got := paras[i].Text(); got != w {
			t.Errorf("paragraph %d text = %q, want %q", i, got, w)
		}
	}
}

func TestRunStyles(t *testing.T) {
	body := `<w:p>
  <w:r><w:rPr><w:b/><w:rFonts w:ascii="Arial"/><w:sz w:val="24"/></w:rPr><w:t>ENTREVISTADOR: </w:t></w:r>
  <w:r><w:rPr><w:b w:val="false"/></w:rPr><w:t>Hola</w:t></w:r>
  <w:r><w:t> mundo</w:t></w:r>
</w:p>`
	doc, err := FromBytes(buildDOCX(t, body))
	if err != nil {
		t.Fatalf("FromBytes: %v", err)
	}

	runs := doc.Paragraphs()[0].Runs()
	if len(runs) != 3 {
		t.Fatalf("expected 3 runs, got %d", len(runs))
	}

	if runs[0].Bold() == nil || !*runs[0].Bold() {
		t.Error("run 0 should be explicitly bold")
	}
	if got := runs[0].Font(); got != "Arial" {
		t.Errorf("run 0 font = %q, want Arial", got)
	}
	if size := runs[0].Size(); size == nil || *size != 12 {
		t.Errorf("run 0 size = %v, want 12pt", size)
	}

	if runs[1].Bold() == nil || *runs[1].Bold() {
		t.Error("run 1 should be explicitly not bold")
	}

	// No direct formatting at all: style attributes stay unknown.
	if runs[2].Bold() != nil {
		t.Error("run 2 bold should be unset")
	}
	if runs[2].Font() != "" {
		t.Error("run 2 font should be unset")
	}
	if runs[2].Size() != nil {
		t.Error("run 2 size should be unset")
	}
}

func TestSetText(t *testing.T) {
	body := `<w:p><w:r><w:t>caf&#233;#1</w:t></w:r></w:p>`
	doc, err := FromBytes(buildDOCX(t, body))
	if err != nil {
		t.Fatalf("FromBytes: %v", err)
	}

	run := doc.Paragraphs()[0].Runs()[0]
	if got := run.Text(); got != "café#1" {
		t.Fatalf("run text = %q, want café#1", got)
	}

	run.SetText("café1")
	if got := run.Text(); got != "café1" {
		t.Errorf("after SetText, run text = %q, want café1", got)
	}
	if got := doc.Paragraphs()[0].Text(); got != "café1" {
		t.Errorf("after SetText, paragraph text = %q, want café1", got)
	}
}

func TestFromBytesNotAZip(t *testing.T) {
	_, err := FromBytes([]byte("this is not a docx"))
	if err == nil {
		t.Fatal("expected error for non-ZIP input")
	}
	if !errors.Is(err, ErrInvalidDocument) {
		t.Errorf("error should wrap ErrInvalidDocument, got %v", err)
	}
}

func TestFromBytesMissingDocumentPart(t *testing.T) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, _ := zw.Create("[Content_Types].xml")
	w.Write([]byte(`<Types/>`))
	zw.Close()

	_, err := FromBytes(buf.Bytes())
	if !errors.Is(err, ErrInvalidDocument) {
		t.Errorf("expected ErrInvalidDocument for missing word/document.xml, got %v", err)
	}
}
