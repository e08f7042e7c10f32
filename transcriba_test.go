package transcriba

import (
	"archive/zip"
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/transcriba/transcriba/docx"
	"github.com/transcriba/transcriba/validate"
)

func fixtureDOCX(t *testing.T, body string) []byte {
	t.Helper()

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	write := func(name, data string) {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatalf("creating %s: %v", name, err)
		}
		w.Write([]byte(data))
	}
	write("[Content_Types].xml", `<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types"/>`)
	write("word/document.xml", `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
  <w:body>`+body+`</w:body>
</w:document>`)
	zw.Close()
	return buf.Bytes()
}

func TestRunnerEndToEnd(t *testing.T) {
	data := fixtureDOCX(t, `<w:p><w:r><w:t>ENTREVISTADO: hola@mundo</w:t></w:r></w:p>`)

	outcome, err := FromBytes("entrevista.docx", data).Run()
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if outcome.Result.Removed != 1 {
		t.Errorf("removed = %d, want 1", outcome.Result.Removed)
	}
	if len(outcome.Result.Findings) != 0 {
		t.Errorf("findings = %v", outcome.Result.Findings)
	}

	cleaned, err := outcome.CleanedBytes()
	if err != nil {
		t.Fatalf("CleanedBytes: %v", err)
	}
	doc, err := docx.FromBytes(cleaned)
	if err != nil {
		t.Fatalf("re-opening cleaned document: %v", err)
	}
	if got := doc.Paragraphs()[0].Text(); got != "ENTREVISTADO: holamundo" {
		t.Errorf("cleaned text = %q", got)
	}

	rep := outcome.Report(time.Date(2026, 8, 24, 9, 0, 0, 0, time.UTC))
	if !strings.Contains(rep, "File: entrevista.docx") {
		t.Errorf("report missing filename:\n%s", rep)
	}
	if !strings.Contains(rep, "Total special characters removed: 1") {
		t.Errorf("report missing removal total:\n%s", rep)
	}
}

func TestRunnerWithRules(t *testing.T) {
	data := fixtureDOCX(t, `<w:p><w:r><w:rPr><w:sz w:val="22"/></w:rPr><w:t>ENTREVISTADO: bien</w:t></w:r></w:p>`)

	rules := validate.DefaultRules()
	rules.RequiredSizePt = 11

	outcome, err := FromBytes("entrevista.docx", data).WithRules(rules).Run()
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(outcome.Result.Findings) != 0 {
		t.Errorf("11pt should pass under the overridden rules, got %v", outcome.Result.Findings)
	}
}

func TestRunnerInvalidDocument(t *testing.T) {
	if _, err := FromBytes("malo.docx", []byte("nope")).Run(); err == nil {
		t.Fatal("expected error for invalid document")
	}
}

func TestOpenMissingFile(t *testing.T) {
	if _, err := Open("/definitely/not/here.docx").Run(); err == nil {
		t.Fatal("expected error for missing file")
	}
}
