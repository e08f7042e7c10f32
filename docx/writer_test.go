package docx

import (
	"archive/zip"
	"bytes"
	"io"
	"testing"
)

func TestSaveRoundTrip(t *testing.T) {
	body := `<w:p><w:r><w:rPr><w:b/></w:rPr><w:t>ENTREVISTADOR: Hola</w:t></w:r></w:p>
<w:p><w:r><w:t>ENTREVISTADO: bien@casa</w:t></w:r></w:p>`
	doc, err := FromBytes(buildDOCX(t, body))
	if err != nil {
		t.Fatalf("FromBytes: %v", err)
	}

	doc.Paragraphs()[1].Runs()[0].SetText("ENTREVISTADO: biencasa")

	out, err := doc.Bytes()
	if err != nil {
		t.Fatalf("Bytes: %v", err)
	}

	reread, err := FromBytes(out)
	if err != nil {
		t.Fatalf("re-opening saved document: %v", err)
	}

	paras := reread.Paragraphs()
	if len(paras) != 2 {
		t.Fatalf("expected 2 paragraphs after round trip, got %d", len(paras))
	}
	if got := paras[0].Text(); got != "ENTREVISTADOR: Hola" {
		t.Errorf("paragraph 0 text = %q", got)
	}
	if got := paras[1].Text(); got != "ENTREVISTADO: biencasa" {
		t.Errorf("paragraph 1 text = %q, want mutated text", got)
	}
	if b := paras[0].Runs()[0].Bold(); b == nil || !*b {
		t.Error("bold formatting lost in round trip")
	}
}

func TestSavePreservesOtherParts(t *testing.T) {
	original := buildDOCX(t, `<w:p><w:r><w:t>hola</w:t></w:r></w:p>`)
	doc, err := FromBytes(original)
	if err != nil {
		t.Fatalf("FromBytes: %v", err)
	}

	out, err := doc.Bytes()
	if err != nil {
		t.Fatalf("Bytes: %v", err)
	}

	want := zipEntries(t, original)
	got := zipEntries(t, out)

	if len(got) != len(want) {
		t.Fatalf("part count changed: got %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i].name != want[i].name {
			t.Errorf("part %d name = %q, want %q (order must be preserved)", i, got[i].name, want[i].name)
		}
		if want[i].name == documentPart {
			continue // re-serialized, byte equality not required
		}
		if !bytes.Equal(got[i].data, want[i].data) {
			t.Errorf("part %s changed on save", want[i].name)
		}
	}
}

type namedEntry struct {
	name string
	data []byte
}

func zipEntries(t *testing.T, data []byte) []namedEntry {
	t.Helper()
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatalf("reading zip: %v", err)
	}
	var out []namedEntry
	for _, f := range zr.File {
		rc, err := f.Open()
		if err != nil {
			t.Fatalf("opening %s: %v", f.Name, err)
		}
		d, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			t.Fatalf("reading %s: %v", f.Name, err)
		}
		out = append(out, namedEntry{name: f.Name, data: d})
	}
	return out
}
