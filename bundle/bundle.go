// Package bundle packages a cleaned transcript and its error report as a
// ZIP archive with the conventional output names.
package bundle

import (
	"archive/zip"
	"fmt"
	"io"
	"path/filepath"
	"strings"
)

// Entry is one named file inside the result archive.
type Entry struct {
	Name string
	Data []byte
}

// Names derives the output entry names from the uploaded filename: the
// document extension is replaced by the _limpio / _errores suffixes.
func Names(filename string) (cleaned, report string) {
	base := strings.TrimSuffix(filename, filepath.Ext(filename))
	return base + "_limpio.docx", base + "_errores.txt"
}

// ForResult builds the entry pair for one processed file.
func ForResult(filename string, cleanedDoc []byte, reportText string) []Entry {
	cleanedName, reportName := Names(filename)
	return []Entry{
		{Name: cleanedName, Data: cleanedDoc},
		{Name: reportName, Data: []byte(reportText)},
	}
}

// Write writes the entries to w as a ZIP archive, in order.
func Write(w io.Writer, entries []Entry) error {
	zw := zip.NewWriter(w)
	for _, e := range entries {
		fw, err := zw.Create(e.Name)
		if err != nil {
			return fmt.Errorf("creating entry %s: %w", e.Name, err)
		}
		if _, err := fw.Write(e.Data); err != nil {
			return fmt.Errorf("writing entry %s: %w", e.Name, err)
		}
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("closing archive: %w", err)
	}
	return nil
}
