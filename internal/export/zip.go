package export

import (
	"archive/zip"
	"bytes"
	"fmt"

	"github.com/caseflow/casetracker/internal/pipeline"
)

// PageTextsZIP bundles one text artifact per document page into a compressed
// archive. Entries hold the full extracted page text (not the preview) and
// are named deterministically from source file and page number.
func PageTextsZIP(pages []pipeline.PageText) ([]byte, error) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, p := range pages {
		w, err := zw.Create(fmt.Sprintf("%s_p%d.txt", p.Source, p.Page))
		if err != nil {
			return nil, fmt.Errorf("create archive entry: %w", err)
		}
		if _, err := w.Write([]byte(p.Text)); err != nil {
			return nil, fmt.Errorf("write archive entry: %w", err)
		}
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("close archive: %w", err)
	}
	return buf.Bytes(), nil
}
