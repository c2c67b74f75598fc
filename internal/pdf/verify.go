package pdf

import (
	"fmt"

	"github.com/ledongthuc/pdf"
)

// Verify checks that the file at path is a readable PDF with at least one
// page. The gateway occasionally returns non-HTML garbage (truncated
// bodies, error blobs) that passes the doctype check; this catches those
// after download.
func Verify(path string) error {
	f, r, err := pdf.Open(path)
	if err != nil {
		return fmt.Errorf("not a readable PDF: %w", err)
	}
	defer f.Close()

	if r.NumPage() < 1 {
		return fmt.Errorf("PDF has no pages: %s", path)
	}
	return nil
}
