// ABOUTME: Shared plumbing for the vendor export readers
// ABOUTME: Preamble and footer trimming, label cleanup, and row accounting

package ingest

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode"
)

// ErrMissingColumn is returned when a required header is absent.
var ErrMissingColumn = errors.New("required column missing")

// maxReportedErrors caps the row messages kept in an IngestionResult.
const maxReportedErrors = 50

// IngestionResult accounts for every data row of an export.
type IngestionResult struct {
	Total    int      `json:"total"`
	Accepted int      `json:"accepted"`
	Skipped  int      `json:"skipped"`
	Errors   []string `json:"errors,omitempty"`
}

func (r *IngestionResult) reject(line int, format string, args ...any) {
	r.Skipped++
	if len(r.Errors) < maxReportedErrors {
		r.Errors = append(r.Errors, fmt.Sprintf("line %d: %s", line, fmt.Sprintf(format, args...)))
	}
}

// trimLines returns the body of an export with skip leading lines and
// footer trailing lines removed. Trailing blank lines do not count
// towards the footer.
func trimLines(r io.Reader, skip, footer int) ([]byte, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading export: %w", err)
	}

	lines := bytes.Split(bytes.ReplaceAll(data, []byte("\r\n"), []byte("\n")), []byte("\n"))
	for len(lines) > 0 && len(bytes.TrimSpace(lines[len(lines)-1])) == 0 {
		lines = lines[:len(lines)-1]
	}
	if skip >= len(lines) {
		return nil, nil
	}
	lines = lines[skip:]
	if footer >= len(lines) {
		return nil, nil
	}
	lines = lines[:len(lines)-footer]

	return bytes.Join(lines, []byte("\n")), nil
}

// newReader returns a lenient CSV reader and the cleaned header row.
func newReader(body []byte) (*csv.Reader, []string, error) {
	cr := csv.NewReader(bytes.NewReader(body))
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, nil, fmt.Errorf("%w: export has no header row", ErrMissingColumn)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("reading header: %w", err)
	}
	for i, h := range header {
		header[i] = cleanLabel(h)
	}
	return cr, header, nil
}

// cleanLabel strips control characters and surrounding whitespace.
func cleanLabel(s string) string {
	return strings.TrimSpace(strings.Map(func(r rune) rune {
		if unicode.IsControl(r) || r == '\uFEFF' {
			return -1
		}
		return r
	}, s))
}

// line reports the 1-based line of the record the reader returned last,
// counted from the start of the original file.
func line(cr *csv.Reader, skipped int) int {
	l, _ := cr.FieldPos(0)
	return skipped + l
}

func requireColumns(header []string, names ...string) error {
	var missing []string
	for _, n := range names {
		found := false
		for _, h := range header {
			if h == n {
				found = true
				break
			}
		}
		if !found {
			missing = append(missing, n)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrMissingColumn, strings.Join(missing, ", "))
	}
	return nil
}
