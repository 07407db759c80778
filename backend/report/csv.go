// ABOUTME: CSV writer for channel conversion reports
// ABOUTME: Encodes conversion records with csvutil under a fixed header

package report

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/jszwec/csvutil"

	"github.com/ubaidashraf22/RF/backend/models"
)

// WriteCSV writes the conversion records with a header row.
func WriteCSV(w io.Writer, records []models.ConversionRecord) error {
	cw := csv.NewWriter(w)
	enc := csvutil.NewEncoder(cw)

	if len(records) == 0 {
		if err := enc.EncodeHeader(conversionRow{}); err != nil {
			return fmt.Errorf("writing csv header: %w", err)
		}
	}
	for _, row := range rowsFor(records) {
		if err := enc.Encode(row); err != nil {
			return fmt.Errorf("writing csv row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}
