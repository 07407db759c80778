// ABOUTME: Excel workbook writer for dimensioning runs
// ABOUTME: Conversions and per-cell dimensioning sheets with tinted headers

package report

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/ubaidashraf22/RF/backend/models"
)

const (
	// SheetConversions lists changed channels.
	SheetConversions = "Conversions"
	// SheetDimensioning lists one dimensioning result per cell.
	SheetDimensioning = "Dimensioning"

	originalFill  = "FFC0CB"
	convertedFill = "90EE90"
)

// WriteXLSX writes a workbook with the conversion plan and the per-cell
// dimensioning results.
func WriteXLSX(w io.Writer, records []models.ConversionRecord, results []models.DimensioningResult) (err error) {
	f := excelize.NewFile()
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	if err := f.SetSheetName("Sheet1", SheetConversions); err != nil {
		return fmt.Errorf("naming sheet: %w", err)
	}
	if err := writeConversions(f, records); err != nil {
		return err
	}

	if _, err := f.NewSheet(SheetDimensioning); err != nil {
		return fmt.Errorf("creating sheet: %w", err)
	}
	if err := writeDimensioning(f, results); err != nil {
		return err
	}

	f.SetActiveSheet(0)
	if err := f.Write(w); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	return nil
}

func writeConversions(f *excelize.File, records []models.ConversionRecord) error {
	if err := writeHeader(f, SheetConversions, conversionHeader); err != nil {
		return err
	}

	original, err := headerStyle(f, originalFill)
	if err != nil {
		return err
	}
	converted, err := headerStyle(f, convertedFill)
	if err != nil {
		return err
	}
	lastOriginal, _ := excelize.CoordinatesToCellName(originalColumns, 1)
	firstConverted, _ := excelize.CoordinatesToCellName(originalColumns+1, 1)
	lastConverted, _ := excelize.CoordinatesToCellName(len(conversionHeader), 1)
	if err := f.SetCellStyle(SheetConversions, "A1", lastOriginal, original); err != nil {
		return fmt.Errorf("styling header: %w", err)
	}
	if err := f.SetCellStyle(SheetConversions, firstConverted, lastConverted, converted); err != nil {
		return fmt.Errorf("styling header: %w", err)
	}

	for i, r := range rowsFor(records) {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		values := []any{r.CellID, r.TRXID, r.ChannelIndex, r.MainBCCH, r.FromType, r.ToType, r.PacketPriority}
		if err := f.SetSheetRow(SheetConversions, cell, &values); err != nil {
			return fmt.Errorf("writing conversion row %d: %w", i+1, err)
		}
	}

	return f.SetColWidth(SheetConversions, "A", "G", 18)
}

func writeDimensioning(f *excelize.File, results []models.DimensioningResult) error {
	if err := writeHeader(f, SheetDimensioning, dimensioningHeader); err != nil {
		return err
	}
	style, err := headerStyle(f, convertedFill)
	if err != nil {
		return err
	}
	last, _ := excelize.CoordinatesToCellName(len(dimensioningHeader), 1)
	if err := f.SetCellStyle(SheetDimensioning, "A1", last, style); err != nil {
		return fmt.Errorf("styling header: %w", err)
	}

	for i, r := range results {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		values := []any{
			sanitize(r.CellID),
			r.OfferedErlangs,
			r.RequiredChannels,
			r.RequiredSignallingGroups,
			r.CurrentSignallingGroups,
			r.Delta,
			string(r.Action),
		}
		if err := f.SetSheetRow(SheetDimensioning, cell, &values); err != nil {
			return fmt.Errorf("writing dimensioning row %d: %w", i+1, err)
		}
	}

	return f.SetColWidth(SheetDimensioning, "A", "G", 20)
}

func writeHeader(f *excelize.File, sheet string, header []string) error {
	values := make([]any, len(header))
	for i, h := range header {
		values[i] = h
	}
	if err := f.SetSheetRow(sheet, "A1", &values); err != nil {
		return fmt.Errorf("writing %s header: %w", sheet, err)
	}
	return nil
}

func headerStyle(f *excelize.File, color string) (int, error) {
	id, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{color}, Pattern: 1},
	})
	if err != nil {
		return 0, fmt.Errorf("creating header style: %w", err)
	}
	return id, nil
}
