// ABOUTME: Conversion report rows shared by the xlsx and csv writers
// ABOUTME: Flattens conversion records into the operator-facing column layout

package report

import (
	"strings"
	"unicode"

	"github.com/ubaidashraf22/RF/backend/models"
)

// DefaultFileName is the workbook name operators expect.
const DefaultFileName = "Wap_NPM_Level1_SDCCH_dimensioning.xlsx"

type conversionRow struct {
	CellID         string `csv:"Cell CI"`
	TRXID          string `csv:"TRX No."`
	ChannelIndex   int    `csv:"Channel No."`
	MainBCCH       string `csv:"Is Main BCCH TRX"`
	FromType       string `csv:"Channel Type"`
	ToType         string `csv:"Converted Channel Type"`
	PacketPriority string `csv:"Post PDCH Channel Priority Type"`
}

var conversionHeader = []string{
	"Cell CI",
	"TRX No.",
	"Channel No.",
	"Is Main BCCH TRX",
	"Channel Type",
	"Converted Channel Type",
	"Post PDCH Channel Priority Type",
}

// originalColumns counts the leading header cells describing the channel
// before conversion; the rest describe the planned state.
const originalColumns = 5

var dimensioningHeader = []string{
	"Cell CI",
	"Top N Days Avg SDCCH Traffic (Erl)",
	"Required SDCCH Channels",
	"Required SDCCH8",
	"Current SDCCH8",
	"Delta",
	"Action",
}

func rowsFor(records []models.ConversionRecord) []conversionRow {
	rows := make([]conversionRow, len(records))
	for i, r := range records {
		mainBCCH := "NO"
		if r.MainBCCH {
			mainBCCH = "YES"
		}
		rows[i] = conversionRow{
			CellID:         sanitize(r.CellID),
			TRXID:          sanitize(r.TRXID),
			ChannelIndex:   r.ChannelIndex,
			MainBCCH:       mainBCCH,
			FromType:       sanitize(string(r.FromType)),
			ToType:         sanitize(string(r.ToType)),
			PacketPriority: r.PacketPriority,
		}
	}
	return rows
}

// sanitize drops control characters that spreadsheet XML cannot hold.
func sanitize(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, s)
}
