// ABOUTME: Reader for TRXCHAN channel inventory exports
// ABOUTME: Produces physical channels in file order with BCCH protections set

package ingest

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/jszwec/csvutil"

	"github.com/ubaidashraf22/RF/backend/models"
)

// ChannelOptions describes the layout of a TRXCHAN export.
type ChannelOptions struct {
	SkipRows int
}

// DefaultChannelOptions skips the single title line of the export.
func DefaultChannelOptions() ChannelOptions {
	return ChannelOptions{SkipRows: 1}
}

type channelRow struct {
	CellID   string `csv:"Cell CI"`
	TRXID    string `csv:"TRX No."`
	Channel  string `csv:"Channel No."`
	Type     string `csv:"Channel Type"`
	MainBCCH string `csv:"Is Main BCCH TRX"`
}

var channelColumns = []string{"Cell CI", "TRX No.", "Channel No.", "Channel Type", "Is Main BCCH TRX"}

// ReadChannels parses a TRXCHAN export. The returned channels keep the
// file's order, which decides conversion precedence later on.
func ReadChannels(r io.Reader, opts ChannelOptions) ([]models.PhysicalChannel, IngestionResult, error) {
	var res IngestionResult

	body, err := trimLines(r, opts.SkipRows, 0)
	if err != nil {
		return nil, res, err
	}
	cr, header, err := newReader(body)
	if err != nil {
		return nil, res, err
	}
	if err := requireColumns(header, channelColumns...); err != nil {
		return nil, res, err
	}

	dec, err := csvutil.NewDecoder(cr, header...)
	if err != nil {
		return nil, res, fmt.Errorf("creating channel decoder: %w", err)
	}

	var channels []models.PhysicalChannel
	for {
		var row channelRow
		err := dec.Decode(&row)
		if err == io.EOF {
			break
		}
		res.Total++
		ln := line(cr, opts.SkipRows)
		if errors.Is(err, csvutil.ErrFieldCount) {
			res.reject(ln, "expected %d fields", len(header))
			continue
		}
		if err != nil {
			return nil, res, fmt.Errorf("decoding channel line %d: %w", ln, err)
		}

		cell := cleanLabel(row.CellID)
		trx := cleanLabel(row.TRXID)
		if cell == "" || trx == "" {
			res.reject(ln, "missing cell or TRX id")
			continue
		}
		index, err := parseIndex(row.Channel)
		if err != nil {
			res.reject(ln, "channel number %q: %v", row.Channel, err)
			continue
		}

		mainBCCH := strings.EqualFold(cleanLabel(row.MainBCCH), "YES")
		channels = append(channels, models.NewPhysicalChannel(
			cell, trx, index, models.ParseChannelType(cleanLabel(row.Type)), mainBCCH))
		res.Accepted++
	}

	slog.Debug("Channel export read", "rows", res.Total, "channels", len(channels), "skipped", res.Skipped)
	return channels, res, nil
}

// parseIndex accepts "6" as well as spreadsheet-style "6.0".
func parseIndex(s string) (int, error) {
	s = cleanLabel(s)
	if n, err := strconv.Atoi(s); err == nil {
		return n, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if f != float64(int(f)) {
		return 0, fmt.Errorf("not an integer")
	}
	return int(f), nil
}
