// ABOUTME: Shared fixtures for services tests
// ABOUTME: Builders for traffic samples and physical channels

package services

import (
	"time"

	"github.com/ubaidashraf22/RF/backend/models"
)

func at(day, hour int) time.Time {
	return time.Date(2024, time.January, day, hour, 0, 0, 0, time.UTC)
}

func sample(cell string, day, hour int, erl float64) models.TrafficSample {
	return models.TrafficSample{CellID: cell, Timestamp: at(day, hour), Erlangs: erl}
}

func config(cell string, day, hour, configured int) models.SignallingConfig {
	return models.SignallingConfig{CellID: cell, Timestamp: at(day, hour), ConfiguredChannels: configured}
}

func channel(cell, trx string, index int, typ models.ChannelType, mainBCCH bool) models.PhysicalChannel {
	return models.NewPhysicalChannel(cell, trx, index, typ, mainBCCH)
}

// trx builds one TRX worth of channels with the given types by index.
func trx(cell, id string, mainBCCH bool, types ...models.ChannelType) []models.PhysicalChannel {
	out := make([]models.PhysicalChannel, len(types))
	for i, typ := range types {
		out[i] = channel(cell, id, i, typ, mainBCCH)
	}
	return out
}

const bcch models.ChannelType = "BCCH"

var (
	sd = models.ChannelSDCCH8
	fr = models.ChannelTCHFR
	hr = models.ChannelTCHHR
	pd = models.ChannelPDCCH
)
