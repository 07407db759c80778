// ABOUTME: Derives current SDCCH8 inventory from configured channel counts
// ABOUTME: Uses the latest included date so stale cells surface as missing

package services

import (
	"slices"
	"strings"

	"github.com/ubaidashraf22/RF/backend/models"
)

// InventoryFromConfig returns the current signalling groups per cell as of
// the latest date not in excluded. Cells with no record on that date get no
// inventory. When a cell reports more than once that day the latest record wins.
func InventoryFromConfig(configs []models.SignallingConfig, excluded models.DateSet) []models.CellInventory {
	var last models.Date
	for _, c := range configs {
		d := models.DateOf(c.Timestamp)
		if excluded.Contains(d) {
			continue
		}
		if d > last {
			last = d
		}
	}
	if last == "" {
		return nil
	}

	latest := make(map[string]models.SignallingConfig)
	for _, c := range configs {
		if models.DateOf(c.Timestamp) != last {
			continue
		}
		if cur, ok := latest[c.CellID]; !ok || !c.Timestamp.Before(cur.Timestamp) {
			latest[c.CellID] = c
		}
	}

	inventory := make([]models.CellInventory, 0, len(latest))
	for cell, c := range latest {
		inventory = append(inventory, models.NewCellInventory(cell, c.ConfiguredChannels))
	}
	slices.SortFunc(inventory, func(x, y models.CellInventory) int {
		return strings.Compare(x.CellID, y.CellID)
	})
	return inventory
}
