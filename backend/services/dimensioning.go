// ABOUTME: Per-cell SDCCH dimensioning from load estimates and inventory
// ABOUTME: Computes required groups, the signed delta, and the cell action

package services

import (
	"errors"
	"log/slog"

	"github.com/ubaidashraf22/RF/backend/models"
)

// DimensioningEngine turns load estimates into DimensioningResults.
type DimensioningEngine struct {
	calc   *CapacityCalculator
	target float64
}

// NewDimensioningEngine creates an engine dimensioning for the target
// blocking probability.
func NewDimensioningEngine(calc *CapacityCalculator, target float64) (*DimensioningEngine, error) {
	if err := ValidateBlocking(target); err != nil {
		return nil, err
	}
	if calc == nil {
		calc = NewCapacityCalculator(0)
	}
	return &DimensioningEngine{calc: calc, target: target}, nil
}

// Target returns the blocking probability the engine dimensions for.
func (e *DimensioningEngine) Target() float64 {
	return e.target
}

// DimensionCell dimensions one cell against its current inventory.
func (e *DimensioningEngine) DimensionCell(load models.CellLoadEstimate, inv models.CellInventory) (models.DimensioningResult, error) {
	required, err := e.calc.RequiredChannels(load.RepresentativeErlangs, e.target)
	if err != nil {
		return models.DimensioningResult{}, &models.CellError{CellID: load.CellID, Stage: models.StageCapacity, Err: err}
	}

	groups := models.GroupsFor(required)
	delta := groups - inv.CurrentSignallingGroups

	return models.DimensioningResult{
		CellID:                   load.CellID,
		OfferedErlangs:           load.RepresentativeErlangs,
		RequiredChannels:         required,
		RequiredSignallingGroups: groups,
		CurrentSignallingGroups:  inv.CurrentSignallingGroups,
		Delta:                    delta,
		Action:                   models.ActionForDelta(delta),
	}, nil
}

// Dimension produces a result for every cell in loads. Cells without
// inventory, or whose load cannot be served within the channel bound, are
// left out of the results and reported in the returned error, which joins
// one *models.CellError per failed cell.
func (e *DimensioningEngine) Dimension(loads []models.CellLoadEstimate, inventory []models.CellInventory) ([]models.DimensioningResult, error) {
	byCell := make(map[string]models.CellInventory, len(inventory))
	for _, inv := range inventory {
		byCell[inv.CellID] = inv
	}

	results := make([]models.DimensioningResult, 0, len(loads))
	var errs []error
	for _, load := range loads {
		inv, ok := byCell[load.CellID]
		if !ok {
			errs = append(errs, &models.CellError{CellID: load.CellID, Stage: models.StageInventory, Err: models.ErrMissingInventory})
			continue
		}

		result, err := e.DimensionCell(load, inv)
		if err != nil {
			errs = append(errs, err)
			continue
		}

		slog.Debug("Cell dimensioned",
			"cell", result.CellID,
			"erlangs", result.OfferedErlangs,
			"required_channels", result.RequiredChannels,
			"delta", result.Delta,
			"action", result.Action,
		)
		results = append(results, result)
	}

	return results, errors.Join(errs...)
}

// CellErrors flattens an error returned by Dimension into its cell errors.
func CellErrors(err error) []*models.CellError {
	if err == nil {
		return nil
	}

	var out []*models.CellError
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		for _, e := range joined.Unwrap() {
			out = append(out, CellErrors(e)...)
		}
		return out
	}

	var ce *models.CellError
	if errors.As(err, &ce) {
		out = append(out, ce)
	}
	return out
}
