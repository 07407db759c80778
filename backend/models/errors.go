// ABOUTME: Error values for the dimensioning pipeline
// ABOUTME: Sentinels plus a per-cell error carrying the failing stage

package models

import (
	"errors"
	"fmt"
)

var (
	ErrCapacityOverflow = errors.New("erlang-b search exceeded channel bound")
	ErrMissingInventory = errors.New("no signalling inventory for cell")
	ErrInvalidBlocking  = errors.New("blocking probability must be in (0,1)")
	ErrInvalidTopN      = errors.New("top-N busy days must be at least 1")
)

// Stage names used in CellError.
const (
	StageCapacity   = "capacity"
	StageInventory  = "inventory"
	StageConversion = "conversion"
)

// CellError reports a failure for one cell at one pipeline stage.
type CellError struct {
	CellID string
	Stage  string
	Err    error
}

func (e *CellError) Error() string {
	return fmt.Sprintf("cell %s: %s: %v", e.CellID, e.Stage, e.Err)
}

func (e *CellError) Unwrap() error {
	return e.Err
}

// CellErrorInfo is the JSON form of a CellError.
type CellErrorInfo struct {
	CellID string `json:"cell_id"`
	Stage  string `json:"stage"`
	Error  string `json:"error"`
}

// Info converts the error for API responses.
func (e *CellError) Info() CellErrorInfo {
	return CellErrorInfo{CellID: e.CellID, Stage: e.Stage, Error: e.Err.Error()}
}
