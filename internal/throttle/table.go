package throttle

import (
	"errors"
	"fmt"

	"github.com/qdm12/reprint"
	"github.com/thermalkit/isp2go/internal/ect"
	"github.com/thermalkit/isp2go/internal/ui"
)

var (
	// ErrCalibrationUnavailable indicates that no usable calibration data
	// exists for the requested function, no table is built in that case.
	ErrCalibrationUnavailable = errors.New("calibration unavailable")
	// ErrInvalidTable indicates a translation attempt against an empty or absent table.
	ErrInvalidTable = errors.New("invalid throttle table")
	// ErrNotFound indicates that the requested level or fps has no table entry.
	ErrNotFound = errors.New("no matching throttle table entry")
)

const (
	// FpsEntryInvalid marks an entry that is skipped during table walks.
	FpsEntryInvalid = ^uint(0)
	// FpsTableEnd is the fps value of the terminal sentinel entry.
	FpsTableEnd = ^uint(0) - 1
)

// Entry is a single row of the throttle table.
type Entry struct {
	Fps     uint `json:"fps"`
	Ordinal int  `json:"ordinal"`
}

// Table maps cooling levels to frame rate ceilings. It is built exactly once
// from calibration data and treated as read-only afterwards, queries on it
// need no locking. A nil *Table is a valid "absent" table, all queries on it
// fail with ErrInvalidTable.
type Table struct {
	entries []Entry
}

// NewTable builds the throttle table from the calibration ranges of the named
// function. Ranges are walked in declaration order and entries repeating the
// frame rate of the immediately preceding entry are dropped. A terminal
// sentinel entry is appended after the last range.
func NewTable(provider ect.Provider, functionName string) (*Table, error) {
	function, err := provider.Function(functionName)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrCalibrationUnavailable, err)
	}

	if len(function.Ranges) <= 0 {
		return nil, fmt.Errorf("%w: function %s has no ranges", ErrCalibrationUnavailable, functionName)
	}

	// one extra slot for the terminal sentinel
	entries := make([]Entry, 0, len(function.Ranges)+1)

	lastFps := int64(-1)
	count := 0
	for _, r := range function.Ranges {
		if int64(r.MaxFps) == lastFps {
			continue
		}

		entries = append(entries, Entry{
			Fps:     r.MaxFps,
			Ordinal: count,
		})
		lastFps = int64(r.MaxFps)

		ui.Debug("Throttle table index %d, fps %d", count, r.MaxFps)
		count++
	}

	entries = append(entries, Entry{
		Fps:     FpsTableEnd,
		Ordinal: count,
	})

	return &Table{
		entries: entries,
	}, nil
}

// Entries returns a copy of the valid table rows, without the terminal sentinel.
func (t *Table) Entries() []Entry {
	if t == nil {
		return nil
	}

	var valid []Entry
	for _, entry := range t.entries {
		if entry.Fps == FpsTableEnd {
			break
		}
		if entry.Fps == FpsEntryInvalid {
			continue
		}
		valid = append(valid, entry)
	}

	var result []Entry
	if err := reprint.FromTo(&valid, &result); err != nil {
		// Entry contains no reference types, copying cannot fail
		ui.Error("Unable to copy throttle table entries: %v", err)
		return nil
	}

	return result
}
