// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package sheet

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

type cellRange struct {
	anchor     string
	col1, row1 int
	col2, row2 int
}

type rangeSet []cellRange

func mergedRanges(f *excelize.File, sheet string) (rangeSet, error) {
	cells, err := f.GetMergeCells(sheet)
	if err != nil {
		return nil, fmt.Errorf("reading merged cells of %s: %w", sheet, err)
	}
	set := make(rangeSet, 0, len(cells))
	for _, mc := range cells {
		start, end := mc.GetStartAxis(), mc.GetEndAxis()
		c1, r1, err := excelize.CellNameToCoordinates(start)
		if err != nil {
			return nil, err
		}
		c2, r2, err := excelize.CellNameToCoordinates(end)
		if err != nil {
			return nil, err
		}
		set = append(set, cellRange{anchor: start, col1: c1, row1: r1, col2: c2, row2: r2})
	}
	return set, nil
}

// covering returns the anchor of the merged range containing cell.
func (s rangeSet) covering(cell string) (string, bool) {
	col, row, err := excelize.CellNameToCoordinates(cell)
	if err != nil {
		return "", false
	}
	for _, r := range s {
		if col >= r.col1 && col <= r.col2 && row >= r.row1 && row <= r.row2 {
			return r.anchor, true
		}
	}
	return "", false
}
