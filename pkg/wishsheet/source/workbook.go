package source

import (
	"context"
	"fmt"

	"github.com/ukaji3/wishsheet-go/pkg/wishsheet/models"
	"github.com/xuri/excelize/v2"
)

// Workbook reads sheets from an exported .xlsx copy of the spreadsheet.
type Workbook struct {
	path string
}

// NewWorkbook creates a source backed by the workbook at path.
func NewWorkbook(path string) *Workbook {
	return &Workbook{path: path}
}

// Response reads sheet from the workbook file.
func (w *Workbook) Response(ctx context.Context, sheet string) (*models.Response, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f, err := excelize.OpenFile(w.path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	return SheetResponse(f, sheet)
}

// SheetResponse converts a sheet into the query response shape.
// The sheet is cropped to the bounding box of its non-empty cells; column ids
// are column letters and every cell keeps its displayed text as formatted value.
// Only numeric cells carry a number as raw value.
func SheetResponse(f *excelize.File, sheet string) (*models.Response, error) {
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheet, err)
	}

	table := &models.Table{Cols: []models.Column{}, Rows: []models.Row{}}
	resp := &models.Response{Version: "0.6", Status: "ok", Table: table}

	minRow, maxRow, minCol, maxCol := findDataBounds(rows)
	if minRow < 0 {
		return resp, nil
	}

	for col := minCol; col <= maxCol; col++ {
		name, err := excelize.ColumnNumberToName(col + 1)
		if err != nil {
			return nil, err
		}
		table.Cols = append(table.Cols, models.Column{ID: name, Type: "string"})
	}

	for rowIdx := minRow; rowIdx <= maxRow; rowIdx++ {
		row := rows[rowIdx]
		cells := make([]*models.Cell, maxCol-minCol+1)
		for colIdx := minCol; colIdx <= maxCol && colIdx < len(row); colIdx++ {
			text := row[colIdx]
			if text == "" {
				continue
			}
			v, err := cellValue(f, sheet, colIdx, rowIdx, text)
			if err != nil {
				return nil, err
			}
			formatted := text
			cells[colIdx-minCol] = &models.Cell{V: v, F: &formatted}
		}
		table.Rows = append(table.Rows, models.Row{C: cells})
	}

	return resp, nil
}

// cellValue returns the typed value of a cell. Only numeric cells are
// converted, from their raw value; text cells keep their displayed text.
func cellValue(f *excelize.File, sheet string, colIdx, rowIdx int, text string) (interface{}, error) {
	cell, err := excelize.CoordinatesToCellName(colIdx+1, rowIdx+1)
	if err != nil {
		return nil, err
	}
	cellType, err := f.GetCellType(sheet, cell)
	if err != nil {
		return nil, fmt.Errorf("failed to read cell %s: %w", cell, err)
	}
	// numbers are written without a type attribute
	if cellType != excelize.CellTypeNumber && cellType != excelize.CellTypeUnset {
		return text, nil
	}
	raw, err := f.GetCellValue(sheet, cell, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("failed to read cell %s: %w", cell, err)
	}
	return models.NumberValue(raw), nil
}

// findDataBounds finds the bounding box of non-empty cells.
// All bounds are -1 when the sheet is empty.
func findDataBounds(rows [][]string) (minRow, maxRow, minCol, maxCol int) {
	minRow, maxRow = -1, -1
	minCol, maxCol = -1, -1

	for rowIdx, row := range rows {
		for colIdx, cell := range row {
			if cell != "" {
				if minRow < 0 || rowIdx < minRow {
					minRow = rowIdx
				}
				if maxRow < 0 || rowIdx > maxRow {
					maxRow = rowIdx
				}
				if minCol < 0 || colIdx < minCol {
					minCol = colIdx
				}
				if maxCol < 0 || colIdx > maxCol {
					maxCol = colIdx
				}
			}
		}
	}

	return
}
