package source

import (
	"context"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/ukaji3/wishsheet-go/pkg/wishsheet/parser"
	"github.com/xuri/excelize/v2"
)

func TestWorkbookResponse(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Sheet1"
	f.SetCellValue(sheetName, "B2", "title")
	f.SetCellValue(sheetName, "C2", "image")
	f.SetCellValue(sheetName, "B3", "First wish")
	f.SetCellValue(sheetName, "C3", 12)
	f.SetCellValue(sheetName, "B4", "Second wish")

	tmpFile := filepath.Join(t.TempDir(), "wishes.xlsx")
	if err := f.SaveAs(tmpFile); err != nil {
		t.Fatalf("Failed to save test file: %v", err)
	}

	resp, err := NewWorkbook(tmpFile).Response(context.Background(), sheetName)
	if err != nil {
		t.Fatalf("Response failed: %v", err)
	}

	if len(resp.Table.Cols) != 2 {
		t.Fatalf("Expected 2 columns, got %d", len(resp.Table.Cols))
	}
	if resp.Table.Cols[0].ID != "B" || resp.Table.Cols[1].ID != "C" {
		t.Errorf("Expected columns B and C, got %+v", resp.Table.Cols)
	}
	if len(resp.Table.Rows) != 3 {
		t.Fatalf("Expected 3 rows, got %d", len(resp.Table.Rows))
	}

	if v := resp.Table.Rows[0].C[0].V; v != "title" {
		t.Errorf("Expected 'title', got %v", v)
	}
	if v := resp.Table.Rows[1].C[1].V; v != int64(12) {
		t.Errorf("Expected int64(12), got %v (type: %T)", v, v)
	}
	if c := resp.Table.Rows[2].C[1]; c != nil {
		t.Errorf("Expected absent cell, got %+v", c)
	}
}

func TestWorkbookTextCellsStayText(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Sheet1"
	f.SetCellValue(sheetName, "A1", "Infinity")
	f.SetCellValue(sheetName, "B1", "007")
	f.SetCellValue(sheetName, "C1", "NaN")
	f.SetCellValue(sheetName, "D1", 42)
	f.SetCellValue(sheetName, "E1", 2.5)

	resp, err := SheetResponse(f, sheetName)
	if err != nil {
		t.Fatalf("SheetResponse failed: %v", err)
	}

	expected := []interface{}{"Infinity", "007", "NaN", int64(42), 2.5}
	for i, want := range expected {
		if v := resp.Table.Rows[0].C[i].V; v != want {
			t.Errorf("Cell %d: expected %v (%T), got %v (%T)", i, want, want, v, v)
		}
	}

	grid, _ := parser.MaterializeRows(resp)
	data, err := json.Marshal(parser.Normalize(grid))
	if err != nil {
		t.Fatalf("Failed to serialize sheet: %v", err)
	}
	if got := string(data); got != `{"1":"Infinity","2":"007","3":"NaN","4":42,"5":2.5}` {
		t.Errorf("Unexpected JSON: %s", got)
	}
}

func TestWorkbookMissingSheet(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()

	tmpFile := filepath.Join(t.TempDir(), "empty.xlsx")
	if err := f.SaveAs(tmpFile); err != nil {
		t.Fatalf("Failed to save test file: %v", err)
	}

	if _, err := NewWorkbook(tmpFile).Response(context.Background(), "Nope"); err == nil {
		t.Error("Expected an error for a missing sheet")
	}

	resp, err := NewWorkbook(tmpFile).Response(context.Background(), "Sheet1")
	if err != nil {
		t.Fatalf("Response failed: %v", err)
	}
	if len(resp.Table.Rows) != 0 || len(resp.Table.Cols) != 0 {
		t.Errorf("Expected an empty table, got %+v", resp.Table)
	}
}

func TestFindDataBounds(t *testing.T) {
	tests := []struct {
		rows                           [][]string
		minRow, maxRow, minCol, maxCol int
	}{
		{nil, -1, -1, -1, -1},
		{[][]string{{"", ""}, {""}}, -1, -1, -1, -1},
		{[][]string{{}, {"", "x"}, {"", "", "y"}}, 1, 2, 1, 2},
	}

	for _, tt := range tests {
		r1, r2, c1, c2 := findDataBounds(tt.rows)
		if r1 != tt.minRow || r2 != tt.maxRow || c1 != tt.minCol || c2 != tt.maxCol {
			t.Errorf("findDataBounds(%v) = %d,%d,%d,%d, expected %d,%d,%d,%d",
				tt.rows, r1, r2, c1, c2, tt.minRow, tt.maxRow, tt.minCol, tt.maxCol)
		}
	}
}
