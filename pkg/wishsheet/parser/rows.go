package parser

import (
	"github.com/rs/zerolog/log"
	"github.com/ukaji3/wishsheet-go/pkg/wishsheet/models"
)

// MaterializeRows converts a response table into a grid of raw values and
// the ordered column identifiers.
// Absent cells, or cells without a raw value, become nil.
func MaterializeRows(resp *models.Response) (models.Grid, []string) {
	if resp == nil || resp.Table == nil || resp.Table.Rows == nil {
		log.Warn().Msg("invalid query response: no table rows")
		return models.Grid{}, []string{}
	}

	headers := make([]string, len(resp.Table.Cols))
	for i, col := range resp.Table.Cols {
		headers[i] = columnKey(col)
	}

	grid := make(models.Grid, len(resp.Table.Rows))
	for i, row := range resp.Table.Rows {
		values := make([]interface{}, len(row.C))
		for j, cell := range row.C {
			if cell != nil {
				values[j] = cell.V
			}
		}
		grid[i] = values
	}

	return grid, headers
}

// columnKey prefers the column id, then the label.
func columnKey(col models.Column) string {
	if col.ID != "" {
		return col.ID
	}
	return col.Label
}
