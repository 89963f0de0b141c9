package parser

import (
	"strconv"

	"github.com/rs/zerolog/log"
	"github.com/ukaji3/wishsheet-go/pkg/wishsheet/models"
)

// Strategy collapses a grid into a mapping.
type Strategy interface {
	// Name identifies the strategy in logs.
	Name() string
	// Normalize builds a fresh mapping from grid without modifying it.
	Normalize(grid models.Grid) *models.Mapping
}

// SingleRow maps each non-nil cell of a one-row grid under its 1-based position.
type SingleRow struct{}

// HeaderRows treats the first row as column names and folds later rows under them.
type HeaderRows struct{}

// SelectStrategy picks the strategy for the grid shape.
func SelectStrategy(grid models.Grid) Strategy {
	if len(grid) == 1 {
		return SingleRow{}
	}
	return HeaderRows{}
}

// Normalize collapses grid into a mapping using the strategy its shape calls for.
func Normalize(grid models.Grid) *models.Mapping {
	if len(grid) == 0 {
		log.Warn().Msg("no rows found in sheet")
		return models.NewMapping()
	}
	s := SelectStrategy(grid)
	log.Debug().Str("strategy", s.Name()).Int("rows", len(grid)).Msg("normalizing sheet")
	return s.Normalize(grid)
}

func (SingleRow) Name() string { return "single-row" }

func (SingleRow) Normalize(grid models.Grid) *models.Mapping {
	m := models.NewMapping()
	if len(grid) == 0 {
		return m
	}
	for i, cell := range grid[0] {
		if cell != nil {
			m.Set(strconv.Itoa(i+1), cell)
		}
	}
	return m
}

func (HeaderRows) Name() string { return "header-rows" }

func (HeaderRows) Normalize(grid models.Grid) *models.Mapping {
	m := models.NewMapping()
	if len(grid) == 0 {
		return m
	}
	header := grid[0]
	for _, row := range grid[1:] {
		for i, cell := range row {
			if cell == nil || i >= len(header) || header[i] == nil {
				continue
			}
			m.Add(models.Text(header[i]), cell)
		}
	}
	return m
}
