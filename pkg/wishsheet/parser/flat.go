package parser

import (
	"strings"
	"unicode/utf8"

	"github.com/rs/zerolog/log"
	"github.com/ukaji3/wishsheet-go/pkg/wishsheet/models"
)

// DefaultMinLabelLength is the label length from which a column label counts as content.
const DefaultMinLabelLength = 5

// LabelPredicate reports whether a trimmed column label carries content
// rather than a short header code.
type LabelPredicate func(label string) bool

// MinLength returns a predicate accepting labels of at least n runes or containing a space.
func MinLength(n int) LabelPredicate {
	return func(label string) bool {
		if label == "" {
			return false
		}
		return utf8.RuneCountInString(label) >= n || strings.Contains(label, " ")
	}
}

// SentenceLike is the default content predicate.
var SentenceLike = MinLength(DefaultMinLabelLength)

// ExtractFlatTexts lists the content of a sheet whose texts live in column labels
// as well as in cells: qualifying labels in column order, then every non-empty
// cell text in row-major order. No de-duplication is performed.
func ExtractFlatTexts(resp *models.Response, isContent LabelPredicate) []string {
	texts := []string{}
	if resp == nil || resp.Table == nil {
		log.Warn().Msg("no table in query response for flat texts")
		return texts
	}
	if isContent == nil {
		isContent = SentenceLike
	}

	for _, col := range resp.Table.Cols {
		label := strings.TrimSpace(col.Label)
		if isContent(label) {
			texts = append(texts, label)
		}
	}

	for _, row := range resp.Table.Rows {
		for _, cell := range row.C {
			v := cell.Value()
			if v == nil {
				continue
			}
			if text := strings.TrimSpace(models.Text(v)); text != "" {
				texts = append(texts, text)
			}
		}
	}

	return texts
}

// FlatMapping keys flat texts by their 1-based position.
func FlatMapping(texts []string) *models.Mapping {
	row := make([]interface{}, len(texts))
	for i, t := range texts {
		row[i] = t
	}
	return SingleRow{}.Normalize(models.Grid{row})
}
