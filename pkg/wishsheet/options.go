// Package wishsheet loads wish content from a public spreadsheet.
package wishsheet

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/ukaji3/wishsheet-go/pkg/wishsheet/parser"
)

// Mode represents how a sheet is decoded.
type Mode string

const (
	// ModeMapping normalizes the sheet rows into a key-to-values mapping.
	ModeMapping Mode = "mapping"
	// ModeFlat collects sentence-like column labels and every cell text,
	// keyed by 1-based position.
	ModeFlat Mode = "flat"
)

// DefaultConcurrency is the number of sheets fetched at once.
const DefaultConcurrency = 4

// Options configures loading behavior.
type Options struct {
	// SheetID is recorded on the resulting book.
	SheetID string
	// Timeout bounds each sheet fetch. Zero means no extra deadline.
	Timeout time.Duration
	// Concurrency limits parallel fetches. Zero means DefaultConcurrency.
	Concurrency int
	// Modes maps sheet name to decode mode; sheets not listed use ModeMapping.
	Modes map[string]Mode
	// IsContentLabel decides which column labels count as content in ModeFlat.
	// If nil, parser.SentenceLike is used.
	IsContentLabel parser.LabelPredicate
	// Registerer receives the loader metrics. If nil, no metrics are recorded.
	Registerer prometheus.Registerer
}

// DefaultOptions returns default load options.
func DefaultOptions() Options {
	return Options{
		Timeout:     10 * time.Second,
		Concurrency: DefaultConcurrency,
	}
}

// ModeFor returns the decode mode for sheet.
func (o Options) ModeFor(sheet string) Mode {
	if m, ok := o.Modes[sheet]; ok && m != "" {
		return m
	}
	return ModeMapping
}

func (o Options) concurrency() int {
	if o.Concurrency > 0 {
		return o.Concurrency
	}
	return DefaultConcurrency
}
