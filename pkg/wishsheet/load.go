package wishsheet

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/ukaji3/wishsheet-go/pkg/wishsheet/models"
	"github.com/ukaji3/wishsheet-go/pkg/wishsheet/parser"
	"github.com/ukaji3/wishsheet-go/pkg/wishsheet/source"
	"golang.org/x/sync/errgroup"
)

// Load fetches and decodes every named sheet concurrently.
// A sheet that fails to fetch or decode is logged and replaced with an empty
// mapping; the other sheets are unaffected. Load never fails as a whole.
func Load(ctx context.Context, src source.Source, sheets []string, opts Options) *models.Book {
	book := &models.Book{
		SheetID: opts.SheetID,
		Sheets:  make(map[string]*models.Mapping, len(sheets)),
	}
	metrics := newLoadMetrics(opts)

	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.concurrency())

	for _, sheet := range sheets {
		g.Go(func() error {
			m, err := loadSheet(gctx, src, sheet, opts, metrics)
			if err != nil {
				log.Error().Err(err).Str("sheet", sheet).Msg("error loading sheet")
			}

			mu.Lock()
			book.Sheets[sheet] = m
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	return book
}

// LoadSheet fetches and decodes a single sheet.
// On failure it returns an empty mapping together with the cause.
func LoadSheet(ctx context.Context, src source.Source, sheet string, opts Options) (*models.Mapping, error) {
	return loadSheet(ctx, src, sheet, opts, newLoadMetrics(opts))
}

func newLoadMetrics(opts Options) *Metrics {
	if opts.Registerer == nil {
		return nil
	}
	return NewMetrics(opts.Registerer)
}

func loadSheet(ctx context.Context, src source.Source, sheet string, opts Options, metrics *Metrics) (*models.Mapping, error) {
	start := time.Now()
	if opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.Timeout)
		defer cancel()
	}

	resp, err := src.Response(ctx, sheet)
	if err != nil {
		metrics.observe(sheet, OutcomeError, time.Since(start).Seconds())
		return models.NewMapping(), NewLoadError(sheet, "fetch", err)
	}

	m := Decode(resp, opts.ModeFor(sheet), opts.IsContentLabel)
	if m.Len() == 0 {
		metrics.observe(sheet, OutcomeEmpty, time.Since(start).Seconds())
		return m, NewLoadError(sheet, "decode", ErrNoData)
	}

	metrics.observe(sheet, OutcomeOK, time.Since(start).Seconds())
	log.Debug().Str("sheet", sheet).Int("keys", m.Len()).Msg("loaded sheet")
	return m, nil
}

// Decode turns an unwrapped response into a mapping using mode.
// A nil response yields an empty mapping.
func Decode(resp *models.Response, mode Mode, isContent parser.LabelPredicate) *models.Mapping {
	if mode == ModeFlat {
		return parser.FlatMapping(parser.ExtractFlatTexts(resp, isContent))
	}
	grid, _ := parser.MaterializeRows(resp)
	return parser.Normalize(grid)
}

// Loader binds a source to load options.
type Loader struct {
	Source  source.Source
	Options Options
}

// Load loads sheets with the bound source and options.
func (l Loader) Load(ctx context.Context, sheets []string) *models.Book {
	return Load(ctx, l.Source, sheets, l.Options)
}

// LoadSheet loads one sheet with the bound source and options.
func (l Loader) LoadSheet(ctx context.Context, sheet string) (*models.Mapping, error) {
	return LoadSheet(ctx, l.Source, sheet, l.Options)
}
