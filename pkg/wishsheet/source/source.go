// Package source provides spreadsheet data sources producing query responses.
package source

import (
	"context"

	"github.com/ukaji3/wishsheet-go/pkg/wishsheet/models"
)

// Source produces the query response for a named sheet.
// A nil response with a nil error means the sheet yielded no data.
type Source interface {
	Response(ctx context.Context, sheet string) (*models.Response, error)
}

// Func adapts a function to the Source interface.
type Func func(ctx context.Context, sheet string) (*models.Response, error)

// Response calls f.
func (f Func) Response(ctx context.Context, sheet string) (*models.Response, error) {
	return f(ctx, sheet)
}
