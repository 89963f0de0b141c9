package source

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/ukaji3/wishsheet-go/pkg/wishsheet/models"
	"github.com/ukaji3/wishsheet-go/pkg/wishsheet/parser"
)

// DefaultBaseURL is the public spreadsheet host.
const DefaultBaseURL = "https://docs.google.com/spreadsheets/d/"

// DefaultTimeout bounds a single sheet request.
const DefaultTimeout = 10 * time.Second

// maxBodySize caps how much of a response body is read.
const maxBodySize = 8 << 20

// ErrResponseTooLarge indicates a response body above the read limit.
var ErrResponseTooLarge = errors.New("response too large")

// GViz fetches sheets from the public spreadsheet query endpoint.
type GViz struct {
	baseURL string
	sheetID string
	client  *http.Client
}

// GVizOption configures a GViz source.
type GVizOption func(*GViz)

// WithBaseURL overrides the spreadsheet host (used by tests and mirrors).
func WithBaseURL(baseURL string) GVizOption {
	return func(g *GViz) {
		if baseURL != "" {
			g.baseURL = baseURL
		}
	}
}

// WithHTTPClient sets the client used for requests.
func WithHTTPClient(c *http.Client) GVizOption {
	return func(g *GViz) {
		if c != nil {
			g.client = c
		}
	}
}

// WithTimeout sets the per-request timeout of the default client.
func WithTimeout(d time.Duration) GVizOption {
	return func(g *GViz) {
		if d > 0 {
			g.client = &http.Client{Timeout: d}
		}
	}
}

// NewGViz creates a source for the spreadsheet identified by sheetID.
func NewGViz(sheetID string, opts ...GVizOption) *GViz {
	g := &GViz{
		baseURL: DefaultBaseURL,
		sheetID: sheetID,
		client:  &http.Client{Timeout: DefaultTimeout},
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// URL returns the query URL for sheet.
func (g *GViz) URL(sheet string) string {
	base := strings.TrimSuffix(g.baseURL, "/")
	q := url.Values{}
	q.Set("sheet", sheet)
	return fmt.Sprintf("%s/%s/gviz/tq?%s", base, url.PathEscape(g.sheetID), q.Encode())
}

// Fetch returns the raw payload for sheet.
func (g *GViz) Fetch(ctx context.Context, sheet string) (string, error) {
	u := g.URL(sheet)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return "", fmt.Errorf("failed to build request: %w", err)
	}

	start := time.Now()
	resp, err := g.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize+1))
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}
	if len(body) > maxBodySize {
		return "", fmt.Errorf("sheet %q: %w (over %d bytes)", sheet, ErrResponseTooLarge, maxBodySize)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("sheet %q returned status %d", sheet, resp.StatusCode)
	}

	log.Debug().
		Str("sheet", sheet).
		Int("bytes", len(body)).
		Dur("took", time.Since(start)).
		Msg("fetched sheet")
	return string(body), nil
}

// Response fetches and unwraps the payload for sheet.
func (g *GViz) Response(ctx context.Context, sheet string) (*models.Response, error) {
	raw, err := g.Fetch(ctx, sheet)
	if err != nil {
		return nil, err
	}
	return parser.Unwrap(raw), nil
}
