// Package wish selects wishes and their illustrations from loaded sheets.
package wish

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"

	"github.com/rs/zerolog/log"
	"github.com/ukaji3/wishsheet-go/pkg/wishsheet"
	"github.com/ukaji3/wishsheet-go/pkg/wishsheet/assets"
	"github.com/ukaji3/wishsheet-go/pkg/wishsheet/models"
)

// SheetLoader loads one normalized sheet.
type SheetLoader interface {
	LoadSheet(ctx context.Context, sheet string) (*models.Mapping, error)
}

// Generator draws wishes for a mode.
type Generator struct {
	loader   SheetLoader
	manifest *assets.Manifest
	aliases  map[string]string

	mu     sync.Mutex
	picker Picker
	ui     UIData
}

// NewGenerator creates a generator. A nil picker means NewCryptoPicker and a
// nil manifest means no images.
func NewGenerator(loader SheetLoader, manifest *assets.Manifest, picker Picker) *Generator {
	if picker == nil {
		picker = NewCryptoPicker()
	}
	if manifest == nil {
		manifest = assets.NewManifest(nil, nil)
	}
	return &Generator{
		loader:   loader,
		manifest: manifest,
		aliases:  DefaultUIAliases,
		picker:   picker,
	}
}

// WithUIAliases replaces the column-code aliases used for the UI sheet.
func (g *Generator) WithUIAliases(aliases map[string]string) *Generator {
	g.aliases = aliases
	return g
}

// LoadUI reads the UI sheet and keeps it for wish titles.
func (g *Generator) LoadUI(ctx context.Context) (UIData, error) {
	m, err := g.loader.LoadSheet(ctx, UISheet)
	if err != nil {
		log.Error().Err(err).Msg("failed to load UI data")
	}
	ui := DecodeUI(m, g.aliases)

	g.mu.Lock()
	g.ui = ui
	g.mu.Unlock()
	return ui, err
}

// UI returns the last loaded UI copy.
func (g *Generator) UI() UIData {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.ui
}

// Generate draws a random wish and a random image of the mode's folder.
func (g *Generator) Generate(ctx context.Context, mode models.Mode) (models.Wish, error) {
	wishes, err := g.wishes(ctx, mode)
	if err != nil {
		log.Error().Err(err).Str("mode", string(mode)).Msg("error generating wish")
		return models.Wish{}, err
	}

	folder := mode.Folder()
	images := g.manifest.Images(folder)

	g.mu.Lock()
	index := g.picker.Intn(len(wishes))
	image := ""
	if len(images) > 0 {
		image = images[g.picker.Intn(len(images))]
	}
	title := g.ui.GeneratedWishTitle
	g.mu.Unlock()

	if image == "" {
		log.Warn().Str("folder", string(folder)).Msg("no images available for folder")
	}

	return models.Wish{
		Title:  title,
		Text:   wishes[index],
		Image:  image,
		Folder: folder,
	}, nil
}

// GenerateSpecific returns the wish at the 1-based wishIndex, clamped to the
// available range. The image defaults to the wish index when imageIndex is nil.
func (g *Generator) GenerateSpecific(ctx context.Context, mode models.Mode, wishIndex int, imageIndex *int) (models.Wish, error) {
	wishes, err := g.wishes(ctx, mode)
	if err != nil {
		log.Error().Err(err).Str("mode", string(mode)).Int("wish", wishIndex).Msg("error loading specific wish")
		return models.Wish{}, err
	}

	index := clamp(wishIndex-1, 0, len(wishes)-1)
	image := wishIndex
	if imageIndex != nil {
		image = *imageIndex
	}

	return models.Wish{
		Title:  g.UI().GeneratedWishTitle,
		Text:   wishes[index],
		Image:  strconv.Itoa(image),
		Folder: mode.Folder(),
	}, nil
}

// Placeholder returns the blur-hash placeholder of a wish image.
func (g *Generator) Placeholder(w models.Wish) (models.Placeholder, bool) {
	return g.manifest.Placeholder(w.Folder, w.Image)
}

func (g *Generator) wishes(ctx context.Context, mode models.Mode) ([][]string, error) {
	if !mode.Valid() {
		return nil, fmt.Errorf("%w: %q", wishsheet.ErrUnknownMode, mode)
	}
	m, err := g.loader.LoadSheet(ctx, string(mode))
	wishes := NormalizeWishes(m)
	if len(wishes) == 0 {
		if err != nil {
			return nil, errors.Join(wishsheet.ErrNoWishes, err)
		}
		return nil, wishsheet.ErrNoWishes
	}
	return wishes, nil
}

// NormalizeWishes turns every mapping entry, in key order, into one wish of
// one or more text lines.
func NormalizeWishes(m *models.Mapping) [][]string {
	wishes := [][]string{}
	if m == nil {
		return wishes
	}
	for _, e := range m.Entries() {
		wishes = append(wishes, e.Strings())
	}
	return wishes
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
