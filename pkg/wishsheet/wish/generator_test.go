package wish

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ukaji3/wishsheet-go/pkg/wishsheet"
	"github.com/ukaji3/wishsheet-go/pkg/wishsheet/assets"
	"github.com/ukaji3/wishsheet-go/pkg/wishsheet/models"
)

type stubLoader struct {
	sheets map[string]*models.Mapping
	errs   map[string]error
	calls  []string
}

func (s *stubLoader) LoadSheet(ctx context.Context, sheet string) (*models.Mapping, error) {
	s.calls = append(s.calls, sheet)
	if err, ok := s.errs[sheet]; ok {
		return models.NewMapping(), err
	}
	if m, ok := s.sheets[sheet]; ok {
		return m, nil
	}
	return models.NewMapping(), wishsheet.ErrNoData
}

func oracleSheet() *models.Mapping {
	m := models.NewMapping()
	m.Set("1", "Test Wish")
	m.Set("2", "Second")
	m.Add("3", "Line one")
	m.Add("3", "")
	m.Add("3", "Line two")
	return m
}

func uiSheet() *models.Mapping {
	m := models.NewMapping()
	m.Set("generatedWishTitle", "Your wish")
	m.Set("A", "Hello")
	return m
}

func newTestGenerator(loader SheetLoader, picker Picker) *Generator {
	manifest := assets.NewManifest(
		map[models.Folder][]string{
			models.FolderWishes:  {"1", "2", "11"},
			models.FolderMaxFreu: {"4"},
		},
		map[string]models.Placeholder{
			"11":         {Hash: "wishes-hash"},
			"max-freu/4": {Hash: "max-hash"},
		},
	)
	return NewGenerator(loader, manifest, picker)
}

func TestGenerate(t *testing.T) {
	loader := &stubLoader{sheets: map[string]*models.Mapping{
		"UI":     uiSheet(),
		"Oracle": oracleSheet(),
	}}
	g := newTestGenerator(loader, NewFixedPicker(2, 2))

	ui, err := g.LoadUI(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Hello", ui.WishHeader)

	w, err := g.Generate(context.Background(), models.ModeOracle)
	require.NoError(t, err)
	assert.Equal(t, "Your wish", w.Title)
	assert.Equal(t, []string{"Line one", "", "Line two"}, w.Text)
	assert.Equal(t, "11", w.Image)
	assert.Equal(t, models.FolderWishes, w.Folder)
	assert.Equal(t, []string{"UI", "Oracle"}, loader.calls)

	p, ok := g.Placeholder(w)
	require.True(t, ok)
	assert.Equal(t, "wishes-hash", p.Hash)
}

func TestGenerateMaxFrei(t *testing.T) {
	m := models.NewMapping()
	m.Set("1", "Quote")
	loader := &stubLoader{sheets: map[string]*models.Mapping{"MaxFrei": m}}
	g := newTestGenerator(loader, NewFixedPicker(0))

	w, err := g.Generate(context.Background(), models.ModeMaxFrei)
	require.NoError(t, err)
	assert.Equal(t, []string{"Quote"}, w.Text)
	assert.Equal(t, "4", w.Image)
	assert.Equal(t, models.FolderMaxFreu, w.Folder)

	p, ok := g.Placeholder(w)
	require.True(t, ok)
	assert.Equal(t, "max-hash", p.Hash)
}

func TestGenerateNoWishes(t *testing.T) {
	cause := errors.New("connection refused")
	loader := &stubLoader{errs: map[string]error{"Oracle": cause}}
	g := newTestGenerator(loader, NewFixedPicker(0))

	_, err := g.Generate(context.Background(), models.ModeOracle)
	assert.ErrorIs(t, err, wishsheet.ErrNoWishes)
	assert.ErrorIs(t, err, cause)

	_, err = g.Generate(context.Background(), models.ModeMaxFrei)
	assert.ErrorIs(t, err, wishsheet.ErrNoWishes)
}

func TestGenerateUnknownMode(t *testing.T) {
	g := newTestGenerator(&stubLoader{}, nil)
	_, err := g.Generate(context.Background(), "Tarot")
	assert.ErrorIs(t, err, wishsheet.ErrUnknownMode)
}

func TestGenerateSpecific(t *testing.T) {
	loader := &stubLoader{sheets: map[string]*models.Mapping{"Oracle": oracleSheet()}}
	g := newTestGenerator(loader, nil)
	img := 7

	tests := []struct {
		name      string
		wishIndex int
		image     *int
		text      []string
		imageID   string
	}{
		{"first", 1, nil, []string{"Test Wish"}, "1"},
		{"second with image", 2, &img, []string{"Second"}, "7"},
		{"clamped high", 99, nil, []string{"Line one", "", "Line two"}, "99"},
		{"clamped low", 0, nil, []string{"Test Wish"}, "0"},
	}

	for _, tt := range tests {
		w, err := g.GenerateSpecific(context.Background(), models.ModeOracle, tt.wishIndex, tt.image)
		require.NoError(t, err, tt.name)
		assert.Equal(t, tt.text, w.Text, tt.name)
		assert.Equal(t, tt.imageID, w.Image, tt.name)
		assert.Equal(t, models.FolderWishes, w.Folder, tt.name)
	}
}

func TestNormalizeWishes(t *testing.T) {
	m := models.NewMapping()
	m.Set("text", "B")
	m.Set("2", int64(5))
	m.Add("1", "a")
	m.Add("1", 2.5)

	assert.Equal(t, [][]string{{"a", "2.5"}, {"5"}, {"B"}}, NormalizeWishes(m))
	assert.Equal(t, [][]string{}, NormalizeWishes(nil))
}
