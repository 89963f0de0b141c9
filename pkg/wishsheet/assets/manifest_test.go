package assets

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ukaji3/wishsheet-go/pkg/wishsheet/models"
)

func TestLoadManifest(t *testing.T) {
	dir := t.TempDir()
	imageList := filepath.Join(dir, "image-data.json")
	placeholders := filepath.Join(dir, "blurhash.json")

	require.NoError(t, os.WriteFile(imageList, []byte(`{"wishes":["1","2","11"],"max-freu":["3"],"backgrounds":[]}`), 0644))
	require.NoError(t, os.WriteFile(placeholders, []byte(`{
		"11": {"hash": "LEHV6nWB2yk8pyo0adR*.7kCMdnj", "width": 300, "height": 200},
		"max-freu/3": "LKO2?U%2Tw=w]~RBVZRi};RPxuwH",
		"max-freu/main": {"hash": "L6PZfSi_.AyE_3t7t7R**0o#DgR4"}
	}`), 0644))

	m, err := LoadManifest(imageList, placeholders)
	require.NoError(t, err)

	assert.Equal(t, []string{"1", "2", "11"}, m.Images(models.FolderWishes))
	assert.Equal(t, []string{"3"}, m.Images(models.FolderMaxFreu))
	assert.Empty(t, m.Images("unknown"))
	assert.Equal(t, 3, m.Len())

	p, ok := m.Placeholder(models.FolderWishes, "11")
	require.True(t, ok)
	assert.Equal(t, 300, p.Width)
	assert.True(t, p.HasDimensions())

	p, ok = m.Placeholder(models.FolderMaxFreu, "3")
	require.True(t, ok)
	assert.Equal(t, "LKO2?U%2Tw=w]~RBVZRi};RPxuwH", p.Hash)
	assert.False(t, p.HasDimensions())

	_, ok = m.Placeholder(models.FolderWishes, "3")
	assert.False(t, ok)
}

func TestManifestIsReadOnly(t *testing.T) {
	src := map[models.Folder][]string{models.FolderWishes: {"1", "2"}}
	m := NewManifest(src, nil)

	src[models.FolderWishes][0] = "changed"
	images := m.Images(models.FolderWishes)
	images[1] = "changed"

	assert.Equal(t, []string{"1", "2"}, m.Images(models.FolderWishes))
}

func TestLoadManifestErrors(t *testing.T) {
	_, err := LoadManifest(filepath.Join(t.TempDir(), "missing.json"), "")
	assert.Error(t, err)

	m, err := LoadManifest("", "")
	require.NoError(t, err)
	assert.Empty(t, m.Images(models.FolderWishes))
}

func TestPlaceholderKey(t *testing.T) {
	assert.Equal(t, "7", PlaceholderKey(models.FolderWishes, "7"))
	assert.Equal(t, "max-freu/7", PlaceholderKey(models.FolderMaxFreu, "7"))
}

func TestImagePath(t *testing.T) {
	assert.Equal(t, "assets/images/wishes/webp/7.webp", ImagePath("", models.FolderWishes, "7"))
	assert.Equal(t, "/static/max-freu/webp/main.webp", ImagePath("/static/", models.FolderMaxFreu, "main"))
}
