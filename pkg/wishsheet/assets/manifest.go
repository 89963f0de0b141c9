// Package assets handles the static image manifests and blur-hash placeholders.
package assets

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/ukaji3/wishsheet-go/pkg/wishsheet/models"
)

// DefaultBasePath is the asset root the widget serves images from.
const DefaultBasePath = "assets/images/"

// Manifest is the read-only asset configuration: the image ids available per
// folder and the placeholder for each image. Build it once at start-up.
type Manifest struct {
	images       map[models.Folder][]string
	placeholders map[string]models.Placeholder
}

// NewManifest builds a manifest from already decoded data. The inputs are copied.
func NewManifest(images map[models.Folder][]string, placeholders map[string]models.Placeholder) *Manifest {
	m := &Manifest{
		images:       make(map[models.Folder][]string, len(images)),
		placeholders: make(map[string]models.Placeholder, len(placeholders)),
	}
	for folder, ids := range images {
		m.images[folder] = append([]string(nil), ids...)
	}
	for key, p := range placeholders {
		m.placeholders[key] = p
	}
	return m
}

// LoadManifest reads the image list and placeholder files.
// An empty path skips that file.
func LoadManifest(imageListPath, placeholderPath string) (*Manifest, error) {
	var images map[models.Folder][]string
	if imageListPath != "" {
		if err := readJSON(imageListPath, &images); err != nil {
			return nil, fmt.Errorf("failed to load image list: %w", err)
		}
	}

	var placeholders map[string]models.Placeholder
	if placeholderPath != "" {
		if err := readJSON(placeholderPath, &placeholders); err != nil {
			return nil, fmt.Errorf("failed to load placeholders: %w", err)
		}
	}

	return NewManifest(images, placeholders), nil
}

// Images returns the ordered image ids of folder.
func (m *Manifest) Images(folder models.Folder) []string {
	return append([]string(nil), m.images[folder]...)
}

// Placeholder returns the placeholder of an image in folder.
func (m *Manifest) Placeholder(folder models.Folder, image string) (models.Placeholder, bool) {
	p, ok := m.placeholders[PlaceholderKey(folder, image)]
	return p, ok
}

// Len returns the number of placeholders.
func (m *Manifest) Len() int {
	return len(m.placeholders)
}

// PlaceholderKey returns the lookup key of an image: the bare id for the wishes
// folder and "<folder>/<id>" for any other folder.
func PlaceholderKey(folder models.Folder, image string) string {
	if folder == models.FolderWishes || folder == "" {
		return image
	}
	return string(folder) + "/" + image
}

// ImagePath returns the path of the webp rendition of an image.
func ImagePath(basePath string, folder models.Folder, image string) string {
	if basePath == "" {
		basePath = DefaultBasePath
	}
	return fmt.Sprintf("%s%s/webp/%s.webp", basePath, folder, image)
}

func readJSON(path string, v interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, v)
}

// WriteJSON writes v as indented JSON to path.
func WriteJSON(path string, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0644)
}
