package assets

import (
	"fmt"
	"image"
	_ "image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/buckket/go-blurhash"
	"github.com/rs/zerolog/log"
	"github.com/ukaji3/wishsheet-go/pkg/wishsheet/models"
	_ "golang.org/x/image/webp"
)

const (
	// DefaultXComponents and DefaultYComponents are the blur-hash detail levels.
	DefaultXComponents = 4
	DefaultYComponents = 3
	// DefaultDecodeSize is the side of the decoded placeholder buffer.
	DefaultDecodeSize = 32
	// DefaultPunch is the neutral contrast factor for decoding.
	DefaultPunch = 1
)

// EncodePlaceholder computes the placeholder of the image file at path.
func EncodePlaceholder(path string, xComponents, yComponents int) (models.Placeholder, error) {
	f, err := os.Open(path)
	if err != nil {
		return models.Placeholder{}, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return models.Placeholder{}, fmt.Errorf("failed to decode image %s: %w", path, err)
	}
	return EncodeImage(img, xComponents, yComponents)
}

// EncodeImage computes the placeholder of a decoded image.
func EncodeImage(img image.Image, xComponents, yComponents int) (models.Placeholder, error) {
	hash, err := blurhash.Encode(xComponents, yComponents, img)
	if err != nil {
		return models.Placeholder{}, fmt.Errorf("failed to encode blurhash: %w", err)
	}
	b := img.Bounds()
	return models.Placeholder{Hash: hash, Width: b.Dx(), Height: b.Dy()}, nil
}

// GeneratePlaceholders encodes every .png in dir. Keys are the file name
// without extension, prefixed with "<prefix>/" when prefix is set. Keys already
// present in existing are reused instead of re-encoded; files that fail to
// encode are logged and skipped.
func GeneratePlaceholders(dir, prefix string, existing map[string]models.Placeholder) (map[string]models.Placeholder, error) {
	out := make(map[string]models.Placeholder)

	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			log.Warn().Str("dir", dir).Msg("image directory not found")
			return out, nil
		}
		return nil, err
	}

	var files []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".png") {
			files = append(files, e.Name())
		}
	}
	sort.SliceStable(files, func(i, j int) bool {
		return firstNumber(files[i]) < firstNumber(files[j])
	})

	processed, reused := 0, 0
	for _, file := range files {
		name := strings.TrimSuffix(file, filepath.Ext(file))
		key := name
		if prefix != "" {
			key = prefix + "/" + name
		}

		if p, ok := existing[key]; ok {
			out[key] = p
			reused++
			continue
		}

		p, err := EncodePlaceholder(filepath.Join(dir, file), DefaultXComponents, DefaultYComponents)
		if err != nil {
			log.Error().Err(err).Str("file", file).Msg("error processing image")
			continue
		}
		out[key] = p
		processed++
		log.Debug().Str("key", key).Int("width", p.Width).Int("height", p.Height).Msg("encoded placeholder")
	}

	log.Info().Str("dir", dir).Int("new", processed).Int("reused", reused).Msg("generated placeholders")
	return out, nil
}

// LoadPlaceholders reads an existing placeholder file. A missing or unreadable
// file yields an empty map so generation starts fresh.
func LoadPlaceholders(path string) map[string]models.Placeholder {
	placeholders := make(map[string]models.Placeholder)
	if err := readJSON(path, &placeholders); err != nil {
		if !os.IsNotExist(err) {
			log.Warn().Err(err).Str("path", path).Msg("could not read existing placeholders, starting fresh")
		}
		return make(map[string]models.Placeholder)
	}
	return placeholders
}

// DecodePlaceholder renders a blur-hash into a width x height pixel buffer.
func DecodePlaceholder(hash string, width, height, punch int) (image.Image, error) {
	if width <= 0 {
		width = DefaultDecodeSize
	}
	if height <= 0 {
		height = DefaultDecodeSize
	}
	if punch <= 0 {
		punch = DefaultPunch
	}
	img, err := blurhash.Decode(hash, width, height, punch)
	if err != nil {
		return nil, fmt.Errorf("failed to decode blurhash: %w", err)
	}
	return img, nil
}

// WritePNG encodes img as PNG into path.
func WritePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
