package assets

import (
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
)

// imageExtensions lists the files considered when scanning an image folder.
var imageExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".webp": true,
}

// ScanNumericImages lists the numeric image ids in dir: files with an image
// extension whose name starts with digits, sorted numerically, without duplicates
// (1.png and 1.webp yield one id). A missing directory yields an empty list.
func ScanNumericImages(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			log.Warn().Str("dir", dir).Msg("image directory not found")
			return []string{}, nil
		}
		return nil, err
	}

	seen := make(map[string]bool)
	ids := []string{}
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(e.Name()))
		if !imageExtensions[ext] {
			continue
		}
		name := strings.TrimSuffix(e.Name(), filepath.Ext(e.Name()))
		if _, ok := leadingNumber(name); !ok || seen[name] {
			continue
		}
		seen[name] = true
		ids = append(ids, name)
	}

	sort.SliceStable(ids, func(i, j int) bool {
		a, _ := leadingNumber(ids[i])
		b, _ := leadingNumber(ids[j])
		return a < b
	})
	return ids, nil
}

// BuildImageList scans root/<folder> for every folder.
func BuildImageList(root string, folders []string) (map[string][]string, error) {
	list := make(map[string][]string, len(folders))
	for _, folder := range folders {
		ids, err := ScanNumericImages(filepath.Join(root, folder))
		if err != nil {
			return nil, err
		}
		log.Info().Str("folder", folder).Int("count", len(ids)).Msg("scanned images")
		list[folder] = ids
	}
	return list, nil
}

// leadingNumber parses the run of digits at the start of s.
func leadingNumber(s string) (int, bool) {
	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == 0 {
		return 0, false
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0, false
	}
	return n, true
}

// firstNumber parses the first run of digits anywhere in s, 0 if none.
func firstNumber(s string) int {
	start := strings.IndexAny(s, "0123456789")
	if start < 0 {
		return 0
	}
	n, _ := leadingNumber(s[start:])
	return n
}
