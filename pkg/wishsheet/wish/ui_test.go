package wish

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/ukaji3/wishsheet-go/pkg/wishsheet/models"
)

func TestDecodeUI(t *testing.T) {
	m := models.NewMapping()
	m.Set("A", "Header")
	m.Add("B", "Line 1")
	m.Add("B", "Line 2")
	m.Set("wishMainTextSecondary", "More")
	m.Set("E", "Title")
	m.Set("dataLoadingIssue", "Oops")
	m.Set("footer", int64(2024))

	ui := DecodeUI(m, DefaultUIAliases)

	assert.Equal(t, "Header", ui.WishHeader)
	assert.Equal(t, []string{"Line 1", "Line 2"}, ui.WishMainText)
	assert.Equal(t, []string{"More"}, ui.WishMainTextSecondary)
	assert.Equal(t, "Title", ui.GeneratedWishTitle)
	assert.Equal(t, "Oops", ui.DataLoadingIssue)
	assert.Equal(t, map[string]string{"footer": "2024"}, ui.Extra)
}

func TestDecodeUIWithoutAliases(t *testing.T) {
	m := models.NewMapping()
	m.Set("A", "Header")

	ui := DecodeUI(m, nil)
	assert.Empty(t, ui.WishHeader)
	assert.Equal(t, "Header", ui.Extra["A"])

	assert.Equal(t, UIData{}, DecodeUI(nil, DefaultUIAliases))
}
