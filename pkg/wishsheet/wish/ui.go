package wish

import (
	"github.com/ukaji3/wishsheet-go/pkg/wishsheet/models"
)

// UISheet is the sheet holding the widget copy.
const UISheet = "UI"

// DefaultUIAliases maps the UI sheet column codes to field names.
var DefaultUIAliases = map[string]string{
	"A": "wishHeader",
	"B": "wishMainText",
	"C": "oraculActionButtonText",
	"D": "maxFreiActionButtonText",
	"E": "generatedWishTitle",
}

// UIData is the widget copy read from the UI sheet.
type UIData struct {
	WishHeader              string            `json:"wishHeader,omitempty"`
	WishMainText            []string          `json:"wishMainText,omitempty"`
	WishMainTextSecondary   []string          `json:"wishMainTextSecondary,omitempty"`
	OraculActionButtonText  string            `json:"oraculActionButtonText,omitempty"`
	MaxFreiActionButtonText string            `json:"maxFreiActionButtonText,omitempty"`
	GeneratedWishTitle      string            `json:"generatedWishTitle,omitempty"`
	DataLoadingIssue        string            `json:"dataLoadingIssue,omitempty"`
	Extra                   map[string]string `json:"extra,omitempty"`
}

// DecodeUI reads UI copy from a normalized mapping. Keys found in aliases are
// renamed first so both coded and named header rows work. Single-value fields
// take the first value; unknown keys land in Extra.
func DecodeUI(m *models.Mapping, aliases map[string]string) UIData {
	var ui UIData
	if m == nil {
		return ui
	}
	if len(aliases) > 0 {
		m = m.Rename(aliases)
	}

	for _, key := range m.Keys() {
		e, _ := m.Get(key)
		values := e.Strings()
		first := ""
		if len(values) > 0 {
			first = values[0]
		}

		switch key {
		case "wishHeader":
			ui.WishHeader = first
		case "wishMainText":
			ui.WishMainText = values
		case "wishMainTextSecondary":
			ui.WishMainTextSecondary = values
		case "oraculActionButtonText":
			ui.OraculActionButtonText = first
		case "maxFreiActionButtonText":
			ui.MaxFreiActionButtonText = first
		case "generatedWishTitle":
			ui.GeneratedWishTitle = first
		case "dataLoadingIssue":
			ui.DataLoadingIssue = first
		default:
			if ui.Extra == nil {
				ui.Extra = make(map[string]string)
			}
			ui.Extra[key] = first
		}
	}
	return ui
}
