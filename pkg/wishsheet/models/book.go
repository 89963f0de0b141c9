package models

// Book represents the decoded sheets of one spreadsheet.
type Book struct {
	// SheetID is the spreadsheet (data-set) identifier.
	SheetID string `json:"sheet_id"`
	// Sheets maps sheet name to its normalized mapping.
	Sheets map[string]*Mapping `json:"sheets"`
}

// Sheet returns the mapping for name, or an empty mapping if absent.
func (b *Book) Sheet(name string) *Mapping {
	if b != nil {
		if m, ok := b.Sheets[name]; ok && m != nil {
			return m
		}
	}
	return NewMapping()
}
