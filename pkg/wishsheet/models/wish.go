package models

// Mode selects which wish collection is drawn from.
// The mode name doubles as the sheet holding its wishes.
type Mode string

const (
	// ModeOracle draws from the Oracle wishes.
	ModeOracle Mode = "Oracle"
	// ModeMaxFrei draws from the Max Frei quotes.
	ModeMaxFrei Mode = "MaxFrei"
)

// Folder is an image category; it determines the asset path and placeholder key prefix.
type Folder string

const (
	// FolderWishes holds the Oracle illustrations.
	FolderWishes Folder = "wishes"
	// FolderMaxFreu holds the Max Frei illustrations.
	FolderMaxFreu Folder = "max-freu"
)

// Folder returns the image folder used by the mode.
func (m Mode) Folder() Folder {
	if m == ModeMaxFrei {
		return FolderMaxFreu
	}
	return FolderWishes
}

// Valid reports whether m is a known mode.
func (m Mode) Valid() bool {
	return m == ModeOracle || m == ModeMaxFrei
}

// Wish is one selectable unit of displayed content.
type Wish struct {
	// Title is the heading shown above the wish.
	Title string `json:"title,omitempty"`
	// Text holds the wish lines; blank lines render as breaks.
	Text []string `json:"text"`
	// Image is the image identifier within Folder.
	Image string `json:"image"`
	// Folder is the image category.
	Folder Folder `json:"imageFolder"`
}
