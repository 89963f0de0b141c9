package models

import (
	"encoding/json"
)

// Placeholder is a precomputed blur-hash with the source image dimensions.
type Placeholder struct {
	// Hash is the encoded blur-hash.
	Hash string `json:"hash"`
	// Width is the source image width in pixels (0 if unknown).
	Width int `json:"width,omitempty"`
	// Height is the source image height in pixels (0 if unknown).
	Height int `json:"height,omitempty"`
}

// UnmarshalJSON accepts either an object or a bare hash string.
func (p *Placeholder) UnmarshalJSON(data []byte) error {
	var hash string
	if err := json.Unmarshal(data, &hash); err == nil {
		*p = Placeholder{Hash: hash}
		return nil
	}
	type plain Placeholder
	var v plain
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*p = Placeholder(v)
	return nil
}

// HasDimensions reports whether both dimensions are known.
func (p Placeholder) HasDimensions() bool {
	return p.Width > 0 && p.Height > 0
}
