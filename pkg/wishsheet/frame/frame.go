// Package frame encodes the messages exchanged with the embedding page and
// parses deep-link parameters.
package frame

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strconv"
)

// Message types.
const (
	TypeHeight      = "height"
	TypeScrollToTop = "scrollToTop"
	TypeSetWish     = "setWish"
)

// Deep-link query parameters.
const (
	ParamWish = "wish"
	ParamImg  = "img"
)

// TargetOrigin is the origin outbound messages are posted to.
const TargetOrigin = "*"

// ErrUnknownMessage indicates an inbound message of a type the widget ignores.
var ErrUnknownMessage = errors.New("unknown message type")

// Message is the wire form of every cross-frame message.
type Message struct {
	Type   string `json:"type"`
	Height int    `json:"height,omitempty"`
	Wish   int    `json:"wish,omitempty"`
	Img    *int   `json:"img,omitempty"`
}

// Command is an inbound instruction to show a specific wish.
type Command struct {
	// Wish is the 1-based wish index.
	Wish int `json:"wish"`
	// Img is the image index; nil means "same as Wish".
	Img *int `json:"img,omitempty"`
}

// HeightMessage encodes a height update for the embedding page.
func HeightMessage(height int) ([]byte, error) {
	if height < 0 {
		return nil, fmt.Errorf("invalid height %d", height)
	}
	return json.Marshal(Message{Type: TypeHeight, Height: height})
}

// ScrollToTopMessage encodes a request to scroll the embedding page to the widget.
func ScrollToTopMessage() ([]byte, error) {
	return json.Marshal(Message{Type: TypeScrollToTop})
}

// ParseInbound decodes a message posted by the embedding page.
func ParseInbound(data []byte) (Command, error) {
	var msg Message
	if err := json.Unmarshal(data, &msg); err != nil {
		return Command{}, fmt.Errorf("invalid message: %w", err)
	}
	if msg.Type != TypeSetWish {
		return Command{}, fmt.Errorf("%w: %q", ErrUnknownMessage, msg.Type)
	}
	if msg.Wish < 1 {
		return Command{}, fmt.Errorf("invalid wish index %d", msg.Wish)
	}
	return Command{Wish: msg.Wish, Img: msg.Img}, nil
}

// ParseDeepLink reads the wish and image parameters from a query string.
// It reports false when no valid wish index is present.
func ParseDeepLink(q url.Values) (Command, bool) {
	wish, err := strconv.Atoi(q.Get(ParamWish))
	if err != nil || wish < 1 {
		return Command{}, false
	}
	cmd := Command{Wish: wish}
	if img, err := strconv.Atoi(q.Get(ParamImg)); err == nil {
		cmd.Img = &img
	}
	return cmd, true
}

// ClearDeepLink returns a copy of q without the deep-link parameters.
func ClearDeepLink(q url.Values) url.Values {
	out := make(url.Values, len(q))
	for k, v := range q {
		if k == ParamWish || k == ParamImg {
			continue
		}
		out[k] = append([]string(nil), v...)
	}
	return out
}
