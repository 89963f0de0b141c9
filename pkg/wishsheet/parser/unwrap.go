// Package parser decodes spreadsheet query payloads into normalized mappings.
package parser

import (
	"encoding/json"
	"regexp"

	"github.com/rs/zerolog/log"
	"github.com/tidwall/gjson"
	"github.com/ukaji3/wishsheet-go/pkg/wishsheet/models"
)

// StatusError is the response status reported when the query failed upstream.
const StatusError = "error"

// envelopePattern captures the single JSON argument of the response callback.
var envelopePattern = regexp.MustCompile(`google\.visualization\.Query\.setResponse\((.*)\);`)

// Unwrap locates the JSON document inside a raw payload and decodes it.
// It returns nil when the envelope is missing or the document is not valid JSON.
func Unwrap(raw string) *models.Response {
	body, ok := Envelope(raw)
	if !ok {
		log.Error().Int("length", len(raw)).Msg("failed to extract JSON from query response")
		return nil
	}
	if !gjson.Valid(body) {
		log.Error().Int("length", len(body)).Msg("query response payload is not valid JSON")
		return nil
	}

	var resp models.Response
	if err := json.Unmarshal([]byte(body), &resp); err != nil {
		log.Error().Err(err).Msg("error parsing extracted JSON")
		return nil
	}

	if gjson.Get(body, "status").String() == StatusError {
		var details []string
		gjson.Get(body, "errors.#.detailed_message").ForEach(func(_, v gjson.Result) bool {
			details = append(details, v.String())
			return true
		})
		log.Warn().Strs("errors", details).Msg("query response reported an error status")
	}

	return &resp
}

// Envelope returns the text wrapped by the response callback.
func Envelope(raw string) (string, bool) {
	match := envelopePattern.FindStringSubmatch(raw)
	if len(match) < 2 || match[1] == "" {
		return "", false
	}
	return match[1], true
}
