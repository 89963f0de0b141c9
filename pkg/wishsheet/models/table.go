package models

import (
	"encoding/json"
	"fmt"
)

// Column describes one column of a query response table.
type Column struct {
	// ID is the stable column identifier (e.g. "A"), may be empty.
	ID string `json:"id"`
	// Label is the header text, may be empty.
	Label string `json:"label"`
	// Type is the declared column type (string, number, boolean, date...).
	Type string `json:"type,omitempty"`
	// Pattern is the number or date format pattern, if any.
	Pattern string `json:"pattern,omitempty"`
}

// UnmarshalJSON decodes a column descriptor. Numeric or boolean ids and
// labels are kept as their text.
func (c *Column) UnmarshalJSON(data []byte) error {
	var raw struct {
		ID      json.RawMessage `json:"id"`
		Label   json.RawMessage `json:"label"`
		Type    json.RawMessage `json:"type"`
		Pattern json.RawMessage `json:"pattern"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	fields := []struct {
		raw json.RawMessage
		dst *string
	}{
		{raw.ID, &c.ID},
		{raw.Label, &c.Label},
		{raw.Type, &c.Type},
		{raw.Pattern, &c.Pattern},
	}
	for _, f := range fields {
		v, err := decodeScalar(f.raw)
		if err != nil {
			return err
		}
		switch v.(type) {
		case nil, string, int64, float64, bool:
			*f.dst = Text(v)
		default:
			return fmt.Errorf("column field is not a scalar: %s", f.raw)
		}
	}
	return nil
}

// Row is an ordered sequence of optional cells.
type Row struct {
	// C holds the row cells; a nil entry is an absent cell.
	C []*Cell `json:"c"`
}

// Table is the tabular part of a query response.
type Table struct {
	// Cols is the ordered list of column descriptors.
	Cols []Column `json:"cols"`
	// Rows is the ordered list of rows.
	Rows []Row `json:"rows"`
	// ParsedNumHeaders is the number of rows the endpoint consumed as headers.
	ParsedNumHeaders int `json:"parsedNumHeaders,omitempty"`
}

// ResponseError is one entry of the error list sent with status "error".
type ResponseError struct {
	Reason          string `json:"reason"`
	Message         string `json:"message"`
	DetailedMessage string `json:"detailed_message"`
}

// Response is the JSON document wrapped inside a raw query payload.
type Response struct {
	Version string          `json:"version"`
	ReqID   string          `json:"reqId"`
	Status  string          `json:"status"`
	Sig     string          `json:"sig,omitempty"`
	Table   *Table          `json:"table,omitempty"`
	Errors  []ResponseError `json:"errors,omitempty"`
}

// Grid is a materialized table: rows of raw cell values, nil for absent cells.
type Grid [][]interface{}
