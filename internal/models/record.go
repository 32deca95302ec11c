package models

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// KeyAttribute is the primary key attribute of every record
const KeyAttribute = "id"

// ErrNotAnObject is returned when a request body decodes to something other than a JSON object
var ErrNotAnObject = errors.New("request body must be a JSON object")

// Record is a single stored item. Apart from the id key the attributes
// are caller-defined and no schema is enforced.
type Record map[string]interface{}

// ID returns the record's id attribute, or an empty string when it is
// missing or not a string
func (r Record) ID() string {
	id, _ := r[KeyAttribute].(string)
	return id
}

// HasID reports whether the record carries a non-empty string id
func (r Record) HasID() bool {
	return r.ID() != ""
}

// Clone returns a shallow copy of the record
func (r Record) Clone() Record {
	if r == nil {
		return nil
	}
	clone := make(Record, len(r))
	for k, v := range r {
		clone[k] = v
	}
	return clone
}

// DecodeRecord parses a JSON request body into a Record. Numbers are kept
// as json.Number so integers beyond float64 precision survive a round trip.
func DecodeRecord(body []byte) (Record, error) {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()

	var record Record
	if err := dec.Decode(&record); err != nil {
		return nil, fmt.Errorf("failed to decode record: %w", err)
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, fmt.Errorf("failed to decode record: unexpected data after JSON object")
	}
	if record == nil {
		return nil, ErrNotAnObject
	}
	return record, nil
}
