package kit

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
)

const (
	MaxBodyBytes = 1 << 20

	InvalidJSONMsg = "Invalid JSON format"
)

var errTrailingData = errors.New("extra data after json value")

// DecodeJSON reads exactly one JSON value from a size-capped body.
func DecodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, MaxBodyBytes)
	defer func() { _ = r.Body.Close() }()

	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(v); err != nil {
		return err
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		return errTrailingData
	}
	return nil
}
