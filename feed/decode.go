package feed

import (
	"bytes"
	"encoding/json"
	"io"
)

// Decode reads a bare JSON array of articles, the layout used by feed files
// on disk (historically date.txt).
func Decode(r io.Reader) (Feed, error) {
	var articles Feed
	decoder := json.NewDecoder(r)
	if err := decoder.Decode(&articles); err != nil {
		return nil, &DecodeError{Cause: err}
	}
	return articles, nil
}

// DecodeBytes is a convenience wrapper over Decode.
func DecodeBytes(data []byte) (Feed, error) {
	return Decode(bytes.NewReader(data))
}

// Checksum payloads are canonicalised through json.Marshal so logically
// equal feeds hash identically regardless of source formatting.
func (f Feed) MarshalCanonical() ([]byte, error) {
	return json.Marshal(f)
}
