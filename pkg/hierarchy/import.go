package hierarchy

import (
	"encoding/json"
	"io"
	"os"

	"github.com/matzehuels/treezoom/pkg/errors"
)

// ReadJSON decodes a single top-level RawRecord from r.
//
// The input must be a JSON object:
//
//	{
//	  "name": "All",
//	  "children": [
//	    {"name": "A", "value": 30},
//	    {"name": "B", "children": [{"name": "B1", "value": 10}]}
//	  ]
//	}
//
// Malformed JSON and non-numeric values are reported as INVALID_DATA. Value
// checks (missing or negative leaf values) happen later, in [Build].
// ReadJSON does not close r.
func ReadJSON(r io.Reader) (RawRecord, error) {
	var raw RawRecord
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return RawRecord{}, errors.Wrap(errors.ErrCodeInvalidData, err, "decode dataset")
	}
	return raw, nil
}

// ImportJSON reads a JSON dataset file at path.
func ImportJSON(path string) (RawRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return RawRecord{}, errors.Wrap(errors.ErrCodeNotFound, err, "open dataset %s", path)
	}
	defer f.Close()
	return ReadJSON(f)
}

// Load decodes and builds a hierarchy in one step.
func Load(r io.Reader) (*Node, error) {
	raw, err := ReadJSON(r)
	if err != nil {
		return nil, err
	}
	return Build(raw)
}
