package backend

import (
	"encoding/json"
	"fmt"

	"github.com/ScottSoren/ixdat/measurement"
)

// metaEntry is the JSON form of one metadata value. The explicit type
// tag mirrors the four type names data file preambles use, so an int
// survives the round trip instead of coming back as float64.
type metaEntry struct {
	Type  string          `json:"type"`
	Value json.RawMessage `json:"value"`
}

func encodeMetadata(meta measurement.Metadata) ([]byte, error) {
	entries := make(map[string]metaEntry, len(meta))
	for key, value := range meta {
		var typ string
		switch value.(type) {
		case string:
			typ = "string"
		case int:
			typ = "int"
		case float64:
			typ = "double"
		case bool:
			typ = "bool"
		default:
			return nil, fmt.Errorf("metadata %q has unsupported type %T", key, value)
		}

		raw, err := json.Marshal(value)
		if err != nil {
			return nil, fmt.Errorf("metadata %q: %w", key, err)
		}
		entries[key] = metaEntry{Type: typ, Value: raw}
	}

	return json.Marshal(entries)
}

func decodeMetadata(data []byte) (measurement.Metadata, error) {
	entries := make(map[string]metaEntry)
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, err
	}

	meta := make(measurement.Metadata, len(entries))
	for key, entry := range entries {
		var (
			value any
			err   error
		)
		switch entry.Type {
		case "string":
			var v string
			err = json.Unmarshal(entry.Value, &v)
			value = v
		case "int":
			var v int
			err = json.Unmarshal(entry.Value, &v)
			value = v
		case "double":
			var v float64
			err = json.Unmarshal(entry.Value, &v)
			value = v
		case "bool":
			var v bool
			err = json.Unmarshal(entry.Value, &v)
			value = v
		default:
			return nil, fmt.Errorf("metadata %q has unknown type tag %q", key, entry.Type)
		}
		if err != nil {
			return nil, fmt.Errorf("metadata %q: %w", key, err)
		}
		meta[key] = value
	}

	return meta, nil
}
