package selection

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"voxelchunks/internal/world/chunk"
)

const documentSchemaURL = "selection.schema.json"

// A selection document is either an explicit chunk list or a block cuboid:
//
//	{"chunks": [[0, 0], [0, 1]]}
//	{"cuboid": {"min": [0, 0, 0], "max": [31, 255, 15]}}
const documentSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "properties": {
    "chunks": {
      "type": "array",
      "minItems": 1,
      "items": {
        "type": "array",
        "minItems": 2,
        "maxItems": 2,
        "items": {"type": "integer", "minimum": -2147483648, "maximum": 2147483647}
      }
    },
    "cuboid": {
      "type": "object",
      "required": ["min", "max"],
      "properties": {
        "min": {"$ref": "#/$defs/vec3"},
        "max": {"$ref": "#/$defs/vec3"}
      },
      "additionalProperties": false
    }
  },
  "oneOf": [
    {"required": ["chunks"]},
    {"required": ["cuboid"]}
  ],
  "additionalProperties": false,
  "$defs": {
    "vec3": {
      "type": "array",
      "minItems": 3,
      "maxItems": 3,
      "items": {"type": "integer", "minimum": -2147483648, "maximum": 2147483647}
    }
  }
}`

var docSchema = jsonschema.MustCompileString(documentSchemaURL, documentSchema)

type document struct {
	Chunks [][2]int32 `json:"chunks,omitempty"`
	Cuboid *struct {
		Min [3]int `json:"min"`
		Max [3]int `json:"max"`
	} `json:"cuboid,omitempty"`
}

// ParseDocument validates raw against the selection schema and returns the
// selection it describes.
func ParseDocument(raw []byte) (Selection, error) {
	var v any
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(&v); err != nil {
		return nil, fmt.Errorf("selection: %w", err)
	}
	if err := docSchema.Validate(v); err != nil {
		return nil, fmt.Errorf("selection: %w", err)
	}
	var doc document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("selection: %w", err)
	}
	if doc.Cuboid != nil {
		return NewCuboid(doc.Cuboid.Min, doc.Cuboid.Max), nil
	}
	out := make(ChunkList, 0, len(doc.Chunks))
	for _, c := range doc.Chunks {
		out = append(out, chunk.At(c[0], c[1]))
	}
	return out, nil
}

// LoadDocument reads a selection document from path. A missing file is
// reported as ErrNoSelection.
func LoadDocument(path string) (Selection, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%s: %w", path, ErrNoSelection)
		}
		return nil, err
	}
	sel, err := ParseDocument(raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return sel, nil
}
