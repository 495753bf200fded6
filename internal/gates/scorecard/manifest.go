package scorecard

import (
	"bytes"
	"errors"
	"io"

	"gopkg.in/yaml.v3"
)

type manifestObject struct {
	Kind     string `yaml:"kind"`
	Metadata struct {
		Name string `yaml:"name"`
	} `yaml:"metadata"`
}

// decodeObjects walks every document in a multi-document YAML stream.
// Documents that fail to decode are skipped rather than aborting the
// stream.
func decodeObjects(data []byte) []objectRef {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	var out []objectRef
	for {
		var obj manifestObject
		err := dec.Decode(&obj)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			break
		}
		if obj.Kind == "" {
			continue
		}
		out = append(out, objectRef{Kind: obj.Kind, Name: obj.Metadata.Name})
	}
	return out
}

// objectRef identifies one document in a manifest file.
type objectRef struct {
	Kind string
	Name string
}
