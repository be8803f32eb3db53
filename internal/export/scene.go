package export

import (
	"encoding/json"
	"io"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/eduverse/internal/scene"
)

type Format string

const (
	JSON Format = "json"
	YAML Format = "yaml"
)

func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case JSON, "":
		return JSON, nil
	case YAML, "yml":
		return YAML, nil
	}
	return "", errors.Errorf("export: unknown format %q", s)
}

// Encode writes v, typically a scene or trace, in the given format.
func Encode(w io.Writer, f Format, v interface{}) error {
	switch f {
	case YAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return errors.Wrap(err, "export: yaml")
		}
		return enc.Close()
	default:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return errors.Wrap(enc.Encode(v), "export: json")
	}
}

// DecodeScene reads a scene written by Encode in JSON form. Group handles
// are rebuilt on the way in.
func DecodeScene(r io.Reader) (*scene.Scene, error) {
	var raw struct {
		Descriptor scene.Descriptor `json:"descriptor"`
		Root       *scene.Group     `json:"root"`
	}
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, errors.Wrap(err, "export: decode scene")
	}
	return scene.FromRoot(raw.Descriptor, raw.Root)
}
