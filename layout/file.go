// Package layout loads keyboard layouts: the switches of a keyboard, their
// per-layer actions and how they are wired to expander pins.
//
// Layout documents are YAML, TOML or JSON. They are checked against an
// embedded JSON Schema first and then semantically, and are turned into a
// switch pool and a set of expander devices ready to be scanned.
package layout

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml"
	"github.com/santhosh-tekuri/jsonschema/v5"
	yaml "gopkg.in/yaml.v3"
)

// DefaultDebounce is the debounce limit used when a layout omits it.
const DefaultDebounce = 5

//go:embed layout.schema.json
var schemaJSON []byte

// Schema returns the JSON Schema layout documents are validated against.
func Schema() []byte { return schemaJSON }

var compiledSchema = mustCompileSchema()

func mustCompileSchema() *jsonschema.Schema {
	const url = "layout.schema.json"
	c := jsonschema.NewCompiler()
	if err := c.AddResource(url, bytes.NewReader(schemaJSON)); err != nil {
		panic(fmt.Sprintf("add layout schema: %v", err))
	}
	s, err := c.Compile(url)
	if err != nil {
		panic(fmt.Sprintf("compile layout schema: %v", err))
	}
	return s
}

// File is a decoded layout document.
type File struct {
	Name     string                `json:"name"`
	Debounce *int                  `json:"debounce"`
	Actions  map[string]ActionSpec `json:"actions"`
	Switches []SwitchSpec          `json:"switches"`
	Devices  []DeviceSpec          `json:"devices"`
}

type SwitchSpec struct {
	Name          string       `json:"name"`
	X             float64      `json:"x"`
	Y             float64      `json:"y"`
	W             *float64     `json:"w"`
	H             *float64     `json:"h"`
	R             *float64     `json:"r"`
	RX            *float64     `json:"rx"`
	RY            *float64     `json:"ry"`
	Shape         string       `json:"shape"`
	Actions       []ActionSpec `json:"actions"`
	DefaultAction *ActionSpec  `json:"default_action"`
	HostKey       string       `json:"host_key"`
}

type DeviceSpec struct {
	Chip   string   `json:"chip"`
	Offset uint8    `json:"offset"`
	Pins   []string `json:"pins"`
}

// ActionSpec is an action as written in a layout: either a bare string (a
// key name, "trans", "noop" or "@name" of a shared action) or an object
// with exactly one field set.
type ActionSpec struct {
	Name string `json:"-"`

	Key          string       `json:"key,omitempty"`
	Keys         []string     `json:"keys,omitempty"`
	Layer        *int         `json:"layer,omitempty"`
	DefaultLayer *int         `json:"default_layer,omitempty"`
	Multi        []ActionSpec `json:"multi,omitempty"`
	HoldTap      *HoldTapSpec `json:"hold_tap,omitempty"`
}

type HoldTapSpec struct {
	Timeout uint16     `json:"timeout"`
	Hold    ActionSpec `json:"hold"`
	Tap     ActionSpec `json:"tap"`
}

func (a *ActionSpec) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		return json.Unmarshal(data, &a.Name)
	}
	type plain ActionSpec
	return json.Unmarshal(data, (*plain)(a))
}

func (a ActionSpec) MarshalJSON() ([]byte, error) {
	if a.Name != "" {
		return json.Marshal(a.Name)
	}
	type plain ActionSpec
	return json.Marshal(plain(a))
}

// Format is a layout document encoding.
type Format string

const (
	JSON Format = "json"
	YAML Format = "yaml"
	TOML Format = "toml"
)

// FormatOf picks the format from a file extension.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return JSON, nil
	case ".yaml", ".yml":
		return YAML, nil
	case ".toml":
		return TOML, nil
	default:
		return "", fmt.Errorf("unsupported layout extension %q", filepath.Ext(path))
	}
}

// Load reads, validates and decodes the layout at path.
func Load(path string) (*File, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read layout: %w", err)
	}
	f, err := Parse(data, format)
	if err != nil {
		var ve *ValidationError
		if errors.As(err, &ve) {
			ve.Source = path
		}
		return nil, err
	}
	return f, nil
}

// Parse validates and decodes a layout document.
func Parse(data []byte, format Format) (*File, error) {
	doc, err := decode(data, format)
	if err != nil {
		return nil, err
	}
	// Every format is brought to its JSON form so one schema and one set of
	// struct tags serve all of them.
	normalized, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("normalize %s layout: %w", format, err)
	}
	var instance any
	if err := json.Unmarshal(normalized, &instance); err != nil {
		return nil, fmt.Errorf("normalize %s layout: %w", format, err)
	}
	if err := Validate(instance); err != nil {
		return nil, err
	}

	var f File
	if err := json.Unmarshal(normalized, &f); err != nil {
		return nil, fmt.Errorf("decode layout: %w", err)
	}
	return &f, nil
}

// Validate checks a decoded JSON document against the layout schema. The
// error is a *ValidationError listing every violation.
func Validate(instance any) error {
	if err := compiledSchema.Validate(instance); err != nil {
		return &ValidationError{Problems: schemaProblems(err)}
	}
	return nil
}

func decode(data []byte, format Format) (any, error) {
	var doc any
	switch format {
	case JSON:
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("parse json layout: %w", err)
		}
	case YAML:
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("parse yaml layout: %w", err)
		}
	case TOML:
		tree, err := toml.LoadBytes(data)
		if err != nil {
			return nil, fmt.Errorf("parse toml layout: %w", err)
		}
		doc = tree.ToMap()
	default:
		return nil, fmt.Errorf("unsupported layout format %q", format)
	}
	return doc, nil
}

// DebounceLimit returns the configured debounce limit or DefaultDebounce.
func (f *File) DebounceLimit() uint16 {
	if f.Debounce == nil {
		return DefaultDebounce
	}
	return uint16(*f.Debounce)
}
