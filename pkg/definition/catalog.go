// Package definition loads bridge definitions from YAML catalogs.
//
// A catalog is a versioned document naming one definition per instance kind:
//
//	version: v1.0.0
//	definitions:
//	  input:
//	    debounce: 50ms
//	    recreationTriggers: [type]
//	    accessors:
//	      - value
//	      - name: checked
//	        convert: bool
//	        deepComparison: true
//	    effects:
//	      - value
//	      - [min, max]
//	    events:
//	      - change
//	      - name: input
//	        handler: onValueInput
//	        exclusive: typing
//
// Accessors, effects and events given as bare names use the bridge
// shorthands: attribute accessors, mirror effects and pass-through events.
package definition

import (
	"fmt"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/go-drift/bridge/pkg/errors"
)

// Catalog is a decoded definition document.
type Catalog struct {
	Version     string `yaml:"version"`
	Definitions Specs  `yaml:"definitions"`

	// Source names the document in errors.
	Source string `yaml:"-"`
}

// Specs is an ordered list of named definitions, decoded from a mapping.
type Specs []*Spec

// Spec describes one definition.
type Spec struct {
	Name               string         `yaml:"-"`
	Line               int            `yaml:"-"`
	Accessors          []AccessorSpec `yaml:"accessors"`
	Effects            []EffectSpec   `yaml:"effects"`
	Events             []EventSpec    `yaml:"events"`
	RecreationTriggers []string       `yaml:"recreationTriggers"`
	Debounce           time.Duration  `yaml:"debounce"`
}

// AccessorSpec describes an attribute accessor.
type AccessorSpec struct {
	Name           string `yaml:"name"`
	Convert        string `yaml:"convert"`
	Validate       string `yaml:"validate"`
	DeepComparison bool   `yaml:"deepComparison"`
	AlwaysSet      bool   `yaml:"alwaysSet"`
	Line           int    `yaml:"-"`
}

// EffectSpec describes a mirror effect over one or more props.
type EffectSpec struct {
	Props []string
	Line  int
}

// EventSpec describes an event binding.
type EventSpec struct {
	Name      string    `yaml:"name"`
	Handler   string    `yaml:"handler"`
	Exclusive Exclusive `yaml:"exclusive"`
	Line      int       `yaml:"-"`
}

// Exclusive is an event's exclusive group. It decodes from true (the
// default group), false, or a group name.
type Exclusive struct {
	Enabled bool
	Group   string
}

// Lookup returns the spec with the given name.
func (c *Catalog) Lookup(name string) (*Spec, bool) {
	for _, s := range c.Definitions {
		if s.Name == name {
			return s, true
		}
	}
	return nil, false
}

// Names returns the definition names in document order.
func (c *Catalog) Names() []string {
	names := make([]string, len(c.Definitions))
	for i, s := range c.Definitions {
		names[i] = s.Name
	}
	return names
}

func (s *Specs) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.MappingNode {
		return nodeError(value, "definitions must be a mapping")
	}
	out := make(Specs, 0, len(value.Content)/2)
	for i := 0; i+1 < len(value.Content); i += 2 {
		key, body := value.Content[i], value.Content[i+1]
		spec := &Spec{}
		if body.Kind != yaml.ScalarNode || body.Tag != "!!null" {
			if err := body.Decode(spec); err != nil {
				return err
			}
		}
		spec.Name = key.Value
		spec.Line = key.Line
		out = append(out, spec)
	}
	*s = out
	return nil
}

func (a *AccessorSpec) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		*a = AccessorSpec{Name: value.Value}
	case yaml.MappingNode:
		type plain AccessorSpec
		var p plain
		if err := value.Decode(&p); err != nil {
			return err
		}
		*a = AccessorSpec(p)
	default:
		return nodeError(value, "accessor must be a name or a mapping")
	}
	a.Line = value.Line
	return nil
}

func (e *EffectSpec) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		e.Props = []string{value.Value}
	case yaml.SequenceNode:
		var props []string
		if err := value.Decode(&props); err != nil {
			return err
		}
		e.Props = props
	default:
		return nodeError(value, "effect must be a prop name or a list of prop names")
	}
	e.Line = value.Line
	return nil
}

func (e *EventSpec) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		*e = EventSpec{Name: value.Value}
	case yaml.MappingNode:
		type plain EventSpec
		var p plain
		if err := value.Decode(&p); err != nil {
			return err
		}
		*e = EventSpec(p)
	default:
		return nodeError(value, "event must be a name or a mapping")
	}
	e.Line = value.Line
	return nil
}

func (x *Exclusive) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return nodeError(value, "exclusive must be a boolean or a group name")
	}
	if value.Tag == "!!bool" {
		var b bool
		if err := value.Decode(&b); err != nil {
			return err
		}
		*x = Exclusive{Enabled: b}
		return nil
	}
	if value.Value == "" {
		return nodeError(value, "exclusive group name is empty")
	}
	*x = Exclusive{Enabled: true, Group: value.Value}
	return nil
}

func nodeError(n *yaml.Node, format string, args ...any) error {
	return &errors.ParseError{Line: n.Line, Msg: fmt.Sprintf(format, args...)}
}
