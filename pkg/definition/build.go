package definition

import (
	"slices"
	"strings"
	"sync"

	"github.com/go-drift/bridge/pkg/bridge"
	"github.com/go-drift/bridge/pkg/convert"
	"github.com/go-drift/bridge/pkg/errors"
)

// Validator accepts or rejects a value before it reaches the instance.
type Validator func(value any) bool

var (
	validatorsMu sync.RWMutex
	validators   = map[string]Validator{
		"nonempty": func(v any) bool {
			switch s := v.(type) {
			case nil:
				return false
			case string:
				return strings.TrimSpace(s) != ""
			}
			return true
		},
		"nonnil": func(v any) bool { return v != nil },
		"number": func(v any) bool {
			switch convert.ToFloat(v).(type) {
			case float64:
				return true
			}
			return false
		},
	}
)

// RegisterValidator adds or replaces a named validator.
func RegisterValidator(name string, v Validator) {
	validatorsMu.Lock()
	defer validatorsMu.Unlock()
	validators[name] = v
}

// LookupValidator returns the validator registered under name.
func LookupValidator(name string) (Validator, bool) {
	validatorsMu.RLock()
	defer validatorsMu.RUnlock()
	v, ok := validators[name]
	return v, ok
}

// Validators returns the registered validator names, sorted.
func Validators() []string {
	validatorsMu.RLock()
	names := make([]string, 0, len(validators))
	for name := range validators {
		names = append(names, name)
	}
	validatorsMu.RUnlock()
	slices.Sort(names)
	return names
}

// Build turns a spec into a bridge definition for instances of type I.
// Accessors read and write attributes, effects mirror their props and events
// pass arguments straight through to their handlers.
func Build[I any](s *Spec) (*bridge.Definition[I], error) {
	if s == nil {
		return nil, errors.New("definition.Build", errors.KindDefinition, "", bridge.ErrNilDefinition)
	}
	if err := s.Validate(); err != nil {
		return nil, errors.New("definition.Build", errors.KindDefinition, s.Name, err)
	}

	def := &bridge.Definition[I]{
		RecreationTriggers: slices.Clone(s.RecreationTriggers),
		DebounceWindow:     s.Debounce,
	}
	for _, a := range s.Accessors {
		acc := bridge.Attr[I](a.Name)
		acc.DeepComparison = a.DeepComparison
		acc.AlwaysSet = a.AlwaysSet
		if a.Convert != "" {
			c, _ := convert.Lookup(a.Convert)
			acc.ConvertTo = c.To
			acc.ConvertFrom = c.From
		}
		if a.Validate != "" {
			v, _ := LookupValidator(a.Validate)
			acc.Validate = v
		}
		def.Accessors = append(def.Accessors, acc)
	}
	for _, e := range s.Effects {
		def.Effects = append(def.Effects, bridge.Effect[I]{PropNames: slices.Clone(e.Props)})
	}
	for _, e := range s.Events {
		ev := bridge.On[I](e.Name)
		ev.HandlerName = e.Handler
		if e.Exclusive.Enabled {
			ev.Exclusive = bridge.DefaultExclusive
			if e.Exclusive.Group != "" {
				ev.Exclusive = bridge.ExclusiveGroup(e.Exclusive.Group)
			}
		}
		def.Events = append(def.Events, ev)
	}
	return def, nil
}

// BuildNamed looks up name in the catalog and builds it.
func BuildNamed[I any](c *Catalog, name string) (*bridge.Definition[I], error) {
	s, ok := c.Lookup(name)
	if !ok {
		return nil, errors.New("definition.Build", errors.KindDefinition, name,
			&errors.ParseError{Source: c.Source, Msg: "no definition named " + name})
	}
	return Build[I](s)
}
