package definition

import (
	"bytes"
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"golang.org/x/mod/semver"
	"gopkg.in/yaml.v3"

	"github.com/go-drift/bridge/pkg/convert"
	"github.com/go-drift/bridge/pkg/errors"
)

// SupportedMajor is the catalog major version this package reads.
const SupportedMajor = "v1"

// Parse decodes and validates a catalog. source names the document in
// errors. Errors are *errors.BridgeError of KindDefinition wrapping an
// *errors.ParseError.
func Parse(data []byte, source string) (*Catalog, error) {
	var cat Catalog
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cat); err != nil && !stderrors.Is(err, io.EOF) {
		return nil, parseFailure(source, err)
	}
	cat.Source = source
	if err := cat.Validate(); err != nil {
		return nil, parseFailure(source, err)
	}
	return &cat, nil
}

// Load reads and parses the catalog at path.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.New("definition.Load", errors.KindDefinition, path, err)
	}
	return Parse(data, path)
}

// LoadDir parses every .yaml and .yml file in dir, in lexical order.
func LoadDir(dir string) ([]*Catalog, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.New("definition.LoadDir", errors.KindDefinition, dir, err)
	}
	var catalogs []*Catalog
	for _, entry := range entries {
		ext := filepath.Ext(entry.Name())
		if entry.IsDir() || (ext != ".yaml" && ext != ".yml") {
			continue
		}
		cat, err := Load(filepath.Join(dir, entry.Name()))
		if err != nil {
			return nil, err
		}
		catalogs = append(catalogs, cat)
	}
	return catalogs, nil
}

// Validate checks the catalog version and every definition in it.
func (c *Catalog) Validate() error {
	switch {
	case c.Version == "":
		return &errors.ParseError{Msg: "missing version"}
	case !semver.IsValid(c.Version):
		return &errors.ParseError{Msg: fmt.Sprintf("invalid version %q", c.Version)}
	case semver.Major(c.Version) != SupportedMajor:
		return &errors.ParseError{Msg: fmt.Sprintf("unsupported version %s (want %s.x)", c.Version, SupportedMajor)}
	}

	seen := make(map[string]bool, len(c.Definitions))
	for _, s := range c.Definitions {
		if seen[s.Name] {
			return &errors.ParseError{Line: s.Line, Msg: fmt.Sprintf("duplicate definition %q", s.Name)}
		}
		seen[s.Name] = true
		if err := s.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// Validate checks one definition for empty or duplicate names and unknown
// converters and validators.
func (s *Spec) Validate() error {
	if strings.TrimSpace(s.Name) == "" {
		return &errors.ParseError{Line: s.Line, Msg: "definition name is empty"}
	}
	if s.Debounce < 0 {
		return &errors.ParseError{Line: s.Line, Msg: fmt.Sprintf("%s: negative debounce", s.Name)}
	}

	accessors := make(map[string]bool, len(s.Accessors))
	for _, a := range s.Accessors {
		switch {
		case a.Name == "":
			return &errors.ParseError{Line: a.Line, Msg: fmt.Sprintf("%s: accessor name is empty", s.Name)}
		case accessors[a.Name]:
			return &errors.ParseError{Line: a.Line, Msg: fmt.Sprintf("%s: duplicate accessor %q", s.Name, a.Name)}
		}
		accessors[a.Name] = true
		if a.Convert != "" {
			if _, ok := convert.Lookup(a.Convert); !ok {
				return &errors.ParseError{Line: a.Line, Msg: fmt.Sprintf("%s: accessor %q: unknown converter %q", s.Name, a.Name, a.Convert)}
			}
		}
		if a.Validate != "" {
			if _, ok := LookupValidator(a.Validate); !ok {
				return &errors.ParseError{Line: a.Line, Msg: fmt.Sprintf("%s: accessor %q: unknown validator %q", s.Name, a.Name, a.Validate)}
			}
		}
	}

	for _, e := range s.Effects {
		if len(e.Props) == 0 || slices.Contains(e.Props, "") {
			return &errors.ParseError{Line: e.Line, Msg: fmt.Sprintf("%s: effect needs non-empty prop names", s.Name)}
		}
	}

	events := make(map[string]bool, len(s.Events))
	for _, e := range s.Events {
		switch {
		case e.Name == "":
			return &errors.ParseError{Line: e.Line, Msg: fmt.Sprintf("%s: event name is empty", s.Name)}
		case events[e.Name]:
			return &errors.ParseError{Line: e.Line, Msg: fmt.Sprintf("%s: duplicate event %q", s.Name, e.Name)}
		}
		events[e.Name] = true
	}

	if slices.Contains(s.RecreationTriggers, "") {
		return &errors.ParseError{Line: s.Line, Msg: fmt.Sprintf("%s: empty recreation trigger", s.Name)}
	}
	return nil
}

func parseFailure(source string, err error) error {
	var pe *errors.ParseError
	if !stderrors.As(err, &pe) {
		pe = &errors.ParseError{Msg: err.Error()}
	}
	pe.Source = source
	return errors.New("definition.Parse", errors.KindDefinition, source, pe)
}
