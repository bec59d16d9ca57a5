package cmd

import (
	"fmt"
	"strings"

	"github.com/go-drift/bridge/pkg/bridge"
	"github.com/go-drift/bridge/pkg/definition"
)

func init() {
	RegisterCommand(&Command{
		Name:  "describe",
		Short: "Describe the definitions in a catalog",
		Long: `Describe the definitions in a catalog.

Prints each definition's accessors with their comparison policy and
converter, its effects, its events with the handler prop each one reads and
its exclusive group, and its recreation triggers. Pass a definition name to
describe only that definition.`,
		Usage: "bridgectl describe <catalog.yaml> [definition]",
		Run:   runDescribe,
	})
}

func runDescribe(args []string) error {
	if len(args) == 0 || len(args) > 2 {
		return fmt.Errorf("usage: bridgectl describe <catalog.yaml> [definition]")
	}
	cat, err := definition.Load(args[0])
	if err != nil {
		return err
	}

	specs := cat.Definitions
	if len(args) == 2 {
		s, ok := cat.Lookup(args[1])
		if !ok {
			return fmt.Errorf("%s: no definition named %q", args[0], args[1])
		}
		specs = definition.Specs{s}
	}

	fmt.Fprintf(stdout, "Catalog: %s (version %s)\n", args[0], cat.Version)
	for _, s := range specs {
		describeSpec(s)
	}
	return nil
}

func describeSpec(s *definition.Spec) {
	fmt.Fprintln(stdout)
	fmt.Fprintf(stdout, "%s:\n", s.Name)
	if s.Debounce > 0 {
		fmt.Fprintf(stdout, "  debounce: %s\n", s.Debounce)
	}
	if len(s.RecreationTriggers) > 0 {
		fmt.Fprintf(stdout, "  recreate on: %s\n", strings.Join(s.RecreationTriggers, ", "))
	}

	if len(s.Accessors) > 0 {
		fmt.Fprintln(stdout, "  accessors:")
		for _, a := range s.Accessors {
			fmt.Fprintf(stdout, "    %-16s %s\n", a.Name, accessorTraits(a))
		}
	}
	if len(s.Effects) > 0 {
		fmt.Fprintln(stdout, "  effects:")
		for _, e := range s.Effects {
			fmt.Fprintf(stdout, "    mirror %s\n", strings.Join(e.Props, ", "))
		}
	}
	if len(s.Events) > 0 {
		fmt.Fprintln(stdout, "  events:")
		for _, e := range s.Events {
			handler := e.Handler
			if handler == "" {
				handler = bridge.HandlerNameFor(e.Name)
			}
			line := fmt.Sprintf("    %-16s -> %s", e.Name, handler)
			if e.Exclusive.Enabled {
				group := e.Exclusive.Group
				if group == "" {
					group = "default"
				}
				line += fmt.Sprintf(" (exclusive: %s)", group)
			}
			fmt.Fprintln(stdout, line)
		}
	}
}

func accessorTraits(a definition.AccessorSpec) string {
	compare := "identity"
	switch {
	case a.AlwaysSet:
		compare = "always set"
	case a.DeepComparison:
		compare = "deep"
	}
	traits := []string{compare}
	if a.Convert != "" {
		traits = append(traits, "convert="+a.Convert)
	}
	if a.Validate != "" {
		traits = append(traits, "validate="+a.Validate)
	}
	return strings.Join(traits, " ")
}
