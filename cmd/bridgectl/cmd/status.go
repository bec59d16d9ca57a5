package cmd

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/go-drift/bridge/pkg/convert"
	"github.com/go-drift/bridge/pkg/definition"
)

func init() {
	RegisterCommand(&Command{
		Name:  "status",
		Short: "Show project status",
		Long: `Show the resolved bridgectl configuration for the current project.

Displays the module, the catalogs that validate would check, and the
converters and validators catalogs may reference.`,
		Usage: "bridgectl status",
		Run:   runStatus,
	})
}

func runStatus(args []string) error {
	cfg, err := resolve()
	if err != nil {
		return err
	}

	paths, err := catalogPaths(cfg, nil)
	if err != nil {
		return err
	}

	fmt.Fprintf(stdout, "Project: %s (%s)\n", cfg.ModuleName, cfg.ModulePath)
	fmt.Fprintf(stdout, "Definitions: %s\n", cfg.DefinitionsDir)
	fmt.Fprintf(stdout, "Catalog version: %s.x\n", definition.SupportedMajor)
	fmt.Fprintln(stdout)

	fmt.Fprintln(stdout, "Catalogs:")
	if len(paths) == 0 {
		fmt.Fprintln(stdout, "  (none)")
	}
	for _, p := range paths {
		rel, err := filepath.Rel(cfg.Root, p)
		if err != nil {
			rel = p
		}
		fmt.Fprintf(stdout, "  %s\n", rel)
	}
	fmt.Fprintln(stdout)

	fmt.Fprintf(stdout, "Converters: %s\n", strings.Join(convert.Names(), ", "))
	fmt.Fprintf(stdout, "Validators: %s\n", strings.Join(definition.Validators(), ", "))
	fmt.Fprintf(stdout, "Verbose: %v\n", cfg.Verbose)
	return nil
}
