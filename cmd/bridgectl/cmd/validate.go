package cmd

import (
	stderrors "errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/go-drift/bridge/cmd/bridgectl/internal/config"
	"github.com/go-drift/bridge/pkg/definition"
	"github.com/go-drift/bridge/pkg/errors"
)

func init() {
	RegisterCommand(&Command{
		Name:  "validate",
		Short: "Validate definition catalogs",
		Long: `Validate definition catalogs.

With no arguments, validates the catalogs listed under definitions.files in
bridge.yaml, or every .yaml/.yml file in the definitions directory
(default ./definitions, overridden by BRIDGECTL_DIR).

Each catalog is checked for a supported version, unique accessor and event
names, known converters and validators, and well-formed effects.`,
		Usage: "bridgectl validate [catalog.yaml...]",
		Run:   runValidate,
	})
}

// errInvalid is returned when at least one catalog failed validation.
var errInvalid = stderrors.New("invalid catalogs")

func runValidate(args []string) error {
	cfg, err := resolve()
	if err != nil {
		return err
	}
	useLogHandler(cfg.Verbose)

	paths, err := catalogPaths(cfg, args)
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		fmt.Fprintf(stdout, "No catalogs found in %s\n", cfg.DefinitionsDir)
		return nil
	}

	failed := 0
	for _, path := range paths {
		cat, err := definition.Load(path)
		if err != nil {
			failed++
			report(err)
			continue
		}
		fmt.Fprintf(stdout, "ok    %s (%d definitions)\n", path, len(cat.Definitions))
	}
	if failed > 0 {
		return fmt.Errorf("%w: %d of %d", errInvalid, failed, len(paths))
	}
	return nil
}

func resolve() (*config.Resolved, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, err
	}
	root, err := config.FindProjectRoot(wd)
	if err != nil {
		return nil, err
	}
	return config.Resolve(root)
}

// catalogPaths returns args if given, else the configured files, else every
// catalog in the definitions directory. A missing directory yields none.
func catalogPaths(cfg *config.Resolved, args []string) ([]string, error) {
	if len(args) > 0 {
		return args, nil
	}
	if len(cfg.Files) > 0 {
		return cfg.Files, nil
	}
	entries, err := os.ReadDir(cfg.DefinitionsDir)
	if err != nil {
		if stderrors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	var paths []string
	for _, entry := range entries {
		ext := filepath.Ext(entry.Name())
		if entry.IsDir() || (ext != ".yaml" && ext != ".yml") {
			continue
		}
		paths = append(paths, filepath.Join(cfg.DefinitionsDir, entry.Name()))
	}
	slices.Sort(paths)
	return paths, nil
}

func report(err error) {
	var be *errors.BridgeError
	if stderrors.As(err, &be) {
		errors.Report(be)
		return
	}
	errors.Report(errors.New("bridgectl", errors.KindUnknown, "", err))
}
