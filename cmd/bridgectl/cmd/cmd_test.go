package cmd

import (
	"bytes"
	stderrors "errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-drift/bridge/pkg/errors"
)

const goodCatalog = `version: v1.0.0
definitions:
  input:
    debounce: 20ms
    recreationTriggers: [type]
    accessors:
      - value
      - name: checked
        convert: bool
        deepComparison: true
    effects: [value]
    events:
      - change
      - name: input
        handler: onValueInput
        exclusive: true
`

// project creates a module in a temp dir, makes it the working directory and
// captures command output.
func project(t *testing.T, files map[string]string) (out, errOut *bytes.Buffer) {
	t.Helper()
	root := t.TempDir()
	files["go.mod"] = "module example.com/ui\n"
	for name, body := range files {
		path := filepath.Join(root, name)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(root); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chdir(wd) })
	t.Setenv("BRIDGECTL_DIR", "")
	t.Setenv("BRIDGECTL_VERBOSE", "")

	out, errOut = &bytes.Buffer{}, &bytes.Buffer{}
	oldOut, oldErr := stdout, stderr
	stdout, stderr = out, errOut
	t.Cleanup(func() {
		stdout, stderr = oldOut, oldErr
		errors.SetHandler(nil)
	})
	return out, errOut
}

func TestValidateDefinitionsDir(t *testing.T) {
	out, errOut := project(t, map[string]string{
		"definitions/good.yaml": goodCatalog,
		"definitions/bad.yml":   "version: v1.0.0\ndefinitions:\n  a:\n    events: [x, x]\n",
		"definitions/notes.txt": "ignored",
	})

	err := run([]string{"validate"})
	if !stderrors.Is(err, errInvalid) {
		t.Fatalf("validate = %v, want errInvalid", err)
	}
	if !strings.Contains(out.String(), "good.yaml (1 definitions)") {
		t.Errorf("stdout missing good catalog:\n%s", out)
	}
	if !strings.Contains(errOut.String(), "[bridge error]") || !strings.Contains(errOut.String(), "duplicate event") {
		t.Errorf("stderr missing the reported error:\n%s", errOut)
	}
}

func TestValidateExplicitArgsAndConfigFiles(t *testing.T) {
	out, _ := project(t, map[string]string{
		"ui/a.yaml":   goodCatalog,
		"bridge.yaml": "definitions:\n  files: [ui/a.yaml]\n",
	})
	if err := run([]string{"validate"}); err != nil {
		t.Fatalf("validate = %v", err)
	}
	if !strings.Contains(out.String(), filepath.Join("ui", "a.yaml")) {
		t.Errorf("configured file not validated:\n%s", out)
	}

	out.Reset()
	if err := run([]string{"validate", "ui/a.yaml"}); err != nil {
		t.Fatalf("validate ui/a.yaml = %v", err)
	}
	if !strings.HasPrefix(out.String(), "ok    ui/a.yaml") {
		t.Errorf("stdout = %q", out)
	}
}

func TestValidateNoCatalogs(t *testing.T) {
	out, _ := project(t, map[string]string{})
	if err := run([]string{"validate"}); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "No catalogs found") {
		t.Errorf("stdout = %q", out)
	}
}

func TestDescribe(t *testing.T) {
	out, _ := project(t, map[string]string{"defs.yaml": goodCatalog})
	if err := run([]string{"describe", "defs.yaml"}); err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{
		"Catalog: defs.yaml (version v1.0.0)",
		"input:",
		"debounce: 20ms",
		"recreate on: type",
		"checked          deep convert=bool",
		"mirror value",
		"change           -> onChange",
		"input            -> onValueInput (exclusive: default)",
	} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("describe output missing %q:\n%s", want, out)
		}
	}

	if err := run([]string{"describe", "defs.yaml", "missing"}); err == nil {
		t.Error("describe of a missing definition should fail")
	}
	if err := run([]string{"describe"}); err == nil {
		t.Error("describe without a catalog should fail")
	}
}

func TestStatus(t *testing.T) {
	out, _ := project(t, map[string]string{"definitions/ui.yaml": goodCatalog})
	if err := run([]string{"status"}); err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{
		"Project: ui (example.com/ui)",
		filepath.Join("definitions", "ui.yaml"),
		"Converters: bool, color, duration, float, int, string",
		"Catalog version: v1.x",
	} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("status output missing %q:\n%s", want, out)
		}
	}
}

func TestRootCommand(t *testing.T) {
	out, errOut := project(t, map[string]string{})

	if err := run(nil); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "validate") {
		t.Error("help does not list commands")
	}

	out.Reset()
	if err := run([]string{"--version"}); err != nil || !strings.Contains(out.String(), Version) {
		t.Errorf("--version = %v, %q", err, out)
	}

	out.Reset()
	if err := run([]string{"describe", "--help"}); err != nil || !strings.Contains(out.String(), "bridgectl describe") {
		t.Errorf("describe --help = %v, %q", err, out)
	}

	if err := run([]string{"frobnicate"}); err == nil || !strings.Contains(errOut.String(), "unknown command") {
		t.Errorf("unknown command = %v, stderr %q", err, errOut)
	}
}
