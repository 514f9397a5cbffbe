package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// captureStdout runs fn with os.Stdout redirected to a pipe and returns
// everything written to it.
func captureStdout(t *testing.T, fn func() error) (string, error) {
	t.Helper()
	old := os.Stdout
	r, w, pipeErr := os.Pipe()
	if pipeErr != nil {
		t.Fatalf("os.Pipe: %v", pipeErr)
	}
	os.Stdout = w

	fnErr := fn()

	w.Close()
	os.Stdout = old

	var buf bytes.Buffer
	buf.ReadFrom(r)
	return buf.String(), fnErr
}

const counterModule = `
VARIABLE x
Init == x = 0
Next == x' = x + 1
`

func TestParseCmdPrintsRewrittenModule(t *testing.T) {
	path := filepath.Join(t.TempDir(), "counter.tla")
	if err := os.WriteFile(path, []byte(counterModule), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	out, err := captureStdout(t, func() error { return runParse(parseCmd, []string{path}) })
	if err != nil {
		t.Fatalf("runParse: %v\noutput: %s", err, out)
	}
	if !strings.Contains(out, "Init == x = 0") {
		t.Errorf("output missing rewritten Init, got:\n%s", out)
	}
	if !strings.Contains(out, "variables: [x]") {
		t.Errorf("output missing variable summary, got:\n%s", out)
	}
}

func TestInitCmdPrintsInitialStates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "counter.tla")
	if err := os.WriteFile(path, []byte(counterModule), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	oldConstants := initConstantsPath
	initConstantsPath = ""
	defer func() { initConstantsPath = oldConstants }()

	out, err := captureStdout(t, func() error { return runInit(initCmd, []string{path}) })
	if err != nil {
		t.Fatalf("runInit: %v\noutput: %s", err, out)
	}
	if !strings.Contains(out, `"#type": "int"`) || !strings.Contains(out, `"#value": 0`) {
		t.Errorf("output missing ITF-encoded x=0, got:\n%s", out)
	}
}

func TestNextCmdComputesSuccessorsFromStateFile(t *testing.T) {
	dir := t.TempDir()
	modPath := filepath.Join(dir, "counter.tla")
	if err := os.WriteFile(modPath, []byte(counterModule), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	statePath := filepath.Join(dir, "state.json")
	stateJSON := `{"x": {"#type": "int", "#value": 5}}`
	if err := os.WriteFile(statePath, []byte(stateJSON), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	oldConstants, oldState := nextConstantsPath, nextStatePath
	nextConstantsPath = ""
	nextStatePath = statePath
	defer func() { nextConstantsPath, nextStatePath = oldConstants, oldState }()

	out, err := captureStdout(t, func() error { return runNext(nextCmd, []string{modPath}) })
	if err != nil {
		t.Fatalf("runNext: %v\noutput: %s", err, out)
	}
	if !strings.Contains(out, `"#value": 6`) {
		t.Errorf("output missing successor x=6, got:\n%s", out)
	}
}

func TestReachableCmdRespectsMaxStates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "counter.tla")
	if err := os.WriteFile(path, []byte(counterModule), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	oldConstants, oldMax := reachableConstantsPath, reachableMaxStates
	reachableConstantsPath = ""
	reachableMaxStates = 3
	defer func() { reachableConstantsPath, reachableMaxStates = oldConstants, oldMax }()

	out, err := captureStdout(t, func() error { return runReachable(reachableCmd, []string{path}) })
	if err != nil {
		t.Fatalf("runReachable: %v\noutput: %s", err, out)
	}
	if strings.Count(out, `"#type": "int"`) != 3 {
		t.Errorf("expected exactly 3 states under --max-states=3, got:\n%s", out)
	}
	if !strings.Contains(out, `"edges"`) {
		t.Errorf("output missing edges array, got:\n%s", out)
	}
}

func TestQueryCmdExtractsPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "states.json")
	doc := `{"states": [{"x": {"#type": "int", "#value": 1}}, {"x": {"#type": "int", "#value": 2}}]}`
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	out, err := captureStdout(t, func() error { return runQuery(queryCmd, []string{"states.#.x.#value", path}) })
	if err != nil {
		t.Fatalf("runQuery: %v\noutput: %s", err, out)
	}
	if strings.TrimSpace(out) != `[1,2]` {
		t.Errorf("query output = %q, want [1,2]", strings.TrimSpace(out))
	}
}

func TestLoadConstantsJSONAndYAML(t *testing.T) {
	dir := t.TempDir()

	jsonPath := filepath.Join(dir, "consts.json")
	if err := os.WriteFile(jsonPath, []byte(`{"N": "3"}`), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	got, err := loadConstants(jsonPath)
	if err != nil {
		t.Fatalf("loadConstants(json): %v", err)
	}
	if got["N"] != "3" {
		t.Errorf("loadConstants(json) = %v, want N=3", got)
	}

	yamlPath := filepath.Join(dir, "consts.yaml")
	if err := os.WriteFile(yamlPath, []byte("N: \"3\"\n"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	got, err = loadConstants(yamlPath)
	if err != nil {
		t.Fatalf("loadConstants(yaml): %v", err)
	}
	if got["N"] != "3" {
		t.Errorf("loadConstants(yaml) = %v, want N=3", got)
	}
}
