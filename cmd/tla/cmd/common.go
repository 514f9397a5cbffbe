package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/goccy/go-yaml"

	"github.com/cwbudde/gotla/pkg/tla"
)

// readSource reads a module or expression file, or stdin when path is
// "" or "-".
func readSource(path string) (string, error) {
	if path == "" || path == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("reading stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", path, err)
	}
	return string(data), nil
}

// loadConstants reads a flat map of CONSTANT name to TLA+ expression
// source text from a JSON or YAML file, chosen by extension (YAML for
// .yaml/.yml, JSON otherwise). An empty path yields no constants, valid
// for modules that declare none.
func loadConstants(path string) (map[string]string, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading constants file %s: %w", path, err)
	}

	out := make(map[string]string)
	if strings.HasSuffix(path, ".yaml") || strings.HasSuffix(path, ".yml") {
		if err := yaml.Unmarshal(data, &out); err != nil {
			return nil, fmt.Errorf("parsing %s as YAML: %w", path, err)
		}
		return out, nil
	}
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("parsing %s as JSON: %w", path, err)
	}
	return out, nil
}

// newInterpreter builds a public-facade Interpreter honoring the
// --trace and --max-states flags shared across the state-enumeration
// subcommands.
func newInterpreter(loggerName string, maxStates int) *tla.Interpreter {
	return tla.New(tla.WithLogger(traceLogger(loggerName)), tla.WithMaxStates(maxStates))
}

func printJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
