package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/cwbudde/gotla/internal/itf"
)

var (
	nextConstantsPath string
	nextStatePath     string
)

var nextCmd = &cobra.Command{
	Use:   "next [module-file]",
	Short: "Compute the successors of one state under Next",
	Long: `Next loads a module, resolves its CONSTANT values from --constants,
reads a single state (in Informal Trace Format, as produced by "init",
"next" or "reachable") from --state, computes Next's successors of it,
and prints them in Informal Trace Format.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runNext,
}

func init() {
	rootCmd.AddCommand(nextCmd)
	nextCmd.Flags().StringVar(&nextConstantsPath, "constants", "", "JSON or YAML file mapping CONSTANT names to TLA+ expression text")
	nextCmd.Flags().StringVar(&nextStatePath, "state", "", "ITF-encoded state JSON file to compute successors of (required)")
	nextCmd.MarkFlagRequired("state")
}

func runNext(cmd *cobra.Command, args []string) error {
	path := ""
	if len(args) > 0 {
		path = args[0]
	}
	src, err := readSource(path)
	if err != nil {
		return err
	}
	constants, err := loadConstants(nextConstantsPath)
	if err != nil {
		return err
	}

	stateData, err := os.ReadFile(nextStatePath)
	if err != nil {
		return fmt.Errorf("reading state file %s: %w", nextStatePath, err)
	}
	var rawState map[string]interface{}
	if err := json.Unmarshal(stateData, &rawState); err != nil {
		return fmt.Errorf("parsing state file %s: %w", nextStatePath, err)
	}

	it := newInterpreter("next", 0)
	mod, err := it.LoadModule(src, constants)
	if err != nil {
		return err
	}

	s, err := itf.DecodeState(rawState, mod.Variables())
	if err != nil {
		return err
	}

	succs, err := it.NextStates(mod, s)
	if err != nil {
		return err
	}

	enc, err := itf.EncodeStates(succs, mod.Variables())
	if err != nil {
		return err
	}
	return printJSON(enc)
}
