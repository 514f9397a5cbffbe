package cmd

import (
	"github.com/spf13/cobra"

	"github.com/cwbudde/gotla/internal/itf"
)

var initConstantsPath string

var initCmd = &cobra.Command{
	Use:   "init [module-file]",
	Short: "Compute a module's initial states",
	Long: `Init loads a module, resolves its CONSTANT values from --constants,
checks its ASSUMEs, computes Init's states, and prints them in Informal
Trace Format.

If no file is given, reads from stdin.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInit,
}

func init() {
	rootCmd.AddCommand(initCmd)
	initCmd.Flags().StringVar(&initConstantsPath, "constants", "", "JSON or YAML file mapping CONSTANT names to TLA+ expression text")
}

func runInit(cmd *cobra.Command, args []string) error {
	path := ""
	if len(args) > 0 {
		path = args[0]
	}
	src, err := readSource(path)
	if err != nil {
		return err
	}
	constants, err := loadConstants(initConstantsPath)
	if err != nil {
		return err
	}

	it := newInterpreter("init", 0)
	mod, err := it.LoadModule(src, constants)
	if err != nil {
		return err
	}

	states, err := it.InitialStates(mod)
	if err != nil {
		return err
	}

	enc, err := itf.EncodeStates(states, mod.Variables())
	if err != nil {
		return err
	}
	return printJSON(enc)
}
