package cmd

import (
	"fmt"
	"os"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"
)

var (
	// Version information (set by build flags)
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var (
	verbose bool
	trace   bool
)

var rootCmd = &cobra.Command{
	Use:   "tla",
	Short: "A TLA+ subset interpreter",
	Long: `tla parses, rewrites and evaluates a practical subset of TLA+:
boolean, integer, set, function/record and sequence operators, the
quantifiers, CASE/IF/LET/CHOOSE, and Init/Next/Reachable state
enumeration over a module's declared variables.`,
	Version: Version,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf(`{{with .Name}}{{printf "%%s " .}}{{end}}{{printf "version %%s" .Version}}
Commit: %s
Built:  %s
`, GitCommit, BuildDate))

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().BoolVar(&trace, "trace", false, "emit Debug-level trace logging from the evaluator and state enumerators")
}

// traceLogger returns a Debug-level logger when --trace is set, and a
// null logger otherwise, matching the public facade's own default.
func traceLogger(name string) hclog.Logger {
	if !trace {
		return hclog.NewNullLogger()
	}
	return hclog.New(&hclog.LoggerOptions{
		Name:   name,
		Level:  hclog.Debug,
		Output: os.Stderr,
	})
}

func exitWithError(msg string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+msg+"\n", args...)
	os.Exit(1)
}
