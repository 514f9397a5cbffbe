package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/cwbudde/gotla/internal/ast"
	"github.com/cwbudde/gotla/internal/errors"
	"github.com/cwbudde/gotla/internal/module"
	"github.com/cwbudde/gotla/internal/parser"
	"github.com/cwbudde/gotla/internal/rewriter"
)

var parseDumpRaw bool

var parseCmd = &cobra.Command{
	Use:   "parse [module-file]",
	Short: "Parse and rewrite a module, printing its normalized form and summary",
	Long: `Parse parses a module, runs the fixpoint syntax rewrite (multi-binder
quantifier splitting and \in/\notin desugaring), and prints the
rewritten module's concrete syntax plus a summary of its constants,
variables and definitions.

If no file is given, reads from stdin.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runParse,
}

func init() {
	rootCmd.AddCommand(parseCmd)
	parseCmd.Flags().BoolVar(&parseDumpRaw, "raw", false, "also print the tree before rewriting")
}

func runParse(cmd *cobra.Command, args []string) error {
	path := ""
	if len(args) > 0 {
		path = args[0]
	}
	src, err := readSource(path)
	if err != nil {
		return err
	}

	raw := parser.New(src).ParseModule()
	if errNode := ast.FindFirstError(raw); errNode != nil {
		return errors.New(errors.ParseError, errNode.Pos, "%s", errNode.Err).WithSource(src, path)
	}

	if parseDumpRaw {
		fmt.Println("Before rewrite:")
		fmt.Println(ast.Sprint(raw))
		fmt.Println()
	}

	rewritten, err := rewriter.New().Rewrite(raw)
	if err != nil {
		return err
	}

	fmt.Println("After rewrite:")
	fmt.Println(ast.Sprint(rewritten))
	fmt.Println()

	mod, err := module.Extract(rewritten)
	if err != nil {
		return err
	}
	printSummary(mod)
	return nil
}

func printSummary(mod *module.Module) {
	fmt.Fprintln(os.Stdout, "Summary:")
	fmt.Fprintf(os.Stdout, "  constants: %v\n", mod.Constants)
	fmt.Fprintf(os.Stdout, "  variables: %v\n", mod.Variables)

	ops := make([]string, 0, len(mod.Ops))
	for name := range mod.Ops {
		ops = append(ops, name)
	}
	fmt.Fprintf(os.Stdout, "  operators: %v\n", ops)

	funcs := make([]string, 0, len(mod.Funcs))
	for name := range mod.Funcs {
		funcs = append(funcs, name)
	}
	fmt.Fprintf(os.Stdout, "  functions: %v\n", funcs)

	fmt.Fprintf(os.Stdout, "  ASSUMEs: %d\n", len(mod.Assumes))
	fmt.Fprintf(os.Stdout, "  Next actions: %d\n", len(mod.Actions))
}
