package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/tidwall/gjson"
)

var queryCmd = &cobra.Command{
	Use:   "query <path> [itf-file]",
	Short: "Run a gjson path query over a previously produced ITF dump",
	Long: `Query runs a gjson path expression (https://github.com/tidwall/gjson#path-syntax)
against JSON produced by "init", "next" or "reachable", e.g.:

  tla reachable spec.tla --constants consts.json > states.json
  tla query 'states.#.x.#value' states.json

If no file is given, reads from stdin.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runQuery,
}

func init() {
	rootCmd.AddCommand(queryCmd)
}

func runQuery(cmd *cobra.Command, args []string) error {
	path := ""
	if len(args) > 1 {
		path = args[1]
	}
	data, err := readSource(path)
	if err != nil {
		return err
	}
	if !gjson.Valid(data) {
		return fmt.Errorf("query: input is not valid JSON")
	}
	result := gjson.Get(data, args[0])
	fmt.Fprintln(os.Stdout, result.String())
	return nil
}
