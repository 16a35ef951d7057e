package service

import (
	"fmt"
	"os"

	"github.com/spf13/pflag"
)

// parseArgs extracts --config from args and returns the remaining positional
// arguments. It reports false after printing the parse error.
func parseArgs(name string, args []string) (string, []string, bool) {
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.SetOutput(os.Stdout)
	configFile := fs.StringP("config", "c", "", "path to a YAML config file")
	if err := fs.Parse(args); err != nil {
		fmt.Printf("Error: %v\n", err)
		return "", nil, false
	}
	return *configFile, fs.Args(), true
}
