package main

import (
	"fmt"
	"os"
	"strings"

	"blogspot/service"
)

// CliVersion is reported by the version command.
const CliVersion = "1.0.0"

var exit = os.Exit

func main() {
	RealMain()
}

// RealMain runs the command named in os.Args and exits with its status.
func RealMain() {
	exit(run(os.Args[1:]))
}

func run(args []string) int {
	if len(args) < 1 {
		printHelp()
		return 1
	}

	switch strings.ToLower(args[0]) {
	case "help":
		printHelp()
		return 0
	case "version":
		fmt.Printf("blogspot version %s\n", CliVersion)
		return 0
	case "serve":
		return service.RunAppServer(args[1:])
	case "db":
		return service.HandleCommand(args[1:])
	default:
		fmt.Printf("Unknown command: %s\n\n", args[0])
		printHelp()
		return 1
	}
}

func printHelp() {
	helpText := `Usage: blogspot <command> [options]
Commands:
  help                           Display this help message.
  version                        Show version information.
  serve [--config <file>]        Run the Blog Spot API server.
  db <init|clean|backup|restore <file>> [--config <file>]
                                 Maintain the badger database.
`
	fmt.Println(helpText)
}
