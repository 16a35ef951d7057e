package main

import (
	"bytes"
	"io"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func captureOutput(f func()) string {
	var buf bytes.Buffer
	oldStdout := os.Stdout
	r, w, _ := os.Pipe()
	os.Stdout = w

	done := make(chan bool)
	go func() {
		_, _ = io.Copy(&buf, r)
		done <- true
	}()

	f()
	_ = w.Close()
	os.Stdout = oldStdout
	<-done

	return buf.String()
}

func callMain() (int, string) {
	exitCode := -1
	oldExit := exit
	defer func() { exit = oldExit }()
	exit = func(code int) {
		exitCode = code
	}

	output := captureOutput(RealMain)
	return exitCode, output
}

func TestCommands(t *testing.T) {
	// Save original args
	oldArgs := os.Args
	defer func() { os.Args = oldArgs }()

	tests := []struct {
		name           string
		args           []string
		expectedExit   int
		expectedOutput string
	}{
		{
			name:           "no arguments",
			args:           []string{"blogspot"},
			expectedExit:   1,
			expectedOutput: "Usage: blogspot <command>",
		},
		{
			name:           "help command",
			args:           []string{"blogspot", "help"},
			expectedExit:   0,
			expectedOutput: "Usage: blogspot <command> [options]",
		},
		{
			name:           "version command",
			args:           []string{"blogspot", "version"},
			expectedExit:   0,
			expectedOutput: "blogspot version " + CliVersion,
		},
		{
			name:           "unknown command",
			args:           []string{"blogspot", "unknown"},
			expectedExit:   1,
			expectedOutput: "Unknown command: unknown",
		},
		{
			name:           "db help",
			args:           []string{"blogspot", "db", "help"},
			expectedExit:   0,
			expectedOutput: "Usage: blogspot db <command>",
		},
		{
			name:           "restore without file",
			args:           []string{"blogspot", "db", "restore"},
			expectedExit:   1,
			expectedOutput: "Error: backup file path required for restore",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			os.Args = tt.args

			exitCode, output := callMain()

			assert.Contains(t, output, tt.expectedOutput)
			assert.Equal(t, tt.expectedExit, exitCode)
		})
	}
}

func TestPrintHelp(t *testing.T) {
	output := captureOutput(func() {
		printHelp()
	})

	assert.Contains(t, output, "Usage: blogspot")
	assert.Contains(t, output, "help")
	assert.Contains(t, output, "version")
	assert.Contains(t, output, "serve [--config")
	assert.Contains(t, output, "init")
	assert.Contains(t, output, "clean")
	assert.Contains(t, output, "backup")
	assert.Contains(t, output, "restore")
}
