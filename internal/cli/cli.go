// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// cli.go - Command-line argument parsing for studylab.
//
// studylab runs the full TUI by default. A handful of subcommands
// cover plain-terminal use:
//
//   studylab             Launch the TUI
//   studylab ask         Interactive tutoring REPL (no TUI)
//   studylab version     Print version information
//   studylab help        Show usage
//
// Global flags:
//   --url URL            Override the backend base URL
//   -q, --quiet          Minimal output

package cli

import (
	"fmt"
	"os"
	"strings"
)

// Version information, synced from main at startup.
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// =============================================================================
// COMMANDS
// =============================================================================

// Command identifies the requested top-level command.
type Command int

const (
	CmdTUI Command = iota
	CmdAsk
	CmdVersion
	CmdHelp
)

// Args holds parsed global flags.
type Args struct {
	// URL overrides the configured backend base URL
	URL string

	// Quiet suppresses the welcome banner and hints
	Quiet bool

	// Raw is everything after the command name
	Raw []string
}

// Parse reads os.Args and returns the command to run.
func Parse() (Command, Args) {
	raw := os.Args[1:]

	var args Args
	remaining := make([]string, 0, len(raw))
	i := 0
	for i < len(raw) {
		switch arg := raw[i]; arg {
		case "--url":
			if i+1 < len(raw) {
				args.URL = raw[i+1]
				i++
			}
		case "-q", "--quiet":
			args.Quiet = true
		default:
			if v, ok := strings.CutPrefix(arg, "--url="); ok {
				args.URL = v
			} else {
				remaining = append(remaining, arg)
			}
		}
		i++
	}

	if len(remaining) == 0 {
		return CmdTUI, args
	}

	cmd := strings.ToLower(remaining[0])
	args.Raw = remaining[1:]

	switch cmd {
	case "tui":
		return CmdTUI, args
	case "ask", "chat":
		return CmdAsk, args
	case "version", "-v", "--version":
		return CmdVersion, args
	case "help", "-h", "--help":
		return CmdHelp, args
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", cmd)
		return CmdHelp, args
	}
}

// =============================================================================
// USAGE
// =============================================================================

const usageText = `studylab - terminal client for the StudyLab tutoring server

Usage:
  studylab [flags]            Launch the TUI
  studylab ask [flags]        Interactive tutoring REPL
  studylab version            Print version information
  studylab help               Show this help

Flags:
  --url URL                   Override the backend base URL
  -q, --quiet                 Minimal output

Environment:
  STUDYLAB_API_URL            Backend base URL (overrides config file)

Config file: ~/.studylab/config.toml

Version: %s
`

// PrintUsage prints the usage/help text.
func PrintUsage() {
	fmt.Printf(usageText, Version)
}

// PrintVersion prints version information.
func PrintVersion() {
	fmt.Printf("studylab version %s\n", Version)
	fmt.Printf("  Git commit: %s\n", GitCommit)
	fmt.Printf("  Build date: %s\n", BuildDate)
}
