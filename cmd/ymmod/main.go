package main

import (
	"bufio"
	"fmt"
	"os"
	"runtime"
)

// Version will be set at build time via -ldflags
var Version = "v0.1.0"

func main() {
	exitCode := run()
	if shouldWaitBeforeExit() {
		waitForEnter()
	}
	os.Exit(exitCode)
}

func run() int {
	// Handle subcommands
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--version":
			fmt.Printf("ymmod %s\n", Version)
			fmt.Println("Yandex Music desktop app patcher")
			return 0
		case "--help", "-h", "help":
			printUsage()
			return 0
		case "patch":
			if err := runPatch(os.Args[2:]); err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				return 1
			}
			return 0
		case "download":
			if err := runDownload(os.Args[2:]); err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				return 1
			}
			return 0
		case "info":
			if err := runInfo(os.Args[2:]); err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				return 1
			}
			return 0
		default:
			fmt.Fprintf(os.Stderr, "Error: unknown command: %s\n\n", os.Args[1])
			printUsage()
			return 1
		}
	}

	// Default: patch with defaults, matching what double-click users expect
	fmt.Println("No command specified, defaulting to 'patch' command...")
	fmt.Println()
	if err := runPatch(nil); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func printUsage() {
	fmt.Println("ymmod - Yandex Music desktop app patcher")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  ymmod [patch] [options]     Download, extract, and patch the latest build")
	fmt.Println("  ymmod download [options]    Download the latest installer only")
	fmt.Println("  ymmod info                  Show available builds")
	fmt.Println("  ymmod --version             Show version information")
	fmt.Println()
	fmt.Println("Options:")
	fmt.Println("  -o, --output DIR            Output directory (default: .versions)")
	fmt.Println("  --auto-devtools             Open devtools when the patched app starts (patch only)")
	fmt.Println("  -v, --verbose               Enable verbose logging")
	fmt.Println()
	fmt.Println("Settings can also be set in a ymmod.lua file in the working directory;")
	fmt.Println("command-line flags take precedence.")
}

// waitForEnter blocks until the user presses Enter. Used when the program was
// started by double-clicking the exe, so the console window does not vanish
// before the output can be read.
func waitForEnter() {
	fmt.Print("\nPress Enter to exit...")
	reader := bufio.NewReader(os.Stdin)
	_, _ = reader.ReadString('\n')
}

// shouldWaitBeforeExit reports whether the program was likely launched
// outside an interactive terminal. Only Windows double-click launches leave
// all the usual terminal environment variables unset.
func shouldWaitBeforeExit() bool {
	if runtime.GOOS != "windows" {
		return false
	}
	for _, name := range []string{"TERM", "SHELL", "WT_SESSION", "PROMPT"} {
		if _, ok := os.LookupEnv(name); ok {
			return false
		}
	}
	return true
}
