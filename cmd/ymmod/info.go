package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
)

// runInfo handles the `ymmod info` subcommand: list the builds the update
// server currently offers.
func runInfo(args []string) error {
	verbose := false

	for _, arg := range args {
		switch arg {
		case "--help", "-h":
			printInfoHelp()
			return nil
		case "--verbose", "-v":
			verbose = true
		default:
			return fmt.Errorf("unknown flag: %s", arg)
		}
	}

	setupLogging(verbose)

	ctx, cancel := context.WithTimeout(context.Background(), 1*time.Minute)
	defer cancel()

	settings, err := loadSettings(ctx)
	if err != nil {
		return err
	}

	log.Info("Fetching latest stable build information...")
	builds, err := newClient(settings).LatestBuilds(ctx)
	if err != nil {
		return fmt.Errorf("fetch build information: %w", err)
	}

	fmt.Println()
	fmt.Println("Available builds:")
	fmt.Println(strings.Repeat("=", 60))
	for i := range builds {
		build := &builds[i]
		fmt.Printf("Version:      %s\n", build.Version)
		fmt.Printf("File:         %s\n", build.Path)
		fmt.Printf("Size:         %d bytes\n", build.Size)
		fmt.Printf("SHA-512:      %s...\n", truncateHash(build.Hash, 32))
		if build.ReleaseDate != "" {
			fmt.Printf("Release Date: %s\n", build.ReleaseDate)
		}
		fmt.Println(strings.Repeat("-", 60))
	}
	return nil
}

func truncateHash(hash string, n int) string {
	if len(hash) <= n {
		return hash
	}
	return hash[:n]
}

func printInfoHelp() {
	fmt.Println("Usage: ymmod info")
	fmt.Println()
	fmt.Println("Show the builds currently offered by the update server.")
	fmt.Println()
	fmt.Println("Options:")
	fmt.Println("  -v, --verbose      Enable verbose logging")
	fmt.Println("  -h, --help         Show this help")
}
