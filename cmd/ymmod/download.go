package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/jhon-crow/ymmod/internal/update"
)

// runDownload handles the `ymmod download` subcommand: fetch the latest
// build's installer without patching anything.
func runDownload(args []string) error {
	output := ""
	verbose := false

	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "--help", "-h":
			printDownloadHelp()
			return nil
		case "--output", "-o":
			if i+1 >= len(args) {
				return fmt.Errorf("%s requires a value", args[i])
			}
			i++
			output = args[i]
		case "--verbose", "-v":
			verbose = true
		default:
			return fmt.Errorf("unknown flag: %s", args[i])
		}
	}

	setupLogging(verbose)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Minute)
	defer cancel()

	settings, err := loadSettings(ctx)
	if err != nil {
		return err
	}
	if output != "" {
		settings.Output = output
	}

	client := newClient(settings)

	log.Info("Fetching latest stable build information...")
	builds, err := client.LatestBuilds(ctx)
	if err != nil {
		return fmt.Errorf("fetch build information: %w", err)
	}
	build := &builds[0]
	log.WithFields(log.Fields{"path": build.Path, "version": build.Version}).Info("Found build")

	if err := os.MkdirAll(settings.Output, 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	destPath := filepath.Join(settings.Output, build.Version+".exe")

	log.WithField("path", destPath).Info("Downloading...")
	if err := update.NewDownloader(client).Download(ctx, build, destPath); err != nil {
		return fmt.Errorf("download build: %w", err)
	}

	fmt.Printf("Download complete: %s\n", destPath)
	return nil
}

func printDownloadHelp() {
	fmt.Println("Usage: ymmod download [options]")
	fmt.Println()
	fmt.Println("Download the latest Yandex Music installer without patching.")
	fmt.Println()
	fmt.Println("Options:")
	fmt.Println("  -o, --output DIR   Output directory (default: .versions)")
	fmt.Println("  -v, --verbose      Enable verbose logging")
	fmt.Println("  -h, --help         Show this help")
}
