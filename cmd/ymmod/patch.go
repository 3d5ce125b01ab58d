package main

import (
	"context"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/jhon-crow/ymmod/internal/extract"
	"github.com/jhon-crow/ymmod/internal/patch"
	"github.com/jhon-crow/ymmod/internal/pipeline"
	"github.com/jhon-crow/ymmod/internal/platform"
	"github.com/jhon-crow/ymmod/internal/update"
)

// runPatch handles the `ymmod patch` subcommand: fetch the latest build,
// download it, and produce a patched application directory.
func runPatch(args []string) error {
	output := ""
	autoDevtools := false
	verbose := false

	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "--help", "-h":
			printPatchHelp()
			return nil
		case "--output", "-o":
			if i+1 >= len(args) {
				return fmt.Errorf("%s requires a value", args[i])
			}
			i++
			output = args[i]
		case "--auto-devtools":
			autoDevtools = true
		case "--verbose", "-v":
			verbose = true
		default:
			return fmt.Errorf("unknown flag: %s", args[i])
		}
	}

	setupLogging(verbose)

	// Download plus extraction of a ~200MB installer can take a while on a
	// slow link.
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Minute)
	defer cancel()

	settings, err := loadSettings(ctx)
	if err != nil {
		return err
	}
	if output != "" {
		settings.Output = output
	}
	if autoDevtools {
		settings.AutoDevtools = true
	}

	client := newClient(settings)

	log.Info("Fetching latest stable build information...")
	builds, err := client.LatestBuilds(ctx)
	if err != nil {
		return fmt.Errorf("fetch build information: %w", err)
	}
	build := &builds[0]
	log.WithFields(log.Fields{"path": build.Path, "version": build.Version}).Info("Found build")

	info, err := platform.NewDetector().Detect(ctx)
	if err != nil {
		return fmt.Errorf("detect platform: %w", err)
	}

	p := pipeline.New(
		settings.Output,
		update.NewDownloader(client),
		extract.NewExtractor(info),
		pipeline.WithLogger(&logrusLogger{}),
		pipeline.WithProgress(printProgress),
		pipeline.WithPatchOptions(patch.Options{AutoDevtools: settings.AutoDevtools}),
	)

	modDir, err := p.Run(ctx, build)
	if err != nil {
		return err
	}

	fmt.Println()
	fmt.Printf("Successfully patched Yandex Music v%s\n", build.Version)
	fmt.Printf("Output directory: %s\n", modDir)
	return nil
}

// printProgress renders the pipeline's percent curve as a plain text line.
func printProgress(percent int, message string) {
	fmt.Printf("[%3d%%] %s\n", percent, message)
}

func printPatchHelp() {
	fmt.Println("Usage: ymmod patch [options]")
	fmt.Println()
	fmt.Println("Download the latest Yandex Music build, extract it, and produce a")
	fmt.Println("patched copy of the application sources.")
	fmt.Println()
	fmt.Println("Options:")
	fmt.Println("  -o, --output DIR   Output directory (default: .versions)")
	fmt.Println("  --auto-devtools    Open devtools when the patched app starts")
	fmt.Println("  -v, --verbose      Enable verbose logging")
	fmt.Println("  -h, --help         Show this help")
}
