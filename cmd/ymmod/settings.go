package main

import (
	"context"
	"fmt"

	"github.com/jhon-crow/ymmod/internal/config"
	"github.com/jhon-crow/ymmod/internal/platform"
	"github.com/jhon-crow/ymmod/internal/update"
)

// loadSettings reads ymmod.lua from the working directory, falling back to
// defaults when the file is absent.
func loadSettings(ctx context.Context) (*config.Settings, error) {
	parser := config.NewParser(platform.NewDetector())
	settings, err := parser.ParseFile(ctx, config.DefaultFileName)
	if err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}
	return settings, nil
}

// newClient builds an update client honoring the channel and User-Agent
// settings.
func newClient(settings *config.Settings) *update.Client {
	opts := []update.Option{update.WithChannel(settings.Channel)}
	if settings.UserAgent != "" {
		opts = append(opts, update.WithUserAgent(settings.UserAgent))
	}
	return update.NewClient(opts...)
}
