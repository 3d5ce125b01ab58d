package pipeline

import (
	"fmt"
	"os"
	"path/filepath"
)

// Layout resolves every path a run touches from the output root and the
// build version. All paths live under BuildDir, so wiping BuildDir removes
// every trace of a previous run for that version.
type Layout struct {
	// BuildDir is <root>/<version>, the directory owned by this run.
	BuildDir string
	// TempDir holds the installer and its extraction; removed mid-run.
	TempDir string
	// InstallerPath is where the downloaded installer lands.
	InstallerPath string
	// ExtractDir receives the unpacked installer contents.
	ExtractDir string
	// ResourcePath is the application archive inside the unpacked installer.
	ResourcePath string
	// SourceDir receives the unpacked application sources, kept pristine.
	SourceDir string
	// ModDir is the patched copy of SourceDir, the run's final product.
	ModDir string
	// IconPath is where the application icon is copied if the installer
	// ships one.
	IconPath string
}

// NewLayout resolves the path layout for one version under outputRoot.
func NewLayout(outputRoot, version string) Layout {
	buildDir := filepath.Join(outputRoot, version)
	tempDir := filepath.Join(buildDir, "temp")
	return Layout{
		BuildDir:      buildDir,
		TempDir:       tempDir,
		InstallerPath: filepath.Join(tempDir, "build.exe"),
		ExtractDir:    filepath.Join(tempDir, "extracted"),
		ResourcePath:  filepath.Join(tempDir, "extracted", "resources", "app.asar"),
		SourceDir:     filepath.Join(buildDir, "src"),
		ModDir:        filepath.Join(buildDir, "mod"),
		IconPath:      filepath.Join(buildDir, "icon.ico"),
	}
}

// iconSourcePath is where the installer ships the application icon, when it
// ships one at all.
func iconSourcePath(l Layout) string {
	return filepath.Join(l.ExtractDir, "resources", "assets", "icon.ico")
}

// Reset wipes any previous run's directory and recreates the skeleton the
// stages write into.
func (l Layout) Reset() error {
	if err := os.RemoveAll(l.BuildDir); err != nil {
		return fmt.Errorf("remove build dir: %w", err)
	}
	for _, dir := range []string{l.BuildDir, l.ExtractDir, l.SourceDir, l.ModDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
	}
	return nil
}
