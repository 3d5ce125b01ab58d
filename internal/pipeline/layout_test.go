package pipeline

import (
	"os"
	"path/filepath"
	"testing"
)

func TestNewLayout(t *testing.T) {
	l := NewLayout(filepath.Join("out"), "5.13.0")

	build := filepath.Join("out", "5.13.0")
	want := Layout{
		BuildDir:      build,
		TempDir:       filepath.Join(build, "temp"),
		InstallerPath: filepath.Join(build, "temp", "build.exe"),
		ExtractDir:    filepath.Join(build, "temp", "extracted"),
		ResourcePath:  filepath.Join(build, "temp", "extracted", "resources", "app.asar"),
		SourceDir:     filepath.Join(build, "src"),
		ModDir:        filepath.Join(build, "mod"),
		IconPath:      filepath.Join(build, "icon.ico"),
	}
	if l != want {
		t.Errorf("NewLayout() = %+v, want %+v", l, want)
	}
}

func TestLayoutReset(t *testing.T) {
	root := t.TempDir()
	l := NewLayout(root, "1.0.0")

	writeTree(t, l.BuildDir, map[string]string{"mod/stale.js": "x"})
	if err := l.Reset(); err != nil {
		t.Fatalf("Reset() error = %v", err)
	}

	for _, dir := range []string{l.ExtractDir, l.SourceDir, l.ModDir} {
		info, err := os.Stat(dir)
		if err != nil || !info.IsDir() {
			t.Errorf("%s not a directory after Reset: %v", dir, err)
		}
	}
	if _, err := os.Stat(filepath.Join(l.ModDir, "stale.js")); !os.IsNotExist(err) {
		t.Error("stale file survived Reset")
	}
}
