package extract

import (
	"archive/zip"
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
)

func buildZip(t *testing.T, files map[string]string) []byte {
	t.Helper()
	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	for name, content := range files {
		f, err := w.Create(name)
		if err != nil {
			t.Fatalf("create zip entry: %v", err)
		}
		if _, err := f.Write([]byte(content)); err != nil {
			t.Fatalf("write zip entry: %v", err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close zip: %v", err)
	}
	return buf.Bytes()
}

func TestZipStrategyExtract(t *testing.T) {
	files := map[string]string{
		"resources/app.asar":          "not really an asar",
		"resources/assets/icon.ico":   "icon bytes",
		"Yandex Music.exe":            "binary",
		"locales/ru.pak":              "pak",
		"resources/app.asar.unpacked": "",
	}

	dir := t.TempDir()
	archive := filepath.Join(dir, "installer.zip")
	if err := os.WriteFile(archive, buildZip(t, files), 0644); err != nil {
		t.Fatalf("write archive: %v", err)
	}

	out := filepath.Join(dir, "out")
	s := &zipStrategy{}
	if err := s.Extract(context.Background(), archive, out); err != nil {
		t.Fatalf("Extract() error = %v", err)
	}

	for rel, want := range files {
		got, err := os.ReadFile(filepath.Join(out, filepath.FromSlash(rel)))
		if err != nil {
			t.Fatalf("read %s: %v", rel, err)
		}
		if string(got) != want {
			t.Errorf("%s content mismatch", rel)
		}
	}
}

func TestZipStrategyRejectsTraversal(t *testing.T) {
	dir := t.TempDir()
	archive := filepath.Join(dir, "evil.zip")
	if err := os.WriteFile(archive, buildZip(t, map[string]string{"../evil.txt": "x"}), 0644); err != nil {
		t.Fatalf("write archive: %v", err)
	}

	s := &zipStrategy{}
	if err := s.Extract(context.Background(), archive, filepath.Join(dir, "out")); err == nil {
		t.Error("expected error for path traversal entry but got none")
	}
}

func TestZipStrategyRejectsNonZip(t *testing.T) {
	dir := t.TempDir()
	archive := filepath.Join(dir, "installer.exe")
	if err := os.WriteFile(archive, []byte("MZ this is an NSIS installer"), 0644); err != nil {
		t.Fatalf("write archive: %v", err)
	}

	s := &zipStrategy{}
	if err := s.Extract(context.Background(), archive, filepath.Join(dir, "out")); err == nil {
		t.Error("expected error for non-zip input but got none")
	}
}
