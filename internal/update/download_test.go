package update

import (
	"context"
	"crypto/sha512"
	"encoding/base64"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
)

func newTestDownloader(t *testing.T, body []byte, status int) (*Downloader, func()) {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
		if _, err := w.Write(body); err != nil {
			t.Errorf("write response: %v", err)
		}
	}))
	return NewDownloader(NewClient(WithBaseURL(server.URL))), server.Close
}

func TestDownloaderDownload(t *testing.T) {
	body := []byte("fake installer payload")
	sum := sha512.Sum512(body)

	downloader, closeServer := newTestDownloader(t, body, http.StatusOK)
	defer closeServer()

	build := &Build{
		Path:    "installer.exe",
		Version: "1.0.0",
		Hash:    base64.StdEncoding.EncodeToString(sum[:]),
		Size:    int64(len(body)),
	}

	destPath := filepath.Join(t.TempDir(), "temp", "build.exe")
	if err := downloader.Download(context.Background(), build, destPath); err != nil {
		t.Fatalf("Download() error = %v", err)
	}

	got, err := os.ReadFile(destPath)
	if err != nil {
		t.Fatalf("read downloaded file: %v", err)
	}
	if string(got) != string(body) {
		t.Errorf("downloaded content mismatch")
	}

	// Temp file must be gone after the rename.
	if _, err := os.Stat(destPath + ".tmp"); !os.IsNotExist(err) {
		t.Errorf("temp file still present after download")
	}
}

func TestDownloaderDownloadHashMismatch(t *testing.T) {
	downloader, closeServer := newTestDownloader(t, []byte("corrupted payload"), http.StatusOK)
	defer closeServer()

	build := &Build{
		Path: "installer.exe",
		Hash: base64.StdEncoding.EncodeToString(make([]byte, sha512.Size)),
	}

	destPath := filepath.Join(t.TempDir(), "build.exe")
	if err := downloader.Download(context.Background(), build, destPath); err == nil {
		t.Fatal("expected hash mismatch error but got none")
	}

	// A failed verification must not leave any file behind.
	if _, err := os.Stat(destPath); !os.IsNotExist(err) {
		t.Errorf("dest file present after failed verification")
	}
	if _, err := os.Stat(destPath + ".tmp"); !os.IsNotExist(err) {
		t.Errorf("temp file present after failed verification")
	}
}

func TestDownloaderDownloadSizeMismatch(t *testing.T) {
	downloader, closeServer := newTestDownloader(t, []byte("short"), http.StatusOK)
	defer closeServer()

	build := &Build{Path: "installer.exe", Size: 999}
	destPath := filepath.Join(t.TempDir(), "build.exe")
	if err := downloader.Download(context.Background(), build, destPath); err == nil {
		t.Fatal("expected size mismatch error but got none")
	}
}

func TestDownloaderDownloadServerError(t *testing.T) {
	downloader, closeServer := newTestDownloader(t, []byte("nope"), http.StatusNotFound)
	defer closeServer()

	build := &Build{Path: "installer.exe"}
	destPath := filepath.Join(t.TempDir(), "build.exe")
	if err := downloader.Download(context.Background(), build, destPath); err == nil {
		t.Fatal("expected error for status 404 but got none")
	}
}

func TestCheckSHA512HexAccepted(t *testing.T) {
	body := []byte("payload")
	sum := sha512.Sum512(body)

	// Hex form of the digest is accepted alongside base64.
	hexDigest := ""
	for _, b := range sum {
		hexDigest += string("0123456789abcdef"[b>>4]) + string("0123456789abcdef"[b&0xf])
	}
	if err := checkSHA512(sum[:], hexDigest); err != nil {
		t.Errorf("checkSHA512(hex) error = %v", err)
	}
	if err := checkSHA512(sum[:], "bogus"); err == nil {
		t.Error("expected mismatch error but got none")
	}
}
