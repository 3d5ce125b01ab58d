package update

import (
	"context"
	"crypto/sha512"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
)

// Downloader fetches installer binaries from the update server.
//
// Downloads are not retried here; a failed download fails the whole run
// and the operator simply reruns the tool.
type Downloader struct {
	client *Client
}

// NewDownloader creates a downloader backed by the given client.
func NewDownloader(client *Client) *Downloader {
	return &Downloader{client: client}
}

// Download fetches the build's installer to destPath. The body is streamed
// to a temporary file and renamed into place so a partial download never
// shows up at destPath. When the descriptor carries a hash or size, the
// downloaded file is verified against it before the rename.
func (d *Downloader) Download(ctx context.Context, build *Build, destPath string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, d.client.BuildURL(build), nil)
	if err != nil {
		return fmt.Errorf("create download request: %w", err)
	}
	req.Header.Set("User-Agent", d.client.userAgent)

	resp, err := d.client.http.Do(req)
	if err != nil {
		return fmt.Errorf("execute download request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("download %s: unexpected status code %d", build.Path, resp.StatusCode)
	}

	if err := os.MkdirAll(filepath.Dir(destPath), 0755); err != nil {
		return fmt.Errorf("create dest dir: %w", err)
	}

	tmpPath := destPath + ".tmp"
	tmpFile, err := os.Create(tmpPath)
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}

	cleanupNeeded := true
	defer func() {
		tmpFile.Close()
		if cleanupNeeded {
			os.Remove(tmpPath)
		}
	}()

	// Hash while streaming so verification needs no second pass.
	hasher := sha512.New()
	written, err := io.Copy(io.MultiWriter(tmpFile, hasher), resp.Body)
	if err != nil {
		return fmt.Errorf("copy response body: %w", err)
	}

	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}

	if build.Size > 0 && written != build.Size {
		return fmt.Errorf("download %s: size mismatch: got %d bytes, manifest says %d", build.Path, written, build.Size)
	}
	if build.Hash != "" {
		if err := checkSHA512(hasher.Sum(nil), build.Hash); err != nil {
			return fmt.Errorf("download %s: %w", build.Path, err)
		}
	}

	if err := os.Rename(tmpPath, destPath); err != nil {
		return fmt.Errorf("rename temp file: %w", err)
	}

	cleanupNeeded = false
	return nil
}

// checkSHA512 compares a computed digest against the manifest's published
// value. electron-builder manifests publish base64; hex is accepted too.
func checkSHA512(sum []byte, want string) error {
	b64 := base64.StdEncoding.EncodeToString(sum)
	if b64 == want {
		return nil
	}
	if hex.EncodeToString(sum) == want {
		return nil
	}
	return fmt.Errorf("sha512 mismatch: got %s, manifest says %s", b64, want)
}
