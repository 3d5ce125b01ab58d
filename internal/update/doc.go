// Package update talks to the Yandex Music desktop update server.
//
// It fetches the latest.yml build manifest, exposes the parsed build
// descriptors, and downloads installer binaries with checksum verification
// against the manifest's SHA-512 digest.
package update
