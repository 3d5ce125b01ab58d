// Package platform identifies the host the patcher runs on.
//
// The detected details feed two places: the read-only "platform" table
// exposed to Lua settings files, and the tool-install hints printed when
// no archive extractor is available. Linux distribution details come
// from gopsutil; when that lookup fails the detector falls back to OS
// and architecture alone.
package platform

import "context"

// Canonical Linux distribution families. Detection maps the many distro
// ID strings onto these so callers branch on one name per family.
const (
	FamilyDebian  = "debian"
	FamilyRHEL    = "rhel"
	FamilyFedora  = "fedora"
	FamilySUSE    = "suse"
	FamilyArch    = "arch"
	FamilyAlpine  = "alpine"
	FamilyGentoo  = "gentoo"
	FamilyUnknown = "unknown"
)

// Info describes the detected host.
type Info struct {
	OS       string // runtime.GOOS value
	Arch     string // normalized, "amd64" or "arm64"
	ArchRaw  string // GOARCH as reported
	Platform string // Linux distro ID, e.g. "ubuntu"; empty elsewhere
	Family   string // canonical family, e.g. "debian"; empty elsewhere
	Version  string // distro version, Linux only
}

// IsLinux reports whether the host runs Linux.
func (i *Info) IsLinux() bool {
	return i.OS == "linux"
}

// IsMacOS reports whether the host runs macOS.
func (i *Info) IsMacOS() bool {
	return i.OS == "darwin"
}

// IsWindows reports whether the host runs Windows.
func (i *Info) IsWindows() bool {
	return i.OS == "windows"
}

// IsDebianFamily reports whether the host runs a Debian-derived
// distribution. The extractor install hints use this to suggest apt.
func (i *Info) IsDebianFamily() bool {
	return i.OS == "linux" && i.Family == FamilyDebian
}

// Detector resolves host details, once per command invocation.
type Detector interface {
	Detect(ctx context.Context) (*Info, error)
}
