package platform

import (
	"context"
	"fmt"
	"runtime"
	"strings"

	"github.com/shirou/gopsutil/v4/host"
)

// familyMap folds the distro family strings gopsutil reports onto the
// canonical family constants.
var familyMap = map[string]string{
	"debian":   FamilyDebian,
	"ubuntu":   FamilyDebian,
	"rhel":     FamilyRHEL,
	"centos":   FamilyRHEL,
	"rocky":    FamilyRHEL,
	"fedora":   FamilyFedora,
	"suse":     FamilySUSE,
	"opensuse": FamilySUSE,
	"arch":     FamilyArch,
	"manjaro":  FamilyArch,
	"alpine":   FamilyAlpine,
	"gentoo":   FamilyGentoo,
}

type hostDetector struct{}

// NewDetector creates a detector for the running host.
func NewDetector() Detector {
	return &hostDetector{}
}

// Detect reads OS and architecture from the runtime and, on Linux, asks
// gopsutil for distribution details. A failed distribution lookup is not
// an error: settings files rarely need distro fields, so the partial
// Info is still usable. A cancelled context fails the whole detection.
func (d *hostDetector) Detect(ctx context.Context) (*Info, error) {
	arch, err := normalizeArch(runtime.GOARCH)
	if err != nil {
		return nil, fmt.Errorf("detect platform: %w", err)
	}
	info := &Info{
		OS:      runtime.GOOS,
		Arch:    arch,
		ArchRaw: runtime.GOARCH,
	}

	if runtime.GOOS != "linux" {
		return info, nil
	}

	distro, family, version, err := host.PlatformInformationWithContext(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("detect platform: %w", ctx.Err())
		}
		return info, nil
	}
	if distro = cleanID(distro); distro != "" {
		info.Platform = distro
		info.Family = mapFamily(family)
		info.Version = cleanID(version)
	}
	return info, nil
}

func normalizeArch(arch string) (string, error) {
	switch arch {
	case "amd64", "x86_64":
		return "amd64", nil
	case "arm64", "aarch64":
		return "arm64", nil
	default:
		return "", fmt.Errorf("unsupported architecture %q", arch)
	}
}

func cleanID(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func mapFamily(family string) string {
	if canonical, ok := familyMap[cleanID(family)]; ok {
		return canonical
	}
	return FamilyUnknown
}
