package update

// Build describes one downloadable build published by the update server.
// It is produced once from the manifest and consumed read-only.
type Build struct {
	Path               string  // file name relative to the channel root, e.g. "Yandex_Music_x64_5.13.2.exe"
	Hash               string  // SHA-512 digest, base64 as published by the server
	Size               int64   // file size in bytes
	Version            string  // e.g. "5.13.2"
	ReleaseDate        string  // optional, RFC 3339 when present
	UpdateProbability  float64 // optional staged-rollout probability
	DeprecatedVersions string  // optional semver range of versions forced to update
}

// updateFile is one entry of the manifest's files list.
type updateFile struct {
	URL    string `yaml:"url"`
	SHA512 string `yaml:"sha512"`
	Size   int64  `yaml:"size"`
}

// commonConfig carries server-side flags. Keys are SCREAMING_SNAKE_CASE
// in the YAML, so each field is tagged explicitly.
type commonConfig struct {
	DeprecatedVersions string `yaml:"DEPRECATED_VERSIONS"`
}

// updateInfo is the raw latest.yml document.
type updateInfo struct {
	Version           string        `yaml:"version"`
	Files             []updateFile  `yaml:"files"`
	ReleaseDate       string        `yaml:"releaseDate"`
	UpdateProbability float64       `yaml:"updateProbability"`
	CommonConfig      *commonConfig `yaml:"commonConfig"`
}

// builds flattens the manifest into one Build per file entry.
func (u *updateInfo) builds() []Build {
	var deprecated string
	if u.CommonConfig != nil {
		deprecated = u.CommonConfig.DeprecatedVersions
	}

	out := make([]Build, 0, len(u.Files))
	for _, f := range u.Files {
		out = append(out, Build{
			Path:               f.URL,
			Hash:               f.SHA512,
			Size:               f.Size,
			Version:            u.Version,
			ReleaseDate:        u.ReleaseDate,
			UpdateProbability:  u.UpdateProbability,
			DeprecatedVersions: deprecated,
		})
	}
	return out
}
