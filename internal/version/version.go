package version

// Build-time variables set via ldflags, e.g.
//
//	go build -ldflags "-X github.com/tienda-online/storefront/internal/version.version=v0.3.0"
var (
	version   = "dev"
	buildDate = "unknown"
	gitCommit = "unknown"
)

// Info represents version information
type Info struct {
	Version   string `json:"version"`
	BuildDate string `json:"build_date"`
	GitCommit string `json:"git_commit"`
}

// Get returns the current version information
func Get() Info {
	return Info{
		Version:   version,
		BuildDate: buildDate,
		GitCommit: gitCommit,
	}
}

// String formats the version for the cli --version flag
func (i Info) String() string {
	return i.Version + " (built " + i.BuildDate + ", commit " + i.GitCommit + ")"
}
