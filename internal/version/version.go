package version

// Set at build time with -ldflags "-X github.com/hamed0406/healthprobe/internal/version.Version=...".
var (
	Version = "dev"
	Commit  = "none"
	Date    = ""
)
