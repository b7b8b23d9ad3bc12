package version

// Set at build time with -ldflags "-X github.com/chainstamp/chainstamp/internal/version.Version=..."
var (
	Version = "dev"
	Commit  = "none"
)
