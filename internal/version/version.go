// Package version carries build information stamped in by the linker:
//
//	go build -ldflags "-X github.com/rickgao/b3-refdata/internal/version.Version=1.2.0 \
//	                   -X github.com/rickgao/b3-refdata/internal/version.Commit=$(git rev-parse --short HEAD) \
//	                   -X github.com/rickgao/b3-refdata/internal/version.BuildTime=$(date -u +%Y-%m-%dT%H:%M:%SZ)" \
//	    ./cmd/b3loader
package version

// Set via ldflags.
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
)

// String returns "<version> (<commit>) built <time>".
func String() string {
	return Version + " (" + Commit + ") built " + BuildTime
}

// UserAgent is the HTTP User-Agent sent when fetching exchange files.
func UserAgent() string {
	return "b3-refdata/" + Version
}
