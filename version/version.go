package version

import (
	"fmt"
	"runtime/debug"
	"strings"
	"time"
)

// Set at build time with -ldflags.
var (
	Version   = "dev"
	GitCommit = ""
	BuildTime = ""
)

// Info is the resolved build identity.
type Info struct {
	Version   string    `json:"version"`
	GitCommit string    `json:"git_commit"`
	GoVersion string    `json:"go_version"`
	BuildDate time.Time `json:"build_date"`
	IsRelease bool      `json:"is_release"`
	IsDirty   bool      `json:"is_dirty"`
}

// Get resolves the build identity from link-time variables and the embedded
// build info.
func Get() Info {
	info := Info{
		Version:   Version,
		GitCommit: shortCommit(GitCommit),
		IsRelease: Version != "dev" && !strings.Contains(Version, "dirty"),
	}
	if t, err := time.Parse(time.RFC3339, BuildTime); err == nil {
		info.BuildDate = t
	}

	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return info
	}
	info.GoVersion = bi.GoVersion
	for _, s := range bi.Settings {
		switch s.Key {
		case "vcs.revision":
			if info.GitCommit == "" {
				info.GitCommit = shortCommit(s.Value)
			}
		case "vcs.modified":
			info.IsDirty = s.Value == "true"
		case "vcs.time":
			if info.BuildDate.IsZero() {
				if t, err := time.Parse(time.RFC3339, s.Value); err == nil {
					info.BuildDate = t
				}
			}
		}
	}
	return info
}

// Short returns version[-commit][-dirty].
func (i Info) Short() string {
	parts := []string{i.Version}
	if i.GitCommit != "" {
		parts = append(parts, i.GitCommit)
	}
	if i.IsDirty {
		parts = append(parts, "dirty")
	}
	return strings.Join(parts, "-")
}

// String is Short plus the Go version and build date when known.
func (i Info) String() string {
	s := i.Short()
	if i.GoVersion != "" {
		s += " " + i.GoVersion
	}
	if !i.BuildDate.IsZero() {
		s += fmt.Sprintf(" (built %s)", i.BuildDate.UTC().Format(time.RFC3339))
	}
	return s
}

func shortCommit(c string) string {
	if len(c) > 7 {
		return c[:7]
	}
	return c
}
