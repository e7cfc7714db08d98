// Package version reports build information for the writegood binary.
package version

import (
	"runtime"
	"runtime/debug"

	"github.com/tinovyatkin/writegood/internal/writegood"
)

// version is set at build time with -ldflags "-X ...version.version=v1.2.3".
var version = "dev"

// Info is the machine readable form of the version command.
type Info struct {
	Version   string   `json:"version"`
	Revision  string   `json:"revision,omitempty"`
	GoVersion string   `json:"goVersion"`
	Platform  string   `json:"platform"`
	Checks    []string `json:"checks"`
}

// Version returns the current version string
func Version() string {
	if rev := Revision(); rev != "" {
		return version + " (" + rev + ")"
	}
	return version
}

// RawVersion returns the version without build metadata.
func RawVersion() string {
	return version
}

// Revision returns the short VCS revision recorded in build info.
func Revision() string {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return ""
	}
	for _, s := range info.Settings {
		if s.Key == "vcs.revision" {
			if len(s.Value) > 12 {
				return s.Value[:12]
			}
			return s.Value
		}
	}
	return ""
}

// GetInfo collects version details.
func GetInfo() Info {
	checks := writegood.Checks()
	names := make([]string, 0, len(checks))
	for _, c := range checks {
		names = append(names, c.Name)
	}
	return Info{
		Version:   RawVersion(),
		Revision:  Revision(),
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
		Checks:    names,
	}
}
