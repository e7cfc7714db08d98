package config

import (
	"os"

	"github.com/gkampitakis/ciinfo"
)

// ColorEnabled returns whether terminal output should be colored for mode.
// "always" → true, "never" → false, "auto" → only on a terminal outside CI
// and when NO_COLOR is unset.
func ColorEnabled(mode string, isTerminal bool) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	default: // "auto"
		if os.Getenv("NO_COLOR") != "" {
			return false
		}
		return isTerminal && !ciinfo.IsCI
	}
}

// CIName returns the detected CI provider name, or empty string if not in CI.
func CIName() string {
	if !ciinfo.IsCI {
		return ""
	}
	return ciinfo.Name
}
