package version

import "github.com/fatih/color"

// Build metadata for the sling CLI, overridable via -ldflags.
var (
	// Version is the semantic version, with each component painted its
	// own color in terminal output.
	Version = paintSemver(0, 1, 0, "dev")

	// GitCommit is an optional git commit hash.
	GitCommit = ""

	// BuildDate is an optional build date in ISO-8601.
	BuildDate = ""
)

func paintSemver(major, minor, patch int, pre string) string {
	s := color.New(color.FgYellow, color.Bold).Sprint(major) +
		"." + color.New(color.FgGreen, color.Bold).Sprint(minor) +
		"." + color.New(color.FgBlue, color.Bold).Sprint(patch)
	if pre != "" {
		s += "-" + pre
	}
	return s
}
