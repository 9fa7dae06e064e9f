package version

import "runtime/debug"

var (
	// Version is the semantic version of this build.
	Version = "dev"

	// Revision is the VCS revision this build was produced from.
	Revision = "unknown"
)

func init() {
	if Revision != "unknown" {
		return
	}

	info, ok := debug.ReadBuildInfo()
	if !ok {
		return
	}

	for _, setting := range info.Settings {
		if setting.Key == "vcs.revision" {
			Revision = setting.Value

			return
		}
	}
}
