package version

import "fmt"

var (
	Version   string = "0.1.0" // updated by hand at each release, following SemVer (https://semver.org)
	GitCommit string          // overwritten by the build system
	BuildDate string          // overwritten by the build system
)

func ToDetailVersion() string {
	return fmt.Sprintf("version=%s git=%s build=%s", Version, GitCommit, BuildDate)
}
