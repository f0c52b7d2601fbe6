package semtoken

import (
	"fmt"
	"strings"

	"github.com/blang/semver/v4"
)

// Version is the release version. Builds override it with
// -ldflags "-X github.com/aretw0/semtoken.Version=...".
var Version = "0.1.0"

// SemVer parses Version. A leading "v" and surrounding whitespace are tolerated.
func SemVer() (semver.Version, error) {
	v, err := semver.ParseTolerant(strings.TrimSpace(Version))
	if err != nil {
		return semver.Version{}, fmt.Errorf("parse version %q: %w", Version, err)
	}
	return v, nil
}
