package version

import (
	"regexp"
	"testing"
)

var ansiEscapes = regexp.MustCompile(`\x1b\[[0-9;]*m`)

func TestVersionShape(t *testing.T) {
	plain := ansiEscapes.ReplaceAllString(Version, "")
	if !regexp.MustCompile(`^\d+\.\d+\.\d+(-[0-9A-Za-z.-]+)?$`).MatchString(plain) {
		t.Fatalf("Version %q does not look like semver", plain)
	}
}
