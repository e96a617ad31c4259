package types

import (
	"fmt"
	"sort"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	pep440 "github.com/aquasecurity/go-pep440-version"
)

// Latest known patch versions with an embeddable ZIP published on
// python.org. Security-only releases drop the Windows embeddable build,
// so these lag the newest patch on purpose.
var pythonVersions = map[string]string{
	"3.10": "3.10.11",
	"3.11": "3.11.9",
	"3.12": "3.12.10",
	"3.13": "3.13.12",
	"3.14": "3.14.3",
}

var pythonVersionLabels = map[string]string{
	"3.10": "Python 3.10 (3.10.11) - Stable, wide compatibility",
	"3.11": "Python 3.11 (3.11.9) - Stable, faster",
	"3.12": "Python 3.12 (3.12.10) - Stable, recommended",
	"3.13": "Python 3.13 (3.13.12) - Stable, latest features",
	"3.14": "Python 3.14 (3.14.3) - Stable, newest",
}

// DefaultPatchVersion is used when a minor version is not in the catalog.
const DefaultPatchVersion = "3.12.8"

// DefaultMinorVersion is the catalog entry selected when the user does
// not pick one.
const DefaultMinorVersion = "3.12"

// SupportedMinors returns the catalog's minor versions in ascending
// PEP 440 order.
func SupportedMinors() []string {
	minors := make([]string, 0, len(pythonVersions))
	for minor := range pythonVersions {
		minors = append(minors, minor)
	}
	sort.Slice(minors, func(i, j int) bool {
		vi, erri := pep440.Parse(minors[i])
		vj, errj := pep440.Parse(minors[j])
		if erri != nil || errj != nil {
			return minors[i] < minors[j]
		}
		return vi.LessThan(vj)
	})
	return minors
}

// ResolvePatch maps a minor version to its full patch version. Unknown
// minors fall back to DefaultPatchVersion.
func ResolvePatch(minor string) string {
	if patch, ok := pythonVersions[strings.TrimSpace(minor)]; ok {
		return patch
	}
	return DefaultPatchVersion
}

// VersionLabel returns the human-readable description for a catalog
// minor version, or the empty string for unknown minors.
func VersionLabel(minor string) string {
	return pythonVersionLabels[strings.TrimSpace(minor)]
}

// IsSupportedMinor reports whether the minor version has a catalog entry.
func IsSupportedMinor(minor string) bool {
	_, ok := pythonVersions[strings.TrimSpace(minor)]
	return ok
}

// ValidateCatalog checks the catalog invariants: every patch entry has a
// label, every entry parses as a PEP 440 version, and each patch version
// belongs to its minor series.
func ValidateCatalog() error {
	for minor, patch := range pythonVersions {
		if _, ok := pythonVersionLabels[minor]; !ok {
			return errbuilder.New().
				WithCode(errbuilder.CodeInternal).
				WithMsg(fmt.Sprintf("catalog entry %s has no display label", minor))
		}
		if _, err := pep440.Parse(patch); err != nil {
			return errbuilder.New().
				WithCode(errbuilder.CodeInternal).
				WithMsg(fmt.Sprintf("catalog entry %s has invalid patch version %s", minor, patch)).
				WithCause(err)
		}
		if !strings.HasPrefix(patch, minor+".") {
			return errbuilder.New().
				WithCode(errbuilder.CodeInternal).
				WithMsg(fmt.Sprintf("catalog patch %s is outside the %s series", patch, minor))
		}
	}
	return nil
}

// StdlibZipName returns the embeddable distribution's standard-library
// archive name for a minor version, e.g. "3.12" -> "python312.zip".
func StdlibZipName(minor string) string {
	parts := strings.Split(strings.TrimSpace(minor), ".")
	return "python" + strings.Join(parts, "") + ".zip"
}

// EmbedZipURL returns the python.org download URL for the embeddable
// amd64 ZIP of a patch version.
func EmbedZipURL(patch string) string {
	return fmt.Sprintf("https://www.python.org/ftp/python/%s/python-%s-embed-amd64.zip", patch, patch)
}

// TclTkMSIURL returns the python.org download URL for the tcl/tk
// installer package matching a patch version.
func TclTkMSIURL(patch string) string {
	return fmt.Sprintf("https://www.python.org/ftp/python/%s/amd64/tcltk.msi", patch)
}

// GetPipURL is the well-known pip bootstrap script location.
const GetPipURL = "https://bootstrap.pypa.io/get-pip.py"

// Portable tool release URLs baked into generated installer scripts.
const (
	GitVersion = "2.47.1"
	FFmpegURL  = "https://www.gyan.dev/ffmpeg/builds/ffmpeg-release-essentials.zip"
)

// GitURL is the MinGit release archive matching GitVersion.
var GitURL = fmt.Sprintf(
	"https://github.com/git-for-windows/git/releases/download/v%s.windows.1/MinGit-%s-64-bit.zip",
	GitVersion, GitVersion,
)
