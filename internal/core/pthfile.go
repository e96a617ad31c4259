package core

import (
	"fmt"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
)

// SearchPathLines builds the line set for an embeddable runtime's ._pth
// file: the stdlib archive, the fixed directory prefix, any extra
// entries verbatim in caller order, a blank line, and "import site".
// The loader resolves imports in exactly this order.
func SearchPathLines(zipName string, extraPaths []string) []string {
	lines := []string{
		zipName,
		".",
		"Lib",
		`Lib\site-packages`,
		"DLLs",
	}
	lines = append(lines, extraPaths...)
	lines = append(lines, "", "import site")
	return lines
}

// SearchPathContent renders the ._pth file body. The runtime's loader
// parses this file before any encoding machinery is available, so the
// content is restricted to printable ASCII plus newlines.
func SearchPathContent(zipName string, extraPaths []string) (string, error) {
	content := strings.Join(SearchPathLines(zipName, extraPaths), "\n")
	for _, r := range content {
		if r == '\n' {
			continue
		}
		if r < 0x20 || r > 0x7e {
			return "", errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg(fmt.Sprintf("search path entry contains non-ASCII character %q", r))
		}
	}
	return content, nil
}
