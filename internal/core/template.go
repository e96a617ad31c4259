// Package core holds the pure logic of the deployer: template
// rendering, search-path file construction, and the conditional batch
// fragments the generated scripts are assembled from.
package core

import (
	"regexp"
	"strings"
)

var templateToken = regexp.MustCompile(`\{\{(\s*\w+\s*)\}\}`)

// Render substitutes {{NAME}} tokens with values from vars. Tokens whose
// identifier is not a key in vars are left byte-for-byte unchanged. The
// template language has no escaping, recursion, or conditionals;
// conditional content is pre-built by callers and substituted as plain
// values.
func Render(text string, vars map[string]string) string {
	return templateToken.ReplaceAllStringFunc(text, func(token string) string {
		key := strings.TrimSpace(templateToken.FindStringSubmatch(token)[1])
		if value, ok := vars[key]; ok {
			return value
		}
		return token
	})
}
