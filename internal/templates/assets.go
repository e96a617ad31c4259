// Package templates embeds the generated-artifact templates so the
// binary is self-contained.
package templates

import "embed"

//go:embed install.bat.tmpl launcher.bat.tmpl config.py.tmpl
var FS embed.FS

// Fixed template names within FS.
const (
	InstallBat  = "install.bat.tmpl"
	LauncherBat = "launcher.bat.tmpl"
	ConfigPy    = "config.py.tmpl"
)
