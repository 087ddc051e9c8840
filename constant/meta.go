// Package constant defines immutable application-level identifiers and configuration defaults.
package constant

const (
	// Oddbit is the canonical application identifier used for filesystem paths and CLI branding.
	Oddbit = "oddbit"

	// Version is the current application semantic version string.
	Version = "0.1.0"

	// UserAgent is sent by the gallery client when talking to an oddbit server.
	UserAgent = Oddbit + "/" + Version
)

// Build metadata injected through -ldflags at release time.
var (
	BuiltAt  = ""
	BuiltBy  = ""
	Revision = ""
)
