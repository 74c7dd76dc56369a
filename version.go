package testrunner

import (
	_ "embed"
	"strings"
)

//go:embed VERSION
var version string

// Version is the release version of the server.
var Version = strings.TrimSpace(version)
